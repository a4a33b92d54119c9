package config

import (
	"github.com/dmitrijs2005/taskflow/internal/flagx"
)

// parseEnv overlays values from TASKFLOW_* environment variables. Unset
// variables leave the current value alone. Malformed numbers or durations
// panic, matching the other loaders.
func parseEnv(config *Config) {
	flagx.EnvString(&config.EndpointAddrHTTP, "TASKFLOW_HTTP_ADDR")
	flagx.EnvString(&config.EndpointAddrGRPC, "TASKFLOW_GRPC_ADDR")
	flagx.EnvString(&config.SecretKey, "TASKFLOW_SECRET_KEY")
	flagx.EnvString(&config.StorageBackend, "TASKFLOW_STORAGE")
	flagx.EnvString(&config.DataFile, "TASKFLOW_DATA_FILE")
	flagx.EnvString(&config.DatabaseDSN, "TASKFLOW_DATABASE_DSN")
	flagx.EnvString(&config.S3RootUser, "TASKFLOW_S3_ROOT_USER")
	flagx.EnvString(&config.S3RootPassword, "TASKFLOW_S3_ROOT_PASSWORD")
	flagx.EnvString(&config.S3Bucket, "TASKFLOW_S3_BUCKET")
	flagx.EnvString(&config.S3Region, "TASKFLOW_S3_REGION")
	flagx.EnvString(&config.S3BaseEndpoint, "TASKFLOW_S3_BASE_ENDPOINT")
	flagx.EnvString(&config.S3ObjectKey, "TASKFLOW_S3_OBJECT_KEY")
	flagx.EnvString(&config.LogLevel, "TASKFLOW_LOG_LEVEL")
	flagx.EnvString(&config.LogFormat, "TASKFLOW_LOG_FORMAT")
	flagx.EnvList(&config.AllowedOrigins, "TASKFLOW_ALLOWED_ORIGINS")

	for _, err := range []error{
		flagx.EnvDuration(&config.TokenValidityDuration, "TASKFLOW_TOKEN_TTL"),
		flagx.EnvInt(&config.BcryptCost, "TASKFLOW_BCRYPT_COST"),
		flagx.EnvInt(&config.GraphQLMaxDepth, "TASKFLOW_GRAPHQL_MAX_DEPTH"),
	} {
		if err != nil {
			panic(err)
		}
	}
}
