package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/taskflow/internal/flagx"
	"github.com/dmitrijs2005/taskflow/internal/timex"
	"github.com/tidwall/jsonc"
)

// JsonConfig defines a configuration structure tailored for JSON unmarshalling.
// Durations use timex.Duration, which accepts both strings such as "24h" and
// integer nanoseconds.
type JsonConfig struct {
	EndpointAddrHTTP      string         `json:"endpoint_addr_http"`
	EndpointAddrGRPC      string         `json:"endpoint_addr_grpc"`
	SecretKey             string         `json:"secret_key"`
	TokenValidityDuration timex.Duration `json:"token_validity_duration"`
	BcryptCost            int            `json:"bcrypt_cost"`
	StorageBackend        string         `json:"storage_backend"`
	DataFile              string         `json:"data_file"`
	DatabaseDSN           string         `json:"database_dsn"`
	S3RootUser            string         `json:"s3_root_user"`
	S3RootPassword        string         `json:"s3_root_password"`
	S3Bucket              string         `json:"s3_bucket"`
	S3Region              string         `json:"s3_region"`
	S3BaseEndpoint        string         `json:"s3_base_endpoint"`
	S3ObjectKey           string         `json:"s3_object_key"`
	LogLevel              string         `json:"log_level"`
	LogFormat             string         `json:"log_format"`
	AllowedOrigins        []string       `json:"allowed_origins"`
	GraphQLMaxDepth       int            `json:"graphql_max_depth"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance.
//
// The file path comes from the -c/-config flags or $TASKFLOW_CONFIG; if none
// is set, nothing is loaded. The file may contain comments and trailing
// commas. Keys missing from the file keep their current values.
//
// If the file cannot be read or contains invalid JSON, the function panics.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := toJsonConfig(config)
	if err := json.Unmarshal(jsonc.ToJSON(file), c); err != nil {
		panic(err)
	}

	fromJsonConfig(c, config)
}

func toJsonConfig(config *Config) *JsonConfig {
	return &JsonConfig{
		EndpointAddrHTTP:      config.EndpointAddrHTTP,
		EndpointAddrGRPC:      config.EndpointAddrGRPC,
		SecretKey:             config.SecretKey,
		TokenValidityDuration: timex.Duration{Duration: config.TokenValidityDuration},
		BcryptCost:            config.BcryptCost,
		StorageBackend:        config.StorageBackend,
		DataFile:              config.DataFile,
		DatabaseDSN:           config.DatabaseDSN,
		S3RootUser:            config.S3RootUser,
		S3RootPassword:        config.S3RootPassword,
		S3Bucket:              config.S3Bucket,
		S3Region:              config.S3Region,
		S3BaseEndpoint:        config.S3BaseEndpoint,
		S3ObjectKey:           config.S3ObjectKey,
		LogLevel:              config.LogLevel,
		LogFormat:             config.LogFormat,
		AllowedOrigins:        config.AllowedOrigins,
		GraphQLMaxDepth:       config.GraphQLMaxDepth,
	}
}

func fromJsonConfig(c *JsonConfig, config *Config) {
	config.EndpointAddrHTTP = c.EndpointAddrHTTP
	config.EndpointAddrGRPC = c.EndpointAddrGRPC
	config.SecretKey = c.SecretKey
	config.TokenValidityDuration = c.TokenValidityDuration.Duration
	config.BcryptCost = c.BcryptCost
	config.StorageBackend = c.StorageBackend
	config.DataFile = c.DataFile
	config.DatabaseDSN = c.DatabaseDSN
	config.S3RootUser = c.S3RootUser
	config.S3RootPassword = c.S3RootPassword
	config.S3Bucket = c.S3Bucket
	config.S3Region = c.S3Region
	config.S3BaseEndpoint = c.S3BaseEndpoint
	config.S3ObjectKey = c.S3ObjectKey
	config.LogLevel = c.LogLevel
	config.LogFormat = c.LogFormat
	config.AllowedOrigins = c.AllowedOrigins
	config.GraphQLMaxDepth = c.GraphQLMaxDepth
}
