package repomanager

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/taskflow/internal/server/config"
	"github.com/dmitrijs2005/taskflow/internal/server/repositories/jsondb"
)

// New builds the RepositoryManager selected by cfg.StorageBackend.
func New(ctx context.Context, cfg *config.Config) (RepositoryManager, error) {
	switch cfg.StorageBackend {
	case config.StorageMemory:
		return openJSON(ctx, jsondb.NewMemoryBlob())
	case config.StorageFile:
		return openJSON(ctx, jsondb.NewFileBlob(cfg.DataFile))
	case config.StorageS3:
		blob, err := jsondb.NewS3BlobFromOptions(ctx, jsondb.S3Options{
			Region:       cfg.S3Region,
			AccessKey:    cfg.S3RootUser,
			SecretKey:    cfg.S3RootPassword,
			BaseEndpoint: cfg.S3BaseEndpoint,
			Bucket:       cfg.S3Bucket,
			Key:          cfg.S3ObjectKey,
		})
		if err != nil {
			return nil, fmt.Errorf("s3 client: %w", err)
		}
		return openJSON(ctx, blob)
	case config.StoragePostgres:
		m, err := OpenPostgres(ctx, cfg.DatabaseDSN)
		if err != nil {
			return nil, err
		}
		return m, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}

func openJSON(ctx context.Context, blob jsondb.Blob) (RepositoryManager, error) {
	m, err := NewJSONRepositoryManager(ctx, blob)
	if err != nil {
		return nil, err
	}
	return m, nil
}
