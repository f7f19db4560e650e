package storage

import (
	"context"
	"fmt"

	"bellsync/config"
)

// Open builds the blob store selected by BLOB_BACKEND.
func Open(ctx context.Context, cfg *config.Config) (BlobStore, error) {
	switch cfg.BlobBackend {
	case config.BlobBackendLocal:
		return NewLocalBlobStore(cfg.UploadDir)
	case config.BlobBackendMinio:
		return NewMinioBlobStore(ctx, MinioOptions{
			Endpoint:  cfg.MinioEndpoint,
			AccessKey: cfg.MinioAccessKey,
			SecretKey: cfg.MinioSecretKey,
			Bucket:    cfg.MinioBucket,
			Region:    cfg.MinioRegion,
			UseSSL:    cfg.MinioUseSSL,
		})
	default:
		return nil, fmt.Errorf("unknown blob backend %q", cfg.BlobBackend)
	}
}
