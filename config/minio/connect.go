package minio

import (
	"context"

	"aquasentry-srv/config"
	pkgMinio "aquasentry-srv/pkg/minio"
)

// Connect initializes the digest archive bucket client.
// Returns (nil, nil) when archiving is not configured.
func Connect(ctx context.Context, cfg config.MinIOConfig) (pkgMinio.Archiver, error) {
	if cfg.Endpoint == "" {
		return nil, nil
	}

	return pkgMinio.New(ctx, pkgMinio.Config{
		Endpoint:  cfg.Endpoint,
		AccessKey: cfg.AccessKey,
		SecretKey: cfg.SecretKey,
		Bucket:    cfg.Bucket,
		UseSSL:    cfg.UseSSL,
		Region:    cfg.Region,
	})
}
