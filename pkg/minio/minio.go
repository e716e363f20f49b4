package minio

import (
	"bytes"
	"context"
	"fmt"

	miniogo "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Config is the object-storage configuration.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	Region    string
}

type implArchiver struct {
	client *miniogo.Client
	bucket string
}

var _ Archiver = &implArchiver{}

// New creates an Archiver backed by a MinIO/S3 bucket.
// The bucket is created if it does not exist.
func New(ctx context.Context, cfg Config) (Archiver, error) {
	if cfg.Endpoint == "" {
		return nil, ErrEndpointRequired
	}
	if cfg.Bucket == "" {
		return nil, ErrBucketRequired
	}

	client, err := miniogo.New(cfg.Endpoint, &miniogo.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, err
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("minio: check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, miniogo.MakeBucketOptions{Region: cfg.Region}); err != nil {
			return nil, fmt.Errorf("minio: make bucket: %w", err)
		}
	}

	return &implArchiver{client: client, bucket: cfg.Bucket}, nil
}

func (a *implArchiver) Put(ctx context.Context, objectName string, body []byte, contentType string) error {
	_, err := a.client.PutObject(ctx, a.bucket, objectName,
		bytes.NewReader(body), int64(len(body)),
		miniogo.PutObjectOptions{ContentType: contentType})
	return err
}

func (a *implArchiver) HealthCheck(ctx context.Context) error {
	_, err := a.client.BucketExists(ctx, a.bucket)
	return err
}
