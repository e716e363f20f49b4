package minio

import "context"

// Archiver stores immutable copies of rendered notifications.
type Archiver interface {
	Put(ctx context.Context, objectName string, body []byte, contentType string) error
	HealthCheck(ctx context.Context) error
}
