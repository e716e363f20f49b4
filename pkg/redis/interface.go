package redis

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// IRedis is the Redis capability used by repositories.
// Watch runs fn inside an optimistic transaction over the given keys
// and returns goredis.TxFailedErr when a watched key changed.
type IRedis interface {
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, key string) (bool, error)
	Watch(ctx context.Context, fn func(tx *goredis.Tx) error, keys ...string) error
	Close() error
	Ping(ctx context.Context) error
	GetClient() *goredis.Client
}
