package redis

import (
	"errors"

	goredis "github.com/redis/go-redis/v9"
)

var (
	ErrHostRequired = errors.New("redis: host is required")

	// ErrKeyNotFound is returned by Get when the key does not exist.
	ErrKeyNotFound = errors.New("redis: key not found")
)

// IsNil reports whether err is the go-redis missing-key sentinel.
func IsNil(err error) bool {
	return errors.Is(err, goredis.Nil)
}
