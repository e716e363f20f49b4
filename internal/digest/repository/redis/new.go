package redis

import (
	"aquasentry-srv/internal/digest/repository"
	pkgLog "aquasentry-srv/pkg/log"
	pkgRedis "aquasentry-srv/pkg/redis"
)

const (
	digestKeyPrefix    = "digest:"
	tokenKeyPrefix     = "digest:token:"
	recipientKeyPrefix = "digest:recipient:"
	pendingKey         = "digest:pending"

	defaultTxRetries = 5
)

type implRepository struct {
	l         pkgLog.Logger
	redis     pkgRedis.IRedis
	txRetries int
}

var _ repository.Repository = &implRepository{}

func New(l pkgLog.Logger, rd pkgRedis.IRedis, txRetries int) *implRepository {
	if txRetries <= 0 {
		txRetries = defaultTxRetries
	}
	return &implRepository{
		l:         l,
		redis:     rd,
		txRetries: txRetries,
	}
}

func digestKey(id string) string {
	return digestKeyPrefix + id
}

func tokenKey(token string) string {
	return tokenKeyPrefix + token
}

func recipientKey(recipientID string) string {
	return recipientKeyPrefix + recipientID
}
