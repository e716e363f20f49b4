package middleware

import (
	"aquasentry-srv/pkg/jwt"
	"aquasentry-srv/pkg/log"
)

type Middleware struct {
	l           log.Logger
	jwtV        *jwt.Validator
	internalKey string
}

func New(l log.Logger, jwtV *jwt.Validator, internalKey string) Middleware {
	return Middleware{
		l:           l,
		jwtV:        jwtV,
		internalKey: internalKey,
	}
}
