package postgres

import (
	"database/sql"

	"aquasentry-srv/internal/device/repository"
	pkgLog "aquasentry-srv/pkg/log"
)

type implRegistry struct {
	l  pkgLog.Logger
	db *sql.DB
}

var _ repository.Registry = &implRegistry{}

func New(l pkgLog.Logger, db *sql.DB) *implRegistry {
	return &implRegistry{
		l:  l,
		db: db,
	}
}
