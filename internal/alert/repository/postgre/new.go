package postgres

import (
	"database/sql"

	"aquasentry-srv/internal/alert/repository"
	pkgLog "aquasentry-srv/pkg/log"
)

type implRepository struct {
	l  pkgLog.Logger
	db *sql.DB
}

var _ repository.Repository = &implRepository{}

func New(l pkgLog.Logger, db *sql.DB) *implRepository {
	return &implRepository{
		l:  l,
		db: db,
	}
}
