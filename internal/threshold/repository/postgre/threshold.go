package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	"aquasentry-srv/internal/model"
	"aquasentry-srv/internal/threshold/repository"

	"github.com/friendsofgo/errors"
)

// The configuration is a single JSONB document row. id is pinned to 1
// so upserts always replace the active document.
const (
	detailQuery = `SELECT document FROM threshold_configs WHERE id = 1`

	upsertQuery = `
		INSERT INTO threshold_configs (id, document, updated_at)
		VALUES (1, $1, NOW())
		ON CONFLICT (id) DO UPDATE SET document = $1, updated_at = NOW()`
)

func (r *implRepository) Detail(ctx context.Context) (model.ThresholdConfig, error) {
	var raw []byte
	err := r.db.QueryRowContext(ctx, detailQuery).Scan(&raw)
	if err != nil {
		if err == sql.ErrNoRows {
			return model.ThresholdConfig{}, repository.ErrNotFound
		}
		r.l.Errorf(ctx, "internal.threshold.repository.postgres.Detail.Scan: %v", err)
		return model.ThresholdConfig{}, errors.Wrap(err, "query threshold config")
	}

	var cfg model.ThresholdConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		r.l.Errorf(ctx, "internal.threshold.repository.postgres.Detail.Unmarshal: %v", err)
		return model.ThresholdConfig{}, errors.Wrap(err, "decode threshold config")
	}
	return cfg, nil
}

func (r *implRepository) Upsert(ctx context.Context, cfg model.ThresholdConfig) error {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "encode threshold config")
	}

	if _, err := r.db.ExecContext(ctx, upsertQuery, raw); err != nil {
		r.l.Errorf(ctx, "internal.threshold.repository.postgres.Upsert.Exec: %v", err)
		return errors.Wrap(err, "upsert threshold config")
	}
	return nil
}
