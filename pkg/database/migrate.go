package database

import (
	"context"
	"fmt"
)

// schema 서비스가 사용하는 테이블 (idempotent)
var schema = []string{
	`CREATE SCHEMA IF NOT EXISTS forecast`,
	`CREATE TABLE IF NOT EXISTS forecast.predictions (
		product         TEXT             NOT NULL,
		as_of_date      DATE             NOT NULL,
		predicted_date  DATE             NOT NULL,
		n_days_ahead    INTEGER          NOT NULL,
		predicted_value DOUBLE PRECISION NOT NULL,
		fetched_at      TIMESTAMPTZ      NOT NULL DEFAULT now(),
		PRIMARY KEY (product, as_of_date, predicted_date, n_days_ahead)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_predictions_product_as_of
		ON forecast.predictions (product, as_of_date DESC)`,
	`CREATE SCHEMA IF NOT EXISTS app`,
	`CREATE TABLE IF NOT EXISTS app.user_settings (
		owner        TEXT        PRIMARY KEY,
		favorites    TEXT[]      NOT NULL DEFAULT '{}',
		color_scheme TEXT        NOT NULL DEFAULT 'system',
		updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
}

// Migrate creates the schemas and tables if they are missing
func (db *DB) Migrate(ctx context.Context) error {
	for i, stmt := range schema {
		if _, err := db.Pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migration step %d: %w", i+1, err)
		}
	}
	return nil
}
