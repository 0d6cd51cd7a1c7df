package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema statements. Both uniqueness constraints are load-bearing:
// fingerprint is the dedup key, job_id the weaker slot key, and the store
// enforces both so a collision surfaces instead of silently merging rows.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS job_postings (
	id           BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
	title        TEXT NOT NULL,
	location     TEXT NOT NULL,
	team         TEXT NOT NULL,
	job_id       TEXT NOT NULL UNIQUE,
	url          TEXT NOT NULL,
	posted_date  DATE NOT NULL,
	fingerprint  TEXT NOT NULL UNIQUE,
	first_seen   TIMESTAMPTZ NOT NULL DEFAULT now(),
	last_updated TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_job_postings_first_seen ON job_postings (first_seen DESC);

CREATE TABLE IF NOT EXISTS scrape_log (
	id          BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
	scrape_time TIMESTAMPTZ NOT NULL DEFAULT now(),
	jobs_found  INTEGER NOT NULL,
	new_jobs    INTEGER NOT NULL,
	status      TEXT NOT NULL
);
`

// InitSchema creates the two tables if they do not exist yet. Idempotent and
// safe to run on every startup.
func InitSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	return nil
}
