package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AngelaZQ1/salesforce-job-scraper/internal/errors"
	"github.com/AngelaZQ1/salesforce-job-scraper/internal/model"
)

// ─── RunLog ──────────────────────────────────────────────────────────────────

// RunLog is the append-only audit trail of scrape runs. Rows are never
// mutated or deleted.
type RunLog struct {
	pool *pgxpool.Pool
}

// NewRunLog returns a run log backed by the given pool.
func NewRunLog(pool *pgxpool.Pool) *RunLog {
	return &RunLog{pool: pool}
}

// RecordRun appends one scrape_log row. A failure here must never fail the
// run that already persisted its postings, so callers log the returned
// LOG_WRITE error and move on.
func (l *RunLog) RecordRun(ctx context.Context, jobsFound, newJobs int, status model.RunStatus) error {
	_, err := l.pool.Exec(ctx,
		`INSERT INTO scrape_log (jobs_found, new_jobs, status) VALUES ($1, $2, $3)`,
		jobsFound, newJobs, string(status),
	)
	if err != nil {
		return errors.LogWrite("append scrape_log row", err)
	}
	return nil
}

// HasSuccessfulRun reports whether any run ever completed with a
// non-failure status. Drives the single-shot exit-code policy: an
// extraction failure is only fatal when nothing has ever worked.
func (l *RunLog) HasSuccessfulRun(ctx context.Context) (bool, error) {
	var exists bool
	err := l.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM scrape_log WHERE status <> $1)`,
		string(model.RunFailure),
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("query scrape_log: %w", err)
	}
	return exists, nil
}

// RecentRuns returns the latest limit run records, newest first.
func (l *RunLog) RecentRuns(ctx context.Context, limit int) ([]model.RunRecord, error) {
	rows, err := l.pool.Query(ctx,
		`SELECT scrape_time, jobs_found, new_jobs, status
		 FROM scrape_log
		 ORDER BY scrape_time DESC, id DESC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query scrape_log: %w", err)
	}
	defer rows.Close()

	runs := make([]model.RunRecord, 0, limit)
	for rows.Next() {
		var r model.RunRecord
		var status string
		if err := rows.Scan(&r.ScrapeTime, &r.JobsFound, &r.NewJobs, &status); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.Status = model.RunStatus(status)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
