// Package store owns the persisted state: the job_postings table (every
// posting ever observed, unique on fingerprint and on job_id) and the
// append-only scrape_log table.
package store

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AngelaZQ1/salesforce-job-scraper/internal/errors"
	"github.com/AngelaZQ1/salesforce-job-scraper/internal/model"
)

// ─── PostingStore ────────────────────────────────────────────────────────────

// PostingStore is the durable record of all postings ever observed.
type PostingStore struct {
	pool *pgxpool.Pool
}

// NewPostingStore returns a store backed by the given pool.
func NewPostingStore(pool *pgxpool.Pool) *PostingStore {
	return &PostingStore{pool: pool}
}

// Postgres error codes treated as transient contention, retried once.
var transientCodes = map[string]bool{
	"40001": true, // serialization_failure
	"40P01": true, // deadlock_detected
	"55P03": true, // lock_not_available
}

const jobIDConstraint = "job_postings_job_id_key"

// UpsertObservation records one observation of a posting atomically: insert
// the record with first_seen = last_updated = now() when its fingerprint is
// unseen, otherwise advance last_updated only. first_seen is never touched
// after the initial insert.
//
// Returns true when a new row was inserted. A job_id collision against a
// record holding a different fingerprint is returned as a STORE_CONFLICT
// domain error; the caller decides whether to retry with a widened id.
func (s *PostingStore) UpsertObservation(ctx context.Context, rec model.PostingRecord) (bool, error) {
	inserted, err := s.upsert(ctx, rec)
	if err != nil && errors.IsType(err, errors.ErrTypeStoreConflict) && isTransient(err) {
		time.Sleep(100 * time.Millisecond)
		inserted, err = s.upsert(ctx, rec)
	}
	return inserted, err
}

func (s *PostingStore) upsert(ctx context.Context, rec model.PostingRecord) (bool, error) {
	// xmax = 0 holds only for a freshly inserted row, which is how a single
	// round trip distinguishes insert from touch.
	var inserted bool
	err := s.pool.QueryRow(ctx,
		`INSERT INTO job_postings
		   (title, location, team, job_id, url, posted_date, fingerprint)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (fingerprint) DO UPDATE SET last_updated = now()
		 RETURNING (xmax = 0)`,
		rec.Title, rec.Location, rec.Team, rec.JobID, rec.URL, rec.PostedDate, rec.Fingerprint,
	).Scan(&inserted)
	if err != nil {
		var pgErr *pgconn.PgError
		if stderrors.As(err, &pgErr) {
			if pgErr.Code == "23505" && pgErr.ConstraintName == jobIDConstraint {
				return false, errors.StoreConflict(
					fmt.Sprintf("job_id %s already taken by a different posting", rec.JobID), err)
			}
			if transientCodes[pgErr.Code] {
				return false, errors.StoreConflict("transient contention on job_postings", err)
			}
		}
		return false, fmt.Errorf("upsert observation: %w", err)
	}
	return inserted, nil
}

func isTransient(err error) bool {
	var pgErr *pgconn.PgError
	return stderrors.As(err, &pgErr) && transientCodes[pgErr.Code]
}

// ObservedSince returns every record first seen at or after cutoff, newest
// first. This is the recovery read: a run that died between persisting and
// notifying is replayable by querying a window on the next invocation.
func (s *PostingStore) ObservedSince(ctx context.Context, cutoff time.Time) ([]model.PostingRecord, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT title, location, team, job_id, url, posted_date, fingerprint,
		        first_seen, last_updated
		 FROM job_postings
		 WHERE first_seen >= $1
		 ORDER BY first_seen DESC, id DESC`,
		cutoff,
	)
	if err != nil {
		return nil, fmt.Errorf("query observed since: %w", err)
	}
	defer rows.Close()

	recs := make([]model.PostingRecord, 0)
	for rows.Next() {
		var r model.PostingRecord
		if err := rows.Scan(
			&r.Title, &r.Location, &r.Team, &r.JobID, &r.URL, &r.PostedDate,
			&r.Fingerprint, &r.FirstSeen, &r.LastUpdated,
		); err != nil {
			return nil, fmt.Errorf("scan posting: %w", err)
		}
		recs = append(recs, r)
	}
	return recs, rows.Err()
}

// GetByFingerprint looks up a single record. Returns nil when absent.
func (s *PostingStore) GetByFingerprint(ctx context.Context, fingerprint string) (*model.PostingRecord, error) {
	var r model.PostingRecord
	err := s.pool.QueryRow(ctx,
		`SELECT title, location, team, job_id, url, posted_date, fingerprint,
		        first_seen, last_updated
		 FROM job_postings
		 WHERE fingerprint = $1`,
		fingerprint,
	).Scan(
		&r.Title, &r.Location, &r.Team, &r.JobID, &r.URL, &r.PostedDate,
		&r.Fingerprint, &r.FirstSeen, &r.LastUpdated,
	)
	if err != nil {
		if stderrors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get by fingerprint: %w", err)
	}
	return &r, nil
}
