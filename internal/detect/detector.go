// Package detect implements the change-detection engine: it turns one run's
// noisy candidate batch into persisted observations and the ordered subset
// that is genuinely new.
package detect

import (
	"context"
	"strings"
	"time"

	"github.com/AngelaZQ1/salesforce-job-scraper/internal/errors"
	"github.com/AngelaZQ1/salesforce-job-scraper/internal/identity"
	"github.com/AngelaZQ1/salesforce-job-scraper/internal/logger"
	"github.com/AngelaZQ1/salesforce-job-scraper/internal/model"
)

// PostingStore is the slice of the store the detector needs.
type PostingStore interface {
	UpsertObservation(ctx context.Context, rec model.PostingRecord) (bool, error)
}

// RunRecorder appends the per-run audit row.
type RunRecorder interface {
	RecordRun(ctx context.Context, jobsFound, newJobs int, status model.RunStatus) error
}

// Result summarizes one pass over a candidate batch.
type Result struct {
	Found   int                   // candidates in, including dropped and duplicate ones
	New     []model.PostingRecord // inserted this run, in input order
	Dropped int                   // malformed candidates (empty title) filtered out
	Skipped int                   // candidates the store could not accept
	Status  model.RunStatus
}

// Detector deduplicates candidate batches against the posting store.
type Detector struct {
	store PostingStore
	runs  RunRecorder
	log   *logger.Logger
}

// New constructs a Detector.
func New(store PostingStore, runs RunRecorder) *Detector {
	return &Detector{
		store: store,
		runs:  runs,
		log:   logger.New("detect"),
	}
}

// Process validates candidates, derives their identity, persists each
// observation and returns the new subset in input order. It also appends the
// run's audit row. Feeding the identical batch twice yields zero new records
// the second time.
//
// A single bad candidate never aborts the batch: malformed ones are dropped,
// store conflicts are retried with a widened job id and then skipped with a
// warning. Process returns an error only when ctx is cancelled.
func (d *Detector) Process(ctx context.Context, candidates []model.Posting) (*Result, error) {
	res := &Result{
		Found: len(candidates),
		New:   make([]model.PostingRecord, 0, len(candidates)),
	}

	for _, c := range candidates {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		if strings.TrimSpace(c.Title) == "" {
			res.Dropped++
			continue
		}

		rec := toRecord(c)
		inserted, err := d.store.UpsertObservation(ctx, rec)
		if err != nil && errors.IsType(err, errors.ErrTypeStoreConflict) {
			// Different content hashed to an occupied job_id. Retry once with
			// the widened id before giving up on this candidate.
			rec.JobID = identity.WidenJobID(rec.Fingerprint)
			inserted, err = d.store.UpsertObservation(ctx, rec)
		}
		if err != nil {
			d.log.LogWarnf("skipping candidate %q (%s): %v", rec.Title, rec.Location, err)
			res.Skipped++
			continue
		}

		if inserted {
			d.log.LogInfof("new job found: %s - %s", rec.Title, rec.Location)
			res.New = append(res.New, rec)
		}
	}

	res.Status = model.RunSuccess
	if res.Skipped > 0 {
		res.Status = model.RunPartial
	}

	if err := d.runs.RecordRun(ctx, res.Found, len(res.New), res.Status); err != nil {
		// Audit failures never undo the postings persisted above.
		d.log.LogError("run log write failed", err)
	}

	return res, nil
}

func toRecord(c model.Posting) model.PostingRecord {
	postedDate := c.PostedDate
	if postedDate.IsZero() {
		postedDate = time.Now()
	}
	return model.PostingRecord{
		Title:       c.Title,
		Location:    c.Location,
		Team:        c.Team,
		JobID:       identity.JobID(c.Title, c.Location),
		URL:         c.URL,
		PostedDate:  postedDate,
		Fingerprint: identity.Fingerprint(c.Title, c.Location, c.Team),
	}
}
