// Package scheduler wires up the cron entries that trigger scrape runs at
// the configured daily times.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/AngelaZQ1/salesforce-job-scraper/internal/logger"
	"github.com/AngelaZQ1/salesforce-job-scraper/internal/scraper"
)

// Scheduler wraps robfig/cron and manages the scrape loop.
type Scheduler struct {
	cron       *cron.Cron
	worker     *scraper.Worker
	times      []string // "HH:MM" local times
	runOnStart bool
	log        *logger.Logger
}

// New creates a Scheduler that fires a run at each of the given local times
// every day. When runOnStart is set, one run fires immediately on Start so
// the store is populated without waiting for the first tick.
func New(worker *scraper.Worker, times []string, runOnStart bool) *Scheduler {
	return &Scheduler{
		cron:       cron.New(),
		worker:     worker,
		times:      times,
		runOnStart: runOnStart,
		log:        logger.New("scheduler"),
	}
}

// Start registers the entries and starts the scheduler.
func (s *Scheduler) Start(ctx context.Context) error {
	for _, t := range s.times {
		spec, err := cronSpec(t)
		if err != nil {
			return err
		}
		if _, err := s.cron.AddFunc(spec, func() { s.runScrape(ctx) }); err != nil {
			return fmt.Errorf("cron.AddFunc(%s): %w", spec, err)
		}
		s.log.LogInfof("scheduled daily scrape at %s", t)
	}

	s.cron.Start()
	s.log.LogInfof("cron started with %d entries", len(s.times))

	if s.runOnStart {
		go s.runScrape(ctx)
	}

	return nil
}

// Stop gracefully shuts down the scheduler, waiting for a running entry.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.log.LogInfo("cron stopped")
}

func (s *Scheduler) runScrape(ctx context.Context) {
	s.log.LogInfo("scheduled scrape starting")
	if _, err := s.worker.Run(ctx); err != nil {
		// Logged and absorbed: a failed scrape never takes the watcher down.
		s.log.LogError("scheduled scrape failed", err)
		return
	}
	s.log.LogInfo("scheduled scrape complete")
}

// cronSpec converts "HH:MM" to a standard 5-field daily cron spec.
func cronSpec(hhmm string) (string, error) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return "", fmt.Errorf("schedule time %q is not HH:MM: %w", hhmm, err)
	}
	return fmt.Sprintf("%d %d * * *", t.Minute(), t.Hour()), nil
}
