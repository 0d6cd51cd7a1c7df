// Command watcher is the long-lived daemon: it schedules scrape runs at the
// configured daily times and keeps running until interrupted.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/AngelaZQ1/salesforce-job-scraper/internal/config"
	"github.com/AngelaZQ1/salesforce-job-scraper/internal/db"
	"github.com/AngelaZQ1/salesforce-job-scraper/internal/detect"
	"github.com/AngelaZQ1/salesforce-job-scraper/internal/extract"
	"github.com/AngelaZQ1/salesforce-job-scraper/internal/logger"
	"github.com/AngelaZQ1/salesforce-job-scraper/internal/notify"
	"github.com/AngelaZQ1/salesforce-job-scraper/internal/runlock"
	"github.com/AngelaZQ1/salesforce-job-scraper/internal/scheduler"
	"github.com/AngelaZQ1/salesforce-job-scraper/internal/scraper"
	"github.com/AngelaZQ1/salesforce-job-scraper/internal/store"
)

func main() {
	log := logger.New("watcher")

	cfg, err := config.Load()
	if err != nil {
		log.LogFatal("config", err)
	}

	if !cfg.ScheduleEnabled {
		log.LogWarn("scheduler is disabled in config")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := db.NewPostgresPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.LogFatal("postgres", err)
	}
	defer pool.Close()

	if err := store.InitSchema(ctx, pool); err != nil {
		log.LogFatal("schema", err)
	}

	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		log.LogFatal("redis", err)
	}
	defer rdb.Close()

	postings := store.NewPostingStore(pool)
	runs := store.NewRunLog(pool)

	notifier, err := notify.FromConfig(cfg)
	if err != nil {
		log.LogFatal("notifier", err)
	}

	fetcher := extract.NewPageFetcher(cfg.CareersURL, cfg.SearchTeam, cfg.SearchType, cfg.PageSize, cfg.HTTPTimeout)
	source := extract.NewCareersSource(fetcher, extract.NewCareersExtractor(cfg.SearchTeam, cfg.TitleFilters))
	detector := detect.New(postings, runs)
	lock := runlock.New(rdb, cfg.LockTTL)

	worker := scraper.NewWorker(source, detector, runs, notifier, lock, cfg.ExcludeTerms)

	sched := scheduler.New(worker, cfg.ScheduleTimes, cfg.RunOnStart)
	if err := sched.Start(ctx); err != nil {
		log.LogFatal("scheduler start", err)
	}

	log.LogInfo("watcher started, press Ctrl+C to stop")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.LogInfo("shutting down...")
	cancel()
	sched.Stop()
	log.LogInfo("shutdown complete")
}
