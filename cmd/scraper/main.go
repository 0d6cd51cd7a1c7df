// Command scraper runs a single scrape cycle: fetch the careers page,
// detect new postings, persist them and notify. It also exposes the
// operator reads: -recent prints the postings first seen inside a lookback
// window, -renotify re-delivers them (the recovery path after a crash
// between persistence and notification).
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/AngelaZQ1/salesforce-job-scraper/internal/config"
	"github.com/AngelaZQ1/salesforce-job-scraper/internal/db"
	"github.com/AngelaZQ1/salesforce-job-scraper/internal/detect"
	"github.com/AngelaZQ1/salesforce-job-scraper/internal/extract"
	"github.com/AngelaZQ1/salesforce-job-scraper/internal/logger"
	"github.com/AngelaZQ1/salesforce-job-scraper/internal/notify"
	"github.com/AngelaZQ1/salesforce-job-scraper/internal/runlock"
	"github.com/AngelaZQ1/salesforce-job-scraper/internal/scraper"
	"github.com/AngelaZQ1/salesforce-job-scraper/internal/store"
)

func main() {
	recent := flag.Duration("recent", 0, "print postings first seen inside this window and exit")
	renotify := flag.Bool("renotify", false, "re-deliver postings from the lookback window and exit")
	flag.Parse()

	log := logger.New("scraper")

	cfg, err := config.Load()
	if err != nil {
		log.LogFatal("config", err)
	}

	ctx := context.Background()

	pool, err := db.NewPostgresPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.LogFatal("postgres", err)
	}
	defer pool.Close()

	if err := store.InitSchema(ctx, pool); err != nil {
		log.LogFatal("schema", err)
	}

	postings := store.NewPostingStore(pool)
	runs := store.NewRunLog(pool)

	notifier, err := notify.FromConfig(cfg)
	if err != nil {
		log.LogFatal("notifier", err)
	}

	switch {
	case *recent > 0:
		printRecent(ctx, postings, *recent, log)
		return
	case *renotify:
		redeliver(ctx, postings, notifier, cfg.Lookback, log)
		return
	}

	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		log.LogFatal("redis", err)
	}
	defer rdb.Close()

	fetcher := extract.NewPageFetcher(cfg.CareersURL, cfg.SearchTeam, cfg.SearchType, cfg.PageSize, cfg.HTTPTimeout)
	source := extract.NewCareersSource(fetcher, extract.NewCareersExtractor(cfg.SearchTeam, cfg.TitleFilters))
	detector := detect.New(postings, runs)
	lock := runlock.New(rdb, cfg.LockTTL)

	worker := scraper.NewWorker(source, detector, runs, notifier, lock, cfg.ExcludeTerms)

	if _, err := worker.Run(ctx); err != nil {
		// A fetch failure only fails the invocation when nothing has ever
		// worked; a glitch in an established deployment is a logged no-op.
		ok, checkErr := runs.HasSuccessfulRun(ctx)
		if checkErr != nil {
			log.LogError("run history check failed", checkErr)
		}
		if !ok {
			os.Exit(1)
		}
	}
}

func printRecent(ctx context.Context, postings *store.PostingStore, window time.Duration, log *logger.Logger) {
	recs, err := postings.ObservedSince(ctx, time.Now().Add(-window))
	if err != nil {
		log.LogFatal("recent postings query", err)
	}
	fmt.Printf("%d posting(s) first seen in the last %s\n", len(recs), window)
	for _, r := range recs {
		fmt.Printf("  %s  %s - %s\n", r.FirstSeen.Format(time.RFC3339), r.Title, r.Location)
	}
}

func redeliver(ctx context.Context, postings *store.PostingStore, notifier notify.Notifier, window time.Duration, log *logger.Logger) {
	recs, err := postings.ObservedSince(ctx, time.Now().Add(-window))
	if err != nil {
		log.LogFatal("recent postings query", err)
	}
	if len(recs) == 0 {
		log.LogInfo("nothing to re-deliver")
		return
	}
	if err := notifier.Notify(ctx, recs); err != nil {
		log.LogFatal("re-delivery failed", err)
	}
	log.LogInfof("re-delivered %d posting(s)", len(recs))
}
