package main

import (
	"context"
	"encoding/json"
	"log"
	"os"

	"github.com/naijawatch/naijawatch/internal/collector"
	"github.com/naijawatch/naijawatch/internal/config"
	"github.com/naijawatch/naijawatch/internal/pipeline"
)

// One-shot pipeline run: fetch, process, and print the snapshot as JSON.
// Useful for cron-style batch use and for eyeballing source health.
func main() {
	// Log to stderr so the JSON on stdout stays clean.
	log.SetOutput(os.Stderr)

	cfg := config.Load()

	fetchers := []collector.Fetcher{
		collector.NewRSSFetcher(),
		collector.NewSaharaReportersFetcher(),
	}
	if cfg.NewsAPIKey != "" {
		fetchers = append(fetchers, collector.NewNewsAPIFetcher(cfg.NewsAPIKey))
	}
	videoFetchers := []collector.VideoFetcher{
		collector.NewYouTubeFetcher(),
	}

	ctrl := pipeline.New(fetchers, videoFetchers, nil, cfg.LookbackDays, cfg.RefreshInterval)
	snap := ctrl.Refresh(context.Background())

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		log.Fatalf("encode snapshot: %v", err)
	}

	if snap.Err != "" {
		os.Exit(1)
	}
}
