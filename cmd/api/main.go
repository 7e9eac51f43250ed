package main

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"

	"github.com/naijawatch/naijawatch/internal/api"
	"github.com/naijawatch/naijawatch/internal/collector"
	"github.com/naijawatch/naijawatch/internal/config"
	"github.com/naijawatch/naijawatch/internal/pipeline"
	"github.com/naijawatch/naijawatch/internal/storage"
)

func main() {
	cfg := config.Load()

	cache := storage.Open(cfg.RedisAddr)

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

	ctrl := pipeline.New(fetchers, videoFetchers, cache, cfg.LookbackDays, cfg.RefreshInterval)

	// Serve the last cached dataset until the first refresh lands.
	if data := cache.LoadSnapshot(context.Background()); data != nil {
		var snap pipeline.Snapshot
		if err := json.Unmarshal(data, &snap); err != nil {
			log.Printf("warn: decode cached snapshot: %v", err)
		} else {
			ctrl.Seed(&snap)
			log.Printf("seeded snapshot from cache (updated %s)", snap.UpdatedAt)
		}
	}

	// Delay the first refresh so startup is not stuck behind slow feeds.
	const startupDelay = 15 * time.Second
	time.AfterFunc(startupDelay, func() {
		ctrl.Refresh(context.Background())
	})

	// The cron tick only asks whether a refresh is due; the controller owns
	// the daily interval and its drift correction, and manual refreshes
	// reset it.
	cr := cron.New()
	if _, err := cr.AddFunc(cfg.RefreshCronSpec, func() {
		ctrl.MaybeRefresh(context.Background())
	}); err != nil {
		log.Fatalf("init refresh schedule failed: %v", err)
	}
	cr.Start()

	r := gin.Default()
	apiServer := api.NewServer(ctrl)
	apiServer.RegisterRoutes(r)

	addr := ":" + cfg.AppPort
	log.Printf("starting api server at %s ...", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server exit: %v", err)
	}
}
