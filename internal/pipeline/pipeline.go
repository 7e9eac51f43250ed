// Package pipeline orchestrates one full ingestion pass — fetch, normalize,
// dedup, classify, aggregate — and owns the published snapshot plus the
// daily refresh schedule.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/naijawatch/naijawatch/internal/classify"
	"github.com/naijawatch/naijawatch/internal/collector"
	"github.com/naijawatch/naijawatch/internal/dedup"
	"github.com/naijawatch/naijawatch/internal/normalize"
	"github.com/naijawatch/naijawatch/internal/stats"
	"github.com/naijawatch/naijawatch/internal/storage"
)

// Status is the coarse lifecycle of the controller, mostly for /health.
type Status string

const (
	StatusIdle       Status = "idle"
	StatusFetching   Status = "fetching"
	StatusProcessing Status = "processing"
	StatusFailed     Status = "failed"
)

const (
	// fetchTimeout bounds one source; a slow feed is a failed feed.
	defaultFetchTimeout = 12 * time.Second
	// maxVideos caps the published video feed to the most recent uploads.
	maxVideos = 50
)

// Snapshot is one atomically-published pipeline result. Err is set only when
// no source could be combined into a usable result.
type Snapshot struct {
	Articles   []normalize.Article `json:"articles"`
	Videos     []normalize.Video   `json:"videos"`
	Incidents  []classify.Incident `json:"incidents"`
	Statistics stats.Statistics    `json:"statistics"`
	Err        string              `json:"error,omitempty"`
	UpdatedAt  time.Time           `json:"updatedAt"`
}

// Controller runs refreshes and hands out the latest snapshot. Concurrent
// refreshes are allowed and race to publish; the snapshot swap itself is the
// only synchronized step, so readers always see one complete triple.
type Controller struct {
	fetchers      []collector.Fetcher
	videoFetchers []collector.VideoFetcher
	cache         *storage.Cache

	lookbackDays int
	interval     time.Duration
	fetchTimeout time.Duration
	now          func() time.Time

	mu          sync.Mutex
	snapshot    *Snapshot
	status      Status
	lastRefresh time.Time
}

func New(fetchers []collector.Fetcher, videoFetchers []collector.VideoFetcher, cache *storage.Cache, lookbackDays int, interval time.Duration) *Controller {
	return &Controller{
		fetchers:      fetchers,
		videoFetchers: videoFetchers,
		cache:         cache,
		lookbackDays:  lookbackDays,
		interval:      interval,
		fetchTimeout:  defaultFetchTimeout,
		now:           time.Now,
		snapshot:      &Snapshot{},
		status:        StatusIdle,
	}
}

// Snapshot returns the latest published snapshot. The returned value is
// never mutated after publication.
func (c *Controller) Snapshot() *Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot
}

// Status reports the controller lifecycle state.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// LastRefresh is the start time of the most recent refresh attempt.
func (c *Controller) LastRefresh() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastRefresh
}

// Seed installs a previously cached snapshot, but only while no refresh has
// published anything yet.
func (c *Controller) Seed(snap *Snapshot) {
	if snap == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.lastRefresh.IsZero() && c.snapshot != nil && c.snapshot.UpdatedAt.IsZero() {
		c.snapshot = snap
	}
}

// MaybeRefresh runs a refresh when at least one interval has elapsed since
// the last attempt. Called from a periodic tick, this yields the
// drift-corrected daily schedule: an overdue refresh fires on the next tick
// instead of waiting out a fresh interval.
func (c *Controller) MaybeRefresh(ctx context.Context) {
	c.mu.Lock()
	due := c.lastRefresh.IsZero() || c.now().Sub(c.lastRefresh) >= c.interval
	c.mu.Unlock()

	if due {
		c.Refresh(ctx)
	}
}

// Refresh runs one full pipeline pass and publishes the result. Manual
// callers invoke it directly, which also resets the interval timer. Always
// returns the snapshot that ended up published by this run.
func (c *Controller) Refresh(ctx context.Context) *Snapshot {
	started := c.now()

	c.mu.Lock()
	c.lastRefresh = started
	c.status = StatusFetching
	c.mu.Unlock()

	log.Println("pipeline: refresh started")

	articleBatches, articleFails := c.fetchArticles(ctx)
	videoBatches, videoFails := c.fetchVideos(ctx)

	totalSources := len(c.fetchers) + len(c.videoFetchers)
	if totalSources > 0 && articleFails+videoFails == totalSources {
		return c.failRefresh("all sources failed; keeping previous data")
	}

	c.mu.Lock()
	c.status = StatusProcessing
	c.mu.Unlock()

	snap, err := c.process(articleBatches, videoBatches)
	if err != nil {
		return c.failRefresh(err.Error())
	}

	c.mu.Lock()
	c.snapshot = snap
	c.status = StatusIdle
	c.mu.Unlock()

	if data, err := json.Marshal(snap); err == nil {
		c.cache.SaveSnapshot(ctx, data)
	}

	log.Printf("pipeline: refresh done, articles=%d videos=%d incidents=%d failed_sources=%d",
		len(snap.Articles), len(snap.Videos), len(snap.Incidents), articleFails+videoFails)
	return snap
}

// sourceBatch keeps a source's items tied to its name so normalization can
// attribute them, and preserves fetcher declaration order for dedup
// precedence regardless of which goroutine finished first.
type sourceBatch struct {
	source string
	items  []collector.RawItem
}

func (c *Controller) fetchArticles(ctx context.Context) ([]sourceBatch, int) {
	batches := make([]sourceBatch, len(c.fetchers))
	fails := 0

	var mu sync.Mutex
	var wg sync.WaitGroup
	for i, f := range c.fetchers {
		wg.Add(1)
		go func(idx int, fetcher collector.Fetcher) {
			defer wg.Done()
			items, err := c.fetchOne(ctx, fetcher.Name(), func(fctx context.Context) ([]collector.RawItem, error) {
				return fetcher.Fetch(fctx, c.lookbackDays)
			})
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				fails++
				return
			}
			batches[idx] = sourceBatch{source: fetcher.Name(), items: items}
		}(i, f)
	}
	wg.Wait()
	return batches, fails
}

func (c *Controller) fetchVideos(ctx context.Context) ([]sourceBatch, int) {
	batches := make([]sourceBatch, len(c.videoFetchers))
	fails := 0

	var mu sync.Mutex
	var wg sync.WaitGroup
	for i, f := range c.videoFetchers {
		wg.Add(1)
		go func(idx int, fetcher collector.VideoFetcher) {
			defer wg.Done()
			items, err := c.fetchOne(ctx, fetcher.Name(), func(fctx context.Context) ([]collector.RawItem, error) {
				return fetcher.FetchVideos(fctx, c.lookbackDays)
			})
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				fails++
				return
			}
			batches[idx] = sourceBatch{source: fetcher.Name(), items: items}
		}(i, f)
	}
	wg.Wait()
	return batches, fails
}

// fetchOne isolates a single source: timeout, error, or panic in one adapter
// costs only that adapter's contribution.
func (c *Controller) fetchOne(ctx context.Context, name string, fetch func(context.Context) ([]collector.RawItem, error)) (items []collector.RawItem, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("pipeline: source %s panicked: %v", name, r)
			items, err = nil, fmt.Errorf("source %s panicked", name)
		}
	}()

	fctx, cancel := context.WithTimeout(ctx, c.fetchTimeout)
	defer cancel()

	items, err = fetch(fctx)
	if err != nil {
		log.Printf("pipeline: fetch %s error: %v", name, err)
		return nil, err
	}
	log.Printf("pipeline: fetch %s got %d items", name, len(items))
	return items, nil
}

// process runs the local stages over the fetched batches. Errors here are
// outside the per-source isolation boundary and count as total failure.
func (c *Controller) process(articleBatches, videoBatches []sourceBatch) (snap *Snapshot, err error) {
	defer func() {
		if r := recover(); r != nil {
			snap, err = nil, fmt.Errorf("pipeline failure: %v", r)
		}
	}()

	now := c.now()

	var articles []normalize.Article
	for _, batch := range articleBatches {
		for _, it := range batch.items {
			if a := normalize.ToArticle(it, batch.source, now); a != nil {
				articles = append(articles, *a)
			}
		}
	}
	articles = dedup.Articles(articles)

	var videos []normalize.Video
	for _, batch := range videoBatches {
		for _, it := range batch.items {
			if v := normalize.ToVideo(it, now); v != nil {
				videos = append(videos, *v)
			}
		}
	}
	videos = dedup.Videos(videos)
	if len(videos) > maxVideos {
		videos = videos[:maxVideos]
	}

	incidents := classify.FromArticles(articles)

	return &Snapshot{
		Articles:   articles,
		Videos:     videos,
		Incidents:  incidents,
		Statistics: stats.Aggregate(incidents, now),
		UpdatedAt:  now,
	}, nil
}

// failRefresh publishes a copy of the previous snapshot carrying the error
// string, so readers keep the last good data but see that the refresh died.
func (c *Controller) failRefresh(msg string) *Snapshot {
	log.Printf("pipeline: refresh failed: %s", msg)

	c.mu.Lock()
	defer c.mu.Unlock()

	failed := &Snapshot{}
	if c.snapshot != nil {
		copied := *c.snapshot
		failed = &copied
	}
	failed.Err = msg
	c.snapshot = failed
	c.status = StatusFailed
	return failed
}
