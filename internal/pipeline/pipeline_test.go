package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/naijawatch/naijawatch/internal/collector"
)

type stubFetcher struct {
	name  string
	items []collector.RawItem
	err   error
	panic bool
}

func (s *stubFetcher) Name() string { return s.name }

func (s *stubFetcher) Fetch(ctx context.Context, lookbackDays int) ([]collector.RawItem, error) {
	if s.panic {
		panic("stub fetcher exploded")
	}
	return s.items, s.err
}

type stubVideoFetcher struct {
	stubFetcher
}

func (s *stubVideoFetcher) FetchVideos(ctx context.Context, lookbackDays int) ([]collector.RawItem, error) {
	return s.Fetch(ctx, lookbackDays)
}

func rawArticle(title, link string) collector.RawItem {
	return collector.RawItem{
		Title:       title,
		Link:        link,
		Description: "Gunmen attack reported, several killed.",
		PublishedAt: time.Date(2026, 8, 14, 6, 0, 0, 0, time.UTC),
	}
}

func newTestController(fetchers []collector.Fetcher, videoFetchers []collector.VideoFetcher) *Controller {
	c := New(fetchers, videoFetchers, nil, 7, 24*time.Hour)
	c.fetchTimeout = time.Second
	return c
}

func TestRefreshPublishesSnapshot(t *testing.T) {
	f := &stubFetcher{name: "wire", items: []collector.RawItem{
		rawArticle("Bandits kill 12 in Zamfara village", "https://example.com/a"),
		rawArticle("Boko Haram raid repelled in Borno", "https://example.com/b"),
	}}

	c := newTestController([]collector.Fetcher{f}, nil)
	snap := c.Refresh(context.Background())

	if snap.Err != "" {
		t.Fatalf("unexpected error: %s", snap.Err)
	}
	if len(snap.Articles) != 2 {
		t.Fatalf("got %d articles, want 2", len(snap.Articles))
	}
	if len(snap.Incidents) != 2 {
		t.Fatalf("got %d incidents, want 2", len(snap.Incidents))
	}
	if c.Status() != StatusIdle {
		t.Fatalf("status = %s, want idle", c.Status())
	}
	if got := c.Snapshot(); got != snap {
		t.Fatal("published snapshot is not the returned one")
	}
}

func TestRefreshToleratesPartialFailure(t *testing.T) {
	good := &stubFetcher{name: "wire", items: []collector.RawItem{
		rawArticle("Kidnapping reported in Kaduna", "https://example.com/a"),
	}}
	bad := &stubFetcher{name: "broken", err: errors.New("boom")}
	panicky := &stubFetcher{name: "panicky", panic: true}

	c := newTestController([]collector.Fetcher{good, bad, panicky}, nil)
	snap := c.Refresh(context.Background())

	if snap.Err != "" {
		t.Fatalf("partial failure reported as total: %s", snap.Err)
	}
	if len(snap.Articles) != 1 {
		t.Fatalf("got %d articles, want 1", len(snap.Articles))
	}
	if c.Status() != StatusIdle {
		t.Fatalf("status = %s, want idle", c.Status())
	}
}

func TestRefreshTotalFailureKeepsPreviousData(t *testing.T) {
	good := &stubFetcher{name: "wire", items: []collector.RawItem{
		rawArticle("Bandits kill 12 in Zamfara village", "https://example.com/a"),
	}}

	c := newTestController([]collector.Fetcher{good}, nil)
	first := c.Refresh(context.Background())
	if first.Err != "" || len(first.Articles) != 1 {
		t.Fatalf("setup refresh failed: %+v", first)
	}

	good.err = errors.New("network down")
	second := c.Refresh(context.Background())

	if second.Err == "" {
		t.Fatal("total failure did not set the snapshot error")
	}
	if len(second.Articles) != 1 {
		t.Fatalf("previous articles lost on total failure: %d", len(second.Articles))
	}
	if c.Status() != StatusFailed {
		t.Fatalf("status = %s, want failed", c.Status())
	}

	// A subsequent success clears the error again.
	good.err = nil
	third := c.Refresh(context.Background())
	if third.Err != "" {
		t.Fatalf("recovered refresh still carries error: %s", third.Err)
	}
	if c.Status() != StatusIdle {
		t.Fatalf("status = %s, want idle", c.Status())
	}
}

func TestMaybeRefreshHonorsInterval(t *testing.T) {
	f := &stubFetcher{name: "wire", items: []collector.RawItem{
		rawArticle("Bandits kill 12 in Zamfara village", "https://example.com/a"),
	}}

	c := newTestController([]collector.Fetcher{f}, nil)

	current := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return current }

	// First call: nothing has run yet, so it fires.
	c.MaybeRefresh(context.Background())
	if c.LastRefresh() != current {
		t.Fatalf("lastRefresh = %v, want %v", c.LastRefresh(), current)
	}

	// An hour later the interval has not elapsed.
	firstRun := current
	current = current.Add(time.Hour)
	c.MaybeRefresh(context.Background())
	if c.LastRefresh() != firstRun {
		t.Fatal("refresh fired before the interval elapsed")
	}

	// Past the interval it fires on the next tick, even when the tick lands
	// late: the schedule self-corrects instead of drifting.
	current = firstRun.Add(25 * time.Hour)
	c.MaybeRefresh(context.Background())
	if c.LastRefresh() != current {
		t.Fatal("overdue refresh did not fire")
	}
}

func TestManualRefreshResetsInterval(t *testing.T) {
	f := &stubFetcher{name: "wire", items: []collector.RawItem{
		rawArticle("Bandits kill 12 in Zamfara village", "https://example.com/a"),
	}}

	c := newTestController([]collector.Fetcher{f}, nil)

	current := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return current }

	c.Refresh(context.Background())
	manualAt := current.Add(20 * time.Hour)
	current = manualAt
	c.Refresh(context.Background())

	// 23h after the manual run is only 43h after the first: without the
	// reset this would be due, with it it is not.
	current = manualAt.Add(23 * time.Hour)
	c.MaybeRefresh(context.Background())
	if c.LastRefresh() != manualAt {
		t.Fatal("manual refresh did not reset the interval timer")
	}

	current = manualAt.Add(24 * time.Hour)
	c.MaybeRefresh(context.Background())
	if c.LastRefresh() != current {
		t.Fatal("refresh did not fire a full interval after the manual run")
	}
}

func TestRefreshDedupAcrossSources(t *testing.T) {
	// Same story URL from two sources: the fetcher declared first wins,
	// regardless of goroutine completion order.
	first := &stubFetcher{name: "first-wire", items: []collector.RawItem{
		rawArticle("Bandits kill 12 in Zamfara village", "https://example.com/shared"),
	}}
	second := &stubFetcher{name: "second-wire", items: []collector.RawItem{
		rawArticle("Zamfara attack leaves dozens dead, troops deployed", "https://example.com/shared"),
	}}

	c := newTestController([]collector.Fetcher{first, second}, nil)
	for i := 0; i < 20; i++ {
		snap := c.Refresh(context.Background())
		if len(snap.Articles) != 1 {
			t.Fatalf("got %d articles, want 1", len(snap.Articles))
		}
		if snap.Articles[0].Source.Name != "first-wire" {
			t.Fatalf("kept %q, want the first-declared source", snap.Articles[0].Source.Name)
		}
	}
}

func TestRefreshCapsVideos(t *testing.T) {
	items := make([]collector.RawItem, maxVideos+20)
	for i := range items {
		items[i] = collector.RawItem{
			Title:       "Attack footage from the north",
			Link:        "https://youtu.be/vid" + string(rune('a'+i%26)) + string(rune('a'+i/26)),
			VideoID:     "vid" + string(rune('a'+i%26)) + string(rune('a'+i/26)),
			Description: "Raid aftermath.",
			PublishedAt: time.Date(2026, 8, 14, 6, 0, 0, 0, time.UTC),
		}
	}
	vf := &stubVideoFetcher{stubFetcher{name: "videos", items: items}}

	c := newTestController(nil, []collector.VideoFetcher{vf})
	snap := c.Refresh(context.Background())

	if snap.Err != "" {
		t.Fatalf("unexpected error: %s", snap.Err)
	}
	if len(snap.Videos) != maxVideos {
		t.Fatalf("got %d videos, want the %d cap", len(snap.Videos), maxVideos)
	}
}

func TestSeedOnlyBeforeFirstRefresh(t *testing.T) {
	f := &stubFetcher{name: "wire", items: []collector.RawItem{
		rawArticle("Bandits kill 12 in Zamfara village", "https://example.com/a"),
	}}
	c := newTestController([]collector.Fetcher{f}, nil)

	cached := &Snapshot{UpdatedAt: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)}
	c.Seed(cached)
	if c.Snapshot() != cached {
		t.Fatal("seed before first refresh was ignored")
	}

	fresh := c.Refresh(context.Background())
	c.Seed(&Snapshot{UpdatedAt: time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC)})
	if c.Snapshot() != fresh {
		t.Fatal("seed overwrote a refreshed snapshot")
	}
}
