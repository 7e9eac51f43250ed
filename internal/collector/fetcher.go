package collector

import (
	"context"
	"time"
)

// RawItem is one loosely-structured record straight off a source, before
// normalization. Fields a source did not provide stay zero; PublishedAt is
// the zero time when the feed carried no usable date.
type RawItem struct {
	Title       string
	Link        string
	Description string
	Content     string
	PublishedAt time.Time
	ImageURL    string
	// SourceName overrides the fetcher name for sources that aggregate
	// multiple outlets (each NewsAPI article names its own outlet).
	SourceName string
	Author     string
	AuthorURL  string
	// Video-only fields.
	VideoID     string
	DurationSec int
}

// Fetcher abstracts one news source. Fetch returns the raw records inside
// the lookback window; a failing source returns an error and contributes
// nothing, it never takes the rest of a refresh down with it.
type Fetcher interface {
	Name() string
	Fetch(ctx context.Context, lookbackDays int) ([]RawItem, error)
}

// VideoFetcher abstracts one video source, same failure contract as Fetcher.
type VideoFetcher interface {
	Name() string
	FetchVideos(ctx context.Context, lookbackDays int) ([]RawItem, error)
}
