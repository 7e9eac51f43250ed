package collector

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/mmcdole/gofeed"
)

var errAllFeedsFailed = errors.New("all feeds failed")

const (
	rssClientTimeout = 10 * time.Second
	rssConcurrency   = 4
	rssUserAgent     = "NaijaWatchBot/1.0"
)

// Feed is one syndication feed of a Nigerian outlet.
type Feed struct {
	Name string
	URL  string
}

// DefaultFeeds covers the major Nigerian papers with working RSS feeds.
var DefaultFeeds = []Feed{
	{Name: "Premium Times", URL: "https://www.premiumtimesng.com/feed"},
	{Name: "Channels TV", URL: "https://www.channelstv.com/feed/"},
	{Name: "Vanguard", URL: "https://www.vanguardngr.com/feed/"},
	{Name: "Punch Nigeria", URL: "https://punchng.com/feed/"},
	{Name: "Daily Trust", URL: "https://dailytrust.com/feed/"},
	{Name: "The Guardian Nigeria", URL: "https://guardian.ng/feed/"},
	{Name: "This Day", URL: "https://www.thisdaylive.com/index.php/feed/"},
}

// RSSFetcher pulls all configured press feeds. A broken feed only loses its
// own items; the fetch as a whole errors only when every feed failed.
type RSSFetcher struct {
	Feeds []Feed
}

func NewRSSFetcher() *RSSFetcher {
	return &RSSFetcher{Feeds: DefaultFeeds}
}

func (r *RSSFetcher) Name() string {
	return "rss"
}

func (r *RSSFetcher) Fetch(ctx context.Context, lookbackDays int) ([]RawItem, error) {
	log.Printf("rss: fetching %d feeds...", len(r.Feeds))

	cutoff := time.Now().AddDate(0, 0, -lookbackDays)

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		sem     = make(chan struct{}, rssConcurrency)
		perFeed = make([][]RawItem, len(r.Feeds))
		failed  int
	)

	for i, f := range r.Feeds {
		wg.Add(1)
		sem <- struct{}{}
		go func(idx int, feed Feed) {
			defer wg.Done()
			defer func() { <-sem }()

			items, err := fetchFeed(ctx, feed, cutoff)
			if err != nil {
				log.Printf("rss: fetch %s error: %v", feed.Name, err)
				mu.Lock()
				failed++
				mu.Unlock()
				return
			}
			mu.Lock()
			perFeed[idx] = items
			mu.Unlock()
		}(i, f)
	}
	wg.Wait()

	if failed == len(r.Feeds) {
		return nil, errAllFeedsFailed
	}

	// Concatenate in feed declaration order so downstream dedup precedence
	// does not depend on which goroutine finished first.
	out := make([]RawItem, 0, 128)
	for _, items := range perFeed {
		out = append(out, items...)
	}
	return out, nil
}

func fetchFeed(ctx context.Context, f Feed, cutoff time.Time) ([]RawItem, error) {
	parser := gofeed.NewParser()
	parser.Client = &http.Client{Timeout: rssClientTimeout}
	parser.UserAgent = rssUserAgent

	feed, err := parser.ParseURLWithContext(f.URL, ctx)
	if err != nil {
		return nil, err
	}

	items := make([]RawItem, 0, len(feed.Items))
	for _, it := range feed.Items {
		published := itemPublishedAt(it)
		if !published.IsZero() && published.Before(cutoff) {
			continue
		}
		items = append(items, RawItem{
			Title:       strings.TrimSpace(it.Title),
			Link:        it.Link,
			Description: firstNonEmpty(it.Description, it.Content),
			Content:     firstNonEmpty(it.Content, it.Description),
			PublishedAt: published,
			ImageURL:    itemImageURL(it),
			SourceName:  f.Name,
			Author:      itemAuthor(it),
		})
	}
	return items, nil
}

// itemPublishedAt prefers the publish date and falls back to the update
// date; returns the zero time when the feed gave neither.
func itemPublishedAt(it *gofeed.Item) time.Time {
	if it.PublishedParsed != nil {
		return *it.PublishedParsed
	}
	if it.UpdatedParsed != nil {
		return *it.UpdatedParsed
	}
	return time.Time{}
}

func itemImageURL(it *gofeed.Item) string {
	if it.Image != nil && it.Image.URL != "" {
		return it.Image.URL
	}
	for _, enc := range it.Enclosures {
		if enc.URL != "" && strings.HasPrefix(enc.Type, "image/") {
			return enc.URL
		}
	}
	return ""
}

func itemAuthor(it *gofeed.Item) string {
	if len(it.Authors) > 0 && it.Authors[0] != nil {
		return it.Authors[0].Name
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
