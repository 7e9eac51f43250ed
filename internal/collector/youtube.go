package collector

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/mmcdole/gofeed"
)

const (
	youtubeSearchURL     = "https://www.youtube.com/feeds/videos.xml?search_query="
	youtubeClientTimeout = 15 * time.Second
	youtubeConcurrency   = 4
)

// DefaultVideoQueries are the search feeds polled for security footage.
var DefaultVideoQueries = []string{
	"Nigeria security attack",
	"Nigeria bandits attack",
	"Nigeria fulani herdsmen",
	"Nigeria Boko Haram",
	"Nigeria terrorism",
	"Nigeria kidnapping",
	"Nigeria insecurity",
	"Nigeria violence",
}

var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/embed/)([^&\n?#]+)`),
	regexp.MustCompile(`youtube\.com/v/([^&\n?#]+)`),
}

// YouTubeFetcher polls YouTube search feeds (Atom with media extensions).
type YouTubeFetcher struct {
	Queries []string
}

func NewYouTubeFetcher() *YouTubeFetcher {
	return &YouTubeFetcher{Queries: DefaultVideoQueries}
}

func (y *YouTubeFetcher) Name() string {
	return "youtube"
}

func (y *YouTubeFetcher) FetchVideos(ctx context.Context, lookbackDays int) ([]RawItem, error) {
	log.Printf("youtube: fetching %d search feeds...", len(y.Queries))

	cutoff := time.Now().AddDate(0, 0, -lookbackDays)

	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		sem      = make(chan struct{}, youtubeConcurrency)
		perQuery = make([][]RawItem, len(y.Queries))
		failed   int
	)

	for i, q := range y.Queries {
		wg.Add(1)
		sem <- struct{}{}
		go func(idx int, query string) {
			defer wg.Done()
			defer func() { <-sem }()

			items, err := fetchSearchFeed(ctx, query, cutoff)
			if err != nil {
				log.Printf("youtube: fetch %q error: %v", query, err)
				mu.Lock()
				failed++
				mu.Unlock()
				return
			}
			mu.Lock()
			perQuery[idx] = items
			mu.Unlock()
		}(i, q)
	}
	wg.Wait()

	if failed == len(y.Queries) {
		return nil, errAllFeedsFailed
	}

	out := make([]RawItem, 0, 64)
	for _, items := range perQuery {
		out = append(out, items...)
	}
	return out, nil
}

func fetchSearchFeed(ctx context.Context, query string, cutoff time.Time) ([]RawItem, error) {
	parser := gofeed.NewParser()
	parser.Client = &http.Client{Timeout: youtubeClientTimeout}
	parser.UserAgent = rssUserAgent

	feed, err := parser.ParseURLWithContext(youtubeSearchURL+url.QueryEscape(query), ctx)
	if err != nil {
		return nil, err
	}

	items := make([]RawItem, 0, len(feed.Items))
	for _, it := range feed.Items {
		published := itemPublishedAt(it)
		if !published.IsZero() && published.Before(cutoff) {
			continue
		}

		videoID := ytExtension(it, "videoId")
		if videoID == "" {
			videoID = extractVideoID(it.Link)
		}

		thumbnail := mediaGroupAttr(it, "thumbnail", "url")
		if thumbnail == "" {
			id := videoID
			if id == "" {
				id = "default"
			}
			thumbnail = fmt.Sprintf("https://img.youtube.com/vi/%s/maxresdefault.jpg", id)
		}

		channelURL := ""
		if channelID := ytExtension(it, "channelId"); channelID != "" {
			channelURL = "https://www.youtube.com/channel/" + channelID
		}

		items = append(items, RawItem{
			Title:       strings.TrimSpace(it.Title),
			Link:        it.Link,
			Description: mediaGroupValue(it, "description"),
			PublishedAt: published,
			ImageURL:    thumbnail,
			Author:      itemAuthor(it),
			AuthorURL:   channelURL,
			VideoID:     videoID,
			DurationSec: mediaDurationSeconds(it),
		})
	}
	return items, nil
}

func extractVideoID(link string) string {
	for _, p := range videoIDPatterns {
		if m := p.FindStringSubmatch(link); m != nil {
			return m[1]
		}
	}
	return ""
}

// ytExtension reads a value from the yt: namespace (videoId, channelId).
func ytExtension(it *gofeed.Item, name string) string {
	exts, ok := it.Extensions["yt"]
	if !ok {
		return ""
	}
	for _, e := range exts[name] {
		if e.Value != "" {
			return e.Value
		}
	}
	return ""
}

// mediaGroupValue reads the text value of a child of media:group.
func mediaGroupValue(it *gofeed.Item, child string) string {
	for _, group := range it.Extensions["media"]["group"] {
		for _, e := range group.Children[child] {
			if e.Value != "" {
				return e.Value
			}
		}
	}
	return ""
}

// mediaGroupAttr reads an attribute of a child of media:group.
func mediaGroupAttr(it *gofeed.Item, child, attr string) string {
	for _, group := range it.Extensions["media"]["group"] {
		for _, e := range group.Children[child] {
			if v := e.Attrs[attr]; v != "" {
				return v
			}
		}
	}
	return ""
}

func mediaDurationSeconds(it *gofeed.Item) int {
	v := mediaGroupAttr(it, "content", "duration")
	if v == "" {
		return 0
	}
	seconds, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return seconds
}
