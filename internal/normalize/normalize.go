// Package normalize converts loosely-structured source records into the
// canonical Article and Video shapes the rest of the pipeline works with.
// Items missing required fields, clearly non-English items, and items with
// no security relevance are dropped here, not flagged.
package normalize

import (
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/naijawatch/naijawatch/internal/collector"
)

const (
	maxDescriptionRunes      = 500
	maxContentRunes          = 2000
	maxVideoDescriptionRunes = 300
)

// Source identifies where an Article came from.
type Source struct {
	Name string `json:"name"`
	ID   string `json:"id,omitempty"`
}

// Article is one normalized news item. Title and URL are always non-empty.
type Article struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	PublishedAt time.Time `json:"publishedAt"`
	Source      Source    `json:"source"`
	Content     string    `json:"content,omitempty"`
}

// Video is one normalized video item. Parallel shape to Article; videos go
// through the same filters and dedup but are never classified.
type Video struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	Thumbnail   string    `json:"thumbnail"`
	PublishedAt time.Time `json:"publishedAt"`
	ChannelName string    `json:"channelName"`
	ChannelURL  string    `json:"channelUrl"`
	Duration    string    `json:"duration,omitempty"`
}

// ToArticle converts a raw record, returning nil when the item is rejected.
// sourceName is the owning adapter's label; a per-item SourceName (set by
// aggregating adapters) wins over it. now supplies the publish-date fallback.
func ToArticle(it collector.RawItem, sourceName string, now time.Time) *Article {
	title := strings.TrimSpace(it.Title)
	if title == "" || it.Link == "" {
		return nil
	}

	description := StripHTML(firstNonEmpty(it.Description, it.Content))
	if !passesFilters(title, description) {
		return nil
	}

	published := it.PublishedAt
	if published.IsZero() {
		published = now
	}

	name := it.SourceName
	if name == "" {
		name = sourceName
	}

	imageURL := it.ImageURL
	if imageURL == "" && it.Content != "" {
		imageURL = firstImageURL(it.Content)
	}

	return &Article{
		Title:       title,
		Description: truncateRunes(description, maxDescriptionRunes),
		URL:         it.Link,
		ImageURL:    imageURL,
		PublishedAt: published,
		Source:      Source{Name: name},
		Content:     truncateRunes(StripHTML(it.Content), maxContentRunes),
	}
}

// ToVideo converts a raw video record, returning nil when rejected.
func ToVideo(it collector.RawItem, now time.Time) *Video {
	title := strings.TrimSpace(it.Title)
	if title == "" || it.Link == "" {
		return nil
	}

	description := StripHTML(it.Description)
	if !passesFilters(title, description) {
		return nil
	}

	published := it.PublishedAt
	if published.IsZero() {
		published = now
	}

	id := it.VideoID
	if id == "" {
		id = it.Link
	}

	channel := it.Author
	if channel == "" {
		channel = "Unknown Channel"
	}
	channelURL := it.AuthorURL
	if channelURL == "" {
		channelURL = "#"
	}

	return &Video{
		ID:          id,
		Title:       title,
		Description: truncateRunes(description, maxVideoDescriptionRunes),
		URL:         it.Link,
		Thumbnail:   it.ImageURL,
		PublishedAt: published,
		ChannelName: channel,
		ChannelURL:  channelURL,
		Duration:    formatDuration(it.DurationSec),
	}
}

// passesFilters applies the language and topic filters to the combined
// lower-cased title+description text.
func passesFilters(title, description string) bool {
	text := strings.ToLower(title + " " + description)
	if !IsEnglish(text) {
		return false
	}
	return IsSecurityRelated(text)
}

// StripHTML renders markup down to its text content and collapses the
// surrounding whitespace.
func StripHTML(s string) string {
	if s == "" {
		return ""
	}
	if !strings.ContainsAny(s, "<&") {
		return strings.TrimSpace(s)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return strings.TrimSpace(s)
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}

// firstImageURL pulls the first <img src> out of an HTML fragment.
func firstImageURL(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	src, _ := doc.Find("img").First().Attr("src")
	return src
}

// truncateRunes caps a string at limit runes without splitting a rune.
func truncateRunes(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	rs := []rune(s)
	if len(rs) <= limit {
		return s
	}
	return string(rs[:limit])
}

// formatDuration renders seconds as m:ss, or h:mm:ss past the hour mark.
func formatDuration(seconds int) string {
	if seconds <= 0 {
		return ""
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
