package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"
)

const (
	newsAPIBaseURL       = "https://newsapi.org/v2/everything"
	newsAPIClientTimeout = 10 * time.Second
	newsAPIMaxBodyBytes  = 4 << 20 // 4MB
	newsAPIPageSize      = 100
	newsAPIWindowDays    = 7

	newsAPIQuery = "Nigeria AND (security OR insecurity OR attack OR violence OR bandits OR banditry OR fulani herdsmen OR terrorism OR kidnapping OR insurgency OR Boko Haram OR ISWAP OR killing OR massacre OR crisis OR conflict)"
)

// NewsAPIFetcher queries the NewsAPI keyword search endpoint. Only
// constructed when an API key is configured.
type NewsAPIFetcher struct {
	APIKey string

	// now is swappable for tests; zero value uses the wall clock.
	now func() time.Time
}

func NewNewsAPIFetcher(apiKey string) *NewsAPIFetcher {
	return &NewsAPIFetcher{APIKey: apiKey, now: time.Now}
}

func (n *NewsAPIFetcher) Name() string {
	return "newsapi"
}

type newsAPIResponse struct {
	Status       string           `json:"status"`
	TotalResults int              `json:"totalResults"`
	Message      string           `json:"message"`
	Articles     []newsAPIArticle `json:"articles"`
}

type newsAPIArticle struct {
	Source struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"source"`
	Author      string `json:"author"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	URLToImage  string `json:"urlToImage"`
	PublishedAt string `json:"publishedAt"`
	Content     string `json:"content"`
}

func (n *NewsAPIFetcher) Fetch(ctx context.Context, lookbackDays int) ([]RawItem, error) {
	log.Println("newsapi: fetching keyword search...")

	target := n.now()
	from := target.AddDate(0, 0, -newsAPIWindowDays)

	params := url.Values{}
	params.Set("q", newsAPIQuery)
	params.Set("language", "en")
	params.Set("from", from.Format("2006-01-02"))
	params.Set("to", target.Format("2006-01-02"))
	params.Set("sortBy", "publishedAt")
	params.Set("pageSize", fmt.Sprint(newsAPIPageSize))
	params.Set("apiKey", n.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, newsAPIBaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("newsapi: build request: %w", err)
	}

	client := &http.Client{Timeout: newsAPIClientTimeout}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("newsapi: fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, newsAPIMaxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("newsapi: read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, newsAPIStatusError(resp.StatusCode, body)
	}

	var decoded newsAPIResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("newsapi: unmarshal: %w", err)
	}
	if decoded.Status != "ok" {
		return nil, fmt.Errorf("newsapi: response status %q: %s", decoded.Status, decoded.Message)
	}

	items := make([]RawItem, 0, len(decoded.Articles))
	for _, a := range decoded.Articles {
		if a.Title == "" || a.URL == "" {
			continue
		}
		published, _ := time.Parse(time.RFC3339, a.PublishedAt)
		// Keep articles inside the trailing 7-day window only; anything
		// dated in the future relative to the request is dropped too.
		if !published.IsZero() {
			days := int(target.Sub(published).Hours() / 24)
			if days < 0 || days > newsAPIWindowDays {
				continue
			}
		}
		items = append(items, RawItem{
			Title:       a.Title,
			Link:        a.URL,
			Description: a.Description,
			Content:     a.Content,
			PublishedAt: published,
			ImageURL:    a.URLToImage,
			SourceName:  a.Source.Name,
			Author:      a.Author,
		})
	}
	return items, nil
}

func newsAPIStatusError(code int, body []byte) error {
	switch code {
	case http.StatusTooManyRequests:
		return fmt.Errorf("newsapi: rate limit exceeded")
	case http.StatusUnauthorized:
		return fmt.Errorf("newsapi: invalid API key")
	case http.StatusBadRequest:
		var decoded newsAPIResponse
		if err := json.Unmarshal(body, &decoded); err == nil && decoded.Message != "" {
			return fmt.Errorf("newsapi: bad request: %s", decoded.Message)
		}
		return fmt.Errorf("newsapi: bad request")
	default:
		return fmt.Errorf("newsapi: unexpected status %d", code)
	}
}
