// Package dedup removes exact and near-duplicate items from the merged
// multi-source output. Sources overlap heavily: the same wire story shows up
// under slightly different headlines on several feeds, so URL identity alone
// is not enough for articles.
package dedup

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"

	"github.com/naijawatch/naijawatch/internal/normalize"
)

// titleSimilarityThreshold is the ratio above which two article titles are
// treated as the same story.
const titleSimilarityThreshold = 0.8

// Similarity is a Levenshtein ratio in [0,1]: (maxLen-distance)/maxLen over
// rune counts. Two empty strings are defined as identical (1.0).
func Similarity(a, b string) float64 {
	alen := utf8.RuneCountInString(a)
	blen := utf8.RuneCountInString(b)
	maxLen := alen
	if blen > maxLen {
		maxLen = blen
	}
	if maxLen == 0 {
		return 1.0
	}
	distance := levenshtein.ComputeDistance(a, b)
	return float64(maxLen-distance) / float64(maxLen)
}

// Articles drops exact URL duplicates and near-duplicate titles, keeping the
// earliest-inserted copy, then sorts newest first. Precedence is the input
// order (the concatenated per-source fetch results), not publish time.
func Articles(items []normalize.Article) []normalize.Article {
	seenURL := make(map[string]struct{}, len(items))
	keptTitles := make([]string, 0, len(items))
	out := make([]normalize.Article, 0, len(items))

	for _, it := range items {
		if _, ok := seenURL[it.URL]; ok {
			continue
		}

		title := strings.ToLower(strings.TrimSpace(it.Title))
		duplicate := false
		for _, earlier := range keptTitles {
			if Similarity(title, earlier) > titleSimilarityThreshold {
				duplicate = true
				break
			}
		}
		if duplicate {
			continue
		}

		seenURL[it.URL] = struct{}{}
		keptTitles = append(keptTitles, title)
		out = append(out, it)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PublishedAt.After(out[j].PublishedAt)
	})
	return out
}

// Videos drops duplicates by video ID or URL (either match collapses the
// pair), then sorts newest first. Title similarity is not applied to videos:
// distinct uploads routinely reuse near-identical headlines.
func Videos(items []normalize.Video) []normalize.Video {
	seenID := make(map[string]struct{}, len(items))
	seenURL := make(map[string]struct{}, len(items))
	out := make([]normalize.Video, 0, len(items))

	for _, it := range items {
		if _, ok := seenID[it.ID]; ok && it.ID != "" {
			continue
		}
		if _, ok := seenURL[it.URL]; ok && it.URL != "" {
			continue
		}
		if it.ID != "" {
			seenID[it.ID] = struct{}{}
		}
		if it.URL != "" {
			seenURL[it.URL] = struct{}{}
		}
		out = append(out, it)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PublishedAt.After(out[j].PublishedAt)
	})
	return out
}
