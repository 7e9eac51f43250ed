// Package classify derives structured, geolocated incidents from normalized
// articles via keyword and pattern matching. The extraction is heuristic and
// best-effort: an article that cannot be placed in a state yields no
// incident at all, everything else degrades to defaults.
package classify

import (
	"crypto/sha1"
	"encoding/hex"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/naijawatch/naijawatch/internal/normalize"
)

// Casualty counts outside (0, 10000) are treated as noise: zero-match
// artifacts below, years and population figures above.
const maxPlausibleCasualties = 10000

// Location is the state-level placement of an incident.
type Location struct {
	State       string     `json:"state"`
	Coordinates [2]float64 `json:"coordinates"` // latitude, longitude
}

// Casualties holds the extracted death toll and its religious split.
type Casualties struct {
	Total      int `json:"total"`
	Christians int `json:"christians"`
	Muslims    int `json:"muslims"`
}

// Buildings counts destroyed places of worship.
type Buildings struct {
	Churches int `json:"churches"`
	Mosques  int `json:"mosques"`
}

// Incident is one structured security event derived from a single article.
type Incident struct {
	ID                 string     `json:"id"`
	Title              string     `json:"title"`
	Location           Location   `json:"location"`
	Type               Type       `json:"type"`
	Date               time.Time  `json:"date"`
	Casualties         Casualties `json:"casualties"`
	BuildingsDestroyed Buildings  `json:"buildingsDestroyed"`
	Source             string     `json:"source"`
	URL                string     `json:"url"`
}

var casualtyPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(\d+)\s*(?:killed|dead|died|death|casualties|casualty)\b`),
	regexp.MustCompile(`\b(?:killed|killing|dead|died|death|casualties|casualty)\s*(?:were|was)?\s*(\d+)\b`),
	regexp.MustCompile(`\b(\d+)\s*(?:people|persons|individuals|victims)\s*(?:killed|dead|died)\b`),
}

// Building counts are small, so spelled-out numbers ("two churches") are as
// common as digits in headlines and both forms are captured.
const smallNumberWords = `one|two|three|four|five|six|seven|eight|nine|ten|eleven|twelve`

var (
	churchCountPattern = regexp.MustCompile(`\b(\d+|` + smallNumberWords + `)\s*(?:church|churches)`)
	mosqueCountPattern = regexp.MustCompile(`\b(\d+|` + smallNumberWords + `)\s*(?:mosque|mosques)`)
)

var numberWords = map[string]int{
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5, "six": 6,
	"seven": 7, "eight": 8, "nine": 9, "ten": 10, "eleven": 11, "twelve": 12,
}

// FromArticle extracts an Incident, or nil when the article names no
// Nigerian state. Output depends only on the article text: same input,
// same incident, every invocation.
func FromArticle(a normalize.Article) *Incident {
	text := strings.ToLower(a.Title + " " + a.Description + " " + a.Content)

	location := matchLocation(text)
	if location == nil {
		return nil
	}

	return &Incident{
		ID:                 incidentID(a.URL),
		Title:              a.Title,
		Location:           *location,
		Type:               classifyType(text),
		Date:               a.PublishedAt,
		Casualties:         extractCasualties(text),
		BuildingsDestroyed: extractBuildings(text),
		Source:             a.Source.Name,
		URL:                a.URL,
	}
}

// FromArticles runs extraction over a whole article set, dropping the
// unlocatable ones.
func FromArticles(articles []normalize.Article) []Incident {
	incidents := make([]Incident, 0, len(articles))
	for _, a := range articles {
		if inc := FromArticle(a); inc != nil {
			incidents = append(incidents, *inc)
		}
	}
	return incidents
}

// matchLocation returns the first state whose name (or its
// whitespace-stripped form, for "Akwa Ibom"-style names) appears in the
// text as a substring.
func matchLocation(text string) *Location {
	for _, st := range nigeriaStates {
		name := strings.ToLower(st.Name)
		if strings.Contains(text, name) || strings.Contains(text, strings.ReplaceAll(name, " ", "")) {
			return &Location{State: st.Name, Coordinates: [2]float64{st.Lat, st.Lng}}
		}
	}
	return nil
}

func classifyType(text string) Type {
	for _, entry := range incidentTypes {
		for _, kw := range entry.Keywords {
			if strings.Contains(text, kw) {
				return entry.Type
			}
		}
	}
	return TypeUnknown
}

// extractCasualties collects every plausible death count mentioned and takes
// the maximum rather than the sum: the same toll is usually repeated in the
// headline, the lede, and the body, and summing would compound it.
func extractCasualties(text string) Casualties {
	total := 0
	for _, pattern := range casualtyPatterns {
		for _, match := range pattern.FindAllStringSubmatch(text, -1) {
			n, err := strconv.Atoi(match[1])
			if err != nil {
				continue
			}
			if n <= 0 || n >= maxPlausibleCasualties {
				continue
			}
			if n > total {
				total = n
			}
		}
	}

	var christians, muslims int
	christianSignal := containsAny(text, christianKeywords)
	muslimSignal := containsAny(text, muslimKeywords)

	switch {
	case total == 0:
	case christianSignal && !muslimSignal:
		christians = total
	case muslimSignal && !christianSignal:
		muslims = total
	default:
		// Both sides signaled, or neither: split evenly rather than guess.
		christians = total / 2
		muslims = total - total/2
	}

	return Casualties{Total: total, Christians: christians, Muslims: muslims}
}

// extractBuildings reports a destroyed worship building only when a building
// keyword and a destruction verb both appear; the count defaults to 1 unless
// the text names an explicit number.
func extractBuildings(text string) Buildings {
	destruction := containsAny(text, destructionKeywords)

	var b Buildings
	if destruction && containsAny(text, churchKeywords) {
		b.Churches = countOrOne(churchCountPattern, text)
	}
	if destruction && containsAny(text, mosqueKeywords) {
		b.Mosques = countOrOne(mosqueCountPattern, text)
	}
	return b
}

func countOrOne(pattern *regexp.Regexp, text string) int {
	match := pattern.FindStringSubmatch(text)
	if match == nil {
		return 1
	}
	if n, ok := numberWords[match[1]]; ok {
		return n
	}
	n, err := strconv.Atoi(match[1])
	if err != nil || n <= 0 {
		return 1
	}
	return n
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// incidentID hashes the source URL so the same article re-derives the same
// incident within a run (and across runs, which is stronger than needed).
func incidentID(url string) string {
	h := sha1.Sum([]byte(url))
	return "incident-" + hex.EncodeToString(h[:])[:12]
}
