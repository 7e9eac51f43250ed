package normalize

import (
	"strings"
	"testing"
	"time"

	"github.com/naijawatch/naijawatch/internal/collector"
)

var testNow = time.Date(2026, 8, 12, 10, 0, 0, 0, time.UTC)

func rawItem(title, description string) collector.RawItem {
	return collector.RawItem{
		Title:       title,
		Link:        "https://example.com/story",
		Description: description,
		PublishedAt: time.Date(2026, 8, 11, 8, 0, 0, 0, time.UTC),
	}
}

func TestToArticleRejectsMissingFields(t *testing.T) {
	it := rawItem("", "Bandits attack village")
	if a := ToArticle(it, "Test Wire", testNow); a != nil {
		t.Fatalf("empty title accepted: %+v", a)
	}

	it = rawItem("Bandits attack village", "")
	it.Link = ""
	if a := ToArticle(it, "Test Wire", testNow); a != nil {
		t.Fatalf("empty link accepted: %+v", a)
	}
}

func TestToArticleRejectsOffTopic(t *testing.T) {
	it := rawItem("Super Eagles name squad for qualifier", "The national team announced its lineup today.")
	if a := ToArticle(it, "Test Wire", testNow); a != nil {
		t.Fatalf("off-topic item accepted: %+v", a)
	}
}

func TestToArticleRejectsNonEnglish(t *testing.T) {
	it := rawItem("武装分子袭击村庄造成多人死亡", "尼日利亚北部再次发生袭击事件")
	if a := ToArticle(it, "Test Wire", testNow); a != nil {
		t.Fatalf("non-English item accepted: %+v", a)
	}
}

func TestToArticleStripsHTMLAndTruncates(t *testing.T) {
	it := rawItem(
		"Gunmen attack Kaduna village",
		"<p>Armed men <b>raided</b> the community &amp; fled.</p>",
	)
	a := ToArticle(it, "Test Wire", testNow)
	if a == nil {
		t.Fatal("expected an article")
	}
	if a.Description != "Armed men raided the community & fled." {
		t.Fatalf("description = %q", a.Description)
	}

	long := strings.Repeat("attack ", 200) // well past the description cap
	it = rawItem("Gunmen attack Kaduna village", long)
	a = ToArticle(it, "Test Wire", testNow)
	if a == nil {
		t.Fatal("expected an article")
	}
	if got := len([]rune(a.Description)); got > 500 {
		t.Fatalf("description not truncated: %d runes", got)
	}
}

func TestToArticlePublishedAtFallback(t *testing.T) {
	it := rawItem("Gunmen attack Kaduna village", "Several killed in the raid.")
	it.PublishedAt = time.Time{}

	a := ToArticle(it, "Test Wire", testNow)
	if a == nil {
		t.Fatal("expected an article")
	}
	if !a.PublishedAt.Equal(testNow) {
		t.Fatalf("publishedAt = %v, want fallback %v", a.PublishedAt, testNow)
	}
}

func TestToArticleSourceNamePrecedence(t *testing.T) {
	it := rawItem("Gunmen attack Kaduna village", "Several killed in the raid.")
	it.SourceName = "Item Wire"

	a := ToArticle(it, "Adapter Wire", testNow)
	if a == nil {
		t.Fatal("expected an article")
	}
	if a.Source.Name != "Item Wire" {
		t.Fatalf("source = %q, want the per-item name", a.Source.Name)
	}

	it.SourceName = ""
	a = ToArticle(it, "Adapter Wire", testNow)
	if a == nil {
		t.Fatal("expected an article")
	}
	if a.Source.Name != "Adapter Wire" {
		t.Fatalf("source = %q, want the adapter name", a.Source.Name)
	}
}

func TestToVideoDefaults(t *testing.T) {
	it := collector.RawItem{
		Title:       "Footage of bandit attack in Zamfara",
		Link:        "https://youtu.be/abc123",
		Description: "Aftermath of the raid.",
		PublishedAt: testNow,
	}

	v := ToVideo(it, testNow)
	if v == nil {
		t.Fatal("expected a video")
	}
	if v.ID != it.Link {
		t.Fatalf("id = %q, want the url fallback", v.ID)
	}
	if v.ChannelName != "Unknown Channel" || v.ChannelURL != "#" {
		t.Fatalf("channel defaults = %q / %q", v.ChannelName, v.ChannelURL)
	}
	if v.Duration != "" {
		t.Fatalf("duration = %q, want empty for zero seconds", v.Duration)
	}
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		seconds int
		want    string
	}{
		{0, ""},
		{-5, ""},
		{9, "0:09"},
		{150, "2:30"},
		{3750, "1:02:30"},
	}
	for _, c := range cases {
		if got := formatDuration(c.seconds); got != c.want {
			t.Fatalf("formatDuration(%d) = %q, want %q", c.seconds, got, c.want)
		}
	}
}

func TestIsEnglish(t *testing.T) {
	cases := []struct {
		text string
		want bool
	}{
		{"", true},
		{"   ", true},
		{"bandits kill 10 in zamfara", true},
		{"武装分子袭击村庄", false},
		{"123456789", false}, // digits alone carry no letter signal
	}
	for _, c := range cases {
		if got := IsEnglish(c.text); got != c.want {
			t.Fatalf("IsEnglish(%q) = %v, want %v", c.text, got, c.want)
		}
	}
}

func TestIsSecurityRelated(t *testing.T) {
	if !IsSecurityRelated("troops repel attack on convoy") {
		t.Fatal("attack text not flagged as security related")
	}
	if IsSecurityRelated("governor commissions new road project") {
		t.Fatal("infrastructure story flagged as security related")
	}
}
