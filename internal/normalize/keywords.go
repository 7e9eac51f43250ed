package normalize

import "strings"

// securityKeywords marks an item as on-topic when any of them appears in the
// lower-cased title+description text.
var securityKeywords = []string{
	"security", "insecurity", "attack", "violence", "bandit", "banditry",
	"fulani", "herdsmen", "terrorism", "terrorist", "kidnap", "insurgency",
	"boko haram", "iswap", "kill", "killed", "death", "casualty", "massacre",
	"crisis", "conflict", "gunmen", "gunman", "shooting", "bomb", "bombing",
	"church", "mosque", "destroyed", "burnt", "burned", "raid", "raided",
	"militant", "militants", "insurgent", "insurgents", "abduct", "abduction",
	"hostage", "hostages", "assault", "assaulted", "violent",
}

// IsSecurityRelated reports whether the item text mentions at least one
// security keyword. The caller passes lower-cased text.
func IsSecurityRelated(text string) bool {
	for _, kw := range securityKeywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// IsEnglish is a cheap character-class heuristic: accept unless the text is
// clearly non-English. Empty text is vacuously English.
func IsEnglish(text string) bool {
	if strings.TrimSpace(text) == "" {
		return true
	}
	runes := []rune(text)

	var letters, nonASCII int
	for _, r := range runes {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
			letters++
		case r > 127:
			nonASCII++
		}
	}

	total := float64(len(runes))
	return float64(letters)/total > 0.5 && float64(nonASCII)/total < 0.3
}
