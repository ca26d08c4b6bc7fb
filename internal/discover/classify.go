package discover

import (
	"strings"
	"unicode"
)

// Uncategorized is assigned when no category keywords match.
const Uncategorized = "Wisdom"

var categoryKeywords = map[string][]string{
	"Motivation": {
		"dream", "goal", "begin", "start", "effort", "work", "try", "persevere",
		"courage", "achieve", "success is", "never give up", "opportunity",
		"action", "discipline", "habit",
	},
	"Love": {
		"love", "heart", "kindness", "compassion", "friend", "together",
		"forgive", "caring",
	},
	"Success": {
		"success", "win", "fail", "failure", "victory", "excellence",
		"accomplish", "greatness", "fortune",
	},
	"Humor": {
		"laugh", "funny", "joke", "humor", "smile", "absurd",
	},
}

// Classify assigns a category to free-form quote text by keyword matching.
// First category with the most hits wins; ties resolve in Categories() order.
// Used for catalog rows that arrive without a category.
func Classify(text string) string {
	lower := strings.ToLower(stripPunct(text))

	best := Uncategorized
	bestHits := 0
	for _, cat := range Categories() {
		hits := 0
		for _, kw := range categoryKeywords[cat] {
			if strings.Contains(lower, kw) {
				hits++
			}
		}
		if hits > bestHits {
			best = cat
			bestHits = hits
		}
	}
	return best
}

func stripPunct(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	return b.String()
}
