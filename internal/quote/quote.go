// Package quote defines the quote model shared by every other package.
package quote

import "strings"

// Quote is a single inspirational quote. Identity for favoriting purposes is
// the text alone: two quotes with the same text are the same quote.
type Quote struct {
	Text   string
	Author string
}

// Valid reports whether the quote carries both a text and an author.
// Sources use this to drop malformed API items.
func (q Quote) Valid() bool {
	return strings.TrimSpace(q.Text) != "" && strings.TrimSpace(q.Author) != ""
}

// Fallback returns the quote shown when no source is reachable and nothing is
// cached yet. It is never persisted as a daily quote.
func Fallback() Quote {
	return Quote{
		Text:   "Failure is simply the opportunity to begin again.",
		Author: "Henry Ford",
	}
}
