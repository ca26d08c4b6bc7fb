package source

import (
	"context"
	"fmt"
	"strings"

	"github.com/mmcdole/gofeed"

	"github.com/Snehil208001/QuoteVault/internal/quote"
)

// RSSSource parses a quotes feed: item title is the quote text, the item
// author (or dc:creator) is the attribution.
type RSSSource struct {
	url    string
	parser *gofeed.Parser
}

func NewRSSSource(url string) *RSSSource {
	return &RSSSource{url: url, parser: gofeed.NewParser()}
}

func (s *RSSSource) FetchQuotes(ctx context.Context) ([]quote.Quote, error) {
	feed, err := s.parser.ParseURLWithContext(s.url, ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching feed: %w", err)
	}

	quotes := make([]quote.Quote, 0, len(feed.Items))
	for _, item := range feed.Items {
		q := quote.Quote{
			Text:   strings.TrimSpace(item.Title),
			Author: itemAuthor(item),
		}
		if q.Valid() {
			quotes = append(quotes, q)
		}
	}
	if len(quotes) == 0 {
		return nil, ErrEmptyBatch
	}
	return quotes, nil
}

func itemAuthor(item *gofeed.Item) string {
	for _, a := range item.Authors {
		if a != nil && strings.TrimSpace(a.Name) != "" {
			return strings.TrimSpace(a.Name)
		}
	}
	if item.Author != nil && strings.TrimSpace(item.Author.Name) != "" {
		return strings.TrimSpace(item.Author.Name)
	}
	if item.DublinCoreExt != nil && len(item.DublinCoreExt.Creator) > 0 {
		return strings.TrimSpace(item.DublinCoreExt.Creator[0])
	}
	return ""
}
