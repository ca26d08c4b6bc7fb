// Package source fetches quote batches from the configured remote endpoint.
package source

import (
	"context"
	"errors"
	"fmt"

	"github.com/Snehil208001/QuoteVault/internal/config"
	"github.com/Snehil208001/QuoteVault/internal/quote"
)

// ErrEmptyBatch is returned when a fetch succeeds at the transport level but
// yields no usable quotes.
var ErrEmptyBatch = errors.New("source: empty quote batch")

// Source is the single collaborator contract the daily engine depends on:
// a non-empty batch on success, an error otherwise. The first element is the
// primary pick; no further ordering is assumed.
type Source interface {
	FetchQuotes(ctx context.Context) ([]quote.Quote, error)
}

// For builds the Source selected by the config.
func For(cfg *config.Config) (Source, error) {
	switch cfg.Source.Type {
	case config.SourceTypeZen:
		return NewZenClient(cfg.Source.URL), nil
	case config.SourceTypeRSS:
		return NewRSSSource(cfg.Source.URL), nil
	default:
		return nil, fmt.Errorf("source: unknown type %q", cfg.Source.Type)
	}
}
