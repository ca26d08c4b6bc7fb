// Package favsync keeps a live "is the quote on screen saved?" signal in step
// with both the displayed quote and the favorite store.
package favsync

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Snehil208001/QuoteVault/internal/favorites"
	"github.com/Snehil208001/QuoteVault/internal/observe"
	"github.com/Snehil208001/QuoteVault/internal/quote"
)

// ErrNoQuote is returned by Toggle before any quote has been published.
var ErrNoQuote = errors.New("favsync: no current quote")

// Sync derives IsFavorite from (current quote, favorite store membership).
// The signal has no storage of its own; every value is the result of a fresh
// membership query keyed to the quote text active when the query started.
type Sync struct {
	current *observe.Cell[quote.Quote]
	store   *favorites.Store
	log     *slog.Logger

	// IsFavorite reports whether the currently displayed quote is saved.
	IsFavorite *observe.Cell[bool]
}

func New(current *observe.Cell[quote.Quote], store *favorites.Store, log *slog.Logger) *Sync {
	if log == nil {
		log = slog.Default()
	}
	return &Sync{
		current:    current,
		store:      store,
		log:        log,
		IsFavorite: observe.NewCell[bool](),
	}
}

// Run reacts to quote changes and store mutations until ctx is done. Callers
// run it in its own goroutine.
func (s *Sync) Run(ctx context.Context) {
	quotes := s.current.Subscribe(ctx)
	changes := s.store.Watch(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case q := <-quotes:
			s.recompute(ctx, q.Text)
		case <-changes:
			if q, ok := s.current.Get(); ok {
				s.recompute(ctx, q.Text)
			}
		}
	}
}

// recompute queries membership for text and publishes the result, unless the
// displayed quote moved on while the query ran. A discarded result is safe:
// the event that changed the quote is already queued and will recompute.
func (s *Sync) recompute(ctx context.Context, text string) {
	fav, err := s.store.IsFavorite(ctx, text)
	if err != nil {
		s.log.Warn("favorite membership query failed", "error", err)
		return
	}
	if q, ok := s.current.Get(); !ok || q.Text != text {
		return
	}
	s.IsFavorite.Set(fav)
}

// Toggle saves or unsaves the quote displayed right now. The target is read
// at call time, never cached from an earlier subscription, so a toggle racing
// a quote transition acts on the new quote. Membership is re-queried from the
// store rather than trusted from the derived signal for the same reason.
// Store errors are returned for the UI to surface.
func (s *Sync) Toggle(ctx context.Context) error {
	q, ok := s.current.Get()
	if !ok {
		return ErrNoQuote
	}
	fav, err := s.store.IsFavorite(ctx, q.Text)
	if err != nil {
		return err
	}
	if fav {
		return s.store.DeleteByText(ctx, q.Text)
	}
	return s.store.Insert(ctx, q)
}
