// Package engine is the daily-quote engine: exactly one quote per calendar
// day, cached across restarts, with manual refresh and an in-memory rotation
// buffer.
package engine

import (
	"context"
	"log/slog"
	"sync"

	"github.com/Snehil208001/QuoteVault/internal/observe"
	"github.com/Snehil208001/QuoteVault/internal/prefs"
	"github.com/Snehil208001/QuoteVault/internal/quote"
	"github.com/Snehil208001/QuoteVault/internal/source"
)

// Engine owns the current-quote signal and the rotation buffer. Fetch results
// are applied under a monotonic token: a fetch that completes after a newer
// one was issued is discarded, so the displayed quote never goes backwards.
type Engine struct {
	src   source.Source
	prefs *prefs.Store
	log   *slog.Logger

	// Current is the quote on screen. Single writer (this engine).
	Current *observe.Cell[quote.Quote]
	// Loading is true while a fetch is in flight.
	Loading *observe.Cell[bool]

	mu     sync.Mutex
	buffer []quote.Quote
	cursor int
	seq    uint64
}

func New(src source.Source, store *prefs.Store, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.Default()
	}
	return &Engine{
		src:     src,
		prefs:   store,
		log:     log,
		Current: observe.NewCell[quote.Quote](),
		Loading: observe.NewCell[bool](),
	}
}

// Initialize produces the quote of the day. If the preference store already
// holds a record stamped with today's local date, that quote is published and
// no network call is made. Otherwise the source is fetched once; the first
// item becomes today's persisted quote and the whole batch seeds the buffer.
//
// Fetch failures are never returned: the engine stays on the last good quote,
// or publishes the fallback when there is nothing to stay on.
func (e *Engine) Initialize(ctx context.Context) {
	if e.prefs.IsQuoteFromToday() {
		if q, ok := e.prefs.DailyQuote(); ok {
			e.Current.Set(q)
			e.Loading.Set(false)
			return
		}
	}

	token := e.beginFetch()

	quotes, err := e.src.FetchQuotes(ctx)
	if err != nil {
		e.log.Warn("daily quote fetch failed", "error", err)
		e.finishFetch(token)
		if _, ok := e.Current.Get(); !ok {
			// First run with no network: show the fallback, but never
			// persist it as the day's quote.
			e.Current.Set(quote.Fallback())
		}
		return
	}

	if !e.applyBatch(token, quotes) {
		return
	}
	if err := e.prefs.SaveDailyQuote(quotes[0]); err != nil {
		e.log.Warn("persisting daily quote failed", "error", err)
	}
	e.finishFetch(token)
}

// NextQuote performs a fresh fetch and publishes its first item. The buffer is
// replaced, the daily record is not touched, and a failure leaves the current
// quote unchanged.
func (e *Engine) NextQuote(ctx context.Context) {
	token := e.beginFetch()

	quotes, err := e.src.FetchQuotes(ctx)
	if err != nil {
		e.log.Warn("quote refresh failed", "error", err)
		e.finishFetch(token)
		return
	}

	e.applyBatch(token, quotes)
	e.finishFetch(token)
}

// Rotate advances through the in-memory buffer without touching the network,
// wrapping at the end. With an empty buffer it falls back to a fresh fetch.
func (e *Engine) Rotate(ctx context.Context) {
	e.mu.Lock()
	if len(e.buffer) == 0 {
		e.mu.Unlock()
		e.NextQuote(ctx)
		return
	}
	e.cursor = (e.cursor + 1) % len(e.buffer)
	e.Current.Set(e.buffer[e.cursor])
	e.mu.Unlock()
}

// BufferLen reports the size of the rotation buffer.
func (e *Engine) BufferLen() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.buffer)
}

// beginFetch issues the next fetch token and raises the loading flag in the
// same critical section, so a superseded fetch can never set the flag after
// the latest one cleared it.
func (e *Engine) beginFetch() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.seq++
	e.Loading.Set(true)
	return e.seq
}

// applyBatch installs a fetch result unless a newer fetch was issued while
// this one was in flight. Returns whether the batch was applied. The publish
// happens under e.mu so a superseded fetch cannot pass the token check and
// then land its Set after a newer fetch has already published.
func (e *Engine) applyBatch(token uint64, quotes []quote.Quote) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if token != e.seq {
		e.log.Debug("discarding superseded fetch", "token", token, "latest", e.seq)
		return false
	}
	e.buffer = quotes
	e.cursor = 0
	e.Current.Set(quotes[0])
	return true
}

// finishFetch clears the loading flag unless a newer fetch is still running.
// Same rule as applyBatch: check and publish under one critical section.
func (e *Engine) finishFetch(token uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if token == e.seq {
		e.Loading.Set(false)
	}
}
