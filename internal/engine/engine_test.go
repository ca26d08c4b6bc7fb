package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/Snehil208001/QuoteVault/internal/prefs"
	"github.com/Snehil208001/QuoteVault/internal/quote"
)

// scriptedSource hands out one scripted response per call, optionally gated on
// a channel so tests can control completion order.
type scriptedSource struct {
	mu        sync.Mutex
	calls     int
	responses []scriptedResponse
}

type scriptedResponse struct {
	quotes  []quote.Quote
	err     error
	started chan struct{} // closed when the call begins, if non-nil
	release chan struct{} // call blocks until closed, if non-nil
}

func (s *scriptedSource) FetchQuotes(ctx context.Context) ([]quote.Quote, error) {
	s.mu.Lock()
	idx := s.calls
	s.calls++
	s.mu.Unlock()

	if idx >= len(s.responses) {
		return nil, errors.New("unexpected fetch")
	}
	r := s.responses[idx]
	if r.started != nil {
		close(r.started)
	}
	if r.release != nil {
		<-r.release
	}
	return r.quotes, r.err
}

func (s *scriptedSource) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func batch(texts ...string) []quote.Quote {
	out := make([]quote.Quote, len(texts))
	for i, t := range texts {
		out[i] = quote.Quote{Text: t, Author: "A" + t}
	}
	return out
}

func testPrefs(t *testing.T) *prefs.Store {
	t.Helper()
	s, err := prefs.Open(t.TempDir())
	if err != nil {
		t.Fatalf("opening prefs: %v", err)
	}
	return s
}

func current(t *testing.T, e *Engine) quote.Quote {
	t.Helper()
	q, ok := e.Current.Get()
	if !ok {
		t.Fatal("no current quote")
	}
	return q
}

func TestInitializeFetchesOnFreshDay(t *testing.T) {
	store := testPrefs(t)
	src := &scriptedSource{responses: []scriptedResponse{
		{quotes: batch("Q1", "Q2", "Q3")},
	}}
	e := New(src, store, nil)

	e.Initialize(context.Background())

	if got := current(t, e); got.Text != "Q1" {
		t.Errorf("expected Q1, got %q", got.Text)
	}
	if e.BufferLen() != 3 {
		t.Errorf("expected buffer of 3, got %d", e.BufferLen())
	}
	if !store.IsQuoteFromToday() {
		t.Error("expected daily record persisted")
	}
	if loading, _ := e.Loading.Get(); loading {
		t.Error("loading should be false after initialize")
	}
}

func TestInitializeUsesCachedQuoteSameDay(t *testing.T) {
	store := testPrefs(t)
	if err := store.SaveDailyQuote(quote.Quote{Text: "cached", Author: "C"}); err != nil {
		t.Fatalf("seeding record: %v", err)
	}

	src := &scriptedSource{} // any fetch would error as "unexpected fetch"
	e := New(src, store, nil)
	e.Initialize(context.Background())

	if got := current(t, e); got.Text != "cached" {
		t.Errorf("expected cached quote, got %q", got.Text)
	}
	if src.callCount() != 0 {
		t.Errorf("expected no fetch with a same-day record, got %d", src.callCount())
	}
}

func TestInitializeFetchesWhenRecordStale(t *testing.T) {
	store := testPrefs(t)
	yesterday := time.Now().Add(-24 * time.Hour)
	store.SetClock(func() time.Time { return yesterday })
	if err := store.SaveDailyQuote(quote.Quote{Text: "old", Author: "O"}); err != nil {
		t.Fatalf("seeding record: %v", err)
	}
	store.SetClock(time.Now)

	src := &scriptedSource{responses: []scriptedResponse{
		{quotes: batch("fresh")},
	}}
	e := New(src, store, nil)
	e.Initialize(context.Background())

	if got := current(t, e); got.Text != "fresh" {
		t.Errorf("expected fresh quote for new day, got %q", got.Text)
	}
	if src.callCount() != 1 {
		t.Errorf("expected exactly one fetch, got %d", src.callCount())
	}
}

func TestIdempotentSameDayRestart(t *testing.T) {
	store := testPrefs(t)
	src := &scriptedSource{responses: []scriptedResponse{
		{quotes: batch("Q1", "Q2")},
	}}

	e1 := New(src, store, nil)
	e1.Initialize(context.Background())

	// Second engine simulates a same-day restart reading the record the
	// first one wrote.
	e2 := New(src, store, nil)
	e2.Initialize(context.Background())

	if src.callCount() != 1 {
		t.Errorf("second same-day initialize must not fetch, got %d calls", src.callCount())
	}
	if got := current(t, e2); got.Text != "Q1" {
		t.Errorf("expected persisted Q1, got %q", got.Text)
	}
}

func TestInitializeFailureFirstRunShowsFallback(t *testing.T) {
	store := testPrefs(t)
	src := &scriptedSource{responses: []scriptedResponse{
		{err: errors.New("network down")},
	}}
	e := New(src, store, nil)
	e.Initialize(context.Background())

	if got := current(t, e); got != quote.Fallback() {
		t.Errorf("expected fallback quote, got %+v", got)
	}
	// The fallback must not be committed as the day's quote.
	if store.IsQuoteFromToday() {
		t.Error("fallback must not be persisted")
	}
	if loading, _ := e.Loading.Get(); loading {
		t.Error("loading should clear after a failed fetch")
	}
}

func TestNextQuoteFailureKeepsLastQuote(t *testing.T) {
	store := testPrefs(t)
	src := &scriptedSource{responses: []scriptedResponse{
		{quotes: batch("good")},
		{err: errors.New("boom")},
	}}
	e := New(src, store, nil)
	e.Initialize(context.Background())
	e.NextQuote(context.Background())

	if got := current(t, e); got.Text != "good" {
		t.Errorf("failed refresh must keep last quote, got %q", got.Text)
	}
}

func TestRotateWraps(t *testing.T) {
	store := testPrefs(t)
	src := &scriptedSource{responses: []scriptedResponse{
		{quotes: batch("Q1", "Q2", "Q3")},
	}}
	e := New(src, store, nil)
	e.Initialize(context.Background())

	seen := []string{current(t, e).Text}
	for i := 0; i < 3; i++ {
		e.Rotate(context.Background())
		seen = append(seen, current(t, e).Text)
	}

	want := []string{"Q1", "Q2", "Q3", "Q1"}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("rotation sequence %v, want %v", seen, want)
		}
	}
	if src.callCount() != 1 {
		t.Errorf("rotation must not fetch, got %d calls", src.callCount())
	}
}

func TestRotateEmptyBufferFetches(t *testing.T) {
	store := testPrefs(t)
	// Same-day record present, so Initialize does not fetch and the buffer
	// stays empty.
	if err := store.SaveDailyQuote(quote.Quote{Text: "cached", Author: "C"}); err != nil {
		t.Fatalf("seeding record: %v", err)
	}
	src := &scriptedSource{responses: []scriptedResponse{
		{quotes: batch("fetched")},
	}}
	e := New(src, store, nil)
	e.Initialize(context.Background())

	e.Rotate(context.Background())
	if got := current(t, e); got.Text != "fetched" {
		t.Errorf("rotate on empty buffer should fetch, got %q", got.Text)
	}
	if src.callCount() != 1 {
		t.Errorf("expected one fetch, got %d", src.callCount())
	}
}

func TestStaleFetchDiscarded(t *testing.T) {
	for _, completion := range []string{"B then A", "A then B"} {
		t.Run(completion, func(t *testing.T) {
			store := testPrefs(t)
			startA := make(chan struct{})
			startB := make(chan struct{})
			releaseA := make(chan struct{})
			releaseB := make(chan struct{})
			src := &scriptedSource{responses: []scriptedResponse{
				{quotes: batch("fromA"), started: startA, release: releaseA},
				{quotes: batch("fromB"), started: startB, release: releaseB},
			}}
			e := New(src, store, nil)

			var wg sync.WaitGroup
			wg.Add(2)
			go func() { defer wg.Done(); e.NextQuote(context.Background()) }()
			<-startA
			go func() { defer wg.Done(); e.NextQuote(context.Background()) }()
			<-startB

			// B is the latest issued fetch; whichever way completions land,
			// its result must win.
			if completion == "B then A" {
				close(releaseB)
				time.Sleep(20 * time.Millisecond)
				close(releaseA)
			} else {
				close(releaseA)
				time.Sleep(20 * time.Millisecond)
				close(releaseB)
			}
			wg.Wait()

			if got := current(t, e); got.Text != "fromB" {
				t.Errorf("completion order %s: got %q, want fromB", completion, got.Text)
			}
		})
	}
}

// fetchFunc adapts a function to the source contract for tests that need
// unlimited concurrent fetches.
type fetchFunc func(ctx context.Context) ([]quote.Quote, error)

func (f fetchFunc) FetchQuotes(ctx context.Context) ([]quote.Quote, error) { return f(ctx) }

func TestConcurrentFetchesKeepCurrentAlignedWithBuffer(t *testing.T) {
	var mu sync.Mutex
	n := 0
	src := fetchFunc(func(ctx context.Context) ([]quote.Quote, error) {
		mu.Lock()
		n++
		text := fmt.Sprintf("q-%d", n)
		mu.Unlock()
		return batch(text), nil
	})
	e := New(src, testPrefs(t), nil)

	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			e.NextQuote(context.Background())
		}()
	}
	wg.Wait()

	// Whatever interleaving the scheduler produced, the published quote and
	// the installed buffer must agree: a fetch that lost the token race must
	// not land its publish after the winner's.
	got := current(t, e)
	e.mu.Lock()
	want := e.buffer[e.cursor]
	e.mu.Unlock()
	if got != want {
		t.Errorf("current = %q, buffer holds %q", got.Text, want.Text)
	}
	if loading, ok := e.Loading.Get(); !ok || loading {
		t.Errorf("Loading = (%v, %v) after all fetches settled", loading, ok)
	}
}

func TestManualRefreshRefetchesNotRotates(t *testing.T) {
	store := testPrefs(t)
	list := batch("Q1", "Q2", "Q3")
	src := &scriptedSource{responses: []scriptedResponse{
		{quotes: list},
		{quotes: list},
	}}
	e := New(src, store, nil)

	e.Initialize(context.Background())
	if got := current(t, e); got.Text != "Q1" {
		t.Fatalf("expected Q1 after initialize, got %q", got.Text)
	}
	if e.BufferLen() != 3 {
		t.Fatalf("expected buffer of 3, got %d", e.BufferLen())
	}

	// A fresh fetch returning the same list lands on Q1 again; the refresh
	// action never rotates to Q2.
	e.NextQuote(context.Background())
	if got := current(t, e); got.Text != "Q1" {
		t.Errorf("expected refetched Q1, got %q", got.Text)
	}
	if src.callCount() != 2 {
		t.Errorf("expected two fetches, got %d", src.callCount())
	}
}
