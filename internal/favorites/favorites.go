// Package favorites is the durable set of saved quotes, keyed by quote text.
package favorites

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/Snehil208001/QuoteVault/internal/quote"
)

// Store persists favorite quotes in SQLite. Reads and writes go through
// separate handles; the write handle is capped at one connection so mutations
// serialize at the driver level.
type Store struct {
	readDB  *sql.DB
	writeDB *sql.DB

	mu   sync.Mutex
	subs map[chan struct{}]struct{}
}

func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating favorites dir: %w", err)
	}

	writeDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening write db: %w", err)
	}
	writeDB.SetMaxOpenConns(1)

	readDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		writeDB.Close()
		return nil, fmt.Errorf("opening read db: %w", err)
	}

	s := &Store{
		readDB:  readDB,
		writeDB: writeDB,
		subs:    make(map[chan struct{}]struct{}),
	}
	if err := s.init(); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) init() error {
	_, err := s.writeDB.Exec(`
		CREATE TABLE IF NOT EXISTS favorite_quotes (
			id     INTEGER PRIMARY KEY AUTOINCREMENT,
			text   TEXT NOT NULL UNIQUE,
			author TEXT NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("initializing schema: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	var errs []error
	if s.readDB != nil {
		errs = append(errs, s.readDB.Close())
	}
	if s.writeDB != nil {
		errs = append(errs, s.writeDB.Close())
	}
	for _, e := range errs {
		if e != nil {
			return e
		}
	}
	return nil
}

// Insert saves a quote. Saving the same text twice replaces the row, which
// also refreshes its position in the most-recent-first ordering.
func (s *Store) Insert(ctx context.Context, q quote.Quote) error {
	_, err := s.writeDB.ExecContext(ctx, `
		INSERT OR REPLACE INTO favorite_quotes (text, author) VALUES (?, ?)
	`, q.Text, q.Author)
	if err != nil {
		return fmt.Errorf("inserting favorite: %w", err)
	}
	s.notify()
	return nil
}

// DeleteByText removes the favorite with the given text, if present.
func (s *Store) DeleteByText(ctx context.Context, text string) error {
	_, err := s.writeDB.ExecContext(ctx, `DELETE FROM favorite_quotes WHERE text = ?`, text)
	if err != nil {
		return fmt.Errorf("deleting favorite: %w", err)
	}
	s.notify()
	return nil
}

// IsFavorite reports whether a quote with the given text is saved.
func (s *Store) IsFavorite(ctx context.Context, text string) (bool, error) {
	var exists bool
	err := s.readDB.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM favorite_quotes WHERE text = ? LIMIT 1)`, text,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("querying favorite: %w", err)
	}
	return exists, nil
}

// All returns every favorite, most recently saved first.
func (s *Store) All(ctx context.Context) ([]quote.Quote, error) {
	rows, err := s.readDB.QueryContext(ctx,
		`SELECT text, author FROM favorite_quotes ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying favorites: %w", err)
	}
	defer rows.Close()

	var quotes []quote.Quote
	for rows.Next() {
		var q quote.Quote
		if err := rows.Scan(&q.Text, &q.Author); err != nil {
			return nil, fmt.Errorf("scanning favorite: %w", err)
		}
		quotes = append(quotes, q)
	}
	return quotes, rows.Err()
}

// Watch returns a channel that receives a tick after every successful
// mutation, until ctx is done. Ticks are dropped rather than queued when the
// subscriber is not ready, so a receive means "something changed, re-query".
func (s *Store) Watch(ctx context.Context) <-chan struct{} {
	ch := make(chan struct{}, 1)

	s.mu.Lock()
	s.subs[ch] = struct{}{}
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		delete(s.subs, ch)
		s.mu.Unlock()
	}()

	return ch
}

func (s *Store) notify() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for ch := range s.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
