// Package prefs is the durable key/value preference store: today's quote,
// notification settings, theme, and the persisted auth session.
package prefs

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/peterbourgon/diskv/v3"

	"github.com/Snehil208001/QuoteVault/internal/quote"
)

const (
	keyDailyQuote    = "daily_quote"
	keyNotifications = "notifications"
	keyTheme         = "theme"
	keySession       = "session"

	dateLayout = "2006-01-02"
)

// dailyRecord is the persisted quote-of-the-day plus the local calendar date
// it was committed on. Comparing Date against today is the sole cache check.
type dailyRecord struct {
	Text   string `json:"quote_text"`
	Author string `json:"quote_author"`
	Date   string `json:"quote_date"`
}

type notificationRecord struct {
	Enabled bool `json:"enabled"`
	Hour    int  `json:"hour"`
	Minute  int  `json:"minute"`
}

// Store persists preferences as one JSON document per key.
type Store struct {
	d *diskv.Diskv

	// now is injectable for date-rollover tests.
	now func() time.Time
}

// Open creates a Store rooted at basePath, creating it if needed.
func Open(basePath string) (*Store, error) {
	if basePath == "" {
		return nil, errors.New("prefs: base path required")
	}
	d := diskv.New(diskv.Options{
		BasePath:     basePath,
		CacheSizeMax: 64 * 1024,
	})
	return &Store{d: d, now: time.Now}, nil
}

// SetClock overrides the store's notion of "now". Test hook.
func (s *Store) SetClock(now func() time.Time) {
	s.now = now
}

func (s *Store) write(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("prefs: encoding %s: %w", key, err)
	}
	if err := s.d.Write(key, data); err != nil {
		return fmt.Errorf("prefs: writing %s: %w", key, err)
	}
	return nil
}

func (s *Store) read(key string, v any) (bool, error) {
	if !s.d.Has(key) {
		return false, nil
	}
	data, err := s.d.Read(key)
	if err != nil {
		return false, fmt.Errorf("prefs: reading %s: %w", key, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("prefs: decoding %s: %w", key, err)
	}
	return true, nil
}

// SaveDailyQuote commits q as today's quote, stamping it with the device's
// local calendar date. Overwrites any previous record.
func (s *Store) SaveDailyQuote(q quote.Quote) error {
	rec := dailyRecord{
		Text:   q.Text,
		Author: q.Author,
		Date:   s.now().Format(dateLayout),
	}
	return s.write(keyDailyQuote, rec)
}

// DailyQuote returns the stored quote of the day, if any.
func (s *Store) DailyQuote() (quote.Quote, bool) {
	var rec dailyRecord
	ok, err := s.read(keyDailyQuote, &rec)
	if err != nil || !ok {
		return quote.Quote{}, false
	}
	q := quote.Quote{Text: rec.Text, Author: rec.Author}
	if !q.Valid() {
		return quote.Quote{}, false
	}
	return q, true
}

// IsQuoteFromToday reports whether the stored record's date stamp equals the
// current local calendar date.
func (s *Store) IsQuoteFromToday() bool {
	var rec dailyRecord
	ok, err := s.read(keyDailyQuote, &rec)
	if err != nil || !ok {
		return false
	}
	return rec.Date == s.now().Format(dateLayout)
}

// SetNotifications stores the notification toggle and delivery time.
func (s *Store) SetNotifications(enabled bool, hour, minute int) error {
	return s.write(keyNotifications, notificationRecord{Enabled: enabled, Hour: hour, Minute: minute})
}

// Notifications returns the stored notification settings, defaulting to
// disabled at 08:00.
func (s *Store) Notifications() (enabled bool, hour, minute int) {
	rec := notificationRecord{Hour: 8}
	if ok, err := s.read(keyNotifications, &rec); err != nil || !ok {
		return false, 8, 0
	}
	return rec.Enabled, rec.Hour, rec.Minute
}

// SetTheme stores the UI theme name.
func (s *Store) SetTheme(name string) error {
	return s.write(keyTheme, name)
}

// Theme returns the stored theme name, defaulting to "default".
func (s *Store) Theme() string {
	var name string
	if ok, err := s.read(keyTheme, &name); err != nil || !ok || name == "" {
		return "default"
	}
	return name
}

// SaveSession persists an opaque auth session blob.
func (s *Store) SaveSession(raw []byte) error {
	if err := s.d.Write(keySession, raw); err != nil {
		return fmt.Errorf("prefs: writing session: %w", err)
	}
	return nil
}

// Session returns the persisted auth session blob, if any.
func (s *Store) Session() ([]byte, bool) {
	if !s.d.Has(keySession) {
		return nil, false
	}
	data, err := s.d.Read(keySession)
	if err != nil || len(data) == 0 {
		return nil, false
	}
	return data, true
}

// ClearSession removes the persisted auth session.
func (s *Store) ClearSession() error {
	if !s.d.Has(keySession) {
		return nil
	}
	return s.d.Erase(keySession)
}
