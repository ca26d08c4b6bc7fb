// Package notify delivers the daily quote as a local notification at the
// time configured in the preference store.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
	"time"

	"github.com/Snehil208001/QuoteVault/internal/prefs"
	"github.com/Snehil208001/QuoteVault/internal/quote"
)

// Notifier displays a single notification.
type Notifier interface {
	Notify(title, body string) error
}

// QuoteProvider supplies the quote to deliver. The daily engine's cached
// record satisfies this via the preference store.
type QuoteProvider interface {
	DailyQuote() (quote.Quote, bool)
}

// NextTrigger returns the next hh:mm occurrence at or after now: today if the
// time has not passed yet, otherwise tomorrow.
func NextTrigger(now time.Time, hour, minute int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// Scheduler fires the configured notification once per day. It re-reads the
// enabled flag and delivery time from the preference store on every cycle, so
// settings changes take effect at the next trigger without a restart.
type Scheduler struct {
	prefs    *prefs.Store
	quotes   QuoteProvider
	notifier Notifier
	log      *slog.Logger

	// now is injectable for trigger-time tests.
	now func() time.Time
}

func NewScheduler(store *prefs.Store, quotes QuoteProvider, notifier Notifier, log *slog.Logger) *Scheduler {
	if log == nil {
		log = slog.Default()
	}
	if notifier == nil {
		notifier = SystemNotifier{}
	}
	return &Scheduler{
		prefs:    store,
		quotes:   quotes,
		notifier: notifier,
		log:      log,
		now:      time.Now,
	}
}

// Run loops until ctx is done, sleeping to each trigger. Delivery failures
// are logged and the loop continues.
func (s *Scheduler) Run(ctx context.Context) error {
	for {
		enabled, hour, minute := s.prefs.Notifications()
		if !enabled {
			return fmt.Errorf("notify: notifications are disabled")
		}

		next := NextTrigger(s.now(), hour, minute)
		s.log.Debug("next notification scheduled", "at", next)

		timer := time.NewTimer(next.Sub(s.now()))
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		s.deliver()
	}
}

func (s *Scheduler) deliver() {
	q, ok := s.quotes.DailyQuote()
	if !ok {
		q = quote.Fallback()
	}
	if err := s.notifier.Notify("Quote of the Day", fmt.Sprintf("%q — %s", q.Text, q.Author)); err != nil {
		s.log.Warn("notification delivery failed", "error", err)
	}
}

// SystemNotifier shells out to the platform notification command.
type SystemNotifier struct{}

func (SystemNotifier) Notify(title, body string) error {
	switch runtime.GOOS {
	case "darwin":
		script := fmt.Sprintf("display notification %q with title %q", body, title)
		return exec.Command("osascript", "-e", script).Run()
	default:
		return exec.Command("notify-send", title, body).Run()
	}
}
