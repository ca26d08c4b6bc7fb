package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Snehil208001/QuoteVault/internal/config"
	"github.com/Snehil208001/QuoteVault/internal/notify"
	"github.com/Snehil208001/QuoteVault/internal/prefs"
)

var flagNotifyAt string

var notifyCmd = &cobra.Command{
	Use:   "notify",
	Short: "Run the daily notification scheduler",
	Long: `Run in the foreground and post a desktop notification with the daily quote
at the configured time. Intended to be started from a user service or login item.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := newLogger()

		store, err := prefs.Open(config.PrefsPath())
		if err != nil {
			return fmt.Errorf("opening preferences: %w", err)
		}

		if flagNotifyAt != "" {
			hour, minute, err := parseClock(flagNotifyAt)
			if err != nil {
				return fmt.Errorf("invalid --at value: %w", err)
			}
			if err := store.SetNotifications(true, hour, minute); err != nil {
				return fmt.Errorf("saving notification time: %w", err)
			}
		}

		sched := notify.NewScheduler(store, store, nil, log)
		return sched.Run(cmd.Context())
	},
}

func init() {
	notifyCmd.Flags().StringVar(&flagNotifyAt, "at", "", "enable notifications and set the delivery time (e.g. 08:30)")
}

// parseClock parses an hh:mm wall-clock time.
func parseClock(s string) (hour, minute int, err error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("want hh:mm, got %q", s)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("bad hour in %q", s)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("bad minute in %q", s)
	}
	return hour, minute, nil
}
