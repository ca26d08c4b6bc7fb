package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Snehil208001/QuoteVault/internal/update"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	flagConfig  string
	flagLink    string
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "quotevault",
	Short: "Daily quotes in your terminal",
	Long:  "QuoteVault shows a quote of the day, keeps your favorites, and lets you browse a curated catalog.",
	RunE:  runTUI,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "enable debug logging")
	rootCmd.Flags().StringVar(&flagLink, "link", "", "startup deep link (e.g. a recovery link from email)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(todayCmd)
	rootCmd.AddCommand(favoritesCmd)
	rootCmd.AddCommand(notifyCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("quotevault %s (commit: %s, built: %s)\n", version, commit, date)
		if r := update.Check(cmd.Context(), version); r != nil {
			fmt.Printf("A newer version is available: %s\n", r.LatestVersion)
		}
	},
}

// newLogger builds the process logger. Debug level with --verbose, warnings
// only otherwise so the TUI stays quiet.
func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if flagVerbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// startupLink returns the deep link the process was launched with, if any.
// The flag wins over the environment.
func startupLink() string {
	if flagLink != "" {
		return flagLink
	}
	return os.Getenv("QUOTEVAULT_LINK")
}

func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}
