package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Snehil208001/QuoteVault/internal/config"
	"github.com/Snehil208001/QuoteVault/internal/engine"
	"github.com/Snehil208001/QuoteVault/internal/prefs"
	"github.com/Snehil208001/QuoteVault/internal/source"
)

var flagTodayRefresh bool

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Print today's quote and exit",
	Long:  "Print the quote of the day without launching the TUI. Suitable for shell prompts and MOTD scripts.",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := newLogger()

		cfg, err := config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		store, err := prefs.Open(config.PrefsPath())
		if err != nil {
			return fmt.Errorf("opening preferences: %w", err)
		}

		src, err := source.For(cfg)
		if err != nil {
			return fmt.Errorf("configuring quote source: %w", err)
		}

		eng := engine.New(src, store, log)
		if flagTodayRefresh {
			eng.NextQuote(cmd.Context())
		} else {
			eng.Initialize(cmd.Context())
		}

		q, ok := eng.Current.Get()
		if !ok {
			return fmt.Errorf("no quote available")
		}

		color.New(color.Bold, color.Italic).Printf("%q\n", q.Text)
		color.New(color.FgHiBlack).Printf("  — %s\n", q.Author)
		return nil
	},
}

func init() {
	todayCmd.Flags().BoolVar(&flagTodayRefresh, "refresh", false, "fetch a fresh quote instead of the cached one")
}
