package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Snehil208001/QuoteVault/internal/auth"
	"github.com/Snehil208001/QuoteVault/internal/config"
	"github.com/Snehil208001/QuoteVault/internal/discover"
	"github.com/Snehil208001/QuoteVault/internal/engine"
	"github.com/Snehil208001/QuoteVault/internal/favorites"
	"github.com/Snehil208001/QuoteVault/internal/favsync"
	"github.com/Snehil208001/QuoteVault/internal/prefs"
	"github.com/Snehil208001/QuoteVault/internal/router"
	"github.com/Snehil208001/QuoteVault/internal/source"
	"github.com/Snehil208001/QuoteVault/internal/tui"
)

func runTUI(cmd *cobra.Command, args []string) error {
	log := newLogger()

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	store, err := prefs.Open(config.PrefsPath())
	if err != nil {
		return fmt.Errorf("opening preferences: %w", err)
	}

	favs, err := favorites.Open(config.FavoritesDBPath())
	if err != nil {
		return fmt.Errorf("opening favorites: %w", err)
	}
	defer favs.Close()

	src, err := source.For(cfg)
	if err != nil {
		return fmt.Errorf("configuring quote source: %w", err)
	}

	authClient := auth.NewClient(cfg.Auth.ProjectURL, cfg.ResolvedAnonKey(), store, log)
	discClient := discover.NewClient(cfg.Discovery.URL, cfg.ResolvedAnonKey())

	// The startup destination is decided exactly once, before the first
	// frame renders.
	rt := router.New(authClient, cfg.ResolvedRecoveryHost(), log)
	payload := router.ParsePayload(startupLink())
	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
	route := rt.Resolve(ctx, payload)
	cancel()

	// A recovery link authenticates the user itself: adopt the session its
	// fragment carries so the password update has a bearer token.
	if route == router.RoutePasswordReset {
		if access, refresh, ok := payload.SessionTokens(); ok {
			if err := authClient.AdoptSession(access, refresh); err != nil {
				log.Warn("adopting recovery session failed", "error", err)
			}
		}
	}

	eng := engine.New(src, store, log)
	sync := favsync.New(eng.Current, favs, log)

	return tui.Run(tui.RunOpts{
		Cfg:       cfg,
		Engine:    eng,
		Sync:      sync,
		Favorites: favs,
		Prefs:     store,
		Auth:      authClient,
		Discover:  discClient,
		Route:     route,
	})
}
