package tui

import (
	"github.com/Snehil208001/QuoteVault/internal/discover"
	"github.com/Snehil208001/QuoteVault/internal/quote"
)

// quoteMsg carries a new current quote out of the engine's signal cell.
type quoteMsg quote.Quote

// loadingMsg mirrors the engine's loading flag.
type loadingMsg bool

// favoriteMsg mirrors the derived is-favorited signal.
type favoriteMsg bool

type favoritesLoadedMsg struct {
	quotes []quote.Quote
}

type catalogLoadedMsg struct {
	quotes []discover.CatalogQuote
}

// noticeMsg is a transient user-visible message (store errors, auth results).
type noticeMsg string

// authDoneMsg reports a finished auth action; msg is empty on success.
type authDoneMsg struct {
	msg string
}

// signedOutMsg bounces the UI back to the login form.
type signedOutMsg struct{}

// clearNoticeMsg wipes the transient notice after its display window.
type clearNoticeMsg struct{}
