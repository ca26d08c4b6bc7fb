package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Snehil208001/QuoteVault/internal/auth"
	"github.com/Snehil208001/QuoteVault/internal/discover"
	"github.com/Snehil208001/QuoteVault/internal/quote"
	"github.com/Snehil208001/QuoteVault/internal/share"
)

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case quoteMsg:
		a.quote = quote.Quote(msg)
		a.hasQuote = true
		return a, waitQuote(a.quoteCh)

	case loadingMsg:
		a.loading = bool(msg)
		return a, waitLoading(a.loadingCh)

	case favoriteMsg:
		a.favorited = bool(msg)
		return a, waitFavorite(a.favCh)

	case favoritesLoadedMsg:
		a.favList = msg.quotes
		if a.favCursor >= len(a.favList) {
			a.favCursor = max(0, len(a.favList)-1)
		}
		return a, nil

	case catalogLoadedMsg:
		a.catalog = msg.quotes
		if a.catCursor >= len(a.catalog) {
			a.catCursor = 0
		}
		return a, nil

	case noticeMsg:
		a.notice = string(msg)
		return a, clearNoticeAfter(4 * time.Second)

	case clearNoticeMsg:
		a.notice = ""
		return a, nil

	case authDoneMsg:
		a.authBusy = false
		if msg.msg != "" {
			a.notice = msg.msg
			return a, clearNoticeAfter(4 * time.Second)
		}
		switch a.mode {
		case modeLogin:
			a.mode = modeHome
			a.passInput.SetValue("")
			return a, a.initializeEngine()
		case modeSignup:
			a.notice = "Account created. Check your email, then sign in."
			a.mode = modeLogin
			return a, clearNoticeAfter(6 * time.Second)
		case modeRecovery:
			a.notice = "Password updated. Please sign in."
			a.mode = modeLogin
			a.passInput.SetValue("")
			return a, clearNoticeAfter(6 * time.Second)
		}
		return a, nil

	case signedOutMsg:
		a.mode = modeLogin
		a.passInput.SetValue("")
		a.focused = fieldEmail
		a.emailInput.Focus()
		a.passInput.Blur()
		a.notice = "Signed out."
		return a, clearNoticeAfter(4 * time.Second)

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		a.cancel()
		return a, tea.Quit
	}

	switch a.mode {
	case modeLogin, modeSignup, modeRecovery:
		return a.handleAuthKey(msg)
	case modeDiscover:
		if a.searching {
			return a.handleSearchKey(msg)
		}
	}

	switch msg.String() {
	case "q":
		a.cancel()
		return a, tea.Quit
	case "1":
		a.mode = modeHome
		return a, nil
	case "2":
		a.mode = modeFavorites
		return a, a.loadFavorites()
	case "3":
		a.mode = modeDiscover
		return a, a.loadCatalog()
	case "4":
		a.mode = modeSettings
		return a, nil
	}

	switch a.mode {
	case modeHome:
		return a.handleHomeKey(msg)
	case modeFavorites:
		return a.handleFavoritesKey(msg)
	case modeDiscover:
		return a.handleDiscoverKey(msg)
	case modeSettings:
		return a.handleSettingsKey(msg)
	}
	return a, nil
}

func (a *App) handleHomeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "n":
		return a, a.nextQuote()
	case "r":
		return a, a.rotateQuote()
	case "f", " ":
		return a, a.toggleFavorite()
	case "s":
		if a.hasQuote {
			if err := share.Open(a.quote); err != nil {
				a.notice = "Could not open the browser."
				return a, clearNoticeAfter(4 * time.Second)
			}
		}
		return a, nil
	case "o":
		return a, func() tea.Msg {
			if err := a.auth.SignOut(a.ctx); err != nil {
				return noticeMsg("Sign out failed.")
			}
			return signedOutMsg{}
		}
	}
	return a, nil
}

func (a *App) handleFavoritesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if a.favCursor > 0 {
			a.favCursor--
		}
	case "down", "j":
		if a.favCursor < len(a.favList)-1 {
			a.favCursor++
		}
	case "x", "f":
		if a.favCursor < len(a.favList) {
			text := a.favList[a.favCursor].Text
			return a, tea.Sequence(
				func() tea.Msg {
					if err := a.favs.DeleteByText(a.ctx, text); err != nil {
						return noticeMsg("Could not remove the favorite.")
					}
					return nil
				},
				a.loadFavorites(),
			)
		}
	case "s":
		if a.favCursor < len(a.favList) {
			if err := share.Open(a.favList[a.favCursor]); err != nil {
				a.notice = "Could not open the browser."
				return a, clearNoticeAfter(4 * time.Second)
			}
		}
	}
	return a, nil
}

func (a *App) handleDiscoverKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if a.catCursor > 0 {
			a.catCursor--
		}
	case "down", "j":
		if a.catCursor < len(a.catalog)-1 {
			a.catCursor++
		}
	case "left", "h":
		a.category = (a.category + len(discover.Categories()) - 1) % len(discover.Categories())
		return a, a.loadCatalog()
	case "right", "l":
		a.category = (a.category + 1) % len(discover.Categories())
		return a, a.loadCatalog()
	case "/":
		a.searching = true
		a.searchInput.Focus()
		return a, textinput.Blink
	case "f":
		if a.catCursor < len(a.catalog) {
			c := a.catalog[a.catCursor]
			q := quote.Quote{Text: c.Text, Author: c.Author}
			return a, func() tea.Msg {
				if err := a.favs.Insert(a.ctx, q); err != nil {
					return noticeMsg("Could not save the favorite.")
				}
				return noticeMsg("Saved to favorites.")
			}
		}
	}
	return a, nil
}

func (a *App) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		a.searching = false
		a.searchInput.Blur()
		return a, a.loadCatalog()
	case tea.KeyEsc:
		a.searching = false
		a.searchInput.Blur()
		a.searchInput.SetValue("")
		return a, a.loadCatalog()
	}
	var cmd tea.Cmd
	a.searchInput, cmd = a.searchInput.Update(msg)
	return a, cmd
}

func (a *App) handleSettingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "e":
		a.notifEnabled = !a.notifEnabled
	case "up", "k":
		a.notifHour = (a.notifHour + 1) % 24
	case "down", "j":
		a.notifHour = (a.notifHour + 23) % 24
	case "right", "l":
		a.notifMinute = (a.notifMinute + 5) % 60
	case "left", "h":
		a.notifMinute = (a.notifMinute + 55) % 60
	case "enter":
		enabled, hour, minute := a.notifEnabled, a.notifHour, a.notifMinute
		return a, func() tea.Msg {
			if err := a.prefs.SetNotifications(enabled, hour, minute); err != nil {
				return noticeMsg("Could not save settings.")
			}
			return noticeMsg("Settings saved.")
		}
	}
	return a, nil
}

func (a *App) handleAuthKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.authBusy {
		return a, nil
	}

	switch msg.Type {
	case tea.KeyEsc:
		if a.mode == modeSignup {
			a.mode = modeLogin
		}
		return a, nil
	case tea.KeyTab, tea.KeyShiftTab:
		if a.mode != modeRecovery {
			a.toggleAuthFocus()
		}
		return a, textinput.Blink
	case tea.KeyEnter:
		return a.submitAuth()
	}

	// Mode switch shortcuts only apply outside the focused inputs' text, so
	// check for the control keys first and let everything else fall through
	// to the inputs.
	if msg.Type == tea.KeyCtrlU && a.mode == modeLogin {
		a.mode = modeSignup
		return a, nil
	}
	if msg.Type == tea.KeyCtrlR && a.mode == modeLogin {
		email := strings.TrimSpace(a.emailInput.Value())
		if email == "" {
			a.notice = "Enter your email first, then press ctrl+r to reset."
			return a, clearNoticeAfter(4 * time.Second)
		}
		a.authBusy = true
		return a, func() tea.Msg {
			if err := a.auth.ResetPassword(a.ctx, email); err != nil {
				return authDoneMsg{msg: auth.Categorize(err).Message()}
			}
			return authDoneMsg{msg: "Recovery email sent. Check your inbox."}
		}
	}

	var cmd tea.Cmd
	if a.mode == modeRecovery || a.focused == fieldPassword {
		a.passInput, cmd = a.passInput.Update(msg)
	} else {
		a.emailInput, cmd = a.emailInput.Update(msg)
	}
	return a, cmd
}

func (a *App) toggleAuthFocus() {
	if a.focused == fieldEmail {
		a.focused = fieldPassword
		a.emailInput.Blur()
		a.passInput.Focus()
	} else {
		a.focused = fieldEmail
		a.passInput.Blur()
		a.emailInput.Focus()
	}
}

func (a *App) submitAuth() (tea.Model, tea.Cmd) {
	email := strings.TrimSpace(a.emailInput.Value())
	password := a.passInput.Value()

	switch a.mode {
	case modeRecovery:
		if password == "" {
			return a, nil
		}
		a.authBusy = true
		return a, func() tea.Msg {
			if err := a.auth.UpdatePassword(a.ctx, password); err != nil {
				return authDoneMsg{msg: auth.Categorize(err).Message()}
			}
			return authDoneMsg{}
		}
	case modeSignup:
		if email == "" || password == "" {
			return a, nil
		}
		a.authBusy = true
		return a, func() tea.Msg {
			if err := a.auth.SignUp(a.ctx, email, password); err != nil {
				return authDoneMsg{msg: auth.Categorize(err).Message()}
			}
			return authDoneMsg{}
		}
	default:
		if email == "" || password == "" {
			return a, nil
		}
		a.authBusy = true
		return a, func() tea.Msg {
			if err := a.auth.SignIn(a.ctx, email, password); err != nil {
				return authDoneMsg{msg: auth.Categorize(err).Message()}
			}
			return authDoneMsg{}
		}
	}
}
