package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Snehil208001/QuoteVault/internal/discover"
)

// Run starts the TUI and blocks until the user quits.
func Run(opts RunOpts) error {
	app := NewApp(opts)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running tui: %w", err)
	}
	return nil
}

func (a *App) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("QuoteVault"))
	b.WriteString("\n\n")

	switch a.mode {
	case modeLogin, modeSignup:
		b.WriteString(a.viewAuth())
	case modeRecovery:
		b.WriteString(a.viewRecovery())
	case modeHome:
		b.WriteString(a.viewHome())
	case modeFavorites:
		b.WriteString(a.viewFavorites())
	case modeDiscover:
		b.WriteString(a.viewDiscover())
	case modeSettings:
		b.WriteString(a.viewSettings())
	}

	if a.notice != "" {
		b.WriteString("\n")
		b.WriteString(noticeStyle.Render(a.notice))
		b.WriteString("\n")
	}

	account := "signed out"
	if email, ok := a.auth.CurrentEmail(); ok {
		account = email
	}
	b.WriteString("\n")
	b.WriteString(renderStatusBar(account, a.helpHints(), a.width))
	return b.String()
}

func (a *App) viewTabs() string {
	tabs := []struct {
		label string
		m     mode
	}{
		{"[1] Today", modeHome},
		{"[2] Favorites", modeFavorites},
		{"[3] Discover", modeDiscover},
		{"[4] Settings", modeSettings},
	}
	parts := make([]string, 0, len(tabs))
	for _, t := range tabs {
		if t.m == a.mode {
			parts = append(parts, tabActiveStyle.Render(t.label))
		} else {
			parts = append(parts, tabStyle.Render(t.label))
		}
	}
	return " " + strings.Join(parts, "  ") + "\n\n"
}

func (a *App) viewAuth() string {
	var b strings.Builder

	heading := "Sign in"
	if a.mode == modeSignup {
		heading = "Create account"
	}
	b.WriteString(" " + labelStyle.Render(heading) + "\n\n")

	b.WriteString(" " + a.emailInput.View() + "\n")
	b.WriteString(" " + a.passInput.View() + "\n")

	if a.authBusy {
		b.WriteString("\n " + a.spinner.View() + " working...\n")
	}
	return b.String()
}

func (a *App) viewRecovery() string {
	var b strings.Builder
	b.WriteString(" " + labelStyle.Render("Choose a new password") + "\n\n")
	b.WriteString(" " + a.passInput.View() + "\n")
	if a.authBusy {
		b.WriteString("\n " + a.spinner.View() + " working...\n")
	}
	return b.String()
}

func (a *App) viewHome() string {
	var b strings.Builder
	b.WriteString(a.viewTabs())

	switch {
	case a.loading && !a.hasQuote:
		b.WriteString(" " + a.spinner.View() + " fetching today's quote...\n")
	case !a.hasQuote:
		b.WriteString(" " + labelStyle.Render("No quote yet.") + "\n")
	default:
		width := a.width - 8
		if width < 20 || width > 72 {
			width = 72
		}
		card := lipgloss.JoinVertical(lipgloss.Left,
			quoteTextStyle.Width(width).Render("“"+a.quote.Text+"”"),
			"",
			quoteAuthorStyle.Width(width).Render("— "+a.quote.Author),
		)
		b.WriteString(quoteCardStyle.Render(card))
		b.WriteString("\n\n ")
		if a.favorited {
			b.WriteString(heartOnStyle.Render("♥ favorited"))
		} else {
			b.WriteString(heartOffStyle.Render("♡ not favorited"))
		}
		if a.loading {
			b.WriteString("   " + a.spinner.View() + " refreshing")
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (a *App) viewFavorites() string {
	var b strings.Builder
	b.WriteString(a.viewTabs())

	if len(a.favList) == 0 {
		b.WriteString(" " + labelStyle.Render("No favorites yet. Press f on a quote to save it.") + "\n")
		return b.String()
	}

	for i, q := range a.favList {
		line := fmt.Sprintf("%q — %s", q.Text, q.Author)
		if i == a.favCursor {
			b.WriteString(listSelectedStyle.Render("> "+line) + "\n")
		} else {
			b.WriteString(listItemStyle.Render(line) + "\n")
		}
	}
	return b.String()
}

func (a *App) viewDiscover() string {
	var b strings.Builder
	b.WriteString(a.viewTabs())

	cats := discover.Categories()
	parts := make([]string, 0, len(cats))
	for i, c := range cats {
		if i == a.category {
			parts = append(parts, categoryActiveStyle.Render(c))
		} else {
			parts = append(parts, tabStyle.Render(c))
		}
	}
	b.WriteString(" " + strings.Join(parts, " · ") + "\n\n")

	if a.searching {
		b.WriteString(" " + a.searchInput.View() + "\n\n")
	} else if v := a.searchInput.Value(); v != "" {
		b.WriteString(" " + labelStyle.Render("search: "+v) + "\n\n")
	}

	if len(a.catalog) == 0 {
		b.WriteString(" " + labelStyle.Render("Nothing here.") + "\n")
		return b.String()
	}

	for i, q := range a.catalog {
		line := fmt.Sprintf("%q — %s", q.Text, q.Author)
		if i == a.catCursor {
			b.WriteString(listSelectedStyle.Render("> "+line) + "\n")
		} else {
			b.WriteString(listItemStyle.Render(line) + "\n")
		}
	}
	return b.String()
}

func (a *App) viewSettings() string {
	var b strings.Builder
	b.WriteString(a.viewTabs())

	if email, ok := a.auth.CurrentEmail(); ok {
		b.WriteString(" " + labelStyle.Render("Signed in as:") + "  " + email + "\n\n")
	}

	state := "off"
	if a.notifEnabled {
		state = "on"
	}
	b.WriteString(fmt.Sprintf(" %s  %s\n", labelStyle.Render("Daily notification:"), state))
	b.WriteString(fmt.Sprintf(" %s  %02d:%02d\n", labelStyle.Render("Delivery time:   "), a.notifHour, a.notifMinute))
	b.WriteString("\n " + labelStyle.Render("Theme: "+a.cfg.Theme) + "\n")
	return b.String()
}

func (a *App) helpHints() string {
	var keys string
	switch a.mode {
	case modeLogin:
		keys = "enter sign in · tab switch field · ctrl+u sign up · ctrl+r reset password · ctrl+c quit"
	case modeSignup:
		keys = "enter create account · tab switch field · esc back · ctrl+c quit"
	case modeRecovery:
		keys = "enter save password · ctrl+c quit"
	case modeHome:
		keys = "n new · r rotate · f favorite · s share · o sign out · 1-4 views · q quit"
	case modeFavorites:
		keys = "j/k move · x remove · s share · 1-4 views · q quit"
	case modeDiscover:
		if a.searching {
			keys = "enter search · esc clear"
		} else {
			keys = "h/l category · j/k move · / search · f favorite · 1-4 views · q quit"
		}
	case modeSettings:
		keys = "e toggle · j/k hour · h/l minute · enter save · 1-4 views · q quit"
	}
	return keys
}
