// Package tui is the terminal UI: login and recovery forms, the quote of the
// day, favorites, the discovery catalog, and notification settings.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Snehil208001/QuoteVault/internal/auth"
	"github.com/Snehil208001/QuoteVault/internal/config"
	"github.com/Snehil208001/QuoteVault/internal/discover"
	"github.com/Snehil208001/QuoteVault/internal/engine"
	"github.com/Snehil208001/QuoteVault/internal/favorites"
	"github.com/Snehil208001/QuoteVault/internal/favsync"
	"github.com/Snehil208001/QuoteVault/internal/prefs"
	"github.com/Snehil208001/QuoteVault/internal/quote"
	"github.com/Snehil208001/QuoteVault/internal/router"
)

type mode int

const (
	modeLogin mode = iota
	modeSignup
	modeRecovery
	modeHome
	modeFavorites
	modeDiscover
	modeSettings
)

type authField int

const (
	fieldEmail authField = iota
	fieldPassword
)

// RunOpts holds everything the TUI needs, constructed once in cmd and passed
// down; no globals.
type RunOpts struct {
	Cfg       *config.Config
	Engine    *engine.Engine
	Sync      *favsync.Sync
	Favorites *favorites.Store
	Prefs     *prefs.Store
	Auth      *auth.Client
	Discover  *discover.Client
	Route     router.Route
}

type App struct {
	cfg   *config.Config
	eng   *engine.Engine
	sync  *favsync.Sync
	favs  *favorites.Store
	prefs *prefs.Store
	auth  *auth.Client
	disc  *discover.Client

	ctx    context.Context
	cancel context.CancelFunc

	mode mode

	// Signal subscriptions bridged into tea messages.
	quoteCh   <-chan quote.Quote
	loadingCh <-chan bool
	favCh     <-chan bool

	// Home state
	quote     quote.Quote
	hasQuote  bool
	loading   bool
	favorited bool

	// Auth forms
	emailInput textinput.Model
	passInput  textinput.Model
	focused    authField
	authBusy   bool

	// Favorites list
	favList   []quote.Quote
	favCursor int

	// Discovery
	searchInput textinput.Model
	catalog     []discover.CatalogQuote
	catCursor   int
	category    int
	searching   bool

	// Settings scratch state, committed on save.
	notifEnabled bool
	notifHour    int
	notifMinute  int

	spinner spinner.Model
	notice  string
	width   int
	height  int
}

func NewApp(opts RunOpts) *App {
	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 100
	email.Focus()

	pass := textinput.New()
	pass.Placeholder = "password"
	pass.CharLimit = 100
	pass.EchoMode = textinput.EchoPassword

	search := textinput.New()
	search.Placeholder = "Search quotes..."
	search.CharLimit = 100

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = spinnerStyle

	startMode := modeLogin
	switch opts.Route {
	case router.RouteHome:
		startMode = modeHome
	case router.RoutePasswordReset:
		startMode = modeRecovery
	}

	ctx, cancel := context.WithCancel(context.Background())

	enabled, hour, minute := opts.Prefs.Notifications()

	return &App{
		cfg:          opts.Cfg,
		eng:          opts.Engine,
		sync:         opts.Sync,
		favs:         opts.Favorites,
		prefs:        opts.Prefs,
		auth:         opts.Auth,
		disc:         opts.Discover,
		ctx:          ctx,
		cancel:       cancel,
		mode:         startMode,
		emailInput:   email,
		passInput:    pass,
		searchInput:  search,
		spinner:      sp,
		notifEnabled: enabled,
		notifHour:    hour,
		notifMinute:  minute,
	}
}

func (a *App) Init() tea.Cmd {
	a.quoteCh = a.eng.Current.Subscribe(a.ctx)
	a.loadingCh = a.eng.Loading.Subscribe(a.ctx)
	a.favCh = a.sync.IsFavorite.Subscribe(a.ctx)

	go a.sync.Run(a.ctx)

	cmds := []tea.Cmd{
		a.spinner.Tick,
		waitQuote(a.quoteCh),
		waitLoading(a.loadingCh),
		waitFavorite(a.favCh),
	}
	if a.mode == modeHome {
		cmds = append(cmds, a.initializeEngine())
	}
	return tea.Batch(cmds...)
}

// waitQuote blocks on the engine's current-quote subscription and surfaces
// the next value as a message. Re-issued after every receive.
func waitQuote(ch <-chan quote.Quote) tea.Cmd {
	return func() tea.Msg {
		q, ok := <-ch
		if !ok {
			return nil
		}
		return quoteMsg(q)
	}
}

func waitLoading(ch <-chan bool) tea.Cmd {
	return func() tea.Msg {
		v, ok := <-ch
		if !ok {
			return nil
		}
		return loadingMsg(v)
	}
}

func waitFavorite(ch <-chan bool) tea.Cmd {
	return func() tea.Msg {
		v, ok := <-ch
		if !ok {
			return nil
		}
		return favoriteMsg(v)
	}
}

func (a *App) initializeEngine() tea.Cmd {
	return func() tea.Msg {
		a.eng.Initialize(a.ctx)
		return nil
	}
}

func (a *App) nextQuote() tea.Cmd {
	return func() tea.Msg {
		a.eng.NextQuote(a.ctx)
		return nil
	}
}

func (a *App) rotateQuote() tea.Cmd {
	return func() tea.Msg {
		a.eng.Rotate(a.ctx)
		return nil
	}
}

func (a *App) toggleFavorite() tea.Cmd {
	return func() tea.Msg {
		if err := a.sync.Toggle(a.ctx); err != nil {
			return noticeMsg("Could not update favorites. Try again.")
		}
		return nil
	}
}

func (a *App) loadFavorites() tea.Cmd {
	return func() tea.Msg {
		quotes, err := a.favs.All(a.ctx)
		if err != nil {
			return noticeMsg("Could not load favorites.")
		}
		return favoritesLoadedMsg{quotes: quotes}
	}
}

func (a *App) loadCatalog() tea.Cmd {
	category := discover.Categories()[a.category]
	search := a.searchInput.Value()
	return func() tea.Msg {
		quotes, err := a.disc.Quotes(a.ctx, category, search)
		if err != nil {
			return noticeMsg("Could not load the catalog.")
		}
		return catalogLoadedMsg{quotes: quotes}
	}
}

func clearNoticeAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return clearNoticeMsg{} })
}
