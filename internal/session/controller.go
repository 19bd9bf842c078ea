package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/five82/maple/internal/logging"
	"github.com/five82/maple/internal/plextv"
	"github.com/five82/maple/internal/settings"
	"github.com/five82/maple/internal/state"
)

const (
	maxPinAttempts  = 128
	pinPollInterval = time.Second

	tokenSection = "plextv"
	tokenKey     = "token"
)

var (
	// ErrUnknownMenuItem is returned for a selection outside the sidebar.
	ErrUnknownMenuItem = errors.New("unknown menu item")
	// ErrLoginAborted wraps a failure that ended a pin login early.
	ErrLoginAborted = errors.New("login aborted")
)

// Options configure NewController.
type Options struct {
	Account  plextv.AccountAPI
	Settings settings.Store
	Store    *state.Store
	Events   chan<- Event
	Open     Opener
	Clock    Clock
	Logger   *slog.Logger

	StrongPin    bool
	IncludeHTTPS bool
	IncludeRelay bool
	IncludeIPv6  bool
	// Server configures the per-server clients built from resources.
	Server plextv.ServerOptions
}

// Controller turns intents into plex.tv calls and events. It is the only
// writer of the shared state.Store.
type Controller struct {
	account  plextv.AccountAPI
	settings settings.Store
	store    *state.Store
	events   chan<- Event
	open     Opener
	clock    Clock
	logger   *slog.Logger

	strongPin    bool
	includeHTTPS bool
	includeRelay bool
	includeIPv6  bool
	serverOpts   plextv.ServerOptions

	sidebar *Sidebar
}

// NewController builds a controller. Nil collaborators fall back to
// harmless defaults except Account, Settings and Events, which are required.
func NewController(opts Options) *Controller {
	c := &Controller{
		account:      opts.Account,
		settings:     opts.Settings,
		store:        opts.Store,
		events:       opts.Events,
		open:         opts.Open,
		clock:        opts.Clock,
		logger:       opts.Logger,
		strongPin:    opts.StrongPin,
		includeHTTPS: opts.IncludeHTTPS,
		includeRelay: opts.IncludeRelay,
		includeIPv6:  opts.IncludeIPv6,
		serverOpts:   opts.Server,
	}
	if c.store == nil {
		c.store = &state.Store{}
	}
	if c.open == nil {
		c.open = func(string) error { return nil }
	}
	if c.clock == nil {
		c.clock = RealClock()
	}
	if c.logger == nil {
		c.logger = logging.Discard()
	}
	if c.serverOpts.Logger == nil {
		c.serverOpts.Logger = c.logger
	}
	return c
}

// Store returns the snapshot store the controller writes.
func (c *Controller) Store() *state.Store {
	return c.store
}

// Run handles intents one at a time until ctx is cancelled or intents is
// closed. A failing intent is logged and reported; the loop keeps running.
func (c *Controller) Run(ctx context.Context, intents <-chan Intent) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case intent, ok := <-intents:
			if !ok {
				return nil
			}
			if err := c.Handle(ctx, intent); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				c.handleError(ctx, err)
			}
		}
	}
}

// Handle processes a single intent.
func (c *Controller) Handle(ctx context.Context, intent Intent) error {
	c.logger.Debug("handling intent", "intent", fmt.Sprintf("%T", intent))
	switch in := intent.(type) {
	case AppStarted:
		return c.start(ctx)
	case LoginRequested:
		return c.login(ctx)
	case LogoutRequested:
		c.logout(ctx)
		return nil
	case MenuItemSelected:
		return c.selectItem(ctx, in.Index)
	}
	return fmt.Errorf("unsupported intent %T", intent)
}

func (c *Controller) start(ctx context.Context) error {
	token, ok, err := c.settings.Get(tokenSection, tokenKey)
	if err != nil {
		c.logger.Warn("could not read stored token", "error", err)
	}
	if !ok || token == "" {
		c.showLogin(ctx)
		return nil
	}
	c.logger.Info("using stored plex.tv token")
	c.account.SetToken(token)
	return c.enterMain(ctx)
}

func (c *Controller) showLogin(ctx context.Context) {
	c.emit(ctx, LoginStateChanged{State: state.LoggedOut})
	c.emit(ctx, ScreenChanged{Screen: ScreenLogin})
}

func (c *Controller) login(ctx context.Context) error {
	pin, err := c.account.CreatePin(ctx, c.strongPin)
	if err != nil {
		return fmt.Errorf("create pin: %w", err)
	}
	linkURL := c.account.LinkURL(pin)
	c.store.BeginLogin(linkURL, pin.Code)
	c.emit(ctx, LoginStateChanged{State: state.LoggingIn})
	c.emit(ctx, LoginPending{URL: linkURL, Code: pin.Code, ExpiresAt: pin.ParsedExpiresAt()})

	if err := c.open(linkURL); err != nil {
		c.logger.Warn("could not open browser", "url", linkURL, "error", err)
	}

	token, err := c.waitForToken(ctx, pin)
	if err != nil {
		// handleError reports the cause before the LoggedOut transition.
		c.store.AbandonLogin()
		return fmt.Errorf("%w: %w", ErrLoginAborted, err)
	}
	if token == "" {
		c.logger.Info("pin was not confirmed in time", "attempts", maxPinAttempts)
		c.store.AbandonLogin()
		c.emit(ctx, LoginStateChanged{State: state.LoggedOut})
		return nil
	}

	if err := c.settings.Set(tokenSection, tokenKey, token); err != nil {
		c.logger.Warn("could not persist token", "error", err)
	}
	c.account.SetToken(token)
	c.logger.Info("linked with plex.tv")
	return c.enterMain(ctx)
}

// waitForToken polls pin until it carries a token or maxPinAttempts polls
// went unanswered. An empty token with a nil error means the attempts ran out.
func (c *Controller) waitForToken(ctx context.Context, pin *plextv.Pin) (string, error) {
	for attempt := 1; attempt <= maxPinAttempts; attempt++ {
		status, err := c.account.PollPin(ctx, pin)
		if err != nil {
			return "", fmt.Errorf("poll pin (attempt %d): %w", attempt, err)
		}
		if status.Authenticated() {
			c.logger.Debug("pin confirmed", "attempt", attempt)
			return status.AuthToken, nil
		}
		c.logger.Log(ctx, logging.LevelTrace, "pin not confirmed yet", "attempt", attempt)
		if attempt == maxPinAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-c.clock.After(pinPollInterval):
		}
	}
	return "", nil
}

func (c *Controller) enterMain(ctx context.Context) error {
	account := ""
	user, err := c.account.AccountProfile(ctx)
	switch {
	case err == nil:
		account = user.DisplayName()
	case plextv.IsUnauthorized(err):
		return fmt.Errorf("account profile: %w", err)
	default:
		c.logger.Warn("could not load account profile", "error", err)
	}

	c.store.CompleteLogin(account)
	c.emit(ctx, LoginStateChanged{State: state.LoggedIn, Account: account})
	c.emit(ctx, ScreenChanged{Screen: ScreenMain})
	return c.refreshServers(ctx)
}

func (c *Controller) refreshServers(ctx context.Context) error {
	resources, err := c.account.ListResources(ctx, c.includeHTTPS, c.includeRelay, c.includeIPv6)
	if err != nil {
		return fmt.Errorf("list resources: %w", err)
	}

	var clients []*plextv.ServerClient
	for _, res := range resources {
		caps, unknown := res.Capabilities()
		if len(unknown) > 0 {
			c.logger.Warn("unknown resource capabilities", "resource", res.Name, "provides", unknown)
		}
		if !caps.Has(plextv.CapServer) {
			continue
		}
		srv, err := plextv.NewServerClient(res, c.serverOpts)
		if err != nil {
			c.logger.Warn("skipping server", "server", res.Name, "error", err)
			continue
		}
		clients = append(clients, srv)
	}

	c.sidebar = NewSidebar(c.fetchProviders(ctx, clients))
	c.store.SetServers(c.sidebar.Servers())
	c.emit(ctx, SidebarItemsReady{Items: c.sidebar.Items()})
	c.logger.Info("servers refreshed", "servers", len(clients), "items", c.sidebar.Len())
	return nil
}

// fetchProviders asks every server for its media providers concurrently. Servers that
// fail are left out; the order of clients is kept.
func (c *Controller) fetchProviders(ctx context.Context, clients []*plextv.ServerClient) []ServerEntry {
	results := make([]*ServerEntry, len(clients))
	var wg sync.WaitGroup
	for i, srv := range clients {
		wg.Add(1)
		go func() {
			defer wg.Done()
			providers, err := srv.MediaProviders(ctx)
			if err != nil {
				c.logger.Warn("omitting server", "server", srv.Name(), "relay", srv.IsRelay(), "error", err)
				return
			}
			results[i] = &ServerEntry{Server: srv, Providers: providers}
		}()
	}
	wg.Wait()

	var entries []ServerEntry
	for _, entry := range results {
		if entry != nil {
			entries = append(entries, *entry)
		}
	}
	return entries
}

func (c *Controller) selectItem(ctx context.Context, index int) error {
	entry, ok := c.sidebar.Entry(index)
	if !ok {
		return fmt.Errorf("select %d: %w", index, ErrUnknownMenuItem)
	}
	c.emit(ctx, SidebarItemHighlighted{Index: index})

	switch e := entry.(type) {
	case ServerEntry:
		c.emit(ctx, ServerDetailsReady{Index: index, Server: e.Server.Name(), Relay: e.Server.IsRelay(), Providers: e.Providers})
	case LibraryEntry:
		parent, _ := c.sidebar.Entry(e.Parent)
		if srv, ok := parent.(ServerEntry); ok {
			c.emit(ctx, ServerDetailsReady{Index: e.Parent, Server: srv.Server.Name(), Relay: srv.Server.IsRelay(), Providers: srv.Providers})
		}
	}
	return nil
}

func (c *Controller) logout(ctx context.Context) {
	c.account.SetToken("")
	if err := c.settings.Set(tokenSection, tokenKey, ""); err != nil {
		c.logger.Warn("could not clear stored token", "error", err)
	}
	c.sidebar = nil
	c.store.Logout()
	c.emit(ctx, SidebarItemsReady{})
	c.showLogin(ctx)
}

func (c *Controller) handleError(ctx context.Context, err error) {
	c.store.RecordError(err)
	c.emit(ctx, ErrorReported{Err: err})
	if plextv.IsUnauthorized(err) {
		c.logger.Warn("plex.tv rejected the token, logging out", "error", err)
		c.logout(ctx)
		return
	}
	c.logger.Error("intent failed", "error", err)
	if errors.Is(err, ErrLoginAborted) {
		c.emit(ctx, LoginStateChanged{State: state.LoggedOut})
	}
}

func (c *Controller) emit(ctx context.Context, ev Event) {
	select {
	case c.events <- ev:
	case <-ctx.Done():
	}
}
