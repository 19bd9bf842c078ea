package ui

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/maple/internal/logging"
	"github.com/five82/maple/internal/session"
	"github.com/five82/maple/internal/settings"
	"github.com/five82/maple/internal/state"
)

// View is the content shown below the header.
type View int

const (
	ViewScreen View = iota
	ViewLogs
)

const (
	themeSection = "ui"
	themeKey     = "theme"
)

// Options configure the UI.
type Options struct {
	Context  context.Context
	Events   <-chan session.Event
	Intents  chan<- session.Intent
	Store    *state.Store
	Settings settings.Store
	LogPath  string
	PollTick time.Duration
	Logger   *slog.Logger
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx      context.Context
	events   <-chan session.Event
	intents  chan<- session.Intent
	store    *state.Store
	settings settings.Store
	logPath  string
	pollTick time.Duration
	logger   *slog.Logger

	keys     keyMap
	theme    Theme
	screen   session.Screen
	view     View
	width    int
	height   int
	ready    bool
	showHelp bool

	snapshot    state.Snapshot
	loginState  state.LoginState
	account     string
	pending     session.LoginPending
	lastErr     error
	items       []session.SidebarItem
	cursor      int
	highlighted int
	details     *session.ServerDetailsReady

	spinner        spinner.Model
	detailViewport viewport.Model
	logViewport    viewport.Model
	logState       logState
}

// New creates the root model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	pollTick := opts.PollTick
	if pollTick <= 0 {
		pollTick = DefaultUIInterval
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	themeName := ""
	if opts.Settings != nil {
		if name, ok, err := opts.Settings.Get(themeSection, themeKey); err != nil {
			logger.Warn("could not read theme preference", "error", err)
		} else if ok {
			themeName = name
		}
	}

	return Model{
		ctx:         ctx,
		events:      opts.Events,
		intents:     opts.Intents,
		store:       opts.Store,
		settings:    opts.Settings,
		logPath:     opts.LogPath,
		pollTick:    pollTick,
		logger:      logger,
		keys:        defaultKeyMap(),
		theme:       GetTheme(themeName),
		screen:      session.ScreenLogin,
		highlighted: -1,
		spinner:     spinner.New(spinner.WithSpinner(spinner.Dot)),
		logState:    logState{follow: true},
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		waitForEvent(m.events),
		m.sendIntent(session.AppStarted{}),
		tickCmd(m.pollTick),
		m.spinner.Tick,
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resizeViewports()
		m.updateDetailViewport()
		m.updateLogViewport()
		return m, nil

	case eventMsg:
		m.apply(msg.event)
		return m, waitForEvent(m.events)

	case eventsClosedMsg:
		return m, tea.Quit

	case tickMsg:
		cmds := []tea.Cmd{tickCmd(m.pollTick)}
		if m.store != nil {
			m.snapshot = m.store.Snapshot()
		}
		if m.view == ViewLogs {
			cmds = append(cmds, tailLogCmd(m.logPath))
		}
		return m, tea.Batch(cmds...)

	case logTailMsg:
		m.handleLogTail(msg)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

// apply folds a controller event into the model.
func (m *Model) apply(ev session.Event) {
	switch ev := ev.(type) {
	case session.ScreenChanged:
		m.screen = ev.Screen
		if ev.Screen == session.ScreenLogin {
			m.items = nil
			m.details = nil
			m.cursor = 0
			m.highlighted = -1
		}
	case session.SidebarItemsReady:
		m.items = ev.Items
		if m.cursor >= len(m.items) {
			m.cursor = max(len(m.items)-1, 0)
		}
		if len(m.items) == 0 {
			m.details = nil
			m.highlighted = -1
		}
	case session.SidebarItemHighlighted:
		m.highlighted = ev.Index
	case session.LoginPending:
		m.pending = ev
	case session.LoginStateChanged:
		m.loginState = ev.State
		m.account = ev.Account
		if ev.State != state.LoggingIn {
			m.pending = session.LoginPending{}
		}
		if ev.State == state.LoggedIn {
			m.lastErr = nil
		}
	case session.ServerDetailsReady:
		details := ev
		m.details = &details
		m.updateDetailViewport()
	case session.ErrorReported:
		m.lastErr = ev.Err
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderHeader() + "\n" + m.renderCommandBar() + "\n" + m.renderContent()
}

func (m Model) renderContent() string {
	if m.view == ViewLogs {
		return m.renderLogs()
	}
	if m.screen == session.ScreenMain {
		return m.renderMainScreen()
	}
	return m.renderLoginScreen()
}

func (m *Model) resizeViewports() {
	// The detail pane sits inside a bordered box next to the sidebar.
	detailWidth := max(m.width-sidebarWidth-2, 10)
	contentHeight := max(m.height-2, 3)
	if m.detailViewport.Width == 0 {
		m.detailViewport = viewport.New(detailWidth, contentHeight-2)
	}
	m.detailViewport.Width = detailWidth
	m.detailViewport.Height = contentHeight - 2
	if m.logViewport.Width == 0 {
		m.logViewport = viewport.New(m.width, contentHeight-1)
	}
	m.logViewport.Width = m.width
	m.logViewport.Height = contentHeight - 1
}

func (m Model) sendIntent(intent session.Intent) tea.Cmd {
	intents, ctx := m.intents, m.ctx
	if intents == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case intents <- intent:
		case <-ctx.Done():
		}
		return nil
	}
}

func (m *Model) cycleTheme() {
	m.theme = GetTheme(NextTheme(m.theme.Name))
	if m.settings == nil {
		return
	}
	if err := m.settings.Set(themeSection, themeKey, m.theme.Name); err != nil {
		m.logger.Warn("could not save theme preference", "error", err)
	}
}

// Messages

type eventMsg struct {
	event session.Event
}

type eventsClosedMsg struct{}

type tickMsg time.Time

// Commands

func waitForEvent(events <-chan session.Event) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return eventsClosedMsg{}
		}
		return eventMsg{event: ev}
	}
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Run starts the Bubble Tea program and blocks until the user quits or ctx
// is cancelled.
func Run(opts Options) error {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	p := tea.NewProgram(New(opts), tea.WithAltScreen(), tea.WithContext(opts.Context))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && opts.Context.Err() != nil {
		return nil
	}
	return err
}
