package tui

import (
	"context"
	"errors"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/starford/petdesk/internal/createpet"
	"github.com/starford/petdesk/internal/debounce"
	"github.com/starford/petdesk/internal/nav"
	"github.com/starford/petdesk/internal/petlist"
)

// Backend is the remote resource used by both pages. *petapi.Client
// satisfies it.
type Backend interface {
	petlist.Store
	createpet.Creator
}

type page interface {
	Init() tea.Cmd
	Update(msg tea.Msg) tea.Cmd
	View() string
	// capturesText reports whether plain keys are being typed into an input.
	capturesText() bool
}

// Option configures an App.
type Option func(*App)

// WithLogger sets the logger passed to every page.
func WithLogger(l *slog.Logger) Option {
	return func(a *App) {
		a.logger = l
	}
}

// App is the root Bubble Tea model. It routes between the list and the create
// page and implements nav.Navigator for them.
type App struct {
	ctx     context.Context
	backend Backend
	terms   *debounce.Debouncer[string]
	logger  *slog.Logger
	styles  Styles

	history []string
	page    page
	pageSeq uint64
	// pending holds the init command of a page entered during Update.
	pending tea.Cmd
	size    *tea.WindowSizeMsg
}

// NewApp creates the application positioned on the list route.
func NewApp(ctx context.Context, backend Backend, terms *debounce.Debouncer[string], opts ...Option) *App {
	a := &App{
		ctx:     ctx,
		backend: backend,
		terms:   terms,
		logger:  slog.Default(),
		styles:  DefaultStyles(),
		history: []string{nav.RouteList},
	}
	for _, opt := range opts {
		opt(a)
	}
	a.page = a.build(nav.RouteList)
	return a
}

// Current returns the active route.
func (a *App) Current() string {
	return a.history[len(a.history)-1]
}

// History returns the route stack, oldest first.
func (a *App) History() []string {
	return append([]string(nil), a.history...)
}

// NavigateTo switches to path. With Replace the current history entry is
// overwritten instead of pushed. The new page starts fresh.
func (a *App) NavigateTo(path string, opts nav.Options) {
	if opts.Replace {
		a.history[len(a.history)-1] = path
	} else {
		a.history = append(a.history, path)
	}
	a.logger.Debug("tui: navigate", slog.String("path", path), slog.Bool("replace", opts.Replace))

	// A half-typed search must not settle into the next page.
	a.terms.Cancel()
	a.page = a.build(path)
	cmds := []tea.Cmd{a.pending, a.page.Init()}
	if a.size != nil {
		cmds = append(cmds, a.page.Update(*a.size))
	}
	a.pending = tea.Batch(cmds...)
}

func (a *App) build(path string) page {
	a.pageSeq++
	switch path {
	case nav.RouteCreate:
		return newCreatePage(a.ctx, a.pageSeq, a.backend, a, a.styles, a.logger)
	case nav.RouteList:
	default:
		a.logger.Warn("tui: unknown route, showing list", slog.String("path", path))
	}
	return newListPage(a.ctx, a.pageSeq, a.backend, a.terms, a, a.styles, a.logger)
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.page.Init(), waitForTerm(a.terms.C()))
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return a, tea.Quit
		case "q":
			if !a.page.capturesText() {
				return a, tea.Quit
			}
		}
	case tea.WindowSizeMsg:
		a.size = &msg
	case termSettled:
		cmds = append(cmds, waitForTerm(a.terms.C()))
	}

	cmds = append(cmds, a.page.Update(msg))
	if a.pending != nil {
		cmds = append(cmds, a.pending)
		a.pending = nil
	}
	return a, tea.Batch(cmds...)
}

func (a *App) View() string {
	return a.page.View()
}

// Run starts the terminal program and blocks until the user quits or ctx is
// cancelled.
func Run(ctx context.Context, backend Backend, debounceDelay time.Duration, logger *slog.Logger) error {
	terms := debounce.New[string](debounceDelay)
	defer terms.Close()

	app := NewApp(ctx, backend, terms, WithLogger(logger))
	_, err := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil && errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
