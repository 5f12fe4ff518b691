package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/hybra-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/hybra-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/hybra-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/hybra-cli/internal/adapters/driving/tui/views/explorer"
	"github.com/custodia-labs/hybra-cli/internal/adapters/driving/tui/views/sources"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	styles *styles.Styles
	keymap *keymap.KeyMap

	// sourcesView picks the data source to explore.
	sourcesView *sources.View

	// explorerView filters the records of the chosen source.
	explorerView *explorer.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// previousView is restored when leaving help.
	previousView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has received its first window size.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if ports == nil {
		return nil, fmt.Errorf("creating app: %w", ErrMissingDatasetService)
	}
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	return &App{
		ports:        ports,
		ctx:          context.Background(),
		styles:       s,
		keymap:       keymap.DefaultKeyMap(),
		sourcesView:  sources.NewView(s, ports.Dataset.Sources(), ports.Dataset.DataDir()),
		explorerView: explorer.NewView(s, ports.Dataset, ports.Filter, ports.Describe),
		currentView:  messages.ViewSources,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("hybra - dataset explorer"),
	)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		switch a.currentView {
		case messages.ViewSources:
			a.sourcesView, cmd = a.sourcesView.Update(msg)
		case messages.ViewExplorer:
			a.explorerView, cmd = a.explorerView.Update(msg)
		case messages.ViewHelp:
			if keymap.Matches(msg.String(), a.keymap.Back) || keymap.Matches(msg.String(), a.keymap.Help) {
				a.currentView = a.previousView
			}
		}
		return a, cmd

	case messages.SourceChosen:
		a.err = nil
		a.currentView = messages.ViewExplorer
		return a, a.explorerView.Open(a.ctx, msg.Source)

	case messages.ViewChanged:
		if msg.View == messages.ViewHelp {
			a.previousView = a.currentView
		}
		a.currentView = msg.View
		return a, nil

	case messages.RecordsLoaded:
		if msg.Err != nil {
			a.err = msg.Err
		}
		a.explorerView, cmd = a.explorerView.Update(msg)
		return a, cmd

	case messages.FilterApplied:
		if msg.Err != nil {
			a.err = msg.Err
		}
		a.explorerView, cmd = a.explorerView.Update(msg)
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	if a.currentView == messages.ViewExplorer {
		a.explorerView, cmd = a.explorerView.Update(msg)
	}
	return a, cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewExplorer:
		return a.explorerView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.sourcesView.View()
	}
}

// viewHelp lists every keybinding.
func (a *App) viewHelp() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Help"))
	b.WriteString("\n\n")
	for _, group := range a.keymap.FullHelp() {
		for _, binding := range group {
			h := binding.Help()
			fmt.Fprintf(&b, "  %-12s %s\n", h.Key, h.Desc)
		}
		b.WriteString("\n")
	}
	b.WriteString("Queries are comma separated terms, e.g. \"climate, energy\".\n\n")
	b.WriteString(a.styles.Help.Render("[esc] back"))
	return b.String()
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Explorer returns the record explorer view.
func (a *App) Explorer() *explorer.View {
	return a.explorerView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.sourcesView.SetDimensions(width, height)
	a.explorerView.SetDimensions(width, height)
}
