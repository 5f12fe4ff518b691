// Package sources provides the data source picker of the TUI.
package sources

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/hybra-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/hybra-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/hybra-cli/internal/adapters/driving/tui/styles"
)

// View lists the data sources and sends SourceChosen on enter.
type View struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	sources  []string
	dataDir  string
	selected int
	width    int
	height   int
}

// NewView creates the source picker.
func NewView(s *styles.Styles, sources []string, dataDir string) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:  s,
		keymap:  keymap.DefaultKeyMap(),
		sources: sources,
		dataDir: dataDir,
	}
}

// Init implements the view lifecycle.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles navigation and selection.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, nil
	}

	switch {
	case keymap.Matches(keyMsg.String(), v.keymap.Up):
		if v.selected > 0 {
			v.selected--
		}
	case keymap.Matches(keyMsg.String(), v.keymap.Down):
		if v.selected < len(v.sources)-1 {
			v.selected++
		}
	case keymap.Matches(keyMsg.String(), v.keymap.Select):
		if len(v.sources) == 0 {
			return v, nil
		}
		source := v.sources[v.selected]
		return v, func() tea.Msg {
			return messages.SourceChosen{Source: source}
		}
	case keymap.Matches(keyMsg.String(), v.keymap.Help):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewHelp}
		}
	case keymap.Matches(keyMsg.String(), v.keymap.Quit):
		return v, func() tea.Msg {
			return messages.Quit{}
		}
	}
	return v, nil
}

// View renders the source list.
func (v *View) View() string {
	var b strings.Builder
	b.WriteString(v.styles.Title.Render("hybra - data sources"))
	b.WriteString("\n")
	if v.dataDir != "" {
		b.WriteString(v.styles.Muted.Render(v.dataDir))
	} else {
		b.WriteString(v.styles.Error.Render("data directory not configured"))
	}
	b.WriteString("\n\n")

	if len(v.sources) == 0 {
		b.WriteString(v.styles.Muted.Render("No data sources registered"))
	}
	for i, source := range v.sources {
		if i == v.selected {
			b.WriteString(v.styles.Selected.Render(fmt.Sprintf("> %s", source)))
		} else {
			b.WriteString(v.styles.Normal.Render("  " + source))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("enter: open | ?: help | q: quit"))
	return b.String()
}

// Selected returns the highlighted source, or "" when there is none.
func (v *View) Selected() string {
	if len(v.sources) == 0 {
		return ""
	}
	return v.sources[v.selected]
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}
