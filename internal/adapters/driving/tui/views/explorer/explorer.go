// Package explorer provides the record explorer of the TUI: a query
// input over the records of one source, a record list and a status bar.
package explorer

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/hybra-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/hybra-cli/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/hybra-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/hybra-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/hybra-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/hybra-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/hybra-cli/internal/core/domain"
	"github.com/custodia-labs/hybra-cli/internal/core/ports/driving"
)

// chromeHeight is the number of lines used by everything but the list.
const chromeHeight = 7

// View filters the records of one source as the user types queries.
type View struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	dataset  driving.DatasetService
	filter   driving.FilterService
	describe driving.DescribeService

	input *input.QueryInput
	list  *list.RecordList
	bar   *status.Bar

	source  string
	records []domain.Record
	summary *domain.DatasetSummary
	query   domain.TextQuery
	err     error
	width   int
	height  int
}

// NewView creates the explorer. describe may be nil.
func NewView(
	s *styles.Styles,
	dataset driving.DatasetService,
	filter driving.FilterService,
	describe driving.DescribeService,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	km := keymap.DefaultKeyMap()
	return &View{
		styles:   s,
		keymap:   km,
		dataset:  dataset,
		filter:   filter,
		describe: describe,
		input:    input.NewQueryInput(s),
		list:     list.NewRecordList(s),
		bar:      status.NewBar(s, km),
		query:    domain.NewTextQuery(),
	}
}

// Open resets the explorer for source and starts loading its records.
func (v *View) Open(ctx context.Context, source string) tea.Cmd {
	v.source = source
	v.records = nil
	v.summary = nil
	v.err = nil
	v.query = domain.NewTextQuery()
	v.input.Reset()
	v.list.SetRecords(nil)
	v.bar.Clear()
	v.bar.SetSource(source)
	v.bar.SetState(status.StateLoading)

	return tea.Batch(v.input.Init(), v.loadCmd(ctx, source))
}

func (v *View) loadCmd(ctx context.Context, source string) tea.Cmd {
	dataset, describe := v.dataset, v.describe
	return func() tea.Msg {
		records, err := dataset.Load(ctx, source, domain.LoadOptions{})
		msg := messages.RecordsLoaded{Source: source, Records: records, Err: err}
		if err == nil && describe != nil {
			summary := describe.Describe(records)
			msg.Summary = &summary
		}
		return msg
	}
}

func (v *View) filterCmd(raw string) tea.Cmd {
	records, filter := v.records, v.filter
	query := v.query
	query.Terms = input.SplitTerms(raw)
	return func() tea.Msg {
		if query.IsZero() {
			return messages.FilterApplied{Query: raw, Records: records}
		}
		return messages.FilterApplied{Query: raw, Records: filter.FilterText(records, query)}
	}
}

// Update handles loading results, queries and key presses.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.RecordsLoaded:
		if msg.Source != v.source {
			return v, nil
		}
		if msg.Err != nil {
			v.setError(msg.Err)
			return v, nil
		}
		v.records = msg.Records
		v.summary = msg.Summary
		v.showRecords(msg.Records)
		return v, nil

	case messages.FilterApplied:
		if msg.Err != nil {
			v.setError(msg.Err)
			return v, nil
		}
		v.showRecords(msg.Records)
		return v, nil

	case tea.KeyMsg:
		return v.handleKey(msg)
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch {
	case keymap.Matches(msg.String(), v.keymap.Back):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewSources}
		}
	case keymap.Matches(msg.String(), v.keymap.Select):
		if v.bar.State() == status.StateLoading {
			return v, nil
		}
		return v, v.filterCmd(v.input.Value())
	case keymap.Matches(msg.String(), v.keymap.WordMode):
		v.query.Substrings = !v.query.Substrings
		v.bar.SetMode(v.mode())
		return v, v.filterCmd(v.input.Value())
	case keymap.Matches(msg.String(), v.keymap.AnyTerm):
		v.query.Inclusive = !v.query.Inclusive
		v.bar.SetMode(v.mode())
		return v, v.filterCmd(v.input.Value())
	case msg.Type == tea.KeyUp, msg.Type == tea.KeyDown,
		msg.Type == tea.KeyPgUp, msg.Type == tea.KeyPgDown:
		v.list, _ = v.list.Update(msg)
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *View) showRecords(records []domain.Record) {
	v.err = nil
	v.list.SetRecords(records)
	v.bar.SetCounts(len(records), len(v.records))
	v.bar.SetMode(v.mode())
	v.bar.SetState(status.StateResults)
}

func (v *View) setError(err error) {
	v.err = err
	v.bar.SetMessage(err.Error())
	v.bar.SetState(status.StateError)
}

// mode describes the match mode, e.g. "substrings, all".
func (v *View) mode() string {
	match, need := "words", "any"
	if v.query.Substrings {
		match = "substrings"
	}
	if v.query.Inclusive {
		need = "all"
	}
	return match + ", " + need
}

// View renders the explorer.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render(v.source))
	if v.summary != nil {
		b.WriteString(v.styles.Muted.Render(summaryLine(v.summary)))
	}
	b.WriteString("\n")
	b.WriteString(v.input.View())
	b.WriteString("\n\n")
	b.WriteString(v.list.View())

	body := b.String()
	if v.height > 0 {
		body = lipgloss.NewStyle().Height(v.height - 1).Render(body)
	}
	return body + "\n" + v.bar.View()
}

func summaryLine(s *domain.DatasetSummary) string {
	var b strings.Builder
	b.WriteString("  ")
	b.WriteString(plural(s.Posts, "post"))
	b.WriteString(", ")
	b.WriteString(plural(s.Authors, "author"))
	if !s.First.IsZero() {
		b.WriteString(", ")
		b.WriteString(s.First.UTC().Format("2006-01-02"))
		b.WriteString(" to ")
		b.WriteString(s.Last.UTC().Format("2006-01-02"))
	}
	return b.String()
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

// SetDimensions sizes the input, list and status bar.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.input.SetWidth(width)
	v.list.SetDimensions(width, max(height-chromeHeight, 2))
	v.bar.SetWidth(width)
}

// Source returns the source being explored.
func (v *View) Source() string {
	return v.source
}

// Records returns every loaded record of the source.
func (v *View) Records() []domain.Record {
	return v.records
}

// Shown returns the records currently listed.
func (v *View) Shown() []domain.Record {
	return v.list.Records()
}

// Query returns the match settings of the next filter.
func (v *View) Query() domain.TextQuery {
	return v.query
}

// Err returns the last load or filter error.
func (v *View) Err() error {
	return v.err
}
