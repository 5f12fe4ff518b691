// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/hybra-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/hybra-cli/internal/core/domain"
)

// linesPerRecord is the height of one rendered record.
const linesPerRecord = 2

// RecordList displays records in a navigable list.
type RecordList struct {
	records  []domain.Record
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewRecordList creates a new record list component.
func NewRecordList(s *styles.Styles) *RecordList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &RecordList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// Update handles list navigation. Only arrow keys move the selection
// so that letters reach the query input.
func (r *RecordList) Update(msg tea.Msg) (*RecordList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		//nolint:exhaustive // handling only relevant key types
		switch msg.Type {
		case tea.KeyUp:
			r.MoveUp()
		case tea.KeyDown:
			r.MoveDown()
		case tea.KeyPgUp:
			r.SetSelected(max(r.selected-r.visibleCount(), 0))
		case tea.KeyPgDown:
			r.SetSelected(min(r.selected+r.visibleCount(), len(r.records)-1))
		}
	}
	return r, nil
}

// View renders the records around the selection.
func (r *RecordList) View() string {
	if len(r.records) == 0 {
		return r.styles.Muted.Render("No records")
	}

	visible := r.visibleCount()
	start := 0
	if r.selected >= visible {
		start = r.selected - visible + 1
	}
	end := min(start+visible, len(r.records))

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		lines = append(lines, r.renderRecord(i, &r.records[i]))
	}
	return strings.Join(lines, "\n")
}

func (r *RecordList) visibleCount() int {
	return max(r.height/linesPerRecord, 1)
}

// renderRecord formats one record as a header line and a text preview.
func (r *RecordList) renderRecord(index int, rec *domain.Record) string {
	indicator := "  "
	if index == r.selected {
		indicator = "> "
	}

	when := "undated"
	if rec.HasTimestamp() {
		when = rec.Timestamp.UTC().Format("2006-01-02 15:04")
	}
	creator := rec.Creator
	if creator == "" {
		creator = "(unknown)"
	}

	var header string
	if index == r.selected {
		header = r.styles.Selected.Render(fmt.Sprintf("%s%s  %s", indicator, when, creator))
	} else {
		header = r.styles.Normal.Render(indicator+when+"  ") + r.styles.Author.Render(creator)
	}
	if d := rec.Domain(); d != "" {
		header += "  " + r.styles.Domain.Render(d)
	}

	preview := strings.Join(strings.Fields(rec.TextContent), " ")
	preview = truncate(preview, max(r.width-6, 20))
	return header + "\n" + r.styles.Muted.Render("    "+preview)
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}

// SetRecords replaces the records and resets the selection.
func (r *RecordList) SetRecords(records []domain.Record) {
	r.records = records
	r.selected = 0
}

// Records returns the current records.
func (r *RecordList) Records() []domain.Record {
	return r.records
}

// Selected returns the index of the selected record.
func (r *RecordList) Selected() int {
	return r.selected
}

// SetSelected sets the selected index.
func (r *RecordList) SetSelected(index int) {
	if index >= 0 && index < len(r.records) {
		r.selected = index
	}
}

// SelectedRecord returns the currently selected record, or nil if none.
func (r *RecordList) SelectedRecord() *domain.Record {
	if len(r.records) == 0 {
		return nil
	}
	return &r.records[r.selected]
}

// MoveUp moves selection up.
func (r *RecordList) MoveUp() {
	if r.selected > 0 {
		r.selected--
	}
}

// MoveDown moves selection down.
func (r *RecordList) MoveDown() {
	if r.selected < len(r.records)-1 {
		r.selected++
	}
}

// SetDimensions sets the component dimensions.
func (r *RecordList) SetDimensions(width, height int) {
	r.width = width
	r.height = height
}

// Count returns the number of records.
func (r *RecordList) Count() int {
	return len(r.records)
}

// IsEmpty returns whether the list is empty.
func (r *RecordList) IsEmpty() bool {
	return len(r.records) == 0
}
