// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/hybra-cli/internal/core/domain"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewSources lists the data sources.
	ViewSources ViewType = iota
	// ViewExplorer filters the records of one source.
	ViewExplorer
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewSources:
		return "sources"
	case ViewExplorer:
		return "explorer"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// SourceChosen is sent when a data source is picked from the list.
type SourceChosen struct {
	Source string
}

// RecordsLoaded carries the records of a source back to the model.
type RecordsLoaded struct {
	Source  string
	Records []domain.Record
	Summary *domain.DatasetSummary
	Err     error
}

// FilterApplied carries the records selected by a query.
type FilterApplied struct {
	Query   string
	Records []domain.Record
	Err     error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
