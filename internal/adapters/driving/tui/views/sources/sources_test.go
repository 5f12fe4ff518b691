package sources

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/hybra-cli/internal/adapters/driving/tui/messages"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestView_Navigation(t *testing.T) {
	v := NewView(nil, []string{"facebook", "media", "twitter"}, "/data")

	v, _ = v.Update(key("down"))
	v, _ = v.Update(key("j"))
	v, _ = v.Update(key("j"))
	assert.Equal(t, "twitter", v.Selected())

	v, _ = v.Update(key("k"))
	v, _ = v.Update(key("up"))
	v, _ = v.Update(key("up"))
	assert.Equal(t, "facebook", v.Selected())
}

func TestView_SelectSendsSourceChosen(t *testing.T) {
	v := NewView(nil, []string{"facebook", "media"}, "/data")
	v, _ = v.Update(key("down"))

	_, cmd := v.Update(key("enter"))

	require.NotNil(t, cmd)
	assert.Equal(t, messages.SourceChosen{Source: "media"}, cmd())
}

func TestView_SelectWithoutSources(t *testing.T) {
	v := NewView(nil, nil, "/data")

	_, cmd := v.Update(key("enter"))

	assert.Nil(t, cmd)
	assert.Empty(t, v.Selected())
	assert.Contains(t, v.View(), "No data sources registered")
}

func TestView_HelpAndQuit(t *testing.T) {
	v := NewView(nil, []string{"media"}, "/data")

	_, cmd := v.Update(key("?"))
	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewHelp}, cmd())

	_, cmd = v.Update(key("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, messages.Quit{}, cmd())
}

func TestView_View(t *testing.T) {
	view := NewView(nil, []string{"facebook", "media"}, "/data").View()

	assert.Contains(t, view, "/data")
	assert.Contains(t, view, "> facebook")
	assert.Contains(t, view, "  media")

	assert.Contains(t, NewView(nil, nil, "").View(), "data directory not configured")
}

func TestView_IgnoresOtherMessages(t *testing.T) {
	v := NewView(nil, []string{"media"}, "/data")

	_, cmd := v.Update(messages.Quit{})

	assert.Nil(t, cmd)
	assert.Nil(t, v.Init())
}
