package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewerLifecycle(t *testing.T) {
	content := strings.Repeat("line\n", 50) + "last"
	m := newViewer("notes.md", content)
	assert.Equal(t, "Loading…", m.View())

	next, _ := m.Update(tea.WindowSizeMsg{Width: 40, Height: 12})
	m = next.(viewer)
	require.True(t, m.ready)
	assert.Equal(t, 40, m.vp.Width)
	view := m.View()
	assert.Contains(t, view, "notes.md")
	assert.Contains(t, view, "line")
	assert.NotContains(t, view, "last")

	for i := 0; i < 10; i++ {
		next, _ = m.Update(tea.KeyMsg{Type: tea.KeyPgDown})
		m = next.(viewer)
	}
	assert.Contains(t, m.View(), "last")

	next, _ = m.Update(tea.WindowSizeMsg{Width: 60, Height: 20})
	m = next.(viewer)
	assert.Equal(t, 60, m.vp.Width)
}

func TestViewerQuits(t *testing.T) {
	m := newViewer("t", "c")
	for _, k := range []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune("q")},
		{Type: tea.KeyEsc},
		{Type: tea.KeyCtrlC},
	} {
		_, cmd := m.Update(k)
		require.NotNil(t, cmd, k.String())
		assert.Equal(t, tea.Quit(), cmd(), k.String())
	}
}
