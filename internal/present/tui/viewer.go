// Package tui shows rendered markdown in a scrollable full-screen viewer.
package tui

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1).
			Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	infoStyle = lipgloss.NewStyle().Faint(true)
)

type viewer struct {
	title   string
	content string
	vp      viewport.Model
	ready   bool
}

func newViewer(title, content string) viewer {
	return viewer{title: title, content: content}
}

func (m viewer) headerView() string { return titleStyle.Render(m.title) }

func (m viewer) footerView() string {
	return infoStyle.Render(fmt.Sprintf("%3.f%% • q/esc quit • ↑/↓ pgup/pgdn scroll", m.vp.ScrollPercent()*100))
}

func (m viewer) Init() tea.Cmd { return nil }

func (m viewer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		chrome := lipgloss.Height(m.headerView()) + lipgloss.Height(m.footerView())
		h := max(1, msg.Height-chrome)
		if !m.ready {
			m.vp = viewport.New(msg.Width, h)
			m.vp.SetContent(m.content)
			m.ready = true
		} else {
			m.vp.Width = msg.Width
			m.vp.Height = h
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func (m viewer) View() string {
	if !m.ready {
		return "Loading…"
	}
	return m.headerView() + "\n" + m.vp.View() + "\n" + m.footerView()
}

// View runs the viewer until the user quits or ctx is cancelled.
func View(ctx context.Context, in io.Reader, out io.Writer, title, content string) error {
	p := tea.NewProgram(newViewer(title, content),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	)
	_, err := p.Run()
	return err
}
