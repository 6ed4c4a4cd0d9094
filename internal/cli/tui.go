package cli

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Maan2003/gdb-utils/pkg/gdb"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// LocalsModel is the bubbletea model for interactive variable selection.
type LocalsModel struct {
	Locals   []gdb.Local
	Cursor   int
	Selected *gdb.Local
	Height   int
	Offset   int
}

// NewLocalsModel creates a new locals list model.
func NewLocalsModel(locals []gdb.Local) LocalsModel {
	return LocalsModel{
		Locals: locals,
		Cursor: 0,
		Height: 15,
		Offset: 0,
	}
}

func (m LocalsModel) Init() tea.Cmd {
	return nil
}

func (m LocalsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Locals)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			local := m.Locals[m.Cursor]
			m.Selected = &local
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m LocalsModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Variable"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Locals) {
		end = len(m.Locals)
	}

	for i := m.Offset; i < end; i++ {
		l := m.Locals[i]

		cursor := "  "
		nameStyle := listNormalStyle
		if i == m.Cursor {
			cursor = "▸ "
			nameStyle = listSelectedStyle
		}

		b.WriteString(cursor)
		b.WriteString(nameStyle.Render(l.Name))
		if l.Value != "" {
			b.WriteString(listDimStyle.Render(" = " + truncate(l.Value, 60)))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// truncate shortens s to at most n runes with an ellipsis.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
