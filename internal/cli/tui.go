package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// PathListModel - Interactive goal path selection
// =============================================================================

// PathListModel is the bubbletea model for browsing the goal paths of a
// collect-all search and picking one.
type PathListModel struct {
	Paths    [][]string
	Cursor   int
	Selected []string
	Height   int
	Offset   int
}

// NewPathListModel creates a new path list model.
func NewPathListModel(paths [][]string) PathListModel {
	return PathListModel{
		Paths:  paths,
		Height: 15,
	}
}

func (m PathListModel) Init() tea.Cmd {
	return nil
}

func (m PathListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.Cursor < len(m.Paths)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Paths) == 0 {
				return m, tea.Quit
			}
			m.Selected = m.Paths[m.Cursor]
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 5)
	}
	return m, nil
}

func (m PathListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Goal Path"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Paths))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		p := m.Paths[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		goal := ""
		if len(p) > 0 {
			goal = p[len(p)-1]
		}
		rows = append(rows, []string{cursor, goal, strconv.Itoa(len(p) - 1), strings.Join(p, pathSep)})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Goal", "Depth", "Path").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			switch {
			case m.Offset+row == m.Cursor:
				return listSelectedStyle
			case col == 2:
				return listDimStyle
			default:
				return listNormalStyle
			}
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Paths))))

	return b.String()
}

// runPathPicker shows paths in a full-screen list and prints the chosen one
// to w. Quitting without a choice prints nothing.
func runPathPicker(w io.Writer, paths [][]string) error {
	final, err := tea.NewProgram(NewPathListModel(paths), tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}
	m, ok := final.(PathListModel)
	if !ok || m.Selected == nil {
		return nil
	}
	printSuccess(w, "Goal %s at depth %d", StyleHighlight.Render(m.Selected[len(m.Selected)-1]), len(m.Selected)-1)
	printKeyValue(w, "Path", strings.Join(m.Selected, pathSep))
	return nil
}
