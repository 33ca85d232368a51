package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"
)

var pickerPaths = [][]string{
	{"dir1", "dir2", "log1.log"},
	{"dir1", "dir2", "dir3", "log2.log"},
	{"dir1", "dir2", "dir3", "dir4", "log3.log"},
}

func press(t *testing.T, m PathListModel, keys ...string) (PathListModel, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, c := m.Update(msg)
		m, cmd = next.(PathListModel), c
	}
	return m, cmd
}

func TestPathListNavigation(t *testing.T) {
	m := NewPathListModel(pickerPaths)

	m, _ = press(t, m, "down", "j", "down")
	if m.Cursor != 2 {
		t.Errorf("Cursor = %d after moving past the end, want 2", m.Cursor)
	}
	m, _ = press(t, m, "k", "up", "up")
	if m.Cursor != 0 {
		t.Errorf("Cursor = %d after moving past the start, want 0", m.Cursor)
	}
}

func TestPathListSelect(t *testing.T) {
	m, cmd := press(t, NewPathListModel(pickerPaths), "down", "enter")
	if cmd == nil {
		t.Fatal("enter should quit the program")
	}
	if diff := cmp.Diff(pickerPaths[1], m.Selected); diff != "" {
		t.Errorf("Selected mismatch (-want +got):\n%s", diff)
	}
}

func TestPathListQuit(t *testing.T) {
	for _, key := range []string{"q", "esc"} {
		m, cmd := press(t, NewPathListModel(pickerPaths), key)
		if cmd == nil {
			t.Errorf("%s should quit", key)
		}
		if m.Selected != nil {
			t.Errorf("%s should not select a path", key)
		}
	}
}

func TestPathListScrolling(t *testing.T) {
	m := NewPathListModel(pickerPaths)
	m.Height = 2

	m, _ = press(t, m, "down", "down")
	if m.Offset != 1 {
		t.Errorf("Offset = %d, want 1 once the cursor leaves the window", m.Offset)
	}
	m, _ = press(t, m, "up", "up")
	if m.Offset != 0 {
		t.Errorf("Offset = %d, want 0 after scrolling back", m.Offset)
	}

	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 3})
	if h := next.(PathListModel).Height; h != 5 {
		t.Errorf("Height = %d on a tiny window, want the minimum of 5", h)
	}
}

func TestPathListView(t *testing.T) {
	view := NewPathListModel(pickerPaths).View()
	for _, want := range []string{"Select Goal Path", "Goal", "Depth", "log2.log", "[1/3]"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}
