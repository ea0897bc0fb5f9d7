package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeanpaul/sagepkm/internal/logging"
	"github.com/jeanpaul/sagepkm/internal/pkm"
	"github.com/jeanpaul/sagepkm/internal/session"
)

func newTestModel(t *testing.T, opts ...session.Option) (Model, *session.Session) {
	t.Helper()
	s := session.New(pkm.NewUser(1, "Alice", "Researcher"), pkm.NewGraph(), logging.Discard(), opts...)
	m := NewModel(s, Options{Theme: "notty"})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 60})
	return updated.(Model), s
}

func press(t *testing.T, m Model, msg tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	return updated.(Model), cmd
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	if text != "" {
		m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	}
	return m
}

// collect runs cmd and flattens batches into their messages. Only used on
// commands that return immediately.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// submitForm answers every prompt of the form under the cursor and feeds
// the action's result back into the model.
func submitForm(t *testing.T, m Model, answers ...string) Model {
	t.Helper()
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, stateForm, m.state)

	var cmd tea.Cmd
	for _, a := range answers {
		m = typeText(t, m, a)
		m, cmd = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	}
	require.True(t, m.busy, "form should be submitted after the last answer")

	for _, msg := range collect(cmd) {
		if r, ok := msg.(resultMsg); ok {
			updated, _ := m.Update(r)
			return updated.(Model)
		}
	}
	t.Fatal("no result message produced")
	return m
}

func moveTo(t *testing.T, m Model, action Action) Model {
	t.Helper()
	for i := 0; i < 10 && m.menu.Selected() != action; i++ {
		m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}
	require.Equal(t, action, m.menu.Selected())
	return m
}

func TestMenu_ShowsEntries(t *testing.T) {
	m, _ := newTestModel(t)
	view := m.View()

	assert.Contains(t, view, "SagePKM")
	assert.Contains(t, view, "Alice (Researcher)")
	assert.Contains(t, view, "Add a new node")
	assert.Contains(t, view, "Search nodes by tag")
	assert.Equal(t, ActionAdd, m.menu.Selected())
}

func TestAddThenSearch(t *testing.T) {
	m, s := newTestModel(t)

	m = submitForm(t, m, "Java Tutorial", "Learn the JVM", "Java, tutorial")
	require.Len(t, s.Nodes(), 1)
	assert.Equal(t, stateResult, m.state)
	assert.Contains(t, m.View(), "Node added successfully!")

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, stateMenu, m.state)

	m = moveTo(t, m, ActionSearch)
	m = submitForm(t, m, "java")
	view := m.View()
	assert.Contains(t, view, "Found 1 node(s) with tag 'java':")
	assert.Contains(t, view, "Title    : Java Tutorial")
}

func TestListToggleTable(t *testing.T) {
	m, s := newTestModel(t)
	s.Add("Go Notes", "Goroutines", "go")

	m = moveTo(t, m, ActionList)
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, stateResult, m.state)
	assert.Contains(t, m.View(), "Knowledge Graph contains 1 node(s):")
	assert.Contains(t, m.View(), "Title    : Go Notes")

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'t'}})
	assert.True(t, m.opts.Table)
	assert.NotContains(t, m.View(), "Title    : Go Notes")
	assert.Contains(t, m.View(), "Go Notes")
}

func TestMerge_Error(t *testing.T) {
	m, s := newTestModel(t)
	s.Add("Only", "one", "")

	m = moveTo(t, m, ActionMerge)
	m = submitForm(t, m, "1", "5")
	assert.Contains(t, m.View(), "node not found")
	assert.Len(t, s.Nodes(), 1)
}

func TestMerge_ShowsDiff(t *testing.T) {
	m, s := newTestModel(t)
	s.Add("Combined", "First. ", "merge")
	s.Add("Combined", "Second.", "merge")

	m = moveTo(t, m, ActionMerge)
	m = submitForm(t, m, "1", "2")
	assert.Contains(t, m.View(), "Merged into new node: Combined")
	assert.Equal(t, "First. Second.", s.Nodes()[2].Content())
}

func TestImport_RendersMarkdown(t *testing.T) {
	path := filepath.Join(t.TempDir(), "idea.md")
	require.NoError(t, os.WriteFile(path, []byte("# Zettelkasten\n\nOne idea per note."), 0644))
	m, s := newTestModel(t)

	m = moveTo(t, m, ActionImport)
	m = submitForm(t, m, path, "method")
	require.Len(t, s.Nodes(), 1)
	assert.Equal(t, "Zettelkasten", s.Nodes()[0].Title())
	assert.Contains(t, m.View(), "One idea per note.")
}

func TestExport(t *testing.T) {
	dir := t.TempDir()
	m, _ := newTestModel(t, session.WithExportDir(dir))

	m = moveTo(t, m, ActionExport)
	m = submitForm(t, m, "md")
	assert.Contains(t, m.result.text, "Exported to "+dir)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, strings.HasSuffix(entries[0].Name(), ".md"))
}

func TestForm_EscCancels(t *testing.T) {
	m, s := newTestModel(t)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = typeText(t, m, "abandoned")
	assert.Contains(t, m.View(), "Enter node title:")

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, stateMenu, m.state)
	assert.Empty(t, s.Nodes())
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t)

	m = moveTo(t, m, ActionQuit)
	_, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())

	_, cmd = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
