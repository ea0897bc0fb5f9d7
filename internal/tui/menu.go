package tui

import (
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeanpaul/sagepkm/internal/render"
)

// Action identifies a main menu entry.
type Action string

const (
	ActionAdd    Action = "add"
	ActionList   Action = "list"
	ActionSearch Action = "search"
	ActionMerge  Action = "merge"
	ActionClip   Action = "clip"
	ActionImport Action = "import"
	ActionExport Action = "export"
	ActionQuit   Action = "quit"
)

type item struct {
	title, desc string
	action      Action
}

func (i item) Title() string       { return i.title }
func (i item) Description() string { return i.desc }
func (i item) FilterValue() string { return i.title }

type MenuModel struct {
	list list.Model
}

func NewMenuModel() MenuModel {
	items := []list.Item{
		item{title: "Add a new node", desc: "Title, content and comma separated tags", action: ActionAdd},
		item{title: "View all nodes", desc: "List the knowledge graph", action: ActionList},
		item{title: "Search nodes by tag", desc: "Exact tag match, case ignored", action: ActionSearch},
		item{title: "Merge two nodes", desc: "Append one node's content to another", action: ActionMerge},
		item{title: "Clip a web page", desc: "Save the readable part of a URL", action: ActionClip},
		item{title: "Import a file", desc: "Text, markdown, PDF or spreadsheet", action: ActionImport},
		item{title: "Export graph", desc: "Write markdown or xlsx", action: ActionExport},
		item{title: "Exit", desc: "Leave SagePKM", action: ActionQuit},
	}

	d := list.NewDefaultDelegate()
	d.Styles.SelectedTitle = lipgloss.NewStyle().Foreground(render.Green).Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(render.Green).PaddingLeft(1)
	d.Styles.SelectedDesc = d.Styles.SelectedTitle.Foreground(render.DarkGreen)

	l := list.New(items, d, 50, 20)
	l.Title = "SagePKM Menu"
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = lipgloss.NewStyle().Foreground(render.Cyan).Bold(true).MarginLeft(2)

	return MenuModel{list: l}
}

func (m MenuModel) Update(msg tea.Msg) (MenuModel, tea.Cmd) {
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m MenuModel) View() string {
	return m.list.View()
}

// Selected returns the action under the cursor.
func (m MenuModel) Selected() Action {
	if it, ok := m.list.SelectedItem().(item); ok {
		return it.action
	}
	return ""
}

// Filtering reports whether the user is typing a filter.
func (m MenuModel) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// FilterApplied reports whether a filter narrows the items.
func (m MenuModel) FilterApplied() bool {
	return m.list.FilterState() == list.FilterApplied
}

func (m *MenuModel) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
