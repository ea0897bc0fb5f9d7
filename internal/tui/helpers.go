package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeanpaul/sagepkm/internal/pkm"
	"github.com/jeanpaul/sagepkm/internal/render"
	"github.com/jeanpaul/sagepkm/internal/session"
)

// form collects one answer per prompt before running its action.
type form struct {
	action  Action
	prompts []string
	answers []string
}

func (f *form) step() int       { return len(f.answers) }
func (f *form) current() string { return f.prompts[f.step()] }
func (f *form) done() bool      { return f.step() >= len(f.prompts) }

func newForm(action Action) *form {
	var prompts []string
	switch action {
	case ActionAdd:
		prompts = []string{"Enter node title", "Enter node content", "Enter tags (comma separated)"}
	case ActionSearch:
		prompts = []string{"Enter tag to search"}
	case ActionMerge:
		prompts = []string{"First node number", "Second node number"}
	case ActionClip:
		prompts = []string{"URL to clip", "Tags (comma separated)"}
	case ActionImport:
		prompts = []string{"File path", "Tags (comma separated)"}
	case ActionExport:
		prompts = []string{"Format (md or xlsx)"}
	default:
		return nil
	}
	return &form{action: action, prompts: prompts}
}

// resultMsg carries the outcome of a menu action back to Update.
type resultMsg struct {
	heading  string
	nodes    []pkm.Node
	listing  bool
	text     string
	markdown bool
	err      error
}

func listing(heading string, nodes []pkm.Node) resultMsg {
	return resultMsg{heading: heading, nodes: nodes, listing: true}
}

// submit runs the form's action against the session off the update loop.
func submit(s *session.Session, f *form) tea.Cmd {
	a := f.answers
	return func() tea.Msg {
		switch f.action {
		case ActionAdd:
			node := s.Add(a[0], a[1], a[2])
			return listing("✅ Node added successfully!", []pkm.Node{node})
		case ActionSearch:
			results := s.Search(a[0])
			return listing(render.SearchHeading(len(results), a[0]), results)
		case ActionMerge:
			first, errA := strconv.Atoi(strings.TrimSpace(a[0]))
			second, errB := strconv.Atoi(strings.TrimSpace(a[1]))
			if errA != nil || errB != nil {
				return resultMsg{err: fmt.Errorf("node numbers must be integers")}
			}
			merged, diff, err := s.Merge(first, second)
			if err != nil {
				return resultMsg{err: err}
			}
			return resultMsg{text: "✅ Merged into new node: " + merged.Title() + "\n\n" + diff}
		case ActionClip:
			node, err := s.Clip(context.Background(), a[0], a[1])
			if err != nil {
				return resultMsg{err: err}
			}
			return resultMsg{text: "# " + node.Title() + "\n\n" + node.Content(), markdown: true}
		case ActionImport:
			node, err := s.Import(a[0], a[1])
			if err != nil {
				return resultMsg{err: err}
			}
			return resultMsg{text: "# " + node.Title() + "\n\n" + node.Content(), markdown: true}
		case ActionExport:
			path, err := s.Export(a[0])
			if err != nil {
				return resultMsg{err: err}
			}
			return resultMsg{text: "✅ Exported to " + path}
		}
		return resultMsg{err: fmt.Errorf("unknown action %q", f.action)}
	}
}
