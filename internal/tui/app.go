// Package tui is the interactive terminal front end.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeanpaul/sagepkm/internal/render"
	"github.com/jeanpaul/sagepkm/internal/session"
)

type state int

const (
	stateMenu state = iota
	stateForm
	stateResult
)

// Options configure the TUI.
type Options struct {
	Table bool
	Theme string
}

type Model struct {
	session  *session.Session
	opts     Options
	state    state
	menu     MenuModel
	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model
	form     *form
	result   resultMsg
	busy     bool
	width    int
	height   int
}

func NewModel(s *session.Session, opts Options) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 0
	ti.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = render.BannerStyle

	return Model{
		session:  s,
		opts:     opts,
		menu:     NewMenuModel(),
		input:    ti,
		viewport: viewport.New(80, 20),
		spinner:  sp,
		width:    80,
		height:   24,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.menu.SetSize(msg.Width, msg.Height-headerHeight)
		m.input.Width = msg.Width - 6
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-headerHeight-footerHeight, 1)
		if m.state == stateResult {
			m.viewport.SetContent(m.renderResult())
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.state {
		case stateMenu:
			return m.updateMenu(msg)
		case stateForm:
			return m.updateForm(msg)
		case stateResult:
			return m.updateResult(msg)
		}

	case resultMsg:
		m.busy = false
		m.result = msg
		m.state = stateResult
		m.viewport.SetContent(m.renderResult())
		m.viewport.GotoTop()
		return m, nil

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.menu.Filtering() {
		var cmd tea.Cmd
		m.menu, cmd = m.menu.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "esc":
		if m.menu.FilterApplied() {
			var cmd tea.Cmd
			m.menu, cmd = m.menu.Update(msg)
			return m, cmd
		}
		return m, tea.Quit
	case "q":
		return m, tea.Quit
	case "enter":
		action := m.menu.Selected()
		switch action {
		case ActionQuit:
			return m, tea.Quit
		case ActionList:
			nodes := m.session.Nodes()
			return m.Update(listing(render.GraphHeading(len(nodes)), nodes))
		}
		if f := newForm(action); f != nil {
			m.form = f
			m.state = stateForm
			m.input.Reset()
			return m, m.input.Focus()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.menu, cmd = m.menu.Update(msg)
	return m, cmd
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}

	switch msg.String() {
	case "esc":
		m.form = nil
		m.state = stateMenu
		m.input.Blur()
		return m, nil
	case "enter":
		m.form.answers = append(m.form.answers, m.input.Value())
		m.input.Reset()
		if !m.form.done() {
			return m, nil
		}
		m.busy = true
		m.input.Blur()
		return m, tea.Batch(submit(m.session, m.form), m.spinner.Tick)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateResult(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "enter":
		m.form = nil
		m.state = stateMenu
		return m, nil
	case "t":
		if m.result.listing {
			m.opts.Table = !m.opts.Table
			m.viewport.SetContent(m.renderResult())
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) renderResult() string {
	r := m.result
	switch {
	case r.err != nil:
		return render.ErrorStyle.Render("✗ " + r.err.Error())
	case r.listing && m.opts.Table:
		return r.heading + "\n\n" + render.Table(r.nodes)
	case r.listing:
		return render.ListString(r.heading, r.nodes)
	case r.markdown:
		out, err := render.Glamour(r.text, m.opts.Theme, max(m.width-4, 20))
		if err != nil {
			return r.text
		}
		return out
	default:
		return r.text
	}
}

const (
	headerHeight = 2
	footerHeight = 2
)

func (m Model) header() string {
	u := m.session.User()
	status := render.StatusBarStyle.Render(fmt.Sprintf(" %s (%s) ", u.Name(), u.Role()))
	count := render.HelpStyle.Render(fmt.Sprintf(" %d node(s)", len(m.session.Nodes())))
	return render.BannerStyle.Render("SagePKM") + "  " + status + count + "\n"
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.header())
	b.WriteString("\n")

	switch m.state {
	case stateMenu:
		b.WriteString(m.menu.View())
		b.WriteString("\n" + render.HelpStyle.Render("↑/↓: navigate • enter: select • /: filter • q: quit"))
	case stateForm:
		for i, answer := range m.form.answers {
			b.WriteString(render.HelpStyle.Render(m.form.prompts[i]+": ") + answer + "\n")
		}
		if m.busy {
			b.WriteString(m.spinner.View() + " Working...\n")
		} else {
			b.WriteString(render.HeaderStyle.Render(m.form.current()+":") + "\n")
			b.WriteString(render.BoxStyle.Render(m.input.View()) + "\n")
			b.WriteString(render.HelpStyle.Render("enter: next • esc: cancel"))
		}
	case stateResult:
		b.WriteString(m.viewport.View())
		help := "↑/↓: scroll • esc: menu"
		if m.result.listing {
			help = "↑/↓: scroll • t: table/list • esc: menu"
		}
		b.WriteString("\n" + render.HelpStyle.Render(help))
	}

	return b.String()
}
