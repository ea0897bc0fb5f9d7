// Package headless runs the line oriented menu used when stdin is not a
// terminal, or when the TUI is turned off.
package headless

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jeanpaul/sagepkm/internal/pkm"
	"github.com/jeanpaul/sagepkm/internal/render"
	"github.com/jeanpaul/sagepkm/internal/session"
)

// Options tune how results are printed.
type Options struct {
	Table bool
}

type runner struct {
	s       *session.Session
	in      *bufio.Reader
	err     error
	out     io.Writer
	opts    Options
}

// Run shows the menu until the user exits or input ends.
func Run(ctx context.Context, s *session.Session, in io.Reader, out io.Writer, opts Options) error {
	r := &runner{s: s, in: bufio.NewReader(in), out: out, opts: opts}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		r.menu()
		choice, ok := r.prompt("Choose an option: ")
		if !ok {
			fmt.Fprintln(out)
			return r.err
		}

		switch strings.TrimSpace(choice) {
		case "1":
			if !r.add() {
				return r.err
			}
		case "2":
			r.show(render.GraphHeading(len(s.Nodes())), s.Nodes())
		case "3":
			if !r.search() {
				return r.err
			}
		case "4":
			if !r.merge() {
				return r.err
			}
		case "5":
			fmt.Fprintln(out, render.ErrorStyle.Render("👋 Exiting SagePKM. Goodbye!"))
			return nil
		default:
			fmt.Fprintln(out, render.ErrorStyle.Render("Invalid choice. Try again."))
		}
	}
}

func (r *runner) menu() {
	fmt.Fprintln(r.out, "\n"+render.HeaderStyle.Render("--- SagePKM Menu ---"))
	for _, item := range []string{"1. Add a new node", "2. View all nodes", "3. Search nodes by tag", "4. Merge two nodes", "5. Exit"} {
		fmt.Fprintln(r.out, render.MenuItemStyle.Render(item))
	}
}

// prompt prints label and reads one line of any length. ok is false at
// end of input or on a read error, which is kept in r.err.
func (r *runner) prompt(label string) (string, bool) {
	fmt.Fprint(r.out, label)
	line, err := r.in.ReadString('\n')
	if err != nil {
		if err != io.EOF {
			r.err = err
			return "", false
		}
		if line == "" {
			return "", false
		}
	}
	return strings.TrimRight(line, "\r\n"), true
}

func (r *runner) add() bool {
	title, ok := r.prompt("Enter node title: ")
	if !ok {
		return false
	}
	content, ok := r.prompt("Enter node content: ")
	if !ok {
		return false
	}
	tagsInput, ok := r.prompt("Enter tags (comma separated): ")
	if !ok {
		return false
	}

	r.s.Add(title, content, tagsInput)
	fmt.Fprintln(r.out, render.SuccessStyle.Render("✅ Node added successfully!"))
	return true
}

func (r *runner) search() bool {
	keyword, ok := r.prompt("Enter tag to search: ")
	if !ok {
		return false
	}
	results := r.s.Search(keyword)
	r.show(render.SearchHeading(len(results), keyword), results)
	return true
}

func (r *runner) merge() bool {
	first, ok := r.prompt("First node number: ")
	if !ok {
		return false
	}
	second, ok := r.prompt("Second node number: ")
	if !ok {
		return false
	}

	a, errA := strconv.Atoi(strings.TrimSpace(first))
	b, errB := strconv.Atoi(strings.TrimSpace(second))
	if errA != nil || errB != nil {
		fmt.Fprintln(r.out, render.ErrorStyle.Render("Node numbers must be integers."))
		return true
	}

	merged, diff, err := r.s.Merge(a, b)
	if err != nil {
		fmt.Fprintln(r.out, render.ErrorStyle.Render(err.Error()))
		return true
	}
	fmt.Fprintln(r.out, render.SuccessStyle.Render("✅ Merged into new node: "+merged.Title()))
	if diff != "" {
		fmt.Fprint(r.out, diff)
	}
	return true
}

func (r *runner) show(heading string, nodes []pkm.Node) {
	if r.opts.Table {
		fmt.Fprintln(r.out, "\n"+heading)
		fmt.Fprintln(r.out, render.Table(nodes))
		return
	}
	render.List(r.out, heading, nodes)
}
