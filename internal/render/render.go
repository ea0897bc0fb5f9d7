// Package render turns nodes into terminal text: block listings, tables,
// markdown documents and diffs.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"

	"github.com/jeanpaul/sagepkm/internal/pkm"
	"github.com/jeanpaul/sagepkm/internal/tags"
)

// Separator closes every node block.
var Separator = strings.Repeat("-", 80)

// List writes heading followed by one block per node.
func List(w io.Writer, heading string, nodes []pkm.Node) {
	fmt.Fprintf(w, "\n%s\n", heading)
	for i, n := range nodes {
		fmt.Fprintln(w, IndexStyle.Render(fmt.Sprintf("Node %d:", i+1)))
		fmt.Fprintln(w, TitleStyle.Render("Title    : "+n.Title()))
		fmt.Fprintln(w, SummaryStyle.Render("Summary  : "+n.Summary()))
		fmt.Fprintln(w, TagsStyle.Render("Tags     : "+tags.Join(n.Tags())))
		fmt.Fprintln(w, SeparatorStyle.Render(Separator))
	}
}

// ListString is List into a string.
func ListString(heading string, nodes []pkm.Node) string {
	var b strings.Builder
	List(&b, heading, nodes)
	return b.String()
}

// GraphHeading is the heading used when listing the whole graph.
func GraphHeading(count int) string {
	return fmt.Sprintf("📚 Knowledge Graph contains %d node(s):", count)
}

// SearchHeading is the heading used for tag search results.
func SearchHeading(count int, keyword string) string {
	return fmt.Sprintf("🔎 Found %d node(s) with tag '%s':", count, keyword)
}

// Table renders nodes as a bordered table.
func Table(nodes []pkm.Node) string {
	rows := make([][]string, 0, len(nodes))
	for i, n := range nodes {
		rows = append(rows, []string{strconv.Itoa(i + 1), n.Title(), n.Summary(), tags.Join(n.Tags())})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(TableBorderStyle).
		Headers("#", "Title", "Summary", "Tags").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return TableHeaderStyle
			}
			return TableCellStyle
		})

	return t.Render()
}

// Markdown renders full node contents as a markdown document.
func Markdown(title string, nodes []pkm.Node) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)
	for _, n := range nodes {
		fmt.Fprintf(&b, "## %s\n\n", n.Title())
		if t := n.Tags(); len(t) > 0 {
			quoted := make([]string, len(t))
			for i, tag := range t {
				quoted[i] = "`" + tag + "`"
			}
			fmt.Fprintf(&b, "**Tags**: %s\n\n", strings.Join(quoted, ", "))
		}
		if c := strings.TrimSpace(n.Content()); c != "" {
			b.WriteString(c + "\n\n")
		}
	}
	return b.String()
}

// Glamour renders markdown for the terminal. style is a glamour style
// name; "auto" picks one from the terminal background.
func Glamour(markdown, style string, width int) (string, error) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if style == "" || style == "auto" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}

	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", err
	}
	return r.Render(markdown)
}

// Diff returns a unified diff between before and after. Equal inputs
// produce an empty string.
func Diff(name, before, after string) string {
	if !strings.HasSuffix(before, "\n") {
		before += "\n"
	}
	if !strings.HasSuffix(after, "\n") {
		after += "\n"
	}
	edits := myers.ComputeEdits(span.URIFromPath(name), before, after)
	return fmt.Sprint(gotextdiff.ToUnified(name, name+" (merged)", before, edits))
}
