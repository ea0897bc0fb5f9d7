// Package pkm holds the in-memory knowledge graph: nodes, the graph that
// owns them, and the user that creates and searches them.
package pkm

import "unicode/utf16"

// SummaryLimit is the number of UTF-16 code units kept by Summary before
// the ellipsis is appended.
const SummaryLimit = 50

const ellipsis = "..."

// Node is a titled unit of text content with tags. It is a value type:
// the fields are only set at construction, and every transformation
// returns a new Node.
type Node struct {
	title   string
	content string
	tags    []string
}

// NewNode builds a Node. No validation is performed; empty content and
// empty tag lists are valid.
func NewNode(title, content string, tags []string) Node {
	return Node{
		title:   title,
		content: content,
		tags:    cloneTags(tags),
	}
}

func (n Node) Title() string   { return n.title }
func (n Node) Content() string { return n.content }

// Tags returns a copy of the node's tags in order.
func (n Node) Tags() []string { return cloneTags(n.tags) }

// Summary returns the content unchanged when it is at most SummaryLimit
// UTF-16 code units long, otherwise the first SummaryLimit units followed
// by "...".
func (n Node) Summary() string {
	return Summarize(n.content)
}

// Combine returns a new node with this node's title and tags and the
// content of both nodes concatenated, receiver first. Tags of other are
// not carried over.
func (n Node) Combine(other Node) Node {
	return NewNode(n.title, n.content+other.content, n.tags)
}

// Summarize applies the summary rule to an arbitrary string.
func Summarize(content string) string {
	units := utf16.Encode([]rune(content))
	if len(units) <= SummaryLimit {
		return content
	}
	// A pair split at the boundary decodes its lone high surrogate to
	// U+FFFD, which is still a single code unit.
	return string(utf16.Decode(units[:SummaryLimit])) + ellipsis
}

func cloneTags(tags []string) []string {
	out := make([]string, len(tags))
	copy(out, tags)
	return out
}
