package pkm

import (
	"unicode"
	"unicode/utf8"
)

// User creates nodes and searches the graph on behalf of an identified
// person. Role is descriptive only and grants nothing.
type User struct {
	id   int
	name string
	role string
}

// NewUser returns a user with the given identity.
func NewUser(id int, name, role string) *User {
	return &User{id: id, name: name, role: role}
}

func (u *User) ID() int      { return u.id }
func (u *User) Name() string { return u.name }
func (u *User) Role() string { return u.role }

// CreateNode builds a new node. It does not add it to any graph.
func (u *User) CreateNode(title, content string, tags []string) Node {
	return NewNode(title, content, tags)
}

// SearchNodes returns, in insertion order, every node in graph carrying a
// tag equal to keyword ignoring case. Substrings do not match. The result
// is empty, never nil, when nothing matches.
func (u *User) SearchNodes(graph *Graph, keyword string) []Node {
	results := []Node{}
	for _, n := range graph.Nodes() {
		if hasTag(n.tags, keyword) {
			results = append(results, n)
		}
	}
	return results
}

func hasTag(tags []string, keyword string) bool {
	for _, t := range tags {
		if equalIgnoreCase(t, keyword) {
			return true
		}
	}
	return false
}

// equalIgnoreCase compares a and b rune by rune after simple uppercase
// mapping. Unlike strings.EqualFold it does not follow fold orbits, so the
// Kelvin sign U+212A is not equal to "k". Invalid bytes must match exactly.
func equalIgnoreCase(a, b string) bool {
	for a != "" && b != "" {
		ra, na := utf8.DecodeRuneInString(a)
		rb, nb := utf8.DecodeRuneInString(b)
		if ra == utf8.RuneError && na == 1 || rb == utf8.RuneError && nb == 1 {
			if a[:na] != b[:nb] {
				return false
			}
		} else if ra != rb && unicode.ToUpper(ra) != unicode.ToUpper(rb) {
			return false
		}
		a, b = a[na:], b[nb:]
	}
	return a == b
}
