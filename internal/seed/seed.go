// Package seed loads YAML seed documents that pre-populate the knowledge
// graph at startup.
package seed

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/jeanpaul/sagepkm/internal/schema"
)

// ErrInvalidDocument is returned when a seed file or one of its entries
// does not match the node document schema.
var ErrInvalidDocument = errors.New("invalid seed document")

// Entry is one node described by a seed file.
type Entry struct {
	Title   string   `yaml:"title"`
	Content string   `yaml:"content"`
	Tags    []string `yaml:"tags"`
	Source  string   `yaml:"-"`
}

type document struct {
	Nodes []yaml.Node `yaml:"nodes"`
}

// Expand resolves glob patterns (with ** support) to a sorted, duplicate
// free list of files. A pattern that matches nothing contributes nothing.
func Expand(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	for _, p := range patterns {
		matches, err := doublestar.FilepathGlob(p)
		if err != nil {
			return nil, fmt.Errorf("bad seed pattern %q: %w", p, err)
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				files = append(files, m)
			}
		}
	}
	sort.Strings(files)
	return files, nil
}

// Load expands patterns and parses every matching file.
func Load(patterns []string) ([]Entry, error) {
	files, err := Expand(patterns)
	if err != nil {
		return nil, err
	}

	v := schema.NewValidator()
	var entries []Entry
	for _, f := range files {
		fileEntries, err := LoadFile(v, f)
		if err != nil {
			return nil, err
		}
		entries = append(entries, fileEntries...)
	}
	return entries, nil
}

// LoadFile parses one seed file, validating each entry.
func LoadFile(v *schema.Validator, path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidDocument, path, err)
	}

	entries := make([]Entry, 0, len(doc.Nodes))
	for i, n := range doc.Nodes {
		var raw any
		if err := n.Decode(&raw); err != nil {
			return nil, fmt.Errorf("%w: %s: node %d (line %d): %v", ErrInvalidDocument, path, i+1, n.Line, err)
		}
		if err := v.ValidateValue(schema.NodeDocument, raw); err != nil {
			return nil, fmt.Errorf("%w: %s: node %d (line %d): %v", ErrInvalidDocument, path, i+1, n.Line, err)
		}

		var e Entry
		if err := n.Decode(&e); err != nil {
			return nil, fmt.Errorf("%w: %s: node %d (line %d): %v", ErrInvalidDocument, path, i+1, n.Line, err)
		}
		e.Source = path
		entries = append(entries, e)
	}
	return entries, nil
}
