// Package session ties a user and a knowledge graph together for the
// front ends. Both the TUI and the line console drive a Session.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/jeanpaul/sagepkm/internal/export"
	"github.com/jeanpaul/sagepkm/internal/ingest"
	"github.com/jeanpaul/sagepkm/internal/pkm"
	"github.com/jeanpaul/sagepkm/internal/render"
	"github.com/jeanpaul/sagepkm/internal/seed"
	"github.com/jeanpaul/sagepkm/internal/tags"
)

var (
	ErrNodeNotFound  = errors.New("node not found")
	ErrUnknownFormat = errors.New("unknown export format")
)

// Export formats.
const (
	FormatMarkdown    = "md"
	FormatSpreadsheet = "xlsx"
)

// Clipper fetches a web page as a document.
type Clipper interface {
	Clip(ctx context.Context, rawURL string) (ingest.Document, error)
}

type Session struct {
	ID        string
	user      *pkm.User
	graph     *pkm.Graph
	log       *log.Logger
	clipper   Clipper
	exportDir string
}

type Option func(*Session)

func WithClipper(c Clipper) Option { return func(s *Session) { s.clipper = c } }

func WithExportDir(dir string) Option { return func(s *Session) { s.exportDir = dir } }

// New starts a session for user on graph.
func New(user *pkm.User, graph *pkm.Graph, logger *log.Logger, opts ...Option) *Session {
	s := &Session{
		ID:        uuid.NewString(),
		user:      user,
		graph:     graph,
		exportDir: ".",
	}
	for _, o := range opts {
		o(s)
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s.log = logger.With("session", s.ID[:8])
	return s
}

func (s *Session) User() *pkm.User { return s.user }

// Add creates a node from raw form input and appends it to the graph.
func (s *Session) Add(title, content, tagsInput string) pkm.Node {
	node := s.user.CreateNode(title, content, tags.Parse(tagsInput))
	s.graph.AddNode(node)
	s.log.Info("node added", "title", node.Title(), "tags", len(node.Tags()))
	return node
}

// Nodes lists the graph in insertion order.
func (s *Session) Nodes() []pkm.Node {
	return s.graph.Nodes()
}

// Search returns nodes tagged keyword, ignoring case.
func (s *Session) Search(keyword string) []pkm.Node {
	results := s.user.SearchNodes(s.graph, keyword)
	s.log.Debug("search", "keyword", keyword, "results", len(results))
	return results
}

// Merge combines the nodes at the 1-based positions first and second,
// appends the result and returns it with a diff of the first node's
// content against the merged content.
func (s *Session) Merge(first, second int) (pkm.Node, string, error) {
	nodes := s.graph.Nodes()
	a, err := nodeAt(nodes, first)
	if err != nil {
		return pkm.Node{}, "", err
	}
	b, err := nodeAt(nodes, second)
	if err != nil {
		return pkm.Node{}, "", err
	}

	merged := a.Combine(b)
	s.graph.AddNode(merged)
	s.log.Info("nodes merged", "first", first, "second", second, "title", merged.Title())
	return merged, render.Diff(a.Title(), a.Content(), merged.Content()), nil
}

func nodeAt(nodes []pkm.Node, pos int) (pkm.Node, error) {
	if pos < 1 || pos > len(nodes) {
		return pkm.Node{}, fmt.Errorf("%w: position %d (graph has %d)", ErrNodeNotFound, pos, len(nodes))
	}
	return nodes[pos-1], nil
}

// Clip adds a node built from the readable content of a web page.
func (s *Session) Clip(ctx context.Context, rawURL, tagsInput string) (pkm.Node, error) {
	if s.clipper == nil {
		return pkm.Node{}, errors.New("web clipping is not configured")
	}
	doc, err := s.clipper.Clip(ctx, strings.TrimSpace(rawURL))
	if err != nil {
		s.log.Warn("clip failed", "url", rawURL, "err", err)
		return pkm.Node{}, fmt.Errorf("clip %s: %w", rawURL, err)
	}
	return s.addDocument(doc, tagsInput), nil
}

// Import adds a node built from a local file.
func (s *Session) Import(path, tagsInput string) (pkm.Node, error) {
	doc, err := ingest.FromFile(strings.TrimSpace(path))
	if err != nil {
		s.log.Warn("import failed", "path", path, "err", err)
		return pkm.Node{}, fmt.Errorf("import: %w", err)
	}
	return s.addDocument(doc, tagsInput), nil
}

func (s *Session) addDocument(doc ingest.Document, tagsInput string) pkm.Node {
	node := s.user.CreateNode(doc.Title, doc.Content, tags.Parse(tagsInput))
	s.graph.AddNode(node)
	s.log.Info("node added", "title", node.Title(), "source", doc.Source)
	return node
}

// Export writes the graph in format to the export directory and returns
// the file path.
func (s *Session) Export(format string) (string, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	name := "sagepkm-" + s.ID[:8] + "." + format
	path := filepath.Join(s.exportDir, name)
	nodes := s.graph.Nodes()

	var err error
	switch format {
	case FormatMarkdown:
		title := fmt.Sprintf("%s's Knowledge Graph", s.user.Name())
		err = export.Markdown(path, title, nodes)
	case FormatSpreadsheet:
		err = export.Spreadsheet(path, nodes)
	default:
		return "", fmt.Errorf("%w: %q (use %s or %s)", ErrUnknownFormat, format, FormatMarkdown, FormatSpreadsheet)
	}
	if err != nil {
		return "", fmt.Errorf("export %s: %w", format, err)
	}

	s.log.Info("graph exported", "path", path, "nodes", len(nodes))
	return path, nil
}

// LoadSeeds adds every node described by the seed files matching patterns
// and returns how many were added.
func (s *Session) LoadSeeds(patterns []string) (int, error) {
	if len(patterns) == 0 {
		return 0, nil
	}
	entries, err := seed.Load(patterns)
	if err != nil {
		return 0, err
	}
	for _, e := range entries {
		s.graph.AddNode(s.user.CreateNode(e.Title, e.Content, e.Tags))
	}
	s.log.Info("seeds loaded", "patterns", len(patterns), "nodes", len(entries))
	return len(entries), nil
}
