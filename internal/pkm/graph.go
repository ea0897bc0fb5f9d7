package pkm

import "sync"

// Graph is the knowledge graph: a flat, append-only, ordered list of
// nodes. Despite the name it has no edges.
type Graph struct {
	mu    sync.RWMutex
	nodes []Node
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{nodes: []Node{}}
}

// AddNode appends node to the end of the graph.
func (g *Graph) AddNode(node Node) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.nodes = append(g.nodes, node)
}

// Nodes returns the nodes in insertion order. The returned slice is a
// copy and can be modified freely by the caller.
func (g *Graph) Nodes() []Node {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]Node, len(g.nodes))
	copy(out, g.nodes)
	return out
}

// Len returns the number of nodes in the graph.
func (g *Graph) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.nodes)
}
