package reconcile

import (
	"sort"

	"github.com/ThomasCrouzet/inframap-live/internal/render"
)

// Mirror is the local replica of the last applied snapshot, held as
// identity-keyed nodes and edges. It is only mutated by Apply.
type Mirror struct {
	nodes map[string]render.Node
	edges map[string]render.Edge
	order []string // edge ids in snapshot order
}

// NewMirror returns an empty Mirror.
func NewMirror() *Mirror {
	return &Mirror{
		nodes: make(map[string]render.Node),
		edges: make(map[string]render.Edge),
	}
}

func (m *Mirror) NodeCount() int { return len(m.nodes) }
func (m *Mirror) EdgeCount() int { return len(m.edges) }
func (m *Mirror) Empty() bool    { return len(m.nodes) == 0 }

// Node returns a copy of the node with the given id.
func (m *Mirror) Node(id string) (render.Node, bool) {
	n, ok := m.nodes[id]
	return n, ok
}

// Edge returns a copy of the edge with the given id.
func (m *Mirror) Edge(id string) (render.Edge, bool) {
	e, ok := m.edges[id]
	return e, ok
}

// NodeIDs returns the node ids in ascending order.
func (m *Mirror) NodeIDs() []string {
	ids := make([]string, 0, len(m.nodes))
	for id := range m.nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// EdgeIDs returns the edge ids in snapshot order.
func (m *Mirror) EdgeIDs() []string {
	return append([]string(nil), m.order...)
}

// Graph copies the mirror into a standalone render.Graph, e.g. for export.
func (m *Mirror) Graph() *render.Graph {
	g := render.NewGraph()
	for _, id := range m.NodeIDs() {
		g.AddNode(m.nodes[id])
	}
	for _, id := range m.order {
		g.AddEdge(m.edges[id])
	}
	return g
}
