package render

import "sort"

// Graph is an in-memory render surface. It keeps whatever it was told,
// tolerates dangling edges, and is the backing store of the terminal and
// D2 surfaces.
type Graph struct {
	nodes   map[string]Node
	edges   map[string]Edge
	order   []string // edge ids in insertion order
	physics bool
	fits    int
}

// NewGraph returns an empty Graph with physics enabled.
func NewGraph() *Graph {
	return &Graph{
		nodes:   make(map[string]Node),
		edges:   make(map[string]Edge),
		physics: true,
	}
}

func (g *Graph) AddNode(n Node)    { g.nodes[n.ID] = n }
func (g *Graph) UpdateNode(n Node) { g.nodes[n.ID] = n }
func (g *Graph) RemoveNode(id string) {
	delete(g.nodes, id)
}

func (g *Graph) AddEdge(e Edge) {
	if _, ok := g.edges[e.ID]; !ok {
		g.order = append(g.order, e.ID)
	}
	g.edges[e.ID] = e
}

func (g *Graph) UpdateEdge(e Edge) { g.AddEdge(e) }

func (g *Graph) RemoveEdge(id string) {
	if _, ok := g.edges[id]; !ok {
		return
	}
	delete(g.edges, id)
	for i, eid := range g.order {
		if eid == id {
			g.order = append(g.order[:i], g.order[i+1:]...)
			break
		}
	}
}

func (g *Graph) Fit()                    { g.fits++ }
func (g *Graph) SetPhysics(enabled bool) { g.physics = enabled }

// Node returns the node with the given id.
func (g *Graph) Node(id string) (Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Nodes returns all nodes sorted by id.
func (g *Graph) Nodes() []Node {
	out := make([]Node, 0, len(g.nodes))
	for _, n := range g.nodes {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Edges returns all edges in the order they were first added.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.edges[id])
	}
	return out
}

// Dangling reports whether an endpoint of e is not a known node.
func (g *Graph) Dangling(e Edge) bool {
	_, from := g.nodes[e.From]
	_, to := g.nodes[e.To]
	return !from || !to
}

func (g *Graph) NodeCount() int { return len(g.nodes) }
func (g *Graph) EdgeCount() int { return len(g.edges) }
func (g *Graph) Physics() bool  { return g.physics }

// Fits returns how many times the view was fitted.
func (g *Graph) Fits() int { return g.fits }
