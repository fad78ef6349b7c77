package render

// Palette is the binary color classification of a node.
type Palette int

const (
	PaletteFailure Palette = iota
	PaletteSuccess
)

func (p Palette) String() string {
	if p == PaletteSuccess {
		return "success"
	}
	return "failure"
}

// Node is the display form of a container.
type Node struct {
	ID      string
	Label   string
	Title   string // tooltip / detail text
	Palette Palette
	Group   string // category used for grouping, may be empty
	Image   string
}

// Edge is the display form of a connection.
type Edge struct {
	ID    string
	From  string
	To    string
	Label string
}

// GraphSink is the graph-display capability the reconciler drives.
// Implementations must accept an edge whose endpoints are unknown.
type GraphSink interface {
	AddNode(n Node)
	UpdateNode(n Node)
	RemoveNode(id string)
	AddEdge(e Edge)
	UpdateEdge(e Edge)
	RemoveEdge(id string)
	Fit()
	SetPhysics(enabled bool)
}

// Flusher is implemented by sinks that batch operations and need to be
// told when a delta has been fully replayed.
type Flusher interface {
	Flush() error
}
