package render

import "fmt"

// OpKind is the kind of a render operation.
type OpKind int

const (
	OpAdd OpKind = iota
	OpUpdate
	OpRemove
)

func (k OpKind) String() string {
	switch k {
	case OpAdd:
		return "add"
	case OpUpdate:
		return "update"
	case OpRemove:
		return "remove"
	}
	return fmt.Sprintf("OpKind(%d)", int(k))
}

// Op is one add/update/remove against either a node or an edge.
// Exactly one of Node and Edge is set; removals only carry the id.
type Op struct {
	Kind OpKind
	Node *Node
	Edge *Edge
}

// ID returns the identity of the node or edge the op targets.
func (o Op) ID() string {
	if o.Node != nil {
		return o.Node.ID
	}
	if o.Edge != nil {
		return o.Edge.ID
	}
	return ""
}

// IsNode reports whether the op targets a node.
func (o Op) IsNode() bool {
	return o.Node != nil
}

func (o Op) String() string {
	target := "edge"
	if o.IsNode() {
		target = "node"
	}
	return fmt.Sprintf("%s %s %s", o.Kind, target, o.ID())
}

// Replay applies ops to sink in order and flushes it if it batches.
func Replay(sink GraphSink, ops []Op) error {
	for _, op := range ops {
		switch {
		case op.Node != nil:
			switch op.Kind {
			case OpAdd:
				sink.AddNode(*op.Node)
			case OpUpdate:
				sink.UpdateNode(*op.Node)
			case OpRemove:
				sink.RemoveNode(op.Node.ID)
			}
		case op.Edge != nil:
			switch op.Kind {
			case OpAdd:
				sink.AddEdge(*op.Edge)
			case OpUpdate:
				sink.UpdateEdge(*op.Edge)
			case OpRemove:
				sink.RemoveEdge(op.Edge.ID)
			}
		}
	}
	if f, ok := sink.(Flusher); ok {
		return f.Flush()
	}
	return nil
}
