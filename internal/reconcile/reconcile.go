// Package reconcile keeps the Mirror in line with incoming snapshots by
// computing the minimal set of render operations between them.
package reconcile

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/ThomasCrouzet/inframap-live/internal/model"
	"github.com/ThomasCrouzet/inframap-live/internal/render"
)

// FitPolicy decides which reconciliations request a fit-to-view.
type FitPolicy string

const (
	// FitOnPopulate fits only when the mirror goes from empty to non-empty.
	FitOnPopulate FitPolicy = "first"
	// FitAlways fits after every reconciliation that leaves nodes on screen.
	FitAlways FitPolicy = "always"
)

// ParseFitPolicy validates a configured policy name.
func ParseFitPolicy(s string) (FitPolicy, error) {
	switch FitPolicy(s) {
	case FitOnPopulate, FitAlways:
		return FitPolicy(s), nil
	case "":
		return FitOnPopulate, nil
	}
	return "", fmt.Errorf("unknown fit policy %q (want %q or %q)", s, FitOnPopulate, FitAlways)
}

// RenderDelta is the result of one reconciliation.
type RenderDelta struct {
	// Ops lists node operations first (add, update, remove), then edge
	// operations in the same order, so no edge is added before its endpoints.
	Ops []render.Op
	// Summary is copied verbatim from the snapshot.
	Summary model.Summary
	// Fit asks the caller to schedule a one-shot fit-to-view.
	Fit bool
}

// Empty reports whether the delta changes nothing on screen.
func (d RenderDelta) Empty() bool {
	return len(d.Ops) == 0
}

// Count returns how many ops of the given kind target nodes (or edges).
func (d RenderDelta) Count(kind render.OpKind, nodes bool) int {
	n := 0
	for _, op := range d.Ops {
		if op.Kind == kind && op.IsNode() == nodes {
			n++
		}
	}
	return n
}

// Apply brings m in line with snap and returns the operations that were
// applied. Applying the same snapshot twice yields an empty delta the
// second time.
func Apply(m *Mirror, snap *model.Snapshot, policy FitPolicy) RenderDelta {
	wasEmpty := m.Empty()

	nodeOps := diffNodes(m, snap)
	edgeOps, order := diffEdges(m, snap)

	for _, op := range nodeOps {
		if op.Kind == render.OpRemove {
			delete(m.nodes, op.Node.ID)
		} else {
			m.nodes[op.Node.ID] = *op.Node
		}
	}
	for _, op := range edgeOps {
		if op.Kind == render.OpRemove {
			delete(m.edges, op.Edge.ID)
		} else {
			m.edges[op.Edge.ID] = *op.Edge
		}
	}
	m.order = order

	delta := RenderDelta{
		Ops:     append(nodeOps, edgeOps...),
		Summary: snap.Summary,
	}
	if !m.Empty() {
		delta.Fit = policy == FitAlways || wasEmpty
	}
	return delta
}

func diffNodes(m *Mirror, snap *model.Snapshot) []render.Op {
	var adds, updates, removes []render.Op

	for _, id := range snap.ContainerIDs() {
		c := snap.Containers[id]
		if c == nil {
			continue
		}
		next := nodeFor(c)
		prev, ok := m.nodes[id]
		switch {
		case !ok:
			adds = append(adds, render.Op{Kind: render.OpAdd, Node: &next})
		case prev != next:
			updates = append(updates, render.Op{Kind: render.OpUpdate, Node: &next})
		}
	}

	for _, id := range m.NodeIDs() {
		if c, ok := snap.Containers[id]; !ok || c == nil {
			prev := m.nodes[id]
			removes = append(removes, render.Op{Kind: render.OpRemove, Node: &prev})
		}
	}

	return concat(adds, updates, removes)
}

// diffEdges also returns the snapshot's edge order with duplicate ids
// collapsed: the last occurrence wins but keeps the first position.
func diffEdges(m *Mirror, snap *model.Snapshot) ([]render.Op, []string) {
	next := make(map[string]render.Edge, len(snap.Connections))
	var order []string
	for _, c := range snap.Connections {
		if _, seen := next[c.ID]; !seen {
			order = append(order, c.ID)
		}
		next[c.ID] = edgeFor(c)
	}

	var adds, updates, removes []render.Op
	for _, id := range order {
		e := next[id]
		prev, ok := m.edges[id]
		switch {
		case !ok:
			adds = append(adds, render.Op{Kind: render.OpAdd, Edge: &e})
		case prev != e:
			updates = append(updates, render.Op{Kind: render.OpUpdate, Edge: &e})
		}
	}

	stale := make([]string, 0)
	for id := range m.edges {
		if _, ok := next[id]; !ok {
			stale = append(stale, id)
		}
	}
	sort.Strings(stale)
	for _, id := range stale {
		prev := m.edges[id]
		removes = append(removes, render.Op{Kind: render.OpRemove, Edge: &prev})
	}

	return concat(adds, updates, removes), order
}

func concat(groups ...[]render.Op) []render.Op {
	var out []render.Op
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

// Reconciler owns the Mirror and is the single entry point through which
// snapshots reach it.
type Reconciler struct {
	mirror *Mirror
	policy FitPolicy
	logger *slog.Logger
}

// New creates a Reconciler with an empty Mirror.
func New(policy FitPolicy, logger *slog.Logger) *Reconciler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reconciler{
		mirror: NewMirror(),
		policy: policy,
		logger: logger.With("component", "reconciler"),
	}
}

// Apply reconciles snap into the Mirror.
func (r *Reconciler) Apply(snap *model.Snapshot) RenderDelta {
	delta := Apply(r.mirror, snap, r.policy)

	reconciliations.Inc()
	for _, op := range delta.Ops {
		target := "edge"
		if op.IsNode() {
			target = "node"
		}
		renderOps.WithLabelValues(target, op.Kind.String()).Inc()
	}
	mirrorNodes.Set(float64(r.mirror.NodeCount()))
	mirrorEdges.Set(float64(r.mirror.EdgeCount()))

	if !delta.Empty() {
		r.logger.Debug("reconciled snapshot",
			"nodes_added", delta.Count(render.OpAdd, true),
			"nodes_updated", delta.Count(render.OpUpdate, true),
			"nodes_removed", delta.Count(render.OpRemove, true),
			"edges_added", delta.Count(render.OpAdd, false),
			"edges_updated", delta.Count(render.OpUpdate, false),
			"edges_removed", delta.Count(render.OpRemove, false),
			"fit", delta.Fit)
	}
	if dangling := snap.Dangling(); len(dangling) > 0 {
		r.logger.Debug("snapshot has dangling connections", "count", len(dangling))
	}
	return delta
}

// Mirror gives read access to the current Mirror. It has no exported
// mutators; only Apply changes it.
func (r *Reconciler) Mirror() *Mirror {
	return r.mirror
}
