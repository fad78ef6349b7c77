package reconcile

import (
	"testing"

	"github.com/ThomasCrouzet/inframap-live/internal/model"
	"github.com/ThomasCrouzet/inframap-live/internal/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	webID = "3f2a1b9c0d4e"
	dbID  = "9a8b7c6d5e4f"
)

func webAndDB() *model.Snapshot {
	snap := model.NewSnapshot()
	snap.Containers[webID] = &model.Container{
		ID: webID, Name: "web", Image: "nginx:1.27", Status: model.StatusRunning,
		Networks: map[string]string{"app-net": "172.18.0.2"},
	}
	snap.Containers[dbID] = &model.Container{
		ID: dbID, Name: "db", Image: "postgres:16", Status: model.StatusRunning,
		Networks: map[string]string{"app-net": "172.18.0.3"},
	}
	snap.Connections = []model.Connection{
		{ID: webID + "-" + dbID + "-app-net", Source: webID, Target: dbID, Network: "app-net"},
	}
	snap.Summary = model.Summary{TotalContainers: 2, RunningContainers: 2, TotalNetworks: 1, TotalConnections: 1}
	return snap
}

func TestApplyInitialSnapshot(t *testing.T) {
	m := NewMirror()
	delta := Apply(m, webAndDB(), FitOnPopulate)

	require.Len(t, delta.Ops, 3)
	assert.Equal(t, 2, delta.Count(render.OpAdd, true))
	assert.Equal(t, 1, delta.Count(render.OpAdd, false))
	assert.True(t, delta.Fit)
	assert.Equal(t, 2, delta.Summary.TotalContainers)

	assert.Equal(t, 2, m.NodeCount())
	assert.Equal(t, 1, m.EdgeCount())
	for _, id := range []string{webID, dbID} {
		n, ok := m.Node(id)
		require.True(t, ok)
		assert.Equal(t, render.PaletteSuccess, n.Palette)
	}
	e, ok := m.Edge(webID + "-" + dbID + "-app-net")
	require.True(t, ok)
	assert.Equal(t, "app-net", e.Label)
}

func TestApplyNodesBeforeEdges(t *testing.T) {
	delta := Apply(NewMirror(), webAndDB(), FitOnPopulate)

	lastNode, firstEdge := -1, len(delta.Ops)
	for i, op := range delta.Ops {
		if op.IsNode() {
			lastNode = i
		} else if i < firstEdge {
			firstEdge = i
		}
	}
	assert.Less(t, lastNode, firstEdge)
	assert.Equal(t, webID, delta.Ops[0].ID())
	assert.Equal(t, dbID, delta.Ops[1].ID())
}

func TestApplyIsIdempotent(t *testing.T) {
	m := NewMirror()
	Apply(m, webAndDB(), FitOnPopulate)
	before := m.Graph()

	delta := Apply(m, webAndDB(), FitOnPopulate)

	assert.True(t, delta.Empty())
	assert.False(t, delta.Fit)
	assert.Equal(t, before.Nodes(), m.Graph().Nodes())
	assert.Equal(t, before.Edges(), m.Graph().Edges())
}

func TestApplyTouchesOnlyChangedEntries(t *testing.T) {
	m := NewMirror()
	Apply(m, webAndDB(), FitOnPopulate)

	next := webAndDB()
	next.Containers[dbID].Status = "exited"
	delta := Apply(m, next, FitOnPopulate)

	require.Len(t, delta.Ops, 1)
	op := delta.Ops[0]
	assert.Equal(t, render.OpUpdate, op.Kind)
	assert.Equal(t, dbID, op.ID())
	assert.Equal(t, render.PaletteFailure, op.Node.Palette)
	assert.Contains(t, op.Node.Label, "🔴")

	n, _ := m.Node(webID)
	assert.Equal(t, render.PaletteSuccess, n.Palette)
}

func TestApplyRemovesAndRelabels(t *testing.T) {
	m := NewMirror()
	Apply(m, webAndDB(), FitOnPopulate)

	next := webAndDB()
	delete(next.Containers, dbID)
	next.Containers["cafebabe0000"] = &model.Container{ID: "cafebabe0000", Name: "cache", Status: model.StatusRunning}
	next.Connections = []model.Connection{
		{ID: webID + "-cafebabe0000-app-net", Source: webID, Target: "cafebabe0000", Network: "app-net"},
	}
	delta := Apply(m, next, FitOnPopulate)

	var got []string
	for _, op := range delta.Ops {
		got = append(got, op.String())
	}
	assert.Equal(t, []string{
		"add node cafebabe0000",
		"remove node " + dbID,
		"add edge " + webID + "-cafebabe0000-app-net",
		"remove edge " + webID + "-" + dbID + "-app-net",
	}, got)
	assert.Equal(t, []string{webID, "cafebabe0000"}, m.NodeIDs())
	assert.Equal(t, []string{webID + "-cafebabe0000-app-net"}, m.EdgeIDs())
}

func TestApplyEdgeUpdate(t *testing.T) {
	m := NewMirror()
	Apply(m, webAndDB(), FitOnPopulate)

	next := webAndDB()
	next.Connections[0].Network = "backend"
	delta := Apply(m, next, FitOnPopulate)

	require.Len(t, delta.Ops, 1)
	assert.Equal(t, render.OpUpdate, delta.Ops[0].Kind)
	assert.Equal(t, "backend", delta.Ops[0].Edge.Label)
}

func TestApplyEmptySnapshotClearsMirror(t *testing.T) {
	m := NewMirror()
	Apply(m, webAndDB(), FitOnPopulate)

	delta := Apply(m, model.NewSnapshot(), FitOnPopulate)

	assert.Equal(t, 2, delta.Count(render.OpRemove, true))
	assert.Equal(t, 1, delta.Count(render.OpRemove, false))
	assert.False(t, delta.Fit)
	assert.True(t, m.Empty())
	assert.Zero(t, m.EdgeCount())
}

func TestApplyFitPolicy(t *testing.T) {
	changed := func() *model.Snapshot {
		s := webAndDB()
		s.Containers[webID].Name = "frontend"
		return s
	}

	t.Run("first", func(t *testing.T) {
		m := NewMirror()
		assert.True(t, Apply(m, webAndDB(), FitOnPopulate).Fit)
		assert.False(t, Apply(m, changed(), FitOnPopulate).Fit)
		assert.False(t, Apply(m, model.NewSnapshot(), FitOnPopulate).Fit)
		assert.True(t, Apply(m, webAndDB(), FitOnPopulate).Fit, "repopulating after empty fits again")
	})

	t.Run("always", func(t *testing.T) {
		m := NewMirror()
		assert.True(t, Apply(m, webAndDB(), FitAlways).Fit)
		assert.True(t, Apply(m, changed(), FitAlways).Fit)
		assert.True(t, Apply(m, changed(), FitAlways).Fit)
		assert.False(t, Apply(m, model.NewSnapshot(), FitAlways).Fit)
	})

	t.Run("empty stays empty", func(t *testing.T) {
		assert.False(t, Apply(NewMirror(), model.NewSnapshot(), FitOnPopulate).Fit)
	})
}

func TestApplyDanglingEdgeIsKept(t *testing.T) {
	snap := webAndDB()
	snap.Connections = append(snap.Connections, model.Connection{
		ID: webID + "-gone-app-net", Source: webID, Target: "gone", Network: "app-net",
	})

	m := NewMirror()
	Apply(m, snap, FitOnPopulate)

	assert.Equal(t, 2, m.EdgeCount())
	g := m.Graph()
	assert.True(t, g.Dangling(g.Edges()[1]))
}

func TestApplyDuplicateConnectionIDs(t *testing.T) {
	snap := webAndDB()
	snap.Connections = []model.Connection{
		{ID: "dup", Source: webID, Target: dbID, Network: "first"},
		{ID: "other", Source: dbID, Target: webID, Network: "x"},
		{ID: "dup", Source: webID, Target: dbID, Network: "second"},
	}

	m := NewMirror()
	delta := Apply(m, snap, FitOnPopulate)

	assert.Equal(t, 2, delta.Count(render.OpAdd, false))
	assert.Equal(t, []string{"dup", "other"}, m.EdgeIDs())
	e, _ := m.Edge("dup")
	assert.Equal(t, "second", e.Label)
}

func TestReconcilerApply(t *testing.T) {
	r := New(FitOnPopulate, nil)
	delta := r.Apply(webAndDB())

	assert.Len(t, delta.Ops, 3)
	assert.Equal(t, 2, r.Mirror().NodeCount())
	assert.True(t, r.Apply(webAndDB()).Empty())
}

func TestParseFitPolicy(t *testing.T) {
	p, err := ParseFitPolicy("")
	require.NoError(t, err)
	assert.Equal(t, FitOnPopulate, p)

	p, err = ParseFitPolicy("always")
	require.NoError(t, err)
	assert.Equal(t, FitAlways, p)

	_, err = ParseFitPolicy("sometimes")
	assert.ErrorContains(t, err, "unknown fit policy")
}
