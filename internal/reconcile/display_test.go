package reconcile

import (
	"testing"

	"github.com/ThomasCrouzet/inframap-live/internal/model"
	"github.com/ThomasCrouzet/inframap-live/internal/render"
	"github.com/stretchr/testify/assert"
)

func TestNodeLabel(t *testing.T) {
	tests := []struct {
		name     string
		c        model.Container
		expected string
	}{
		{"running", model.Container{ID: "3f2a1b9c0d4e", Name: "web", Status: model.StatusRunning}, "🟢 web\n3f2a1b9c"},
		{"exited", model.Container{ID: "9a8b7c6d5e4f", Name: "db", Status: "exited"}, "🔴 db\n9a8b7c6d"},
		{"short id", model.Container{ID: "abc", Name: "x", Status: ""}, "🔴 x\nabc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NodeLabel(&tt.c))
		})
	}
}

func TestNodeColor(t *testing.T) {
	assert.Equal(t, render.PaletteSuccess, NodeColor(model.StatusRunning))
	for _, s := range []model.Status{model.StatusStopped, "exited", "paused", "restarting", ""} {
		assert.Equal(t, render.PaletteFailure, NodeColor(s), string(s))
	}
}

func TestNodeTitle(t *testing.T) {
	c := &model.Container{
		ID:       "3f2a1b9c0d4e",
		Name:     "web",
		Status:   model.StatusRunning,
		Networks: map[string]string{"bridge": "", "app-net": "172.18.0.2"},
	}
	assert.Equal(t, "web (3f2a1b9c0d4e)\nimage: unknown\nstatus: running\napp-net: 172.18.0.2\nbridge: N/A", NodeTitle(c))
}

func TestNodeForIsPure(t *testing.T) {
	c := &model.Container{ID: "a", Name: "redis", Image: "redis:7", Status: model.StatusRunning}
	first := nodeFor(c)
	assert.Equal(t, first, nodeFor(c))
	assert.Equal(t, "cache", first.Group)

	c.Status = "exited"
	assert.Equal(t, render.PaletteFailure, nodeFor(c).Palette)
}
