package gate

import (
	"errors"
	"testing"

	"github.com/ThomasCrouzet/inframap-live/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyAvailability(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		available bool
		message   string
	}{
		{"flag absent", `{"containers": {}}`, true, ""},
		{"flag true", `{"docker_available": true}`, true, ""},
		{"flag false", `{"docker_available": false}`, false, UnavailableMessage},
		{"flag false with error", `{"docker_available": false, "error": "daemon down"}`, false, "daemon down"},
		{"error only", `{"error": "permission denied"}`, false, "permission denied"},
		{"error null", `{"docker_available": true, "error": null}`, true, ""},
		{"error empty", `{"error": ""}`, true, ""},
		{"not json", `<html>502</html>`, false, ""},
		{"not an object", `[1, 2]`, false, ""},
		{"null", `null`, false, ""},
		{"padded null", " \n null ", false, ""},
		{"empty body", ``, false, ""},
		{"string", `"ok"`, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Classify([]byte(tt.raw))
			assert.Equal(t, tt.available, r.Available)
			if tt.available {
				require.NotNil(t, r.Snapshot)
				assert.Empty(t, r.Message)
				return
			}
			assert.Nil(t, r.Snapshot)
			if tt.message != "" {
				assert.Equal(t, tt.message, r.Message)
			} else {
				assert.Contains(t, r.Message, "invalid snapshot payload")
				assert.Error(t, r.Cause)
			}
		})
	}
}

func TestClassifyFullPayload(t *testing.T) {
	raw := `{
		"containers": {
			"3f2a1b9c0d4e": {
				"id": "3f2a1b9c0d4e",
				"name": "web",
				"image": "nginx:1.27",
				"status": "running",
				"networks": {"app-net": "172.18.0.2"},
				"stats": {"cpu_percent": 1.5, "memory_usage": 10485760, "network": {}},
				"timestamp": "2026-10-19T08:30:00.123456"
			},
			"9a8b7c6d5e4f": {
				"name": "db",
				"image": "postgres:16",
				"status": "exited",
				"stats": {"error": "Stats unavailable"}
			}
		},
		"connections": [
			{"id": "3f2a1b9c0d4e-9a8b7c6d5e4f-app-net", "source": "3f2a1b9c0d4e", "target": "9a8b7c6d5e4f", "network": "app-net"}
		],
		"summary": {"total_containers": 2, "running_containers": 1, "total_networks": 1, "total_connections": 1},
		"timestamp": "2026-10-19T08:30:00Z",
		"docker_available": true
	}`

	r := Classify([]byte(raw))
	require.True(t, r.Available)
	snap := r.Snapshot

	require.Len(t, snap.Containers, 2)
	web := snap.Containers["3f2a1b9c0d4e"]
	assert.Equal(t, "web", web.Name)
	assert.Equal(t, model.StatusRunning, web.Status)
	assert.Equal(t, "172.18.0.2", web.Networks["app-net"])
	assert.False(t, web.UpdatedAt.IsZero())

	db := snap.Containers["9a8b7c6d5e4f"]
	assert.Equal(t, model.Status("exited"), db.Status)
	assert.NotNil(t, db.Networks)

	require.Len(t, snap.Connections, 1)
	assert.Equal(t, "app-net", snap.Connections[0].Network)
	assert.Equal(t, model.Summary{TotalContainers: 2, RunningContainers: 1, TotalNetworks: 1, TotalConnections: 1}, snap.Summary)
	assert.Equal(t, 2026, snap.Timestamp.Year())
}

func TestClassifyDefaults(t *testing.T) {
	r := Classify([]byte(`{}`))
	require.True(t, r.Available)

	snap := r.Snapshot
	assert.Empty(t, snap.Containers)
	assert.NotNil(t, snap.Containers)
	assert.Empty(t, snap.Connections)
	assert.Equal(t, model.Summary{}, snap.Summary)
	assert.True(t, snap.Timestamp.IsZero())
}

func TestClassifyConnectionWithoutID(t *testing.T) {
	r := Classify([]byte(`{"connections": [{"source": "a", "target": "b", "network": "bridge"}]}`))
	require.True(t, r.Available)
	assert.Equal(t, "a-b-bridge", r.Snapshot.Connections[0].ID)
}

func TestClassifyNameFallsBackToShortID(t *testing.T) {
	r := Classify([]byte(`{"containers": {"0123456789ab": {"status": "running"}}}`))
	require.True(t, r.Available)
	assert.Equal(t, "01234567", r.Snapshot.Containers["0123456789ab"].Name)
}

func TestFromTransportError(t *testing.T) {
	cause := errors.New("dial tcp 127.0.0.1:8000: connect: connection refused")
	r := FromTransportError(cause)
	assert.False(t, r.Available)
	assert.Nil(t, r.Snapshot)
	assert.Equal(t, ConnectionErrorMessage, r.Message)
	assert.ErrorIs(t, r.Cause, cause)
}

func TestGateObserve(t *testing.T) {
	g := New()
	assert.True(t, g.Available())

	// Same verdict as the optimistic default: nothing to redraw.
	assert.False(t, g.Observe(Result{Available: true}))

	assert.True(t, g.Observe(Result{Message: "daemon down"}))
	assert.False(t, g.Available())
	assert.Equal(t, "daemon down", g.Message())

	assert.False(t, g.Observe(Result{Message: "daemon down"}))
	assert.True(t, g.Observe(Result{Message: ConnectionErrorMessage}))

	assert.True(t, g.Observe(Result{Available: true}))
	assert.True(t, g.Available())
	assert.Empty(t, g.Message())
}
