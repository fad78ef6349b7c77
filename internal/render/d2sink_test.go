package render

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestD2SinkWritesOnlyOnChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "topology.d2")
	sink := NewD2Sink(path, Options{Theme: "dark"})

	writes := 0
	sink.AfterWrite = func(p string) error {
		assert.Equal(t, path, p)
		writes++
		return nil
	}

	ops := []Op{{Kind: OpAdd, Node: &Node{ID: "a", Label: "alpha", Palette: PaletteSuccess}}}
	require.NoError(t, Replay(sink, ops))
	require.NoError(t, Replay(sink, nil))
	assert.Equal(t, 1, writes)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `n_a: "alpha"`)
	assert.Contains(t, string(data), GetTheme("dark").ColorForPalette(PaletteSuccess).Fill)

	require.NoError(t, Replay(sink, []Op{{Kind: OpRemove, Node: &Node{ID: "a"}}}))
	assert.Equal(t, 2, writes)
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "alpha")

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestD2SinkWriteError(t *testing.T) {
	sink := NewD2Sink(filepath.Join(t.TempDir(), "missing", "topology.d2"), Options{})
	assert.Error(t, sink.Flush())
}
