package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleGraph() *Graph {
	g := NewGraph()
	g.AddNode(Node{ID: "3f2a1b9c0d4e", Label: "🟢 web\n3f2a1b9c", Palette: PaletteSuccess, Image: "nginx:1.27", Group: "proxy"})
	g.AddNode(Node{ID: "9a8b7c6d5e4f", Label: "🔴 db\n9a8b7c6d", Palette: PaletteFailure, Image: "postgres:16", Group: "database", Title: "db\npostgres:16"})
	g.AddEdge(Edge{ID: "3f2a1b9c0d4e-9a8b7c6d5e4f-app-net", From: "3f2a1b9c0d4e", To: "9a8b7c6d5e4f", Label: "app-net"})
	return g
}

func TestD2RendererBasic(t *testing.T) {
	output := RenderD2(sampleGraph(), Options{Direction: "down", Theme: "default"})

	assert.Contains(t, output, "direction: down")
	assert.Contains(t, output, `n_3f2a1b9c0d4e: "🟢 web\n3f2a1b9c" {`)
	assert.Contains(t, output, `style.fill: "#DCFCE7"`)
	assert.Contains(t, output, `style.fill: "#FEE2E2"`)
	assert.Contains(t, output, `tooltip: "db\npostgres:16"`)
	assert.Contains(t, output, "shape: cylinder")
	assert.Contains(t, output, "icons.terrastruct.com/dev/nginx.svg")
	assert.Contains(t, output, `n_3f2a1b9c0d4e -- n_9a8b7c6d5e4f: "app-net" {`)
	assert.NotContains(t, output, "g_")
	assert.NotContains(t, output, "stroke-dash")
}

func TestD2RendererDefaultDirection(t *testing.T) {
	output := RenderD2(NewGraph(), Options{})
	assert.Equal(t, "direction: right\n\n", output)
}

func TestD2RendererGroupsByCategory(t *testing.T) {
	g := sampleGraph()
	g.AddNode(Node{ID: "aaaaaaaaaaaa", Label: "replica", Group: "database"})

	output := RenderD2(g, Options{GroupBy: "category"})

	assert.Contains(t, output, `g_database: "Database" {`)
	assert.Contains(t, output, "  n_9a8b7c6d5e4f:")
	// Single-member categories are not wrapped.
	assert.NotContains(t, output, "g_proxy")
	assert.Contains(t, output, `n_3f2a1b9c0d4e -- g_database.n_9a8b7c6d5e4f: "app-net"`)
}

func TestD2RendererDanglingEdge(t *testing.T) {
	g := NewGraph()
	g.AddNode(Node{ID: "a", Label: "a", Palette: PaletteSuccess})
	g.AddEdge(Edge{ID: "a-ghost-net", From: "a", To: "ghost", Label: "net"})

	output := RenderD2(g, Options{})

	assert.Contains(t, output, `missing_ghost: "? ghost" {`)
	assert.Contains(t, output, `n_a -- missing_ghost: "net" {`)
	assert.Equal(t, 2, strings.Count(output, "style.stroke-dash: 3"))
}

func TestD2RendererThemes(t *testing.T) {
	for _, name := range ThemeNames() {
		t.Run(name, func(t *testing.T) {
			output := RenderD2(sampleGraph(), Options{Theme: name})
			theme := GetTheme(name)
			assert.Contains(t, output, theme.ColorForPalette(PaletteSuccess).Fill)
			assert.Contains(t, output, theme.ColorForPalette(PaletteFailure).Fill)
		})
	}
}

func TestSanitizeAndQuote(t *testing.T) {
	assert.Equal(t, "n_3f2a", sanitizeID("n_", "3F2A"))
	assert.Equal(t, "n_a_b_c", sanitizeID("n_", "a.b/c"))
	assert.Equal(t, "n_unknown", sanitizeID("n_", ""))
	assert.Equal(t, `"say \"hi\""`, quote(`say "hi"`))
	assert.Equal(t, `"a\nb"`, quote("a\nb"))
}
