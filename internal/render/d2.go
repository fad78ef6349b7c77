package render

import (
	"fmt"
	"sort"
	"strings"
)

// Options controls D2 output.
type Options struct {
	Direction string // up, down, left, right
	Theme     string
	GroupBy   string // "category" or "" for a flat diagram
}

// D2Renderer generates D2 diagram text from a Graph.
type D2Renderer struct {
	Options Options
}

// RenderD2 generates a D2 diagram of the graph.
func RenderD2(g *Graph, opts Options) string {
	r := &D2Renderer{Options: opts}
	return r.Render(g)
}

func (r *D2Renderer) Render(g *Graph) string {
	theme := GetTheme(r.Options.Theme)
	var b strings.Builder

	direction := r.Options.Direction
	if direction == "" {
		direction = "right"
	}
	fmt.Fprintf(&b, "direction: %s\n\n", direction)

	paths := make(map[string]string, g.NodeCount())
	groups, flat := r.partition(g.Nodes())

	for _, name := range sortedGroupNames(groups) {
		gid := sanitizeID("g_", name)
		color := theme.ColorForElement("group")
		fmt.Fprintf(&b, "%s: %s {\n", gid, quote(strings.ToUpper(name[:1])+name[1:]))
		fmt.Fprintf(&b, "  style.fill: %q\n", color.Fill)
		fmt.Fprintf(&b, "  style.stroke: %q\n", color.Stroke)
		b.WriteString("\n")
		for _, n := range groups[name] {
			id := sanitizeID("n_", n.ID)
			paths[n.ID] = gid + "." + id
			r.renderNode(&b, n, theme, "  ")
		}
		b.WriteString("}\n\n")
	}

	for _, n := range flat {
		paths[n.ID] = sanitizeID("n_", n.ID)
		r.renderNode(&b, n, theme, "")
	}
	if len(flat) > 0 {
		b.WriteString("\n")
	}

	r.renderEdges(&b, g, theme, paths)

	return b.String()
}

// partition splits nodes into category groups and ungrouped nodes. A
// category with a single member is not worth a container and stays flat.
func (r *D2Renderer) partition(nodes []Node) (map[string][]Node, []Node) {
	groups := make(map[string][]Node)
	var flat []Node
	if r.Options.GroupBy != "category" {
		return groups, nodes
	}
	for _, n := range nodes {
		if n.Group == "" {
			flat = append(flat, n)
			continue
		}
		groups[n.Group] = append(groups[n.Group], n)
	}
	for name, members := range groups {
		if len(members) < 2 {
			flat = append(flat, members...)
			delete(groups, name)
		}
	}
	sort.Slice(flat, func(i, j int) bool { return flat[i].ID < flat[j].ID })
	return groups, flat
}

func (r *D2Renderer) renderNode(b *strings.Builder, n Node, theme *Theme, indent string) {
	color := theme.ColorForPalette(n.Palette)
	fmt.Fprintf(b, "%s%s: %s {\n", indent, sanitizeID("n_", n.ID), quote(n.Label))
	fmt.Fprintf(b, "%s  style.fill: %q\n", indent, color.Fill)
	fmt.Fprintf(b, "%s  style.stroke: %q\n", indent, color.Stroke)
	fmt.Fprintf(b, "%s  style.font-color: %q\n", indent, color.Font)
	if n.Title != "" {
		fmt.Fprintf(b, "%s  tooltip: %s\n", indent, quote(n.Title))
	}
	if icon := LookupIcon(n.Image, n.Group); icon != "" {
		fmt.Fprintf(b, "%s  icon: %s\n", indent, icon)
	}
	if n.Group == "database" {
		fmt.Fprintf(b, "%s  shape: cylinder\n", indent)
	}
	fmt.Fprintf(b, "%s}\n", indent)
}

func (r *D2Renderer) renderEdges(b *strings.Builder, g *Graph, theme *Theme, paths map[string]string) {
	edgeColor := theme.ColorForElement("edge")
	missing := theme.ColorForElement("dangling")

	// Endpoints that are not nodes get a visible placeholder instead of
	// letting d2 invent an unstyled shape.
	var placeholders []string
	seen := make(map[string]bool)
	for _, e := range g.Edges() {
		for _, end := range []string{e.From, e.To} {
			if _, ok := paths[end]; ok || seen[end] {
				continue
			}
			seen[end] = true
			placeholders = append(placeholders, end)
		}
	}
	sort.Strings(placeholders)
	for _, id := range placeholders {
		pid := sanitizeID("missing_", id)
		paths[id] = pid
		fmt.Fprintf(b, "%s: %s {\n", pid, quote("? "+id))
		fmt.Fprintf(b, "  style.fill: %q\n", missing.Fill)
		fmt.Fprintf(b, "  style.stroke: %q\n", missing.Stroke)
		b.WriteString("  style.stroke-dash: 3\n")
		b.WriteString("}\n")
	}
	if len(placeholders) > 0 {
		b.WriteString("\n")
	}

	for _, e := range g.Edges() {
		fmt.Fprintf(b, "%s -- %s: %s {\n", paths[e.From], paths[e.To], quote(e.Label))
		fmt.Fprintf(b, "  style.stroke: %q\n", edgeColor.Stroke)
		if g.Dangling(e) {
			b.WriteString("  style.stroke-dash: 3\n")
		}
		b.WriteString("}\n")
	}
}

func sortedGroupNames(groups map[string][]Node) []string {
	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
