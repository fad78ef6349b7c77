package reconcile

import (
	"fmt"
	"strings"

	"github.com/ThomasCrouzet/inframap-live/internal/model"
	"github.com/ThomasCrouzet/inframap-live/internal/render"
)

const (
	iconRunning = "🟢"
	iconDown    = "🔴"
)

// StatusIcon returns the icon shown in a node label for a status.
func StatusIcon(s model.Status) string {
	if s.Running() {
		return iconRunning
	}
	return iconDown
}

// NodeLabel composes the label of a container node: status icon, name and
// short id.
func NodeLabel(c *model.Container) string {
	return fmt.Sprintf("%s %s\n%s", StatusIcon(c.Status), c.Name, model.ShortID(c.ID))
}

// NodeColor classifies a status into the success or failure palette.
func NodeColor(s model.Status) render.Palette {
	if s.Running() {
		return render.PaletteSuccess
	}
	return render.PaletteFailure
}

// NodeTitle builds the detail text of a container node.
func NodeTitle(c *model.Container) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s)\n", c.Name, c.ID)
	image := c.Image
	if image == "" {
		image = "unknown"
	}
	fmt.Fprintf(&b, "image: %s\n", image)
	status := string(c.Status)
	if status == "" {
		status = "unknown"
	}
	fmt.Fprintf(&b, "status: %s", status)
	for _, net := range c.NetworkNames() {
		ip := c.Networks[net]
		if ip == "" {
			ip = "N/A"
		}
		fmt.Fprintf(&b, "\n%s: %s", net, ip)
	}
	return b.String()
}

// nodeFor derives the display node of a container. Every field is a pure
// function of the container; nothing is cached between reconciliations.
func nodeFor(c *model.Container) render.Node {
	return render.Node{
		ID:      c.ID,
		Label:   NodeLabel(c),
		Title:   NodeTitle(c),
		Palette: NodeColor(c.Status),
		Group:   c.Category(),
		Image:   c.Image,
	}
}

func edgeFor(c model.Connection) render.Edge {
	return render.Edge{
		ID:    c.ID,
		From:  c.Source,
		To:    c.Target,
		Label: c.Network,
	}
}
