// Package tui is the terminal graph display. The Model owns its own copy
// of the graph and is only touched from the bubbletea event loop; the app
// reaches it through Sink messages.
package tui

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ThomasCrouzet/inframap-live/internal/app"
	"github.com/ThomasCrouzet/inframap-live/internal/model"
	"github.com/ThomasCrouzet/inframap-live/internal/push"
	"github.com/ThomasCrouzet/inframap-live/internal/render"
	"github.com/ThomasCrouzet/inframap-live/internal/ui"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ViewMode selects how the topology is laid out on screen.
type ViewMode int

const (
	// ViewGraph lists each container with its outgoing links.
	ViewGraph ViewMode = iota
	// ViewList shows a flat container table.
	ViewList
)

func (v ViewMode) String() string {
	if v == ViewList {
		return "list"
	}
	return "graph"
}

// Controller is the part of the app the keys drive.
type Controller interface {
	Reload()
	TogglePhysics(ctx context.Context) (bool, error)
	ExportToFile(ctx context.Context, format, dir string) (string, error)
}

// Config configures the Model.
type Config struct {
	Theme       string
	ExportDir   string
	PushEnabled bool
}

const (
	headerHeight = 3
	footerHeight = 2
)

// Model is the bubbletea model for the live topology view.
type Model struct {
	ctrl   Controller
	config Config
	theme  *render.Theme
	keys   keyMap
	help   help.Model

	graph *render.Graph
	// order is the on-screen node order. With physics on it is re-sorted
	// on every change; frozen, new nodes are appended.
	order   []string
	physics bool

	available bool
	message   string
	conn      push.State
	summary   model.Summary
	updated   time.Time
	notice    string

	mode     ViewMode
	viewport viewport.Model
	ready    bool
	width    int
	height   int
	dirty    bool
}

// New creates a Model driven by ctrl.
func New(ctrl Controller, cfg Config) Model {
	return Model{
		ctrl:      ctrl,
		config:    cfg,
		theme:     render.GetTheme(cfg.Theme),
		keys:      defaultKeys(),
		help:      help.New(),
		graph:     render.NewGraph(),
		physics:   true,
		available: true,
		conn:      push.Connecting,
		mode:      ViewGraph,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		h := max(m.height-headerHeight-footerHeight, 1)
		if !m.ready {
			m.viewport = viewport.New(m.width, h)
			m.viewport.YPosition = headerHeight
			m.ready = true
		} else {
			m.viewport.Width, m.viewport.Height = m.width, h
		}
		m.help.Width = m.width
		m.dirty = true

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Reload):
			m.notice = "reloading…"
			cmds = append(cmds, m.reload())
		case key.Matches(msg, m.keys.Physics):
			cmds = append(cmds, m.togglePhysics())
		case key.Matches(msg, m.keys.ExportJSON):
			cmds = append(cmds, m.export(app.FormatJSON))
		case key.Matches(msg, m.keys.ExportPlantUML):
			cmds = append(cmds, m.export(app.FormatPlantUML))
		case key.Matches(msg, m.keys.ExportD2):
			cmds = append(cmds, m.export(app.FormatD2))
		case key.Matches(msg, m.keys.View):
			m.mode = (m.mode + 1) % 2
			m.dirty = true
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		default:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			cmds = append(cmds, cmd)
		}

	case OpMsg:
		m.apply(msg.Op)
		m.dirty = true

	case FitMsg:
		m.viewport.GotoTop()

	case PhysicsMsg:
		m.physics = msg.Enabled
		if m.physics {
			m.relayout()
		}
		m.dirty = true

	case AvailabilityMsg:
		m.available, m.message = msg.Available, msg.Message

	case ConnectionMsg:
		m.conn = msg.State

	case SummaryMsg:
		m.summary, m.updated = msg.Summary, msg.Updated

	case exportedMsg:
		if msg.Err != nil {
			m.notice = fmt.Sprintf("%s export failed: %v", msg.Format, msg.Err)
		} else {
			m.notice = "exported " + msg.Path
		}

	case physicsToggledMsg:
		if msg.Err != nil {
			m.notice = "layout toggle failed: " + msg.Err.Error()
		}

	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}

	if m.dirty && m.ready {
		m.viewport.SetContent(m.body())
		m.dirty = false
	}
	return m, tea.Batch(cmds...)
}

// apply mirrors one render operation into the local graph and node order.
func (m *Model) apply(op render.Op) {
	switch {
	case op.Node != nil && op.Kind == render.OpRemove:
		m.graph.RemoveNode(op.Node.ID)
		m.order = removeID(m.order, op.Node.ID)
	case op.Node != nil:
		if _, known := m.graph.Node(op.Node.ID); !known {
			m.order = append(m.order, op.Node.ID)
		}
		m.graph.AddNode(*op.Node)
	case op.Edge != nil && op.Kind == render.OpRemove:
		m.graph.RemoveEdge(op.Edge.ID)
	case op.Edge != nil:
		m.graph.AddEdge(*op.Edge)
	}
	if m.physics {
		m.relayout()
	}
}

// relayout sorts nodes by group, then name.
func (m *Model) relayout() {
	sort.SliceStable(m.order, func(i, j int) bool {
		a, _ := m.graph.Node(m.order[i])
		b, _ := m.graph.Node(m.order[j])
		if a.Group != b.Group {
			return a.Group < b.Group
		}
		if a.Title != b.Title {
			return a.Title < b.Title
		}
		return a.ID < b.ID
	})
}

func removeID(ids []string, id string) []string {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}

func (m Model) reload() tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		ctrl.Reload()
		return nil
	}
}

func (m Model) togglePhysics() tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		_, err := ctrl.TogglePhysics(context.Background())
		return physicsToggledMsg{Err: err}
	}
}

func (m Model) export(format string) tea.Cmd {
	ctrl, dir := m.ctrl, m.config.ExportDir
	return func() tea.Msg {
		path, err := ctrl.ExportToFile(context.Background(), format, dir)
		return exportedMsg{Format: format, Path: path, Err: err}
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "loading…"
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.header(),
		m.viewport.View(),
		m.footer(),
	)
}

func (m Model) header() string {
	conn := "disabled"
	if m.config.PushEnabled {
		conn = m.conn.String()
	}
	layout := "layout: live"
	if !m.physics {
		layout = "layout: frozen"
	}
	line1 := strings.Join([]string{
		titleStyle.Render("inframap-live"),
		ui.Availability(m.available, m.message),
		ui.Connection(conn),
		dimStyle.Render(layout + " · view: " + m.mode.String()),
	}, "  ")
	line2 := ui.Counters(m.summary.TotalContainers, m.summary.RunningContainers,
		m.summary.TotalNetworks, m.summary.TotalConnections, m.updated)
	line3 := ""
	if !m.available {
		line3 = overlayStyle.Render("⚠ " + m.message + " (showing last known topology)")
	}
	return lipgloss.JoinVertical(lipgloss.Left, line1, line2, line3)
}

func (m Model) footer() string {
	notice := ""
	if m.notice != "" {
		notice = dimStyle.Render(m.notice)
	}
	return lipgloss.JoinVertical(lipgloss.Left, notice, m.help.View(m.keys))
}

// body renders the scrollable topology.
func (m Model) body() string {
	if m.graph.NodeCount() == 0 && m.graph.EdgeCount() == 0 {
		return dimStyle.Render("no containers")
	}
	if m.mode == ViewList {
		return m.listView()
	}
	return m.graphView()
}

func (m Model) graphView() string {
	out := make(map[string][]render.Edge)
	for _, e := range m.graph.Edges() {
		out[e.From] = append(out[e.From], e)
	}

	var b strings.Builder
	for _, id := range m.order {
		n, _ := m.graph.Node(id)
		b.WriteString(m.nodeLine(n))
		b.WriteByte('\n')
		for _, e := range out[id] {
			fmt.Fprintf(&b, "  └─ %s ─▶ %s\n", m.edgeLabel(e), m.endpoint(e.To))
		}
	}

	// Links whose source is not on screen.
	for _, e := range m.graph.Edges() {
		if _, ok := m.graph.Node(e.From); !ok {
			fmt.Fprintf(&b, "%s ─ %s ─▶ %s\n", m.endpoint(e.From), m.edgeLabel(e), m.endpoint(e.To))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) listView() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-24s %-10s %-28s %-12s %s\n", "NAME", "ID", "IMAGE", "GROUP", "STATE")
	for _, id := range m.order {
		n, _ := m.graph.Node(id)
		name := strings.SplitN(n.Label, "\n", 2)[0]
		group := n.Group
		if group == "" {
			group = "-"
		}
		line := fmt.Sprintf("%-24s %-10s %-28s %-12s %s",
			truncate(name, 24), model.ShortID(n.ID), truncate(n.Image, 28), group, n.Palette)
		b.WriteString(m.paletteStyle(n.Palette).Render(line))
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) nodeLine(n render.Node) string {
	label := strings.ReplaceAll(n.Label, "\n", " ")
	line := "● " + label
	if n.Group != "" {
		line += " [" + n.Group + "]"
	}
	return m.paletteStyle(n.Palette).Render(line)
}

func (m Model) edgeLabel(e render.Edge) string {
	c := m.theme.ColorForElement("edge")
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c.Stroke)).Render(e.Label)
}

func (m Model) endpoint(id string) string {
	n, ok := m.graph.Node(id)
	if !ok {
		c := m.theme.ColorForElement("dangling")
		return lipgloss.NewStyle().Foreground(lipgloss.Color(c.Stroke)).Render("missing " + model.ShortID(id))
	}
	return strings.SplitN(n.Label, "\n", 2)[0]
}

func (m Model) paletteStyle(p render.Palette) lipgloss.Style {
	c := m.theme.ColorForPalette(p)
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c.Stroke))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4F46E5"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF"))
	overlayStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#DC2626")).Padding(0, 1)
)
