package tui

import (
	"time"

	"github.com/ThomasCrouzet/inframap-live/internal/model"
	"github.com/ThomasCrouzet/inframap-live/internal/push"
	"github.com/ThomasCrouzet/inframap-live/internal/render"
	tea "github.com/charmbracelet/bubbletea"
)

// Sink forwards graph operations and indicator updates into the bubbletea
// program as messages. It satisfies render.GraphSink and app.Indicator.
type Sink struct {
	send func(tea.Msg)
}

// NewProgram creates the bubbletea program and its Sink. build receives
// the Sink before the program exists and returns the Controller the keys
// drive; nothing may be sent through the Sink until NewProgram returns.
func NewProgram(cfg Config, build func(*Sink) Controller, opts ...tea.ProgramOption) *tea.Program {
	sink := &Sink{}
	p := tea.NewProgram(New(build(sink), cfg), opts...)
	sink.send = p.Send
	return p
}

func (s *Sink) AddNode(n render.Node) {
	s.send(OpMsg{Op: render.Op{Kind: render.OpAdd, Node: &n}})
}

func (s *Sink) UpdateNode(n render.Node) {
	s.send(OpMsg{Op: render.Op{Kind: render.OpUpdate, Node: &n}})
}

func (s *Sink) RemoveNode(id string) {
	s.send(OpMsg{Op: render.Op{Kind: render.OpRemove, Node: &render.Node{ID: id}}})
}

func (s *Sink) AddEdge(e render.Edge) {
	s.send(OpMsg{Op: render.Op{Kind: render.OpAdd, Edge: &e}})
}

func (s *Sink) UpdateEdge(e render.Edge) {
	s.send(OpMsg{Op: render.Op{Kind: render.OpUpdate, Edge: &e}})
}

func (s *Sink) RemoveEdge(id string) {
	s.send(OpMsg{Op: render.Op{Kind: render.OpRemove, Edge: &render.Edge{ID: id}}})
}

func (s *Sink) Fit() { s.send(FitMsg{}) }

func (s *Sink) SetPhysics(enabled bool) { s.send(PhysicsMsg{Enabled: enabled}) }

func (s *Sink) SetAvailability(available bool, message string) {
	s.send(AvailabilityMsg{Available: available, Message: message})
}

func (s *Sink) SetConnection(state push.State) {
	s.send(ConnectionMsg{State: state})
}

func (s *Sink) SetSummary(sum model.Summary, updated time.Time) {
	s.send(SummaryMsg{Summary: sum, Updated: updated})
}
