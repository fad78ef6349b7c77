package tui

import (
	"time"

	"github.com/ThomasCrouzet/inframap-live/internal/model"
	"github.com/ThomasCrouzet/inframap-live/internal/push"
	"github.com/ThomasCrouzet/inframap-live/internal/render"
)

// OpMsg carries one render operation from the app loop.
type OpMsg struct {
	Op render.Op
}

// FitMsg asks the view to recenter.
type FitMsg struct{}

// PhysicsMsg switches live re-layout on or off.
type PhysicsMsg struct {
	Enabled bool
}

// AvailabilityMsg reports the source availability.
type AvailabilityMsg struct {
	Available bool
	Message   string
}

// ConnectionMsg reports the push-channel state.
type ConnectionMsg struct {
	State push.State
}

// SummaryMsg carries the counters of the last applied snapshot.
type SummaryMsg struct {
	Summary model.Summary
	Updated time.Time
}

// exportedMsg is the result of an export command.
type exportedMsg struct {
	Format string
	Path   string
	Err    error
}

// physicsToggledMsg is the result of a physics toggle request.
type physicsToggledMsg struct {
	Err error
}
