// Package gate decides whether a snapshot payload describes a reachable,
// valid data source before it is allowed anywhere near the Mirror.
package gate

import "github.com/ThomasCrouzet/inframap-live/internal/model"

// ConnectionErrorMessage is shown when a pull could not complete at all.
const ConnectionErrorMessage = "Connection error: unable to reach the topology service"

// UnavailableMessage is shown when a payload declares unavailability without saying why.
const UnavailableMessage = "Docker not available"

// Result is the outcome of classifying one payload.
type Result struct {
	Available bool
	Snapshot  *model.Snapshot // set only when Available
	Message   string          // set only when not Available
	Cause     error           // decode or transport error, for logging
}

// Classify parses raw as a snapshot payload. A body that cannot be decoded
// is treated like a transport failure.
func Classify(raw []byte) Result {
	p, err := decode(raw)
	if err != nil {
		return Result{Message: err.Error(), Cause: err}
	}
	if !p.available() {
		msg := p.errorText()
		if msg == "" {
			msg = UnavailableMessage
		}
		return Result{Message: msg}
	}
	return Result{Available: true, Snapshot: p.snapshot()}
}

// FromTransportError turns a failed pull into an unavailable Result with
// the generic connection message.
func FromTransportError(err error) Result {
	return Result{Message: ConnectionErrorMessage, Cause: err}
}

// Gate remembers the last availability verdict and whether the
// unavailability indicator is currently shown.
type Gate struct {
	available bool
	message   string
}

// New returns a Gate that optimistically assumes the source is available
// until told otherwise.
func New() *Gate {
	return &Gate{available: true}
}

// Observe records r and reports whether the indicator state changed
// (availability flipped or the unavailability message differs).
func (g *Gate) Observe(r Result) bool {
	changed := g.available != r.Available || (!r.Available && g.message != r.Message)
	g.available = r.Available
	if r.Available {
		g.message = ""
	} else {
		g.message = r.Message
	}
	availability.Set(boolGauge(g.available))
	return changed
}

// Available reports the last known availability.
func (g *Gate) Available() bool {
	return g.available
}

// Message returns the unavailability message, or "" when available.
func (g *Gate) Message() string {
	return g.message
}
