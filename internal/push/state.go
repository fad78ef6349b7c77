package push

import "fmt"

// State is the lifecycle of the push-channel connection.
type State int

const (
	Connecting State = iota
	Open
	ClosedRetrying
)

func (s State) String() string {
	switch s {
	case Connecting:
		return "connecting"
	case Open:
		return "open"
	case ClosedRetrying:
		return "closed-retrying"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Connected reports whether messages can currently arrive.
func (s State) Connected() bool {
	return s == Open
}
