package model

import "time"

// Status is the lifecycle state reported for a container.
type Status string

const (
	StatusRunning Status = "running"
	StatusStopped Status = "stopped"
)

// Running reports whether the status is exactly "running".
// Every other value (exited, paused, restarting, ...) counts as not running.
func (s Status) Running() bool {
	return s == StatusRunning
}

// Container is a single node of the topology, identified by ID.
type Container struct {
	ID        string
	Name      string
	Image     string
	Status    Status
	Networks  map[string]string // network name -> IP address
	UpdatedAt time.Time
}

// ShortIDLen is the number of id characters shown in node labels.
const ShortIDLen = 8

// ShortID returns the first ShortIDLen runes of id.
func ShortID(id string) string {
	r := []rune(id)
	if len(r) <= ShortIDLen {
		return id
	}
	return string(r[:ShortIDLen])
}

// NetworkNames returns the networks the container is attached to, sorted.
func (c *Container) NetworkNames() []string {
	return sortedKeys(c.Networks)
}
