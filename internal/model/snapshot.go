package model

import (
	"sort"
	"time"
)

// Summary holds the counters computed by the backend for a snapshot.
type Summary struct {
	TotalContainers   int `json:"total_containers"`
	RunningContainers int `json:"running_containers"`
	TotalNetworks     int `json:"total_networks"`
	TotalConnections  int `json:"total_connections"`
}

// Snapshot is a complete point-in-time description of the topology.
type Snapshot struct {
	Containers  map[string]*Container
	Connections []Connection
	Summary     Summary
	Timestamp   time.Time
	Available   bool
	Error       string
}

// NewSnapshot creates an initialized, available Snapshot.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Containers: make(map[string]*Container),
		Available:  true,
	}
}

// ContainerIDs returns the container ids in ascending order.
func (s *Snapshot) ContainerIDs() []string {
	return sortedKeys(s.Containers)
}

// Dangling returns the connections whose source or target is not a known container.
func (s *Snapshot) Dangling() []Connection {
	var out []Connection
	for _, c := range s.Connections {
		_, src := s.Containers[c.Source]
		_, dst := s.Containers[c.Target]
		if !src || !dst {
			out = append(out, c)
		}
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
