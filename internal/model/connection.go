package model

// Connection is a network link between two containers.
// Source and Target are container ids; they may reference containers
// missing from the snapshot, in which case the edge dangles.
type Connection struct {
	ID      string
	Source  string
	Target  string
	Network string
}
