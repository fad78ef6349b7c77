package gate

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ThomasCrouzet/inframap-live/internal/model"
)

// payload is the wire schema shared by the pull endpoint and the push channel.
// Optional fields are pointers or zero-valued so absence can be told apart
// where the defaulting rules need it.
type payload struct {
	DockerAvailable *bool                       `json:"docker_available"`
	Error           *string                     `json:"error"`
	Containers      map[string]containerPayload `json:"containers"`
	Connections     []connectionPayload         `json:"connections"`
	Summary         *model.Summary              `json:"summary"`
	Timestamp       string                      `json:"timestamp"`
}

type containerPayload struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Image     string            `json:"image"`
	Status    string            `json:"status"`
	Networks  map[string]string `json:"networks"`
	Timestamp string            `json:"timestamp"`
}

type connectionPayload struct {
	ID      string `json:"id"`
	Source  string `json:"source"`
	Target  string `json:"target"`
	Network string `json:"network"`
}

var errNotObject = errors.New("body is not a JSON object")

func decode(raw []byte) (*payload, error) {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, fmt.Errorf("invalid snapshot payload: %w", errNotObject)
	}
	var p payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("invalid snapshot payload: %w", err)
	}
	return &p, nil
}

// available reports whether the payload declares a reachable source:
// docker_available not explicitly false and no error text.
func (p *payload) available() bool {
	if p.DockerAvailable != nil && !*p.DockerAvailable {
		return false
	}
	return p.errorText() == ""
}

func (p *payload) errorText() string {
	if p.Error == nil {
		return ""
	}
	return strings.TrimSpace(*p.Error)
}

// snapshot converts the payload to a model.Snapshot, substituting safe
// defaults for everything that is missing.
func (p *payload) snapshot() *model.Snapshot {
	snap := model.NewSnapshot()
	snap.Available = p.available()
	snap.Error = p.errorText()
	snap.Timestamp = parseTimestamp(p.Timestamp)
	if p.Summary != nil {
		snap.Summary = *p.Summary
	}

	for key, c := range p.Containers {
		id := key
		if id == "" {
			id = c.ID
		}
		if id == "" {
			continue
		}
		ctr := &model.Container{
			ID:        id,
			Name:      c.Name,
			Image:     c.Image,
			Status:    model.Status(c.Status),
			Networks:  c.Networks,
			UpdatedAt: parseTimestamp(c.Timestamp),
		}
		if ctr.Name == "" {
			ctr.Name = model.ShortID(id)
		}
		if ctr.Networks == nil {
			ctr.Networks = map[string]string{}
		}
		snap.Containers[id] = ctr
	}

	snap.Connections = make([]model.Connection, 0, len(p.Connections))
	for _, c := range p.Connections {
		id := c.ID
		if id == "" {
			// Same composition the backend uses for its own ids.
			id = fmt.Sprintf("%s-%s-%s", c.Source, c.Target, c.Network)
		}
		snap.Connections = append(snap.Connections, model.Connection{
			ID:      id,
			Source:  c.Source,
			Target:  c.Target,
			Network: c.Network,
		})
	}

	return snap
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
}

func parseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
