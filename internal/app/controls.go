package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ThomasCrouzet/inframap-live/internal/model"
	"github.com/ThomasCrouzet/inframap-live/internal/render"
)

// Export formats.
const (
	FormatPlantUML = "plantuml"
	FormatJSON     = "json"
	FormatD2       = "d2"
)

// ExportFormats lists the accepted Export formats.
var ExportFormats = []string{FormatPlantUML, FormatJSON, FormatD2}

// Extension returns the file extension for an export format.
func Extension(format string) string {
	switch format {
	case FormatPlantUML:
		return ".puml"
	case FormatJSON:
		return ".json"
	case FormatD2:
		return ".d2"
	}
	return ""
}

// Status is a point-in-time view of the app for the status endpoint.
type Status struct {
	Available  bool          `json:"available"`
	Message    string        `json:"message,omitempty"`
	Connection string        `json:"connection"`
	Summary    model.Summary `json:"summary"`
	Nodes      int           `json:"nodes"`
	Edges      int           `json:"edges"`
	Physics    bool          `json:"physics"`
	LastUpdate *time.Time    `json:"last_update,omitempty"`
}

// Reload requests a fresh pull regardless of availability.
func (a *App) Reload() {
	_ = a.post(context.Background(), a.pull)
}

// TogglePhysics flips the layout simulation and returns the new setting.
func (a *App) TogglePhysics(ctx context.Context) (bool, error) {
	var enabled bool
	err := a.call(ctx, func() {
		a.physics = !a.physics
		a.sink.SetPhysics(a.physics)
		enabled = a.physics
	})
	return enabled, err
}

// Export returns the topology in the given format. plantuml and json are
// fetched from the service as-is; d2 is rendered from the Mirror. None of
// them changes the Mirror.
func (a *App) Export(ctx context.Context, format string) ([]byte, error) {
	switch format {
	case FormatPlantUML:
		s, err := a.fetcher.PlantUML(ctx)
		if err != nil {
			return nil, err
		}
		return []byte(s), nil
	case FormatJSON:
		return a.fetcher.ExportJSON(ctx)
	case FormatD2:
		var out string
		err := a.call(ctx, func() {
			out = render.RenderD2(a.reconciler.Mirror().Graph(), a.renderOpts)
		})
		return []byte(out), err
	}
	return nil, fmt.Errorf("unknown export format %q", format)
}

// Status reports availability, connection state and Mirror counts.
func (a *App) Status(ctx context.Context) (Status, error) {
	var st Status
	err := a.call(ctx, func() {
		m := a.reconciler.Mirror()
		st = Status{
			Available:  a.gate.Available(),
			Message:    a.gate.Message(),
			Connection: "disabled",
			Summary:    a.summary,
			Nodes:      m.NodeCount(),
			Edges:      m.EdgeCount(),
			Physics:    a.physics,
		}
		if a.manager != nil {
			st.Connection = a.connState.String()
		}
		if !a.lastUpdate.IsZero() {
			t := a.lastUpdate
			st.LastUpdate = &t
		}
	})
	return st, err
}

// ExportToFile exports format into dir as topology<ext> and returns the
// written path.
func (a *App) ExportToFile(ctx context.Context, format, dir string) (string, error) {
	data, err := a.Export(ctx, format)
	if err != nil {
		return "", err
	}
	return WriteExport(dir, format, data)
}

// WriteExport writes data for format into dir as topology<ext>.
func WriteExport(dir, format string, data []byte) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating export dir: %w", err)
	}
	path := filepath.Join(dir, "topology"+Extension(format))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing export: %w", err)
	}
	return path, nil
}
