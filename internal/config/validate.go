package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/ThomasCrouzet/inframap-live/internal/reconcile"
	"github.com/ThomasCrouzet/inframap-live/internal/render"
)

// ValidationError reports a config problem with a suggested fix.
type ValidationError struct {
	Field      string // dotted path, e.g. "server.url"
	Message    string // what's wrong
	Suggestion string // how to fix it
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks the configuration and returns every problem found.
func (c *Config) Validate() []ValidationError {
	var errs []ValidationError

	u, err := url.Parse(c.Server.URL)
	switch {
	case c.Server.URL == "":
		errs = append(errs, ValidationError{
			Field:      "server.url",
			Message:    "url is required",
			Suggestion: "set the address of the topology service, e.g. http://localhost:8000",
		})
	case err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "":
		errs = append(errs, ValidationError{
			Field:      "server.url",
			Message:    fmt.Sprintf("%q is not an http(s) URL", c.Server.URL),
			Suggestion: "use the form http://host:port",
		})
	}

	for _, p := range []struct{ field, path string }{
		{"server.snapshot_path", c.Server.SnapshotPath},
		{"server.push_path", c.Server.PushPath},
		{"server.plantuml_path", c.Server.PlantUMLPath},
		{"server.export_path", c.Server.ExportPath},
	} {
		if !strings.HasPrefix(p.path, "/") {
			errs = append(errs, ValidationError{
				Field:      p.field,
				Message:    fmt.Sprintf("%q must start with /", p.path),
				Suggestion: "paths are joined to server.url, e.g. /api/network-data",
			})
		}
	}

	if c.Refresh.PollInterval <= 0 {
		errs = append(errs, durationError("refresh.poll_interval", "30s"))
	}
	if c.Refresh.ReconnectDelay <= 0 {
		errs = append(errs, durationError("refresh.reconnect_delay", "5s"))
	}
	if c.Refresh.FitDelay < 0 {
		errs = append(errs, durationError("refresh.fit_delay", "500ms"))
	}
	if _, err := reconcile.ParseFitPolicy(c.Refresh.FitPolicy); err != nil {
		errs = append(errs, ValidationError{
			Field:      "refresh.fit_policy",
			Message:    err.Error(),
			Suggestion: "use first to fit only when the graph first appears",
		})
	}

	if !render.HasTheme(c.Render.Theme) {
		errs = append(errs, ValidationError{
			Field:      "render.theme",
			Message:    fmt.Sprintf("unknown theme %q", c.Render.Theme),
			Suggestion: "available themes: " + strings.Join(render.ThemeNames(), ", "),
		})
	}
	if c.Render.GroupBy != "category" && c.Render.GroupBy != "none" {
		errs = append(errs, ValidationError{
			Field:      "render.group_by",
			Message:    fmt.Sprintf("unknown grouping %q", c.Render.GroupBy),
			Suggestion: "use category or none",
		})
	}
	if c.Render.Format != "svg" && c.Render.Format != "png" {
		errs = append(errs, ValidationError{
			Field:      "render.format",
			Message:    fmt.Sprintf("unknown format %q", c.Render.Format),
			Suggestion: "use svg or png",
		})
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, ValidationError{
			Field:      "log.level",
			Message:    fmt.Sprintf("unknown level %q", c.Log.Level),
			Suggestion: "use debug, info, warn or error",
		})
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		errs = append(errs, ValidationError{
			Field:      "log.format",
			Message:    fmt.Sprintf("unknown format %q", c.Log.Format),
			Suggestion: "use text or json",
		})
	}

	return errs
}

func durationError(field, example string) ValidationError {
	return ValidationError{
		Field:      field,
		Message:    "must be a positive duration",
		Suggestion: "use a Go duration such as " + example,
	}
}
