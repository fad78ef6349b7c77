// Package fetch pulls snapshots and export documents from the topology
// service over HTTP.
package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Paths are the endpoint paths on the topology service.
type Paths struct {
	Snapshot   string
	PlantUML   string
	ExportJSON string
}

// DefaultPaths returns the endpoint layout of the reference backend.
func DefaultPaths() Paths {
	return Paths{
		Snapshot:   "/api/network-data",
		PlantUML:   "/api/plantuml",
		ExportJSON: "/api/export/json",
	}
}

// Client performs pulls against the topology service. No deadline is set
// beyond the transport's own; callers cancel through the context.
type Client struct {
	BaseURL string
	Paths   Paths
	HTTP    *http.Client
}

// New creates a Client for baseURL.
func New(baseURL string, paths Paths) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Paths:   paths,
		HTTP:    &http.Client{},
	}
}

// Snapshot fetches the raw snapshot payload. The body is returned
// undecoded; classifying it is the gate's job.
func (c *Client) Snapshot(ctx context.Context) ([]byte, error) {
	return c.get(ctx, "snapshot", c.Paths.Snapshot)
}

// ExportJSON fetches the raw JSON export, passed through as-is.
func (c *Client) ExportJSON(ctx context.Context) ([]byte, error) {
	return c.get(ctx, "export", c.Paths.ExportJSON)
}

// PlantUML fetches the PlantUML diagram text.
func (c *Client) PlantUML(ctx context.Context) (string, error) {
	body, err := c.get(ctx, "plantuml", c.Paths.PlantUML)
	if err != nil {
		return "", err
	}
	var doc struct {
		PlantUML *string `json:"plantuml"`
	}
	if err := json.Unmarshal(body, &doc); err != nil {
		return "", &FetchError{Endpoint: c.Paths.PlantUML, Err: fmt.Errorf("decoding response: %w", err)}
	}
	if doc.PlantUML == nil {
		return "", &FetchError{Endpoint: c.Paths.PlantUML, Err: errors.New(`response has no "plantuml" field`)}
	}
	return *doc.PlantUML, nil
}

func (c *Client) get(ctx context.Context, name, path string) ([]byte, error) {
	body, err := c.do(ctx, path)
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	requests.WithLabelValues(name, outcome).Inc()
	return body, err
}

func (c *Client) do(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return nil, &FetchError{Endpoint: path, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, &FetchError{Endpoint: path, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{Endpoint: path, StatusCode: resp.StatusCode, Err: fmt.Errorf("reading body: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		snippet := strings.TrimSpace(string(body))
		if len(snippet) > 200 {
			snippet = snippet[:200]
		}
		return nil, &FetchError{Endpoint: path, StatusCode: resp.StatusCode, Err: fmt.Errorf("unexpected status: %s", snippet)}
	}
	return body, nil
}
