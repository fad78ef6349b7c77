package wizard

import (
	"context"
	"os"
	"os/exec"
	"time"

	"github.com/ThomasCrouzet/inframap-live/internal/fetch"
)

// CandidateURLs are probed, in order, for a running topology service.
var CandidateURLs = []string{
	"http://localhost:8000",
	"http://127.0.0.1:8000",
	"http://localhost:8080",
}

// ConfigFile is the file init writes.
const ConfigFile = "inframap-live.yml"

// DetectionResult holds what was auto-detected on the system.
type DetectionResult struct {
	ServiceURL   string // first reachable candidate, empty if none
	D2Available  bool
	ConfigExists bool
}

// Detector abstracts path lookups and service probes for testing.
type Detector interface {
	LookPath(name string) (string, error)
	Stat(path string) (os.FileInfo, error)
	// Probe returns nil if a snapshot endpoint answers at baseURL.
	Probe(ctx context.Context, baseURL string) error
}

// OSDetector uses the real OS and network for detection.
type OSDetector struct{}

func (OSDetector) LookPath(name string) (string, error) { return exec.LookPath(name) }
func (OSDetector) Stat(path string) (os.FileInfo, error) { return os.Stat(path) }

func (OSDetector) Probe(ctx context.Context, baseURL string) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	_, err := fetch.New(baseURL, fetch.DefaultPaths()).Snapshot(ctx)
	return err
}

// Detect looks for a reachable local topology service, the d2 binary and
// an existing config file.
func Detect(ctx context.Context, d Detector) DetectionResult {
	if d == nil {
		d = OSDetector{}
	}

	result := DetectionResult{}

	if _, err := d.LookPath("d2"); err == nil {
		result.D2Available = true
	}

	if _, err := d.Stat(ConfigFile); err == nil {
		result.ConfigExists = true
	}

	for _, u := range CandidateURLs {
		if err := d.Probe(ctx, u); err == nil {
			result.ServiceURL = u
			break
		}
	}

	return result
}
