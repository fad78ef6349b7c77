package wizard

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// WizardAnswers holds all user responses from the wizard.
type WizardAnswers struct {
	// Service
	ServerURL string

	// Refresh
	PollInterval time.Duration
	FitPolicy    string

	// Rendering
	Theme      string
	Direction  string
	Output     string
	AutoRender bool

	// Status endpoint, empty to disable
	StatusListen string
}

// fileConfig mirrors the keys of config.Config that init writes.
type fileConfig struct {
	Server struct {
		URL string `yaml:"url"`
	} `yaml:"server"`
	Refresh struct {
		PollInterval string `yaml:"poll_interval"`
		FitPolicy    string `yaml:"fit_policy"`
	} `yaml:"refresh"`
	Render struct {
		Theme      string `yaml:"theme"`
		Direction  string `yaml:"direction"`
		Output     string `yaml:"output"`
		AutoRender bool   `yaml:"auto_render"`
	} `yaml:"render"`
	Status *struct {
		Listen string `yaml:"listen"`
	} `yaml:"status,omitempty"`
}

const header = `# inframap-live configuration
# Documentation: https://github.com/ThomasCrouzet/inframap-live

`

// GenerateConfig renders the YAML config from wizard answers.
func GenerateConfig(answers WizardAnswers) (string, error) {
	if answers.ServerURL == "" {
		answers.ServerURL = CandidateURLs[0]
	}
	if answers.PollInterval <= 0 {
		answers.PollInterval = 30 * time.Second
	}
	if answers.FitPolicy == "" {
		answers.FitPolicy = "first"
	}
	if answers.Theme == "" {
		answers.Theme = "default"
	}
	if answers.Direction == "" {
		answers.Direction = "right"
	}
	if answers.Output == "" {
		answers.Output = "topology.d2"
	}

	var fc fileConfig
	fc.Server.URL = answers.ServerURL
	fc.Refresh.PollInterval = answers.PollInterval.String()
	fc.Refresh.FitPolicy = answers.FitPolicy
	fc.Render.Theme = answers.Theme
	fc.Render.Direction = answers.Direction
	fc.Render.Output = answers.Output
	fc.Render.AutoRender = answers.AutoRender
	if answers.StatusListen != "" {
		fc.Status = &struct {
			Listen string `yaml:"listen"`
		}{Listen: answers.StatusListen}
	}

	out, err := yaml.Marshal(&fc)
	if err != nil {
		return "", fmt.Errorf("encoding config: %w", err)
	}
	return header + string(out), nil
}
