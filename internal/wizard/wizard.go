package wizard

import (
	"strings"
	"time"

	"github.com/ThomasCrouzet/inframap-live/internal/render"
	"github.com/charmbracelet/huh"
)

// Run executes the interactive wizard and returns the user's answers.
func Run(detection DetectionResult) (*WizardAnswers, error) {
	answers := &WizardAnswers{
		ServerURL:    detection.ServerURLOrDefault(),
		PollInterval: 30 * time.Second,
		FitPolicy:    "first",
		Theme:        "default",
		Direction:    "right",
		Output:       "topology.d2",
	}

	var hints []string
	if detection.ServiceURL != "" {
		hints = append(hints, "Topology service answering at "+detection.ServiceURL)
	} else {
		hints = append(hints, "No topology service found on "+strings.Join(CandidateURLs, ", "))
	}
	if detection.D2Available {
		hints = append(hints, "d2 binary found")
	}

	var themeOpts []huh.Option[string]
	for _, name := range render.ThemeNames() {
		themeOpts = append(themeOpts, huh.NewOption(name, name))
	}

	groups := []*huh.Group{
		huh.NewGroup(
			huh.NewInput().
				Title("Topology service URL").
				Description("Detected:\n  "+strings.Join(hints, "\n  ")).
				Value(&answers.ServerURL),
			huh.NewSelect[time.Duration]().
				Title("Refresh interval").
				Description("Periodic pulls only run while the source is available").
				Options(
					huh.NewOption("15 seconds", 15*time.Second),
					huh.NewOption("30 seconds", 30*time.Second),
					huh.NewOption("1 minute", time.Minute),
				).
				Value(&answers.PollInterval),
			huh.NewSelect[string]().
				Title("Recenter the view").
				Options(
					huh.NewOption("When the graph first appears", "first"),
					huh.NewOption("After every change", "always"),
				).
				Value(&answers.FitPolicy),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Theme").
				Options(themeOpts...).
				Value(&answers.Theme),
			huh.NewSelect[string]().
				Title("Diagram direction").
				Options(
					huh.NewOption("Right (horizontal)", "right"),
					huh.NewOption("Down (vertical)", "down"),
				).
				Value(&answers.Direction),
			huh.NewInput().
				Title("D2 output file").
				Description("Kept up to date by watch --headless").
				Value(&answers.Output),
		),
	}

	if detection.D2Available {
		groups = append(groups, huh.NewGroup(
			huh.NewConfirm().
				Title("Render the D2 file with d2 after each change?").
				Value(&answers.AutoRender),
		))
	}

	groups = append(groups, huh.NewGroup(
		huh.NewInput().
			Title("Status endpoint address (optional)").
			Description("e.g. 127.0.0.1:9470; leave empty to disable").
			Value(&answers.StatusListen),
	))

	if err := huh.NewForm(groups...).Run(); err != nil {
		return nil, err
	}
	return answers, nil
}

// ServerURLOrDefault returns the detected service URL or the first candidate.
func (d DetectionResult) ServerURLOrDefault() string {
	if d.ServiceURL != "" {
		return d.ServiceURL
	}
	return CandidateURLs[0]
}
