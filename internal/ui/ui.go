package ui

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#DC2626")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#CA8A04"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#16A34A"))
	hintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280")).Italic(true)
	boldStyle    = lipgloss.NewStyle().Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF"))
)

// FormatError returns a styled multi-line error message.
func FormatError(title, detail, suggestion string) string {
	out := errorStyle.Render("Error: "+title) + "\n"
	if detail != "" {
		out += "  " + detail + "\n"
	}
	if suggestion != "" {
		out += "  " + hintStyle.Render("Hint: "+suggestion) + "\n"
	}
	return out
}

// StepStarted prints a pending step, e.g. a probe of the snapshot endpoint.
func StepStarted(name string) {
	fmt.Printf("  %s %s\n", dimStyle.Render("..."), name)
}

// StepDone overwrites the pending line of a step with a success line.
func StepDone(name, detail string) {
	msg := successStyle.Render("  OK ") + " " + name
	if detail != "" {
		msg += " " + dimStyle.Render(detail)
	}
	fmt.Printf("\033[1A\033[2K%s\n", msg)
}

// StepFailed overwrites the pending line of a step with a failure line.
func StepFailed(name, detail string) {
	msg := errorStyle.Render("  ERR") + " " + name
	if detail != "" {
		msg += " " + dimStyle.Render(detail)
	}
	fmt.Printf("\033[1A\033[2K%s\n", msg)
}

// Success prints a green success message.
func Success(msg string) {
	fmt.Println(successStyle.Render(msg))
}

// Warn prints a yellow warning message.
func Warn(msg string) {
	fmt.Println(warnStyle.Render("Warning: " + msg))
}

// Bold renders text in bold.
func Bold(s string) string {
	return boldStyle.Render(s)
}

// Hint renders text in dim italic.
func Hint(s string) string {
	return hintStyle.Render(s)
}

// ValidationOK prints a green check for a valid field.
func ValidationOK(field, detail string) {
	fmt.Printf("  %s %s: %s\n", successStyle.Render("OK "), field, detail)
}

// ValidationErr prints a red error for an invalid field.
func ValidationErr(field, message, suggestion string) {
	fmt.Printf("  %s %s: %s\n", errorStyle.Render("ERR"), field, message)
	if suggestion != "" {
		fmt.Printf("      %s\n", hintStyle.Render("Hint: "+suggestion))
	}
}

// Availability renders the source availability badge.
func Availability(available bool, message string) string {
	if available {
		return successStyle.Render("● source available")
	}
	return errorStyle.Render("● " + message)
}

// Connection renders the push-channel badge for a state name.
func Connection(state string) string {
	switch state {
	case "open":
		return successStyle.Render("⇄ connected")
	case "connecting":
		return warnStyle.Render("⇄ connecting")
	case "disabled":
		return dimStyle.Render("⇄ push off")
	}
	return errorStyle.Render("⇄ disconnected")
}

// Counters renders the summary counters and the last update time.
func Counters(containers, running, networks, connections int, updated time.Time) string {
	s := fmt.Sprintf("%s containers (%d running) · %s networks · %s connections",
		Bold(fmt.Sprint(containers)), running, Bold(fmt.Sprint(networks)), Bold(fmt.Sprint(connections)))
	if !updated.IsZero() {
		s += " " + dimStyle.Render("· last update "+updated.Local().Format("15:04:05"))
	}
	return s
}

// StatusLine writes one line combining the badges, for headless output.
func StatusLine(w io.Writer, parts ...string) {
	line := ""
	for i, p := range parts {
		if i > 0 {
			line += "  "
		}
		line += p
	}
	fmt.Fprintln(w, line)
}
