package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/ThomasCrouzet/inframap-live/internal/config"
	"github.com/ThomasCrouzet/inframap-live/internal/render"
)

// findExecutable wraps exec.LookPath for testability.
var findExecutable = exec.LookPath

// execCommand wraps exec.Command for testability.
var execCommand = exec.Command

func renderOptions(cfg *config.Config) render.Options {
	opts := render.Options{
		Direction: cfg.Render.Direction,
		Theme:     cfg.Render.Theme,
	}
	if cfg.Render.GroupBy == "category" {
		opts.GroupBy = "category"
	}
	return opts
}

// renderedPath swaps the .d2 extension of path for format.
func renderedPath(d2File, format string) string {
	return strings.TrimSuffix(d2File, ".d2") + "." + format
}

// autoRenderD2 runs the d2 binary on d2File. quiet discards d2's own output,
// which would otherwise scribble over a running view.
func autoRenderD2(d2File, format string, quiet bool) (string, error) {
	if format == "" {
		format = "svg"
	}

	d2Path, err := findExecutable("d2")
	if err != nil {
		return "", fmt.Errorf("d2 not found in PATH, install it from https://d2lang.com/tour/install")
	}

	outFile := renderedPath(d2File, format)
	cmd := execCommand(d2Path, d2File, outFile)
	if !quiet {
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
	}

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("d2 render failed: %w", err)
	}
	return outFile, nil
}
