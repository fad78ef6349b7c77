package wizard

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/huh"
)

// ErrKeepExisting is returned by WriteConfig when the user declines to
// replace a config file that is already there.
var ErrKeepExisting = errors.New("existing config kept")

// ConfirmFunc asks whether path may be replaced.
type ConfirmFunc func(path string) (bool, error)

// ConfirmOverwrite asks through a huh confirm field. The default answer is no.
func ConfirmOverwrite(path string) (bool, error) {
	var ok bool
	err := huh.NewConfirm().
		Title(fmt.Sprintf("%s already exists. Replace it?", path)).
		Affirmative("Replace").
		Negative("Keep").
		Value(&ok).
		Run()
	return ok, err
}

// WriteConfig renders answers and writes them to path. An existing file is
// only replaced when confirm agrees, and the new content goes through a
// temporary file so a failed write never truncates the old config.
func WriteConfig(path string, answers WizardAnswers, confirm ConfirmFunc) error {
	content, err := GenerateConfig(answers)
	if err != nil {
		return fmt.Errorf("generating config: %w", err)
	}

	if _, err := os.Stat(path); err == nil {
		ok, err := confirm(path)
		if err != nil {
			return err
		}
		if !ok {
			return ErrKeepExisting
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".inframap-live-*.yml")
	if err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(content); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing config: %w", err)
	}
	if err := tmp.Chmod(0600); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
