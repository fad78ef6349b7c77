package cmd

import (
	"errors"
	"fmt"

	"github.com/ThomasCrouzet/inframap-live/internal/ui"
	"github.com/ThomasCrouzet/inframap-live/internal/wizard"
	"github.com/spf13/cobra"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create an inframap-live.yml config file interactively",
	Long: `Look for a topology service on the usual local ports and the d2 binary,
then generate a config file through an interactive wizard. An existing file
is only replaced after confirmation, or with --force.`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "replace an existing config file without asking")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	fmt.Println(ui.Bold("Scanning environment..."))
	detection := wizard.Detect(cmd.Context(), nil)
	if detection.ConfigExists && !initForce {
		fmt.Println(ui.Hint(wizard.ConfigFile + " exists; you will be asked before it is replaced"))
	}

	answers, err := wizard.Run(detection)
	if err != nil {
		return fmt.Errorf("wizard: %w", err)
	}

	confirm := wizard.ConfirmOverwrite
	if initForce {
		confirm = func(string) (bool, error) { return true, nil }
	}

	err = wizard.WriteConfig(wizard.ConfigFile, *answers, confirm)
	if errors.Is(err, wizard.ErrKeepExisting) {
		ui.Warn(fmt.Sprintf("Kept the existing %s", wizard.ConfigFile))
		return nil
	}
	if err != nil {
		return err
	}

	ui.Success(fmt.Sprintf("Created %s", wizard.ConfigFile))
	fmt.Println()
	fmt.Printf("Next step: %s\n", ui.Bold("inframap-live validate"))
	fmt.Printf("           %s\n", ui.Hint("then 'inframap-live watch' to follow the topology"))
	return nil
}
