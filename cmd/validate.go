package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ThomasCrouzet/inframap-live/internal/config"
	"github.com/ThomasCrouzet/inframap-live/internal/gate"
	"github.com/ThomasCrouzet/inframap-live/internal/push"
	"github.com/ThomasCrouzet/inframap-live/internal/ui"
	"github.com/spf13/cobra"
)

var skipProbe bool

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate your inframap-live.yml configuration",
	Long: `Check the configuration values, then probe the topology service: the
snapshot endpoint must answer and the push channel must accept a
connection.`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().BoolVar(&skipProbe, "offline", false, "only check the config, do not contact the service")
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprint(os.Stderr, ui.FormatError("Failed to load config", err.Error(), "run 'inframap-live init' to create a config file"))
		return err
	}
	if serverURL != "" {
		cfg.Server.URL = serverURL
	}

	fmt.Println(ui.Bold("Validating inframap-live.yml..."))

	passed, failed := 0, 0
	errs := cfg.Validate()
	for _, ve := range errs {
		ui.ValidationErr(ve.Field, ve.Message, ve.Suggestion)
		failed++
	}
	if len(errs) == 0 {
		ui.ValidationOK("config", "all values valid")
		passed++
	}

	if len(errs) == 0 && !skipProbe {
		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()
		for _, probe := range []func(context.Context, *config.Config) error{probeSnapshot, probePush} {
			if err := probe(ctx, cfg); err != nil {
				failed++
			} else {
				passed++
			}
		}
	}

	fmt.Println()
	if failed == 0 {
		ui.Success(fmt.Sprintf("%d checks passed, 0 errors", passed))
	} else {
		fmt.Printf("%d checks passed, %d errors\n", passed, failed)
	}

	if failed > 0 {
		return fmt.Errorf("%d validation errors", failed)
	}
	return nil
}

func probeSnapshot(ctx context.Context, cfg *config.Config) error {
	name := "snapshot " + cfg.Server.URL + cfg.Server.SnapshotPath
	ui.StepStarted(name)

	raw, err := newFetcher(cfg).Snapshot(ctx)
	if err != nil {
		ui.StepFailed(name, err.Error())
		return err
	}
	r := gate.Classify(raw)
	if r.Cause != nil {
		ui.StepFailed(name, r.Message)
		return r.Cause
	}
	if !r.Available {
		// The service answered; an unavailable source is still a valid setup.
		ui.StepDone(name, "reachable, source reports: "+r.Message)
		return nil
	}
	ui.StepDone(name, fmt.Sprintf("%d containers, %d connections",
		len(r.Snapshot.Containers), len(r.Snapshot.Connections)))
	return nil
}

func probePush(ctx context.Context, cfg *config.Config) error {
	wsURL, err := push.PushURL(cfg.Server.URL, cfg.Server.PushPath)
	if err != nil {
		ui.ValidationErr("server.push_path", err.Error(), "")
		return err
	}
	name := "push channel " + wsURL
	ui.StepStarted(name)

	conn, err := push.NewWebSocketDialer(wsURL).Dial(ctx)
	if err != nil {
		ui.StepFailed(name, err.Error())
		return err
	}
	_ = conn.Close()
	ui.StepDone(name, "connected")
	return nil
}
