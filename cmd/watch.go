package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ThomasCrouzet/inframap-live/internal/app"
	"github.com/ThomasCrouzet/inframap-live/internal/config"
	"github.com/ThomasCrouzet/inframap-live/internal/fetch"
	"github.com/ThomasCrouzet/inframap-live/internal/logging"
	"github.com/ThomasCrouzet/inframap-live/internal/model"
	"github.com/ThomasCrouzet/inframap-live/internal/push"
	"github.com/ThomasCrouzet/inframap-live/internal/reconcile"
	"github.com/ThomasCrouzet/inframap-live/internal/render"
	"github.com/ThomasCrouzet/inframap-live/internal/statusapi"
	"github.com/ThomasCrouzet/inframap-live/internal/tui"
	"github.com/ThomasCrouzet/inframap-live/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var (
	headless     bool
	noPush       bool
	outputFile   string
	themeName    string
	autoRender   bool
	renderFormat string
	pollInterval time.Duration
	fitPolicy    string
	statusListen string
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow the topology live",
	Long: `Load the topology, then keep it current from the push channel and from
periodic pulls while the source is available.

By default the topology is shown in the terminal. With --headless the
graph is written to a D2 file after every change instead.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().BoolVar(&headless, "headless", false, "write the graph to a D2 file instead of the terminal view")
	watchCmd.Flags().BoolVar(&noPush, "no-push", false, "do not open the push channel, pull only")
	watchCmd.Flags().StringVarP(&outputFile, "output", "o", "", "D2 file kept up to date in headless mode")
	watchCmd.Flags().StringVar(&themeName, "theme", "", "color theme: default, dark, monochrome, ocean")
	watchCmd.Flags().BoolVar(&autoRender, "render", false, "render the D2 file with d2 after each change (headless)")
	watchCmd.Flags().StringVar(&renderFormat, "format", "", "output format for --render: svg, png (default: svg)")
	watchCmd.Flags().DurationVar(&pollInterval, "interval", 0, "periodic pull interval (default 30s)")
	watchCmd.Flags().StringVar(&fitPolicy, "fit", "", "recenter policy: first, always")
	watchCmd.Flags().StringVar(&statusListen, "status-listen", "", "serve /status, /graph.d2 and /metrics on this address")
}

func applyFlagOverrides(cfg *config.Config) {
	if outputFile != "" {
		cfg.Render.Output = outputFile
	}
	if themeName != "" {
		cfg.Render.Theme = themeName
	}
	if autoRender {
		cfg.Render.AutoRender = true
	}
	if renderFormat != "" {
		cfg.Render.Format = renderFormat
	}
	if pollInterval > 0 {
		cfg.Refresh.PollInterval = pollInterval
	}
	if fitPolicy != "" {
		cfg.Refresh.FitPolicy = fitPolicy
	}
	if statusListen != "" {
		cfg.Status.Listen = statusListen
	}
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyFlagOverrides(cfg)
	if errs := cfg.Validate(); len(errs) > 0 {
		fmt.Fprint(os.Stderr, ui.FormatError("Invalid flag", errs[0].Error(), errs[0].Suggestion))
		return errs[0]
	}

	// The terminal view owns stdout, so logs only go to a file there.
	var logOut io.Writer = os.Stderr
	if !headless {
		logOut = io.Discard
	}
	logger, closeLog, err := logging.Open(cfg.Log, logOut)
	if err != nil {
		fmt.Fprint(os.Stderr, ui.FormatError("Failed to set up logging", err.Error(), ""))
		return err
	}
	defer func() { _ = closeLog() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts, err := appOptions(cfg, logger)
	if err != nil {
		fmt.Fprint(os.Stderr, ui.FormatError("Invalid server URL", err.Error(), ""))
		return err
	}

	if headless {
		return watchHeadless(ctx, cfg, opts, logger)
	}
	return watchTerminal(ctx, cfg, opts, logger)
}

func appOptions(cfg *config.Config, logger *slog.Logger) (app.Options, error) {
	policy, err := reconcile.ParseFitPolicy(cfg.Refresh.FitPolicy)
	if err != nil {
		return app.Options{}, err
	}
	opts := app.Options{
		Fetcher:        newFetcher(cfg),
		PollInterval:   cfg.Refresh.PollInterval,
		ReconnectDelay: cfg.Refresh.ReconnectDelay,
		FitDelay:       cfg.Refresh.FitDelay,
		FitPolicy:      policy,
		Render:         renderOptions(cfg),
		Logger:         logger,
	}
	if !noPush {
		wsURL, err := push.PushURL(cfg.Server.URL, cfg.Server.PushPath)
		if err != nil {
			return app.Options{}, err
		}
		opts.Dialer = push.NewWebSocketDialer(wsURL)
	}
	return opts, nil
}

func newFetcher(cfg *config.Config) *fetch.Client {
	return fetch.New(cfg.Server.URL, fetch.Paths{
		Snapshot:   cfg.Server.SnapshotPath,
		PlantUML:   cfg.Server.PlantUMLPath,
		ExportJSON: cfg.Server.ExportPath,
	})
}

// serveStatus starts the status endpoint when one is configured.
func serveStatus(ctx context.Context, cfg *config.Config, a *app.App, logger *slog.Logger) {
	if cfg.Status.Listen == "" {
		return
	}
	go func() {
		if err := statusapi.Serve(ctx, cfg.Status.Listen, a, logger); err != nil {
			logger.Error("status endpoint stopped", "component", "statusapi", "error", err)
		}
	}()
}

func watchTerminal(ctx context.Context, cfg *config.Config, opts app.Options, logger *slog.Logger) error {
	var a *app.App
	p := tui.NewProgram(tui.Config{
		Theme:       cfg.Render.Theme,
		ExportDir:   cfg.Export.Dir,
		PushEnabled: opts.Dialer != nil,
	}, func(sink *tui.Sink) tui.Controller {
		opts.Sink = sink
		opts.Indicator = sink
		a = app.New(opts)
		return a
	}, tea.WithAltScreen(), tea.WithContext(ctx))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = a.Run(ctx)
	}()
	serveStatus(ctx, cfg, a, logger)

	_, err := p.Run()
	cancel()
	<-done
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}

func watchHeadless(ctx context.Context, cfg *config.Config, opts app.Options, logger *slog.Logger) error {
	sink := render.NewD2Sink(cfg.Render.Output, opts.Render)
	sink.AfterWrite = func(path string) error {
		logger.Info("wrote diagram", "path", path, "nodes", sink.NodeCount(), "edges", sink.EdgeCount())
		if !cfg.Render.AutoRender {
			return nil
		}
		out, err := autoRenderD2(path, cfg.Render.Format, true)
		if err != nil {
			return err
		}
		logger.Info("rendered diagram", "path", out)
		return nil
	}

	ind := &lineIndicator{w: os.Stderr, pushEnabled: opts.Dialer != nil, conn: push.Connecting, available: true}
	opts.Sink = sink
	opts.Indicator = ind
	a := app.New(opts)

	serveStatus(ctx, cfg, a, logger)
	ui.Success(fmt.Sprintf("Watching %s, writing %s (Ctrl+C to stop)", cfg.Server.URL, cfg.Render.Output))

	if err := a.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

// lineIndicator prints a status line whenever the indicator changes.
// It is only called from the app loop.
type lineIndicator struct {
	w           io.Writer
	pushEnabled bool

	available bool
	message   string
	conn      push.State
	summary   model.Summary
	updated   time.Time
}

func (l *lineIndicator) SetAvailability(available bool, message string) {
	l.available, l.message = available, message
	l.print()
}

func (l *lineIndicator) SetConnection(s push.State) {
	l.conn = s
	l.print()
}

func (l *lineIndicator) SetSummary(s model.Summary, updated time.Time) {
	changed := s != l.summary
	l.summary, l.updated = s, updated
	if changed {
		l.print()
	}
}

func (l *lineIndicator) print() {
	conn := "disabled"
	if l.pushEnabled {
		conn = l.conn.String()
	}
	ui.StatusLine(l.w,
		ui.Availability(l.available, l.message),
		ui.Connection(conn),
		ui.Counters(l.summary.TotalContainers, l.summary.RunningContainers,
			l.summary.TotalNetworks, l.summary.TotalConnections, l.updated),
	)
}
