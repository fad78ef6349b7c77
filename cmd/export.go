package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ThomasCrouzet/inframap-live/internal/app"
	"github.com/ThomasCrouzet/inframap-live/internal/fetch"
	"github.com/ThomasCrouzet/inframap-live/internal/gate"
	"github.com/ThomasCrouzet/inframap-live/internal/reconcile"
	"github.com/ThomasCrouzet/inframap-live/internal/render"
	"github.com/ThomasCrouzet/inframap-live/internal/ui"
	"github.com/spf13/cobra"
)

var (
	exportDir    string
	exportRender bool
)

var exportCmd = &cobra.Command{
	Use:   "export [plantuml|json|d2]",
	Short: "Export the current topology",
	Long: `Export the topology once and exit.

plantuml and json are passed through from the topology service as-is.
d2 pulls a snapshot and renders it with the configured theme.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: app.ExportFormats,
	RunE:      runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportDir, "dir", "d", "", "output directory (default: export.dir)")
	exportCmd.Flags().BoolVar(&exportRender, "render", false, "render the d2 export with d2 (requires d2)")
	exportCmd.Flags().StringVar(&themeName, "theme", "", "color theme for d2: default, dark, monochrome, ocean")
	exportCmd.Flags().StringVar(&renderFormat, "format", "", "output format for --render: svg, png (default: svg)")
}

func runExport(cmd *cobra.Command, args []string) error {
	format := strings.ToLower(args[0])
	if app.Extension(format) == "" {
		err := fmt.Errorf("unknown export format %q", format)
		fmt.Fprint(os.Stderr, ui.FormatError(err.Error(), "", "use one of: "+strings.Join(app.ExportFormats, ", ")))
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyFlagOverrides(cfg)
	if exportDir != "" {
		cfg.Export.Dir = exportDir
	}

	client := newFetcher(cfg)
	ctx := cmd.Context()

	var data []byte
	switch format {
	case app.FormatPlantUML:
		var s string
		s, err = client.PlantUML(ctx)
		data = []byte(s)
	case app.FormatJSON:
		data, err = client.ExportJSON(ctx)
	case app.FormatD2:
		data, err = exportD2(ctx, client, renderOptions(cfg))
	}
	if err != nil {
		fmt.Fprint(os.Stderr, ui.FormatError("Export failed", err.Error(), "check that the topology service is running at "+cfg.Server.URL))
		return err
	}

	path, err := app.WriteExport(cfg.Export.Dir, format, data)
	if err != nil {
		fmt.Fprint(os.Stderr, ui.FormatError("Failed to write output", err.Error(), ""))
		return err
	}
	ui.Success(fmt.Sprintf("Exported %s", path))

	if format == app.FormatD2 && exportRender {
		out, err := autoRenderD2(path, cfg.Render.Format, false)
		if err != nil {
			fmt.Fprint(os.Stderr, ui.FormatError("Auto-render failed", err.Error(), "install d2: https://d2lang.com/tour/install"))
			return nil
		}
		ui.Success(fmt.Sprintf("Rendered %s", out))
	}
	return nil
}

// exportD2 pulls one snapshot and renders it through a fresh Mirror.
func exportD2(ctx context.Context, client *fetch.Client, opts render.Options) ([]byte, error) {
	raw, err := client.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	r := gate.Classify(raw)
	if !r.Available {
		return nil, fmt.Errorf("source unavailable: %s", r.Message)
	}

	rec := reconcile.New(reconcile.FitOnPopulate, nil)
	rec.Apply(r.Snapshot)
	return []byte(render.RenderD2(rec.Mirror().Graph(), opts)), nil
}
