package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/ThomasCrouzet/inframap-live/internal/config"
	"github.com/ThomasCrouzet/inframap-live/internal/ui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile   string
	serverURL string
	logLevel  string
)

var rootCmd = &cobra.Command{
	Use:   "inframap-live",
	Short: "Live container topology in your terminal",
	Long: `inframap-live follows a topology service and keeps a live graph of your
containers and their network links, refreshed by a push channel and by
periodic pulls.

Run 'inframap-live watch' for the terminal view, or 'watch --headless' to
keep a D2 file up to date: d2 topology.d2 topology.svg`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: inframap-live.yml)")
	rootCmd.PersistentFlags().StringVarP(&serverURL, "server", "s", "", "topology service URL")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("inframap-live")
		viper.SetConfigType("yml")
		viper.AddConfigPath(".")
	}

	viper.SetEnvPrefix("INFRAMAP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "Error reading config: %v\n", err)
		}
	}
}

// loadConfig loads the config, applies the global flags and refuses an
// invalid result.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprint(os.Stderr, ui.FormatError("Failed to load config", err.Error(), "run 'inframap-live init' to create a config file"))
		return nil, err
	}
	if serverURL != "" {
		cfg.Server.URL = serverURL
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		first := errs[0]
		fmt.Fprint(os.Stderr, ui.FormatError("Invalid config", first.Error(), first.Suggestion))
		return nil, fmt.Errorf("%d config errors (run 'inframap-live validate')", len(errs))
	}
	return cfg, nil
}
