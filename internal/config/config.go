package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server  Server       `mapstructure:"server"`
	Refresh Refresh      `mapstructure:"refresh"`
	Render  RenderConfig `mapstructure:"render"`
	Export  ExportConfig `mapstructure:"export"`
	Status  StatusConfig `mapstructure:"status"`
	Log     LogConfig    `mapstructure:"log"`
}

type Server struct {
	URL          string `mapstructure:"url"`
	SnapshotPath string `mapstructure:"snapshot_path"`
	PushPath     string `mapstructure:"push_path"`
	PlantUMLPath string `mapstructure:"plantuml_path"`
	ExportPath   string `mapstructure:"export_path"`
}

type Refresh struct {
	PollInterval   time.Duration `mapstructure:"poll_interval"`
	ReconnectDelay time.Duration `mapstructure:"reconnect_delay"`
	FitDelay       time.Duration `mapstructure:"fit_delay"`
	FitPolicy      string        `mapstructure:"fit_policy"` // first, always
}

type RenderConfig struct {
	Theme      string `mapstructure:"theme"`
	Direction  string `mapstructure:"direction"`
	GroupBy    string `mapstructure:"group_by"` // category, none
	Output     string `mapstructure:"output"`
	AutoRender bool   `mapstructure:"auto_render"`
	Format     string `mapstructure:"format"` // svg, png
}

type ExportConfig struct {
	Dir string `mapstructure:"dir"`
}

type StatusConfig struct {
	Listen string `mapstructure:"listen"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // text, json
	File   string `mapstructure:"file"`
}

// Default returns the configuration used when no file or flag says otherwise.
func Default() *Config {
	return &Config{
		Server: Server{
			URL:          "http://localhost:8000",
			SnapshotPath: "/api/network-data",
			PushPath:     "/ws",
			PlantUMLPath: "/api/plantuml",
			ExportPath:   "/api/export/json",
		},
		Refresh: Refresh{
			PollInterval:   30 * time.Second,
			ReconnectDelay: 5 * time.Second,
			FitDelay:       500 * time.Millisecond,
			FitPolicy:      "first",
		},
		Render: RenderConfig{
			Theme:     "default",
			Direction: "right",
			GroupBy:   "category",
			Output:    "topology.d2",
			Format:    "svg",
		},
		Export: ExportConfig{Dir: "."},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load decodes the config viper has read on top of Default.
func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

// LoadFrom decodes the config held by v on top of Default. Every key is
// registered as a default first so AutomaticEnv overrides reach Unmarshal
// even when no config file mentions them.
func LoadFrom(v *viper.Viper) (*Config, error) {
	cfg := Default()
	setDefaults(v, cfg)
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("server.url", d.Server.URL)
	v.SetDefault("server.snapshot_path", d.Server.SnapshotPath)
	v.SetDefault("server.push_path", d.Server.PushPath)
	v.SetDefault("server.plantuml_path", d.Server.PlantUMLPath)
	v.SetDefault("server.export_path", d.Server.ExportPath)

	v.SetDefault("refresh.poll_interval", d.Refresh.PollInterval)
	v.SetDefault("refresh.reconnect_delay", d.Refresh.ReconnectDelay)
	v.SetDefault("refresh.fit_delay", d.Refresh.FitDelay)
	v.SetDefault("refresh.fit_policy", d.Refresh.FitPolicy)

	v.SetDefault("render.theme", d.Render.Theme)
	v.SetDefault("render.direction", d.Render.Direction)
	v.SetDefault("render.group_by", d.Render.GroupBy)
	v.SetDefault("render.output", d.Render.Output)
	v.SetDefault("render.auto_render", d.Render.AutoRender)
	v.SetDefault("render.format", d.Render.Format)

	v.SetDefault("export.dir", d.Export.Dir)
	v.SetDefault("status.listen", d.Status.Listen)

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("log.file", d.Log.File)
}
