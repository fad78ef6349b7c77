package wizard

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ThomasCrouzet/inframap-live/internal/config"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateConfigDefaults(t *testing.T) {
	out, err := GenerateConfig(WizardAnswers{})
	require.NoError(t, err)

	assert.Contains(t, out, "# inframap-live configuration")
	assert.Contains(t, out, "url: http://localhost:8000")
	assert.Contains(t, out, "poll_interval: 30s")
	assert.Contains(t, out, "fit_policy: first")
	assert.Contains(t, out, "theme: default")
	assert.Contains(t, out, "output: topology.d2")
	assert.NotContains(t, out, "status:")
}

func TestGenerateConfigRoundTrip(t *testing.T) {
	answers := WizardAnswers{
		ServerURL:    "http://10.0.0.5:8000",
		PollInterval: time.Minute,
		FitPolicy:    "always",
		Theme:        "dark",
		Direction:    "down",
		Output:       "live/topology.d2",
		AutoRender:   true,
		StatusListen: "127.0.0.1:9470",
	}

	out, err := GenerateConfig(answers)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), ConfigFile)
	require.NoError(t, os.WriteFile(path, []byte(out), 0644))

	v := viper.New()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())
	cfg, err := config.LoadFrom(v)
	require.NoError(t, err)

	assert.Equal(t, "http://10.0.0.5:8000", cfg.Server.URL)
	assert.Equal(t, time.Minute, cfg.Refresh.PollInterval)
	assert.Equal(t, "always", cfg.Refresh.FitPolicy)
	assert.Equal(t, "dark", cfg.Render.Theme)
	assert.Equal(t, "down", cfg.Render.Direction)
	assert.Equal(t, "live/topology.d2", cfg.Render.Output)
	assert.True(t, cfg.Render.AutoRender)
	assert.Equal(t, "127.0.0.1:9470", cfg.Status.Listen)
	assert.Empty(t, cfg.Validate())
}
