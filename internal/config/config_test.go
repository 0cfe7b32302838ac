package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dshills/innoscore/internal/assessment"
	"github.com/dshills/innoscore/internal/radar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "innoscore.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent to testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, ":8000", cfg.Server.Addr)
	assert.False(t, cfg.Server.RequireComplete)
	assert.Equal(t, []string{"http://localhost:5173", "http://localhost:5174"}, cfg.Server.CORSOrigins)
	assert.Equal(t, radar.DefaultSize, cfg.Chart.Size)
	assert.InDelta(t, radar.DefaultMarginFraction, cfg.Chart.MarginFraction, 1e-12)
	assert.Equal(t, assessment.DefaultThresholds(), cfg.Tiers.Thresholds())
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
log:
  level: debug
  format: json
server:
  addr: 127.0.0.1:9000
  require_complete: true
chart:
  size: 400
  margin_fraction: 0.1
tiers:
  highly_innovative: 90
  solid_innovator: 75
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.True(t, cfg.Server.RequireComplete)
	assert.Equal(t, 400.0, cfg.Chart.Size)
	assert.Equal(t, 90.0, cfg.Tiers.HighlyInnovative)
	assert.Equal(t, 55.0, cfg.Tiers.Potential, "unset bounds keep defaults")

	table, err := cfg.TierTable()
	require.NoError(t, err)
	tier, err := table.Classify(87)
	require.NoError(t, err)
	assert.Equal(t, assessment.LevelSolidInnovator, tier.Level)
}

func TestLoadEnvOverride(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("INNOSCORE_SERVER_ADDR", ":7777")
	t.Setenv("INNOSCORE_TIERS_DEVELOPING", "35")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":7777", cfg.Server.Addr)
	assert.Equal(t, 35.0, cfg.Tiers.Developing)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("INNOSCORE_CHART_SIZE=420\nINNOSCORE_SERVER_ADDR=:6000\n"), 0o600))
	if _, ok := os.LookupEnv("INNOSCORE_CHART_SIZE"); ok {
		t.Skip("INNOSCORE_CHART_SIZE set in the environment")
	}
	t.Cleanup(func() { os.Unsetenv("INNOSCORE_CHART_SIZE") })
	t.Setenv("INNOSCORE_SERVER_ADDR", ":7000")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 420.0, cfg.Chart.Size)
	assert.Equal(t, ":7000", cfg.Server.Addr, "existing variables win over .env")
}

func TestLoadInvalid(t *testing.T) {
	tests := map[string]string{
		"bad level":       "log:\n  level: chatty\n",
		"bad chart":       "chart:\n  size: 0\n",
		"bad margin":      "chart:\n  margin_fraction: 0.5\n",
		"unordered tiers": "tiers:\n  potential: 80\n",
		"nonzero floor":   "tiers:\n  critical_need: 5\n",
		"empty addr":      "server:\n  addr: \"\"\n",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, doc))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestNewEngine(t *testing.T) {
	chdir(t, t.TempDir())
	cfg, err := Load("")
	require.NoError(t, err)

	e, err := cfg.NewEngine(zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 20, e.Catalog().TotalQuestions())

	cfg.Catalog.Path = filepath.Join(t.TempDir(), "missing.yaml")
	_, err = cfg.NewEngine(zap.NewNop())
	assert.Error(t, err)
}

func TestNewEngineExternalCatalog(t *testing.T) {
	dir := t.TempDir()
	catPath := filepath.Join(dir, "catalog.yaml")
	require.NoError(t, os.WriteFile(catPath, []byte("modules:\n  - id: a\n    name: A\n    questions:\n      - id: a1\n        text: one\n"), 0o600))
	cfgPath := writeConfig(t, "catalog:\n  path: "+catPath+"\n")

	cfg, err := Load(cfgPath)
	require.NoError(t, err)
	e, err := cfg.NewEngine(zap.NewNop())
	require.NoError(t, err)

	r, err := e.Run("Acme", assessment.Answers{"a1": 4})
	require.NoError(t, err)
	assert.Equal(t, 100.0, r.OverallPercentage)
}
