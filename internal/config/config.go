// Package config loads layered settings: defaults, an optional YAML file, then
// INNOSCORE_* environment variables. A .env file in the working directory is
// loaded into the environment first; variables already set win.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/dshills/innoscore/internal/assessment"
	"github.com/dshills/innoscore/internal/logging"
	"github.com/dshills/innoscore/internal/questionnaire"
	"github.com/dshills/innoscore/internal/radar"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// EnvPrefix prefixes environment overrides, e.g. INNOSCORE_SERVER_ADDR.
const EnvPrefix = "INNOSCORE"

// Config is the full application configuration.
type Config struct {
	Log     LogConfig     `mapstructure:"log"`
	Server  ServerConfig  `mapstructure:"server"`
	Chart   ChartConfig   `mapstructure:"chart"`
	Catalog CatalogConfig `mapstructure:"catalog"`
	Tiers   TierConfig    `mapstructure:"tiers"`
}

// LogConfig selects the logger level and encoding.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr            string   `mapstructure:"addr"`
	RequireComplete bool     `mapstructure:"require_complete"`
	CORSOrigins     []string `mapstructure:"cors_origins"`
}

// ChartConfig sets the radar chart geometry.
type ChartConfig struct {
	Size           float64 `mapstructure:"size"`
	MarginFraction float64 `mapstructure:"margin_fraction"`
}

// CatalogConfig points at an external questionnaire. Empty Path uses the built-in one.
type CatalogConfig struct {
	Path string `mapstructure:"path"`
}

// TierConfig holds the inclusive lower bound of each maturity tier.
type TierConfig struct {
	HighlyInnovative float64 `mapstructure:"highly_innovative"`
	SolidInnovator   float64 `mapstructure:"solid_innovator"`
	Potential        float64 `mapstructure:"potential"`
	Developing       float64 `mapstructure:"developing"`
	CriticalNeed     float64 `mapstructure:"critical_need"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("server.addr", ":8000")
	v.SetDefault("server.require_complete", false)
	v.SetDefault("server.cors_origins", []string{"http://localhost:5173", "http://localhost:5174"})
	v.SetDefault("chart.size", radar.DefaultSize)
	v.SetDefault("chart.margin_fraction", radar.DefaultMarginFraction)
	v.SetDefault("catalog.path", "")
	for _, th := range assessment.DefaultThresholds() {
		v.SetDefault("tiers."+strings.ToLower(string(th.Level)), th.LowerBound)
	}
}

// Load reads configuration. An empty path searches for innoscore.yaml in the
// working directory and ./configs; a missing file there is not an error.
// An explicit path must exist.
func Load(path string) (*Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config.Load: %w", err)
		}
	} else {
		v.SetConfigName("innoscore")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("config.Load: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config.Load: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	return &cfg, nil
}

func loadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// Validate checks every section that can be checked without I/O.
func (c *Config) Validate() error {
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr: required")
	}
	if _, err := radar.NewLayout(c.Chart.Size, c.Chart.MarginFraction); err != nil {
		return fmt.Errorf("chart: %w", err)
	}
	if _, err := c.TierTable(); err != nil {
		return fmt.Errorf("tiers: %w", err)
	}
	return nil
}

// Thresholds lists the configured bounds, highest tier first.
func (t TierConfig) Thresholds() []assessment.Threshold {
	return []assessment.Threshold{
		{Level: assessment.LevelHighlyInnovative, LowerBound: t.HighlyInnovative},
		{Level: assessment.LevelSolidInnovator, LowerBound: t.SolidInnovator},
		{Level: assessment.LevelPotential, LowerBound: t.Potential},
		{Level: assessment.LevelDeveloping, LowerBound: t.Developing},
		{Level: assessment.LevelCriticalNeed, LowerBound: t.CriticalNeed},
	}
}

// TierTable builds the classification table from the configured bounds.
func (c *Config) TierTable() (*assessment.TierTable, error) {
	return assessment.NewTierTable(c.Tiers.Thresholds())
}

// LoadCatalog returns the configured questionnaire.
func (c *Config) LoadCatalog() (*questionnaire.Catalog, error) {
	if c.Catalog.Path == "" {
		return questionnaire.Default(), nil
	}
	return questionnaire.Load(c.Catalog.Path)
}

// NewEngine builds an assessment engine from the configuration.
func (c *Config) NewEngine(logger *zap.Logger) (*assessment.Engine, error) {
	cat, err := c.LoadCatalog()
	if err != nil {
		return nil, err
	}
	table, err := c.TierTable()
	if err != nil {
		return nil, err
	}
	return assessment.NewEngine(cat,
		assessment.WithTierTable(table),
		assessment.WithChart(c.Chart.Size, c.Chart.MarginFraction),
		assessment.WithLogger(logger),
	)
}
