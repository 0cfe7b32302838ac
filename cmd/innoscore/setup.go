package main

import (
	"github.com/dshills/innoscore/internal/config"
	"github.com/dshills/innoscore/internal/logging"
	"go.uber.org/zap"
)

// setup loads configuration and builds the logger. --verbose forces debug.
func setup(g *globalFlags) (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(g.configPath)
	if err != nil {
		return nil, nil, exitError(3, "failed to load config: %v", err)
	}
	level := cfg.Log.Level
	if g.verbose {
		level = "debug"
	}
	logger, err := logging.New(level, cfg.Log.Format)
	if err != nil {
		return nil, nil, exitError(3, "failed to build logger: %v", err)
	}
	return cfg, logger, nil
}
