// Package bootstrap loads configuration, logging and the database for CLI commands.
package bootstrap

import (
	"fmt"

	"stockdesk/internal/infrastructure/config"
	"stockdesk/internal/infrastructure/database"
	"stockdesk/internal/shared/logger"
)

// Init loads configuration from configPath (may be empty) and installs the process logger.
func Init(configPath string) (*config.Config, logger.Interface, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger, cfg.Server.Mode); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return cfg, logger.NewLogger(), nil
}

// OpenDatabase runs Init and connects the process-wide database.
// Callers close it with database.Close.
func OpenDatabase(configPath string) (*config.Config, logger.Interface, error) {
	cfg, log, err := Init(configPath)
	if err != nil {
		return nil, nil, err
	}

	if err := database.Init(&cfg.Database, cfg.Storage.DataDir); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return cfg, log, nil
}
