package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/sagarc03/statica"
	"github.com/sagarc03/statica/config"
	"github.com/sagarc03/statica/filesystem"
	"github.com/sagarc03/statica/mimetypes"
)

// loadConfig loads the configuration, sets up logging and stores the config in the
// command context for subcommands.
func loadConfig(cmd *cobra.Command) error {
	configFiles, _ := cmd.Flags().GetStringSlice("config")

	cfg, err := config.Load(configFiles, cmd.Flags())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	setupLogging(cfg.Log.Level)

	cmd.SetContext(config.WithContext(cmd.Context(), cfg))
	return nil
}

// newStaticFiles builds the static file handler described by cfg.
func newStaticFiles(cfg *config.Config, logger *slog.Logger) (*statica.StaticFiles, error) {
	types, err := mimetypes.NewRegistry(cfg.Mime)
	if err != nil {
		return nil, fmt.Errorf("load mime types: %w", err)
	}

	files, err := statica.NewStaticFiles(cfg.Static.StaticRoot(), filesystem.NewFileStorage(),
		statica.WithChunkSize(cfg.Static.ChunkSize),
		statica.WithTypeResolver(types),
		statica.WithHeaders(cfg.Static.ResponseHeaders()),
		statica.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("create static files: %w", err)
	}

	return files, nil
}
