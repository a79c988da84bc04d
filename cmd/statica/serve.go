package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/sagarc03/statica/config"
	statichttp "github.com/sagarc03/statica/http"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Start the statica HTTP server for the configured root directory.

The server shuts down gracefully on SIGINT or SIGTERM.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().Int("port", 8080, "HTTP server port (env: STATICA_SERVER_PORT)")
	serveCmd.Flags().Bool("check-root", true, "verify the root directory at startup (env: STATICA_STATIC_CHECK_ROOT)")
	serveCmd.Flags().Int("chunk-size", 0, "body chunk size in bytes (default: 4096, env: STATICA_STATIC_CHUNK_SIZE)")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.FromContext(cmd.Context())
	if err != nil {
		return err
	}

	ctx, stop := signalContext(cmd.Context())
	defer stop()

	logger := slog.Default()

	files, err := newStaticFiles(cfg, logger)
	if err != nil {
		return err
	}

	handler := statichttp.NewHandler(&statichttp.HandlerConfig{
		CORS:   cfg.CORS,
		Logger: logger,
	}, files)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)

	server := &http.Server{
		Addr:         addr,
		Handler:      handler.Router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		root := files.Root()
		logger.Info("starting server",
			"addr", addr,
			"root", root.Root,
			"mount_prefix", root.Prefix(),
			"mode", root.EffectiveMode(),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("server error: %w", err)
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(cmd.Context()), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	return nil
}
