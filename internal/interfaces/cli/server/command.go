package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"stockdesk/internal/infrastructure/database"
	"stockdesk/internal/infrastructure/migration"
	"stockdesk/internal/interfaces/cli/bootstrap"
	httpRouter "stockdesk/internal/interfaces/http"
	"stockdesk/internal/shared/logger"
)

const sessionSweepInterval = time.Hour

var skipMigrations bool

func NewCommand(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP server",
		Long:  `Apply pending migrations, seed the initial accounts into an empty store and serve the web UI.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), *configPath)
		},
	}

	cmd.Flags().BoolVar(&skipMigrations, "skip-migrations", false, "Do not apply pending migrations on startup")

	return cmd
}

func run(ctx context.Context, configPath string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, log, err := bootstrap.OpenDatabase(configPath)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(); err != nil {
			log.Warnw("failed to close database", "error", err)
		}
	}()

	log.Infow("starting server",
		"version", httpRouter.Version,
		"mode", cfg.Server.Mode,
		"database", cfg.Database.Driver)

	if cfg.UsesDevSecret() {
		log.Warnw("auth.secret_key is the development default; set SECRET_KEY before exposing the server")
	}

	gin.SetMode(cfg.Server.Mode)
	gin.DefaultWriter = io.Discard
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, nuHandlers int) {}

	if err := applyMigrations(ctx, log); err != nil {
		return err
	}

	router, err := httpRouter.NewRouter(database.Get(), cfg, log)
	if err != nil {
		return fmt.Errorf("failed to build router: %w", err)
	}
	defer router.Shutdown()

	if err := router.Bootstrap(ctx); err != nil {
		return err
	}
	router.SetupRoutes()
	router.StartSessionSweeper(ctx, sessionSweepInterval)

	srv := &http.Server{
		Addr:         cfg.Server.GetAddr(),
		Handler:      router.GetEngine(),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSec) * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Infow("server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case sig := <-quit:
		log.Infow("shutting down server", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("server forced to shutdown", "error", err)
		return err
	}

	log.Infow("server exited gracefully")
	return nil
}

func applyMigrations(ctx context.Context, log logger.Interface) error {
	if skipMigrations {
		log.Warnw("skipping migrations on startup")
		return nil
	}

	migrator, err := migration.NewMigrator(database.Get(), log)
	if err != nil {
		return err
	}
	if _, err := migrator.Up(ctx); err != nil {
		return err
	}
	return nil
}
