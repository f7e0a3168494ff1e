package server

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/orris-inc/memberhub/internal/infrastructure/database"
	"github.com/orris-inc/memberhub/internal/infrastructure/migration"
	"github.com/orris-inc/memberhub/internal/interfaces/cli/bootstrap"
	httpRouter "github.com/orris-inc/memberhub/internal/interfaces/http"
	"github.com/orris-inc/memberhub/internal/shared/logger"
)

var (
	flags       bootstrap.Flags
	autoMigrate bool
	migrateUp   bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP server",
		Long:  `Start the memberhub HTTP server with specified configuration.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&flags.Env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().StringVarP(&flags.ConfigPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")
	cmd.Flags().BoolVar(&migrateUp, "migrate", false, "Apply pending versioned migrations on startup")
	cmd.Flags().BoolVar(&autoMigrate, "auto-migrate", false, "Create or alter tables from the GORM models on startup (not recommended for production)")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	cfg, log, err := bootstrap.Init(&flags, true)
	if err != nil {
		return err
	}
	defer database.Close()

	log.Infow("starting server",
		"environment", flags.Env,
		"mode", cfg.Server.Mode,
		"database", cfg.Database.Driver,
		"auto_migrate", autoMigrate)

	gin.SetMode(cfg.Server.Mode)
	gin.DefaultWriter = io.Discard
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, nuHandlers int) {}

	if err := handleMigrations(cfg.Database.Driver, log); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	router, err := httpRouter.NewRouter(ctx, database.Get(), cfg, log)
	if err != nil {
		return fmt.Errorf("failed to build router: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infow("server listening", "address", cfg.Server.GetAddr())
		errCh <- router.Run(cfg.Server.GetAddr())
	}()

	select {
	case err := <-errCh:
		router.Shutdown(context.Background())
		if err != nil {
			return fmt.Errorf("server stopped: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Infow("shutting down server")
	if err := router.Shutdown(context.Background()); err != nil {
		log.Errorw("server forced to shutdown", "error", err)
		return err
	}

	log.Infow("server exited gracefully")
	return nil
}

func handleMigrations(driver string, log logger.Interface) error {
	if !autoMigrate && !migrateUp {
		return nil
	}

	manager, err := migration.NewManager(driver, autoMigrate, log)
	if err != nil {
		return fmt.Errorf("failed to init migrations: %w", err)
	}
	if err := manager.Migrate(database.Get()); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}
