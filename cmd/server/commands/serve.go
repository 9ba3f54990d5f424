package commands

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/logging"
	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/server"
	"github.com/getsentry/sentry-go"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Start the HTTP server. The schema is migrated on startup.

Examples:
  nutrition-backend serve
  nutrition-backend serve --db-driver postgres
  PORT=3000 nutrition-backend serve --sqlite-path ./dev.db`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	stdout := logging.Setup(cfg.LogLevel)

	db, err := openDatabase(cfg)
	if err != nil {
		slog.Error("database startup failed", "error", err)
		return err
	}

	// system_logs handler (ERROR+ async batch)
	storeHandler := logging.NewStoreHandler(db)
	slog.SetDefault(slog.New(logging.NewMultiHandler(stdout, storeHandler)))

	cleanupDone := make(chan struct{})
	logging.StartCleanup(db, cfg.LogRetentionDays, cleanupDone)

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: cfg.SentryTracesSampleRate,
			Environment:      cfg.AppEnv,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	app := server.New(cfg, db, server.Options{AccessLog: true})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	listenErr := make(chan error, 1)
	go func() {
		slog.Info("server starting", "port", cfg.Port, "driver", cfg.DBDriver)
		listenErr <- app.Listen(":" + cfg.Port)
	}()

	select {
	case <-quit:
		slog.Info("shutting down server...")
	case err = <-listenErr:
		slog.Error("server failed to start", "error", err)
	}

	if shutdownErr := app.ShutdownWithTimeout(10 * time.Second); shutdownErr != nil {
		slog.Error("server shutdown error", "error", shutdownErr)
	}

	close(cleanupDone)
	storeHandler.Stop()
	// route further logs to stdout only; the database is about to close
	slog.SetDefault(slog.New(stdout))

	if closeErr := database.Close(db); closeErr != nil {
		slog.Error("database close error", "error", closeErr)
	}

	slog.Info("server stopped")
	return err
}
