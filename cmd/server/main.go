package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/orgsite-blog/internal/api"
	"github.com/orgsite-blog/internal/auth"
	"github.com/orgsite-blog/internal/config"
	"github.com/orgsite-blog/internal/database"
	"github.com/orgsite-blog/internal/repository"
	"github.com/orgsite-blog/internal/service"
	"github.com/orgsite-blog/internal/web"
	"github.com/orgsite-blog/pkg/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// rootCmd runs the server when called without a subcommand
var rootCmd = &cobra.Command{
	Use:   "orgsite-blog",
	Short: "Organisation website with a blog and an admin panel",
	Long: `orgsite-blog serves the public site, the blog and the admin panel
from a single binary. Posts are stored in PostgreSQL or MongoDB depending on
the DATABASE_URL scheme.`,
	SilenceUsage: true,
	RunE:         runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(hashPasswordCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newLogger builds the process logger from configuration
func newLogger(cfg *config.Config, out io.Writer) zerolog.Logger {
	return logger.New(logger.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: out,
	})
}

// openStore connects to the configured document store and prepares it
func openStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*repository.Repositories, func() error, error) {
	driver, err := cfg.Database.Driver()
	if err != nil {
		return nil, nil, err
	}

	switch driver {
	case config.DriverMongo:
		db, err := database.NewMongo(ctx, &cfg.Database, log)
		if err != nil {
			return nil, nil, err
		}
		if err := db.EnsureIndexes(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		return repository.NewMongo(db), db.Close, nil
	default:
		db, err := database.New(ctx, &cfg.Database, log)
		if err != nil {
			return nil, nil, err
		}
		if err := db.RunMigrations(); err != nil {
			db.Close()
			return nil, nil, err
		}
		return repository.New(db), db.Close, nil
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log := newLogger(cfg, os.Stdout)
	log.Info().Str("env", cfg.Env).Msg("Starting orgsite-blog server...")

	// Initialize document store
	repos, closeStore, err := openStore(cmd.Context(), cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer closeStore()

	// Initialize admin identity and sessions
	identity, err := auth.NewStaticProvider(cfg.Auth.AdminUsername, cfg.Auth.AdminPasswordHash)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid admin credentials configuration")
	}
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	// Initialize services
	services := service.NewServices(repos, identity, tokens, cfg, log)

	// Initialize pages and router
	pages, err := web.NewHandler(services, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load page templates")
	}
	router := api.NewRouter(services, repos.Store, pages, cfg, log)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
		return err
	}

	log.Info().Msg("Server exited gracefully")
	return nil
}
