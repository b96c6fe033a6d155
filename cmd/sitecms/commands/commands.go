package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/brightlane/sitecms/internal/adapters/repository"
	"github.com/brightlane/sitecms/internal/application/services"
	"github.com/brightlane/sitecms/internal/infrastructure/config"
	"github.com/brightlane/sitecms/internal/infrastructure/database"
	"github.com/brightlane/sitecms/internal/infrastructure/logger"
	"github.com/brightlane/sitecms/internal/infrastructure/metrics"
	"github.com/brightlane/sitecms/internal/infrastructure/server"
	"github.com/brightlane/sitecms/internal/ports"
)

// Set at build time with -ldflags "-X github.com/brightlane/sitecms/cmd/sitecms/commands.Version=..."
var (
	Version   = "dev"
	GitCommit = "unknown"
)

// NewServeCommand creates the serve command
func NewServeCommand(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long:  "Start the site and JSON API with all configured routes and middleware",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(*configFile)
		},
	}
}

// NewSeedCommand creates the seed command
func NewSeedCommand(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Write the default collections if they do not exist yet",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd.Context(), *configFile, cmd.OutOrStdout())
		},
	}
}

// NewMigrateCommand creates the migrate command with subcommands
func NewMigrateCommand(configFile *string) *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration commands",
		Long:  "Manage the PostgreSQL schema used by the postgres storage driver (up, down, version)",
	}

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Run all up migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(*configFile, func(db *database.DB) error {
				if err := db.MigrateUp(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Migration up completed successfully")
				return nil
			})
		},
	})

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Run all down migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(*configFile, func(db *database.DB) error {
				if err := db.MigrateDown(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Migration down completed successfully")
				return nil
			})
		},
	})

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print current migration version",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(*configFile, func(db *database.DB) error {
				version, dirty, err := db.MigrationVersion()
				if err != nil {
					return fmt.Errorf("failed to get migration version: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Current migration version: %d\n", version)
				fmt.Fprintf(cmd.OutOrStdout(), "Dirty: %t\n", dirty)
				return nil
			})
		},
	})

	return migrateCmd
}

// NewHashPasswordCommand creates the hash-password command. The password is
// read from the first argument or, without one, from stdin.
func NewHashPasswordCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password [password]",
		Short: "Print a bcrypt hash for auth.admin_password_hash",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := readPassword(args, cmd.InOrStdin())
			if err != nil {
				return err
			}
			hash, err := services.HashPassword(password)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print sitecms version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "sitecms %s\n", Version)
			fmt.Fprintf(cmd.OutOrStdout(), "Git Commit: %s\n", GitCommit)
		},
	}
}

func runServer(configFile string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer appLogger.Close()

	repo, closeRepo, err := openRepository(cfg, appLogger)
	if err != nil {
		return err
	}
	defer closeRepo()

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
	}

	srv, err := server.New(cfg, repo, appLogger, m)
	if err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case sig := <-quit:
		appLogger.Infow("Received signal", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	appLogger.Info("Server stopped")
	return nil
}

func runSeed(ctx context.Context, configFile string, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer appLogger.Close()

	repo, closeRepo, err := openRepository(cfg, appLogger)
	if err != nil {
		return err
	}
	defer closeRepo()

	catalog := services.NewServiceCatalog(repo, appLogger, nil)
	blogs := services.NewBlogService(repo, appLogger, nil)
	if err := services.Seed(ctx, catalog, blogs); err != nil {
		return fmt.Errorf("seed failed: %w", err)
	}

	fmt.Fprintf(out, "Collections ready (%s storage)\n", cfg.Storage.Driver)
	return nil
}

// openRepository builds the collection repository for the configured driver.
// The postgres schema is migrated before use.
func openRepository(cfg *config.Config, appLogger *logger.Logger) (ports.CollectionRepository, func(), error) {
	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		db, err := database.New(cfg.Storage.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := db.MigrateUp(); err != nil {
			db.Close()
			return nil, nil, err
		}
		appLogger.Infow("Using postgres storage", "host", cfg.Storage.Database.Host, "database", cfg.Storage.Database.Name)
		return repository.NewPostgresRepository(db), func() { db.Close() }, nil
	case config.DriverRedis:
		client, err := repository.ConnectRedis(context.Background(), cfg.Storage.Redis, appLogger)
		if err != nil {
			return nil, nil, err
		}
		repo := repository.NewRedisRepository(client, cfg.Storage.Redis.KeyPrefix)
		return repo, func() { repo.Close() }, nil
	default:
		repo, err := repository.NewFileRepository(cfg.Storage.DataDir)
		if err != nil {
			return nil, nil, err
		}
		appLogger.Infow("Using file storage", "dir", cfg.Storage.DataDir)
		return repo, func() {}, nil
	}
}

func withDatabase(configFile string, fn func(db *database.DB) error) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	db, err := database.New(cfg.Storage.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	return fn(db)
}

func readPassword(args []string, in io.Reader) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		return "", errors.New("password is required")
	}
	return password, nil
}
