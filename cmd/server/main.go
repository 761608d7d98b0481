package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rohits-web03/robofriends/internal/api"
	"github.com/rohits-web03/robofriends/internal/config"
	"github.com/rohits-web03/robofriends/internal/logger"
	"github.com/rohits-web03/robofriends/internal/repositories"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

var (
	cfg config.Config
	log *zap.Logger

	exportKey       string
	exportOverwrite bool
	exportExpires   time.Duration
)

var rootCmd = &cobra.Command{
	Use:           "server",
	Short:         "RoboFriends directory service",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfg, err = config.Load(); err != nil {
			return err
		}
		if log, err = logger.New(cfg.Environment, cfg.LogLevel); err != nil {
			return err
		}
		if !cfg.EnvFileLoaded {
			log.Debug("No env file found", zap.String("file", cfg.EnvFile))
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Upload a JSON snapshot of the directory to the snapshot bucket",
	Long: `Reads every robot from the store, uploads them as one JSON array to
SNAPSHOT_BUCKET and prints a presigned download URL.

Example:
  server export --key snapshots/weekly.json --expires 1h`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return export(cmd.Context())
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportKey, "key", "", "object key (default snapshots/robots-<timestamp>.json)")
	exportCmd.Flags().BoolVar(&exportOverwrite, "overwrite", false, "replace an existing object with the same key")
	exportCmd.Flags().DurationVar(&exportExpires, "expires", 15*time.Minute, "lifetime of the presigned download URL")
	rootCmd.AddCommand(exportCmd)
}

func openStore() (*gorm.DB, *repositories.RobotRepository, error) {
	db, err := repositories.ConnectDatabase(cfg.DB_URL, log)
	if err != nil {
		return nil, nil, err
	}
	return db, repositories.NewRobotRepository(db), nil
}

func serve(ctx context.Context) error {
	db, repo, err := openStore()
	if err != nil {
		return err
	}
	defer repositories.Close(db)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: api.SetupRouter(repo, cfg, log),
		// Timeouts prevent resource exhaustion from slow clients
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("Starting RoboFriends server", zap.String("port", cfg.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("could not listen on port %s: %w", cfg.Port, err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func export(ctx context.Context) error {
	store, err := repositories.NewSnapshotStore(cfg.Snapshot)
	if err != nil {
		return err
	}
	db, repo, err := openStore()
	if err != nil {
		return err
	}
	defer repositories.Close(db)

	key := exportKey
	if key == "" {
		key = repositories.SnapshotKey(time.Now())
	}
	res, err := store.Export(ctx, repo, key, exportOverwrite, exportExpires)
	if err != nil {
		return err
	}
	log.Info("Snapshot uploaded", zap.String("key", res.Key), zap.Int("robots", res.Count))
	fmt.Println(res.URL)
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}
