package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kubev2v/migration-sizer/internal/catalog"
	"github.com/kubev2v/migration-sizer/internal/config"
	"github.com/kubev2v/migration-sizer/internal/handlers"
	"github.com/kubev2v/migration-sizer/internal/models"
	"github.com/kubev2v/migration-sizer/internal/server"
	"github.com/kubev2v/migration-sizer/internal/services"
	"github.com/kubev2v/migration-sizer/internal/store"
	"github.com/kubev2v/migration-sizer/internal/store/migrations"
	"github.com/kubev2v/migration-sizer/pkg/scheduler"
)

const shutdownTimeout = 10 * time.Second

func NewRunCommand(cfg *config.Configuration) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Serve the sizing API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateConfiguration(cfg); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return run(ctx, cfg)
		},
	}

	registerServerFlags(cmd.Flags(), cfg)
	registerStoreFlags(cmd.Flags(), cfg)
	registerCatalogFlags(cmd.Flags(), cfg)
	registerSizingFlags(cmd.Flags(), cfg)

	return cmd
}

// validateConfiguration runs the struct validation and the checks that need
// the filesystem.
func validateConfiguration(cfg *config.Configuration) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	if cfg.Server.ServerMode == server.ProductionServer && cfg.Server.StaticsFolder != "" {
		if err := requireDir(cfg.Server.StaticsFolder); err != nil {
			return fmt.Errorf("invalid server-statics-folder: %w", err)
		}
	}
	if cfg.Auth.Enabled {
		if err := requireFile(cfg.Auth.JWTFilePath); err != nil {
			return fmt.Errorf("invalid authentication-jwt-filepath: %w", err)
		}
	}
	if cfg.Catalog.FilePath != "" {
		if err := requireFile(cfg.Catalog.FilePath); err != nil {
			return fmt.Errorf("invalid catalog-file: %w", err)
		}
	}

	return nil
}

func requireFile(path string) error {
	fi, err := os.Stat(path)
	if err != nil {
		return err
	}
	if fi.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	return nil
}

func requireDir(path string) error {
	fi, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !fi.IsDir() {
		return fmt.Errorf("%s is not a directory", path)
	}
	return nil
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default(), nil
	}
	return catalog.Load(path)
}

// app holds the wired services shared by the server and the one-shot commands.
type app struct {
	store     *store.Store
	catalog   *catalog.Catalog
	sched     *scheduler.Scheduler[models.SizingResult]
	sizing    *services.SizingService
	inventory *services.InventoryService
	vms       *services.VMService
}

func newApp(ctx context.Context, cfg *config.Configuration) (*app, error) {
	cat, err := loadCatalog(cfg.Catalog.FilePath)
	if err != nil {
		return nil, err
	}

	db, err := store.NewDB(cfg.Store.Path)
	if err != nil {
		return nil, err
	}

	if err := migrations.Run(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate store: %w", err)
	}

	st := store.NewStore(db)
	sched := scheduler.NewScheduler[models.SizingResult](cfg.Workers)
	sizingSrv := services.NewSizingService(st, cat, sched)

	return &app{
		store:     st,
		catalog:   cat,
		sched:     sched,
		sizing:    sizingSrv,
		inventory: services.NewInventoryService(st, sizingSrv),
		vms:       services.NewVMService(st, sizingSrv),
	}, nil
}

func (a *app) Close() {
	a.sched.Close()
	if err := a.store.Close(); err != nil {
		zap.S().Named("run").Errorw("failed to close store", "error", err)
	}
}

func run(ctx context.Context, cfg *config.Configuration) error {
	logger := zap.S().Named("run")

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	h := handlers.New(a.catalog, a.inventory, a.vms, a.sizing, cfg.Sizing)

	srv, err := server.NewServer(cfg, func(router *gin.RouterGroup) {
		h.RegisterHandlers(router)
	})
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(ctx)
	}()

	logger.Infow("server started", "port", cfg.Server.HTTPPort, "mode", cfg.Server.ServerMode, "store", cfg.Store.Path, "profiles", len(a.catalog.List()))

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	srv.Stop(shutdownCtx)

	if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	return nil
}
