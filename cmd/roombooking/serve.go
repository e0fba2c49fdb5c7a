package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/example/roombooking/internal/application"
	"github.com/example/roombooking/internal/auth"
	"github.com/example/roombooking/internal/config"
	"github.com/example/roombooking/internal/graph"
	httptransport "github.com/example/roombooking/internal/http"
	"github.com/example/roombooking/internal/metrics"
	"github.com/example/roombooking/internal/persistence/sqlstore"
	"github.com/example/roombooking/internal/persistence/sqlstore/migration"
	"github.com/example/roombooking/internal/validation"
)

func newServeCmd(a *app) *cobra.Command {
	var skipMigrations bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the GraphQL API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), a.cfg, a.logger, !skipMigrations)
		},
	}
	cmd.Flags().BoolVar(&skipMigrations, "skip-migrations", false, "Do not upgrade the schema to head on start")
	return cmd
}

func runServe(ctx context.Context, cfg config.Config, logger *slog.Logger, migrate bool) error {
	if err := cfg.CheckServe(); err != nil {
		return err
	}

	store, err := sqlstore.Open(ctx, cfg.StoreConfig(), logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			logger.Error("failed to close store", "error", cerr)
		}
	}()

	migrator, err := store.Migrator(logger)
	if err != nil {
		return err
	}
	if migrate {
		if err := migrator.Upgrade(ctx, migration.Head); err != nil {
			return fmt.Errorf("failed to apply migrations: %w", err)
		}
	} else {
		status, err := migrator.Status(ctx)
		if err != nil {
			return err
		}
		if !status.UpToDate() {
			logger.Warn("schema is behind head", "current", status.Current, "head", status.Head)
		}
	}

	handler, err := newHandler(cfg, store, logger)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("room booking API listening", "addr", server.Addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server encountered error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}
	logger.Info("room booking API stopped")
	return nil
}

// newHandler wires the services, schema and router on top of store.
func newHandler(cfg config.Config, store *sqlstore.Store, logger *slog.Logger) (http.Handler, error) {
	gin.SetMode(gin.ReleaseMode)

	v := validation.New(cfg.Countries)
	recorder := metrics.NewRecorder()

	schema, err := graph.NewSchema(&graph.Resolver{
		Locations: application.NewLocationServiceWithLogger(store, v, logger),
		Rooms:     application.NewRoomServiceWithLogger(store, v, logger),
		Offices:   application.NewOfficeServiceWithLogger(store, v, logger),
		Blocks:    application.NewBlockServiceWithLogger(store, v, logger),
		Devices:   application.NewDeviceServiceWithLogger(store, v, logger),
		Events:    application.NewEventServiceWithLogger(store, v, logger),
		Metrics:   recorder,
		Logger:    logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build schema: %w", err)
	}

	return httptransport.NewRouter(httptransport.RouterConfig{
		GraphQL:     httptransport.NewGraphQLHandler(schema, logger),
		Health:      httptransport.NewHealthHandler(store, logger),
		Metrics:     recorder.Handler(),
		Verifier:    auth.NewTokenVerifier(cfg.Auth.JWTSecret, cfg.Auth.Leeway),
		Playground:  cfg.HTTP.Playground,
		CORSOrigins: cfg.HTTP.CORSOrigins,
		Logger:      logger,
	}), nil
}
