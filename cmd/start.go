/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v3"

	"github.com/humaidq/nourishnav/db"
	"github.com/humaidq/nourishnav/logging"
	"github.com/humaidq/nourishnav/metrics"
	"github.com/humaidq/nourishnav/reference"
	"github.com/humaidq/nourishnav/routes"
	"github.com/humaidq/nourishnav/store"
)

var CmdStart = &cli.Command{
	Name:    "start",
	Aliases: []string{"run"},
	Usage:   "Start the web server",
	Flags:   settingsFlags(),
	Action:  start,
}

func start(ctx context.Context, cmd *cli.Command) error {
	cfg, err := resolveSettings(cmd)
	if err != nil {
		return err
	}

	if err := logging.SetLevel(cfg.LogLevel); err != nil {
		return err
	}

	appLogger.Info("Starting nourishnav", "env", cfg.Env)

	// Reference data is required; refuse to serve without it.
	refs := reference.NewCache(reference.LoaderFor(cfg.ReferenceDir))
	if _, err := refs.Get(); err != nil {
		return fmt.Errorf("failed to load reference data: %w", err)
	}

	var (
		opts       []store.Option
		restored   []store.Profile
		collectors []prometheus.Collector
	)

	if cfg.DatabaseURL != "" {
		persister, profiles, err := openDatabase(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer db.Close()

		opts = append(opts, store.WithPersister(persister))
		restored = profiles
		collectors = append(collectors, pgxpoolprometheus.NewCollector(
			db.GetPool(),
			map[string]string{"db_name": db.GetPool().Config().ConnConfig.Database},
		))
	} else {
		appLogger.Warn("No database configured; profiles are kept in memory only")
	}

	profiles := store.New(opts...)
	if err := profiles.Restore(restored); err != nil {
		return fmt.Errorf("failed to restore profiles: %w", err)
	}

	reg := metrics.SetupPrometheus(collectors...)
	handlers := &routes.Handlers{
		Store:      profiles,
		References: refs,
		Metrics:    metrics.NewManager("nourishnav", "main", reg),
	}
	handlers.Metrics.SetProfiles(len(profiles.Profiles()))

	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%s", cfg.Port),
		Handler:      routes.NewRouter(handlers, reg),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     requestStdLogger,
	}

	return serve(ctx, srv)
}

func openDatabase(ctx context.Context, databaseURL string) (*db.Persister, []store.Profile, error) {
	appLogger.Info("Connecting to database")

	if err := db.Init(ctx, databaseURL); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := db.SyncSchema(ctx, databaseURL); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to sync schema: %w", err)
	}

	persister, err := db.NewPersister()
	if err != nil {
		db.Close()
		return nil, nil, err
	}

	profiles, err := db.LoadProfiles(ctx)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to load stored profiles: %w", err)
	}

	return persister, profiles, nil
}

func serve(ctx context.Context, srv *http.Server) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)

	go func() {
		appLogger.Info("Starting web server", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		return fmt.Errorf("web server failed: %w", err)
	case <-ctx.Done():
	}

	appLogger.Info("Shutting down web server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down web server: %w", err)
	}

	return nil
}
