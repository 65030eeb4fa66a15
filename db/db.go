/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Pool sizing for the profile persister.
const (
	maxPoolConns      = 8
	minPoolConns      = 1
	healthCheckPeriod = time.Minute
)

// duplicateDatabase is the SQLSTATE returned when CREATE DATABASE loses a race.
const duplicateDatabase = "42P04"

var pool *pgxpool.Pool

// Init opens the shared pool for the profile persister. The target database
// is created on first start.
func Init(ctx context.Context, databaseURL string) error {
	if databaseURL == "" {
		return ErrDatabaseURLNotSet
	}

	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return fmt.Errorf("failed to parse database URL: %w", err)
	}

	if err := createDatabaseIfMissing(ctx, config.ConnConfig.Copy()); err != nil {
		return err
	}

	config.MaxConns = maxPoolConns
	config.MinConns = minPoolConns
	config.HealthCheckPeriod = healthCheckPeriod

	p, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := p.Ping(ctx); err != nil {
		p.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	pool = p

	logger.Info("Profile database ready", "database", config.ConnConfig.Database, "max_conns", maxPoolConns)

	return nil
}

// GetPool returns the shared pool, or nil before Init.
func GetPool() *pgxpool.Pool {
	return pool
}

// Close releases the shared pool.
func Close() {
	if pool != nil {
		pool.Close()
		pool = nil
	}
}

// createDatabaseIfMissing connects to the maintenance database and creates
// the database named in config.
func createDatabaseIfMissing(ctx context.Context, config *pgx.ConnConfig) error {
	name := config.Database
	if name == "" {
		return ErrDatabaseNameNotSpecified
	}

	config.Database = "postgres"

	conn, err := pgx.ConnectConfig(ctx, config)
	if err != nil {
		return fmt.Errorf("failed to connect to maintenance database: %w", err)
	}

	defer func() {
		if err := conn.Close(ctx); err != nil {
			logger.Warn("Failed to close maintenance connection", "error", err)
		}
	}()

	var exists bool
	if err := conn.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM pg_database WHERE datname = $1)`, name).Scan(&exists); err != nil {
		return fmt.Errorf("failed to look up database %q: %w", name, err)
	}

	if exists {
		return nil
	}

	_, err = conn.Exec(ctx, "CREATE DATABASE "+pgx.Identifier{name}.Sanitize())

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == duplicateDatabase {
		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to create database %q: %w", name, err)
	}

	logger.Info("Created profile database", "database", name)

	return nil
}
