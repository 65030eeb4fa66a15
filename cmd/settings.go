/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/humaidq/nourishnav/config"
)

const (
	runtimeEnvVar   = "NOURISHNAV_ENV"
	defaultPort     = "8080"
	defaultLogLevel = "info"
)

type settings struct {
	Env          string
	Port         string
	ReferenceDir string
	DatabaseURL  string
	LogLevel     string
}

func settingsFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "port",
			Value:   defaultPort,
			Sources: cli.EnvVars("PORT"),
			Usage:   "the web server port",
		},
		&cli.StringFlag{
			Name:    "reference-dir",
			Sources: cli.EnvVars("REFERENCE_DIR"),
			Usage:   "directory with WHO LMS CSV tables (embedded tables when empty)",
		},
		&cli.StringFlag{
			Name:    "database-url",
			Sources: cli.EnvVars("DATABASE_URL"),
			Usage:   "PostgreSQL connection string; profiles stay in memory when empty",
		},
		&cli.StringFlag{
			Name:    "config",
			Sources: cli.EnvVars("NOURISHNAV_CONFIG"),
			Usage:   "path to a TOML config file with [development] and [production] sections",
		},
		&cli.StringFlag{
			Name:    "env",
			Value:   "development",
			Sources: cli.EnvVars(runtimeEnvVar),
			Usage:   "runtime environment (development or production)",
		},
		&cli.StringFlag{
			Name:    "log-level",
			Value:   defaultLogLevel,
			Sources: cli.EnvVars("LOG_LEVEL"),
			Usage:   "minimum log level (debug, info, warn, error)",
		},
	}
}

func normalizeEnv(env string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "", "dev", "development":
		return "development", nil
	case "prod", "production":
		return "production", nil
	default:
		return "", errInvalidRuntimeEnv
	}
}

// resolveSettings merges flags, environment and the optional config file.
// Flags and environment variables set explicitly win over the file.
func resolveSettings(cmd *cli.Command) (settings, error) {
	env, err := normalizeEnv(cmd.String("env"))
	if err != nil {
		return settings{}, err
	}

	file, err := config.Load(env, cmd.String("config"))
	if err != nil {
		return settings{}, fmt.Errorf("failed to load config: %w", err)
	}

	return settings{
		Env:          env,
		Port:         config.Pick(cmd.String("port"), cmd.IsSet("port"), file.Port, defaultPort),
		ReferenceDir: config.Pick(cmd.String("reference-dir"), cmd.IsSet("reference-dir"), file.ReferenceDir, ""),
		DatabaseURL:  config.Pick(cmd.String("database-url"), cmd.IsSet("database-url"), file.DatabaseURL, ""),
		LogLevel:     config.Pick(cmd.String("log-level"), cmd.IsSet("log-level"), file.LogLevel, defaultLogLevel),
	}, nil
}
