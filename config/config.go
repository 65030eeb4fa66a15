/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */

// Package config reads the optional TOML file with per-environment settings.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

var errUnknownEnv = errors.New("unknown env")

// Config is one environment section of the file. Empty fields mean "not set"
// and leave the command-line default in place.
type Config struct {
	Port         string `toml:"port"`
	ReferenceDir string `toml:"reference_dir"`
	DatabaseURL  string `toml:"database_url"`
	LogLevel     string `toml:"log_level"`
}

// Toml is the whole file.
type Toml struct {
	Development *Config `toml:"development"`
	Production  *Config `toml:"production"`
}

// Get returns the section for env. A missing section yields an empty Config.
func (t *Toml) Get(env string) (*Config, error) {
	var cfg *Config

	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "development", "":
		cfg = t.Development
	case "prod", "production":
		cfg = t.Production
	default:
		return nil, fmt.Errorf("%w: %s", errUnknownEnv, env)
	}

	if cfg == nil {
		return &Config{}, nil
	}

	return cfg, nil
}

// Load decodes the file at path and returns the section for env. An empty
// path yields an empty Config.
func Load(env, path string) (*Config, error) {
	if path == "" {
		t := &Toml{}
		return t.Get(env)
	}

	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	return t.Get(env)
}

// Pick returns flag when it was set explicitly, otherwise the file value,
// otherwise fallback.
func Pick(flag string, flagSet bool, file, fallback string) string {
	switch {
	case flagSet && flag != "":
		return flag
	case file != "":
		return file
	case flag != "":
		return flag
	default:
		return fallback
	}
}
