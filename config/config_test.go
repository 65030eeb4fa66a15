// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const sampleConfig = `
[development]
port = "8081"
log_level = "debug"

[production]
port = "80"
reference_dir = "/srv/who"
database_url = "postgres://app@db/nourishnav"
log_level = "warn"
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	return path
}

func TestLoad(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, sampleConfig)

	tests := []struct {
		env      string
		port     string
		refDir   string
		logLevel string
	}{
		{env: "dev", port: "8081", logLevel: "debug"},
		{env: "development", port: "8081", logLevel: "debug"},
		{env: "PROD", port: "80", refDir: "/srv/who", logLevel: "warn"},
		{env: "", port: "8081", logLevel: "debug"},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			t.Parallel()

			cfg, err := Load(tt.env, path)
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}

			if cfg.Port != tt.port || cfg.ReferenceDir != tt.refDir || cfg.LogLevel != tt.logLevel {
				t.Fatalf("unexpected config %+v", cfg)
			}
		})
	}
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()

	if _, err := Load("staging", writeConfig(t, sampleConfig)); !errors.Is(err, errUnknownEnv) {
		t.Fatalf("expected errUnknownEnv, got %v", err)
	}

	if _, err := Load("dev", writeConfig(t, "port = [")); err == nil {
		t.Fatalf("expected decode error")
	}

	if _, err := Load("dev", filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestLoadWithoutFileOrSection(t *testing.T) {
	t.Parallel()

	cfg, err := Load("prod", "")
	if err != nil || *cfg != (Config{}) {
		t.Fatalf("expected empty config, got %+v (%v)", cfg, err)
	}

	cfg, err = Load("prod", writeConfig(t, "[development]\nport = \"1\"\n"))
	if err != nil || *cfg != (Config{}) {
		t.Fatalf("expected empty config for missing section, got %+v (%v)", cfg, err)
	}
}

func TestPick(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		flag     string
		flagSet  bool
		file     string
		fallback string
		want     string
	}{
		{name: "explicit flag wins", flag: "9000", flagSet: true, file: "8081", want: "9000"},
		{name: "file beats default", flag: "8080", file: "8081", want: "8081"},
		{name: "default flag value", flag: "8080", want: "8080"},
		{name: "fallback", fallback: "info", want: "info"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Pick(tt.flag, tt.flagSet, tt.file, tt.fallback); got != tt.want {
				t.Fatalf("Pick = %q, want %q", got, tt.want)
			}
		})
	}
}
