package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dgallion1/doclint/internal/rules"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "API_KEY", "WORKERS", "MAX_UPLOAD_BYTES", "RULES_FILE", "LOG_LEVEL", "PARALLEL_RULES"} {
		t.Setenv(k, "")
	}
	cfg := Load()
	if cfg.Port != "8090" {
		t.Errorf("expected port 8090, got %q", cfg.Port)
	}
	if cfg.Workers != 4 {
		t.Errorf("expected 4 workers, got %d", cfg.Workers)
	}
	if cfg.MaxUploadBytes != 10485760 {
		t.Errorf("expected 10MB upload limit, got %d", cfg.MaxUploadBytes)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("expected info level, got %s", cfg.LogLevel)
	}
	if err := cfg.Validate(); err == nil {
		t.Error("expected missing API_KEY to fail validation")
	}
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("API_KEY", "secret")
	t.Setenv("WORKERS", "-2")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("PARALLEL_RULES", "true")
	t.Setenv("RULES_FILE", "")
	cfg := Load()
	if cfg.Port != "9000" || cfg.APIKey != "secret" {
		t.Errorf("unexpected config %+v", cfg)
	}
	if cfg.Workers != 4 {
		t.Errorf("expected invalid WORKERS to fall back to 4, got %d", cfg.Workers)
	}
	if cfg.LogLevel != slog.LevelDebug || !cfg.ParallelRules {
		t.Errorf("expected debug level and parallel rules, got %s %v", cfg.LogLevel, cfg.ParallelRules)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	cfg.RulesFile = filepath.Join(t.TempDir(), "missing.toml")
	if err := cfg.Validate(); err == nil {
		t.Error("expected missing rules file to fail validation")
	}
}

func writeRules(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rules.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadRules(t *testing.T) {
	path := writeRules(t, `
max_line_length = 80
disabled = ["Formatting.EmptyLineGroup"]

[front_matter]
required = true
keys = ["layout"]

[[required_sections]]
level = 1
code = "MissingTitle"
description = "Title (level 1 heading)"
`)
	cfg, err := LoadRules(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.MaxLineLength != 80 {
		t.Errorf("expected 80, got %d", cfg.MaxLineLength)
	}
	if !cfg.FrontMatter.Required || len(cfg.FrontMatter.Keys) != 1 {
		t.Errorf("unexpected front matter config %+v", cfg.FrontMatter)
	}
	if cfg.FrontMatter.DescriptionPattern != rules.DefaultConfig().FrontMatter.DescriptionPattern {
		t.Error("expected unset keys to keep their defaults")
	}
	if len(cfg.RequiredSections) != 1 {
		t.Errorf("expected 1 required section, got %d", len(cfg.RequiredSections))
	}
}

func TestLoadRules_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"syntax", "max_line_length = ", "failed to parse TOML"},
		{"unknown key", "max_line_lenght = 10\n", "unknown keys: max_line_lenght"},
		{"invalid", "max_line_length = 0\n", "max_line_length must be positive"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadRules(writeRules(t, tt.body))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestConfig_Rules(t *testing.T) {
	rc, err := Config{ParallelRules: true}.Rules()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !rc.Parallel {
		t.Error("expected PARALLEL_RULES to enable parallel rules")
	}
	if rc.MaxLineLength != rules.DefaultConfig().MaxLineLength {
		t.Errorf("expected default line length, got %d", rc.MaxLineLength)
	}
}
