// Copyright 2026 The YAVA Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "yava.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Compression != "xz" {
		t.Errorf("expected compression=xz, got %s", cfg.Compression)
	}
	if cfg.Verify != VerifyStrict {
		t.Errorf("expected verify=strict, got %s", cfg.Verify)
	}
	if cfg.Seal.KeyFile != "" {
		t.Errorf("expected no seal key by default, got %s", cfg.Seal.KeyFile)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default().Validate() = %v", err)
	}
}

func TestLoad_WithoutYavaConfig(t *testing.T) {
	t.Setenv(EnvVar, "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Compression != "xz" || cfg.Verify != VerifyStrict {
		t.Errorf("expected defaults, got compression=%s verify=%s", cfg.Compression, cfg.Verify)
	}
}

func TestLoad_WithYavaConfig(t *testing.T) {
	path := writeConfig(t, `
compression: zstd
verify: skip
log:
  level: debug
`)
	t.Setenv(EnvVar, path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Compression != "zstd" {
		t.Errorf("expected compression=zstd, got %s", cfg.Compression)
	}
	if cfg.Verify != VerifySkip {
		t.Errorf("expected verify=skip, got %s", cfg.Verify)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("expected log.level=debug, got %s", cfg.Log.Level)
	}
}

func TestLoadFile_PartialKeepsDefaults(t *testing.T) {
	cfg, err := LoadFile(writeConfig(t, "verify: skip\n"))
	if err != nil {
		t.Fatalf("LoadFile() failed: %v", err)
	}
	if cfg.Compression != "xz" {
		t.Errorf("expected compression default xz, got %s", cfg.Compression)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("expected log.level default warn, got %s", cfg.Log.Level)
	}
}

func TestLoadFile_Empty(t *testing.T) {
	cfg, err := LoadFile(writeConfig(t, ""))
	if err != nil {
		t.Fatalf("LoadFile() on empty file failed: %v", err)
	}
	if cfg.Verify != VerifyStrict {
		t.Errorf("expected verify=strict, got %s", cfg.Verify)
	}
}

func TestLoadFile_UnknownField(t *testing.T) {
	_, err := LoadFile(writeConfig(t, "compresion: zstd\n"))
	if err == nil {
		t.Fatal("expected error for misspelled field, got nil")
	}
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file, got nil")
	}
}

func TestLoadFile_ExpandsSealKeyPath(t *testing.T) {
	t.Setenv("HOME", "/home/tester")

	cfg, err := LoadFile(writeConfig(t, `
seal:
  key_file: ${HOME}/.yava/seal.key
`))
	if err != nil {
		t.Fatalf("LoadFile() failed: %v", err)
	}
	if cfg.Seal.KeyFile != "/home/tester/.yava/seal.key" {
		t.Errorf("expected expanded key_file, got %q", cfg.Seal.KeyFile)
	}
}

func TestExpandVars(t *testing.T) {
	t.Setenv("YAVA_TEST_SET", "from-env")
	t.Setenv("YAVA_TEST_UNSET", "")

	vars := map[string]string{"HOME": "/home/tester"}
	tests := []struct {
		input string
		want  string
	}{
		{"${HOME}/seal.key", "/home/tester/seal.key"},
		{"${YAVA_TEST_SET}/k", "from-env/k"},
		{"${YAVA_TEST_UNSET:-/etc/yava}/k", "/etc/yava/k"},
		{"${YAVA_TEST_SET:-/etc/yava}/k", "from-env/k"},
		{"/plain/path", "/plain/path"},
	}
	for _, tt := range tests {
		if got := expandVars(tt.input, vars); got != tt.want {
			t.Errorf("expandVars(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr []string
	}{
		{"valid", func(*Config) {}, nil},
		{"bad compression", func(c *Config) { c.Compression = "gzip" }, []string{"compression"}},
		{"bad verify", func(c *Config) { c.Verify = "maybe" }, []string{"verify"}},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, []string{"log.level"}},
		{"all bad", func(c *Config) {
			c.Compression = "gzip"
			c.Verify = ""
			c.Log.Level = ""
		}, []string{"compression", "verify", "log.level"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			if len(tt.wantErr) == 0 {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			for _, fragment := range tt.wantErr {
				if !strings.Contains(err.Error(), fragment) {
					t.Errorf("Validate() error %q does not mention %q", err, fragment)
				}
			}
		})
	}
}
