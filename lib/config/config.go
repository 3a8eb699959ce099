// Copyright 2026 The YAVA Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/Nichokas/YAVA/lib/compress"
)

// EnvVar names the environment variable [Load] reads the config path
// from.
const EnvVar = "YAVA_CONFIG"

// Verify policy names accepted in the verify field.
const (
	VerifyStrict = "strict"
	VerifySkip   = "skip"
)

// Config is the master configuration for the yava commands.
type Config struct {
	// Compression selects the codec for new containers: xz, zstd,
	// or lz4. Decoding always detects the codec from the stream.
	// Default: xz
	Compression string `yaml:"compression"`

	// Verify is the policy applied when a stored checksum does not
	// match the payload: "strict" refuses to write output, "skip"
	// writes it anyway and reports the mismatch.
	// Default: strict
	Verify string `yaml:"verify"`

	// Seal configures the optional keyed seal.
	Seal SealConfig `yaml:"seal"`

	// Log configures diagnostic logging on stderr.
	Log LogConfig `yaml:"log"`
}

// SealConfig configures the keyed seal line.
type SealConfig struct {
	// KeyFile is the path to the seal key material. When set, new
	// containers carry a Sealed by line and decoding requires a valid
	// one. Empty disables sealing.
	KeyFile string `yaml:"key_file"`
}

// LogConfig configures diagnostic logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	// Default: warn
	Level string `yaml:"level"`
}

// Default returns the default configuration. It is used as the base
// before a file is loaded, and on its own when no file is configured.
func Default() *Config {
	return &Config{
		Compression: compress.Default.String(),
		Verify:      VerifyStrict,
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// Load loads configuration from the file named by YAVA_CONFIG. When the
// variable is unset or empty it returns [Default].
func Load() (*Config, error) {
	configPath := os.Getenv(EnvVar)
	if configPath == "" {
		return Default(), nil
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path. Fields the
// file omits keep their default values. Unknown fields are rejected so
// that a misspelled key does not silently fall back to a default.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}

	cfg.expandVariables()

	return cfg, nil
}

// loadFile loads a single configuration file, merging into the current config.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in paths.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}

	c.Seal.KeyFile = expandVars(c.Seal.KeyFile, vars)
}

// expandVars expands ${VAR} and ${VAR:-default} patterns.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		// Check provided vars first, then environment.
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if _, err := compress.ParseAlgorithm(c.Compression); err != nil {
		errs = append(errs, fmt.Errorf("compression: %w", err))
	}

	verifyValues := []string{VerifyStrict, VerifySkip}
	if !slices.Contains(verifyValues, c.Verify) {
		errs = append(errs, fmt.Errorf("verify must be one of: %v", verifyValues))
	}

	logLevels := []string{"debug", "info", "warn", "error"}
	if !slices.Contains(logLevels, c.Log.Level) {
		errs = append(errs, fmt.Errorf("log.level must be one of: %v", logLevels))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
