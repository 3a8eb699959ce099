// Copyright 2026 The YAVA Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"log/slog"

	"github.com/Nichokas/YAVA/lib/checksum"
	"github.com/Nichokas/YAVA/lib/config"
	"github.com/Nichokas/YAVA/lib/version"
)

// CommonParams are the flags every yava binary accepts. Embed it in a
// command's params struct.
type CommonParams struct {
	JSONOutput
	ConfigPath string `json:"-" flag:"config" desc:"YAML config file (default: $YAVA_CONFIG, built-in defaults when unset)"`
	Verbose    bool   `json:"-" flag:"verbose,v" desc:"log debug detail to stderr"`
	Version    bool   `json:"-" flag:"version" desc:"print version information and exit"`
}

// VersionString is what --version prints for program.
func VersionString(program string) string {
	return version.Full(program)
}

// LoadConfig loads the file named by --config, or by YAVA_CONFIG when
// the flag is empty.
func (p *CommonParams) LoadConfig() (*config.Config, error) {
	if p.ConfigPath != "" {
		return config.LoadFile(p.ConfigPath)
	}
	return config.Load()
}

// Session carries what a command run needs after flags and the config
// file have been merged.
type Session struct {
	Config *config.Config
	Logger *slog.Logger

	// Sealer is nil unless seal.key_file is configured.
	Sealer *checksum.Sealer
}

// NewSession validates cfg and builds the logger and seal key from it.
// --verbose forces the debug level. Call Close when done.
func NewSession(cfg *config.Config, verbose bool) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	level, err := ParseLogLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	if verbose {
		level = slog.LevelDebug
	}
	logger := NewCommandLogger(level)

	session := &Session{Config: cfg, Logger: logger}
	if cfg.Seal.KeyFile != "" {
		sealer, err := checksum.LoadSealer(cfg.Seal.KeyFile)
		if err != nil {
			return nil, fmt.Errorf("loading seal key: %w", err)
		}
		session.Sealer = sealer
		logger.Debug("seal key loaded", "path", cfg.Seal.KeyFile)
	}
	return session, nil
}

// Close releases the seal key.
func (s *Session) Close() error {
	return s.Sealer.Close()
}
