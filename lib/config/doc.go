// Copyright 2026 The YAVA Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for the yava
// commands.
//
// Configuration is loaded from a single file specified by either the
// YAVA_CONFIG environment variable (via [Load]) or a --config flag
// (via [LoadFile]). There is no ~/.config discovery and no automatic
// file search. When neither is given the commands run on [Default],
// which reproduces the historical behavior: xz compression and strict
// verification.
//
// Variable expansion is performed on path fields after loading:
// ${HOME} and ${VAR:-default} patterns are expanded. No other
// environment variables override config values. Command-line flags
// are applied on top of the loaded file by the caller.
//
// Key exports:
//
//   - [Config] -- compression, verify policy, seal key, log level
//   - [Default] -- returns a Config with the built-in defaults
//   - [Load] and [LoadFile] -- the two entry points for loading
package config
