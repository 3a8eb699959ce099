// Copyright 2026 The YAVA Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command framework shared by the yava and
// yava-rehash binaries.
//
// A [Command] owns a pflag FlagSet built from a tagged params struct by
// [FlagsFromParams]. Parsing errors carry a "did you mean" suggestion
// computed by edit distance. Both binaries embed [CommonParams] for
// --config, --verbose, --version and --json, and turn those into a
// [Session] holding the loaded configuration, the structured logger,
// and the optional seal key.
//
// Results are printed by a [Reporter], which colors its output with
// termenv when stdout is a terminal and falls back to plain text
// otherwise. With --json, results are written as indented JSON
// instead. Failures are printed by [Reporter.Fail], which returns an
// [ExitError] so the main function exits 1 without printing the error
// a second time.
package cli
