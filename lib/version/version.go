// Copyright 2026 The YAVA Authors
// SPDX-License-Identifier: Apache-2.0

// Package version reports which build of yava is running.
//
// Release builds stamp the commit through -ldflags:
//
//	go build -ldflags "-X github.com/Nichokas/YAVA/lib/version.GitCommit=$(git rev-parse --short HEAD)"
//
// Builds without ldflags fall back to the VCS settings the go command
// embeds, so "go install" binaries still name their commit.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Set via -ldflags. Empty values are filled from the embedded build
// info where possible.
var (
	Version   = "0.1.0-dev"
	GitCommit = ""
	GitDirty  = ""
	BuildTime = ""
)

// shortCommitLength matches git's default abbreviation.
const shortCommitLength = 7

// Full returns the --version text for program: version, commit, build
// time, Go toolchain, and platform.
func Full(program string) string {
	var settings []debug.BuildSetting
	if info, ok := debug.ReadBuildInfo(); ok {
		settings = info.Settings
	}
	return fmt.Sprintf("%s %s\n  Go: %s\n  Platform: %s/%s",
		program, describe(settings), runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// describe formats "version (commit[-dirty], time)" from the ldflags
// variables, falling back to settings for any that are empty.
func describe(settings []debug.BuildSetting) string {
	commit, dirty, built := GitCommit, GitDirty, BuildTime
	for _, setting := range settings {
		switch setting.Key {
		case "vcs.revision":
			if commit == "" {
				commit = setting.Value
				if len(commit) > shortCommitLength {
					commit = commit[:shortCommitLength]
				}
			}
		case "vcs.modified":
			if dirty == "" {
				dirty = setting.Value
			}
		case "vcs.time":
			if built == "" {
				built = setting.Value
			}
		}
	}

	if commit == "" {
		commit = "unknown"
	}
	if dirty == "true" {
		commit += "-dirty"
	}
	if built == "" {
		built = "unknown"
	}
	return fmt.Sprintf("%s (%s, %s)", Version, commit, built)
}
