// Copyright 2026 The YAVA Authors
// SPDX-License-Identifier: Apache-2.0

// yava archives a file into a .yava container, or restores the file
// from a container after verifying its checksum.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/Nichokas/YAVA/lib/clock"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	err := rootCommand(stdout, stderr, clock.Real()).Execute(args)
	if err == nil {
		return 0
	}
	// Failures reported through the reporter come back as an
	// ExitError. Don't print a redundant "error:" line for those.
	if coder, ok := err.(interface{ ExitCode() int }); ok {
		return coder.ExitCode()
	}
	fmt.Fprintf(stderr, "error: %v\n", err)
	return 1
}
