// Copyright 2026 The YAVA Authors
// SPDX-License-Identifier: Apache-2.0

// yava-rehash writes a copy of a .yava container with its stored
// checksum replaced, leaving the payload untouched. The copy fails
// verification, which makes it a fixture for exercising the
// fail-closed path of yava.
package main

import (
	"fmt"
	"io"
	"os"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	err := rootCommand(stdout, stderr, nil).Execute(args)
	if err == nil {
		return 0
	}
	if coder, ok := err.(interface{ ExitCode() int }); ok {
		return coder.ExitCode()
	}
	fmt.Fprintf(stderr, "error: %v\n", err)
	return 1
}
