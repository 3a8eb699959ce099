// Copyright 2026 The YAVA Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"github.com/Nichokas/YAVA/cmd/yava/cli"
	"github.com/Nichokas/YAVA/lib/yava"
)

type rootParams struct {
	cli.CommonParams
}

// rootCommand builds the command. random supplies generated
// checksums; nil selects crypto/rand.
func rootCommand(stdout, stderr io.Writer, random io.Reader) *cli.Command {
	var params rootParams
	reporter := cli.NewReporter(stdout, stderr)

	command := &cli.Command{
		Name:    "yava-rehash",
		Summary: "Replace the stored checksum of a .yava container",
		Description: `Replace the stored checksum of a .yava container.

The container is decoded, its "Compressed by" line is replaced, and the
result is written to <name>_modified.yava next to the input. The payload,
every other header line, and the compression algorithm are kept. The
input container is not modified.

Without new_hash, 64 random hex characters are used. new_hash is stored
verbatim; it must not be empty or span lines.`,
		Usage: "yava-rehash <file.yava> [new_hash]",
		Examples: []cli.Example{
			{Description: "Store a random checksum", Command: "yava-rehash report.yava"},
			{Description: "Store a chosen value", Command: "yava-rehash report.yava deadbeef"},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("yava-rehash", &params)
		},
		HelpOutput: stderr,
	}

	command.Run = func(args []string) error {
		if params.Version {
			fmt.Fprintln(stdout, cli.VersionString("yava-rehash"))
			return nil
		}
		if len(args) < 1 || len(args) > 2 {
			return command.UsageError("expected a container and an optional hash, got %d arguments", len(args))
		}

		path := args[0]
		replacement := ""
		if len(args) == 2 {
			replacement = args[1]
			// An explicit argument is never replaced by a random value.
			if err := yava.ValidateReplacement(replacement); err != nil {
				return command.UsageError("%v", err)
			}
		}

		cfg, err := params.LoadConfig()
		if err != nil {
			return reporter.Fail(err)
		}
		// The rewriter neither seals nor verifies, so a configured key
		// is never read.
		cfg.Seal.KeyFile = ""
		session, err := cli.NewSession(cfg, params.Verbose)
		if err != nil {
			return reporter.Fail(err)
		}
		defer session.Close()

		rewriter := yava.NewRewriter(yava.Options{
			Logger: session.Logger.With("command", "yava-rehash"),
			Random: random,
		})
		result, err := rewriter.Rewrite(path, replacement)
		if err != nil {
			return reporter.Fail(err)
		}

		if done, err := params.EmitJSON(reporter.Stdout(), result); done {
			return err
		}
		reporter.Rewritten(result)
		return nil
	}

	return command
}
