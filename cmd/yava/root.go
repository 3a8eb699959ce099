// Copyright 2026 The YAVA Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"github.com/Nichokas/YAVA/cmd/yava/cli"
	"github.com/Nichokas/YAVA/lib/clock"
	"github.com/Nichokas/YAVA/lib/compress"
	"github.com/Nichokas/YAVA/lib/config"
	"github.com/Nichokas/YAVA/lib/yava"
)

type rootParams struct {
	cli.CommonParams
	NoVerify    bool   `json:"-" flag:"no-verify" desc:"restore the file even when its checksum does not match (verify policy skip)"`
	Compression string `json:"-" flag:"compression" desc:"codec for new containers: xz, zstd, or lz4 (default from config, else xz)"`
	SealKey     string `json:"-" flag:"seal-key" desc:"file holding the seal key; overrides seal.key_file"`
}

func rootCommand(stdout, stderr io.Writer, clk clock.Clock) *cli.Command {
	var params rootParams
	reporter := cli.NewReporter(stdout, stderr)

	command := &cli.Command{
		Name:    "yava",
		Summary: "Archive a file into a tamper-evident .yava container, or restore one",
		Description: `Archive a file into a tamper-evident .yava container, or restore one.

A path ending in .yava is restored: the container is decompressed, the
payload checksum is compared with the stored one, and the original file
is written next to the container as <name>.<original extension>. A
mismatch aborts without writing anything unless --no-verify is given.

Any other path is archived to <name>.yava in the same directory. The
source file is left untouched.`,
		Usage: "yava <file> [flags]",
		Examples: []cli.Example{
			{Description: "Archive a document", Command: "yava report.pdf"},
			{Description: "Restore and verify it", Command: "yava report.yava"},
			{Description: "Archive with zstd and a seal", Command: "yava --compression zstd --seal-key ~/.yava/seal.key data.tar"},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("yava", &params)
		},
		HelpOutput: stderr,
	}

	command.Run = func(args []string) error {
		if params.Version {
			fmt.Fprintln(stdout, cli.VersionString("yava"))
			return nil
		}
		if len(args) != 1 {
			return command.UsageError("expected exactly one file, got %d arguments", len(args))
		}

		cfg, err := params.LoadConfig()
		if err != nil {
			return reporter.Fail(err)
		}
		if params.NoVerify {
			cfg.Verify = config.VerifySkip
		}
		if params.Compression != "" {
			cfg.Compression = params.Compression
		}
		if params.SealKey != "" {
			cfg.Seal.KeyFile = params.SealKey
		}

		session, err := cli.NewSession(cfg, params.Verbose)
		if err != nil {
			return reporter.Fail(err)
		}
		defer session.Close()

		// Both values were checked by NewSession.
		algorithm, _ := compress.ParseAlgorithm(cfg.Compression)
		policy, _ := yava.ParseVerifyPolicy(cfg.Verify)

		options := yava.Options{
			Clock:     clk,
			Logger:    session.Logger.With("command", "yava"),
			Algorithm: algorithm,
			Verify:    policy,
			Sealer:    session.Sealer,
		}

		path := args[0]
		if yava.IsContainer(path) {
			return extract(path, options, &params, reporter)
		}
		return archive(path, options, &params, reporter, clk)
	}

	return command
}

func archive(path string, options yava.Options, params *rootParams, reporter *cli.Reporter, clk clock.Clock) error {
	start := clk.Now()
	result, err := yava.NewArchiver(options).Archive(path)
	if err != nil {
		return reporter.Fail(err)
	}
	if done, err := params.EmitJSON(reporter.Stdout(), result); done {
		return err
	}
	reporter.Archived(result, clk.Since(start))
	return nil
}

func extract(path string, options yava.Options, params *rootParams, reporter *cli.Reporter) error {
	result, err := yava.NewExtractor(options).Extract(path)
	if err != nil {
		return reporter.Fail(err)
	}
	if done, err := params.EmitJSON(reporter.Stdout(), result); done {
		return err
	}
	reporter.Extracted(result)
	return nil
}
