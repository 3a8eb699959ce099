// Copyright 2026 The YAVA Authors
// SPDX-License-Identifier: Apache-2.0

package yava

import (
	"crypto/rand"
	"fmt"
	"io"
	"log/slog"

	"github.com/Nichokas/YAVA/lib/checksum"
	"github.com/Nichokas/YAVA/lib/clock"
	"github.com/Nichokas/YAVA/lib/compress"
)

// VerifyPolicy selects what extraction does when a container fails
// verification.
type VerifyPolicy uint8

const (
	// VerifyStrict refuses to write output for a container that fails
	// verification. It is the zero value.
	VerifyStrict VerifyPolicy = iota

	// VerifySkip writes the output anyway. The digest is still
	// computed and the mismatch is reported.
	VerifySkip
)

func (p VerifyPolicy) String() string {
	switch p {
	case VerifyStrict:
		return "strict"
	case VerifySkip:
		return "skip"
	default:
		return fmt.Sprintf("VerifyPolicy(%d)", uint8(p))
	}
}

// ParseVerifyPolicy parses a configuration name. The empty string
// selects [VerifyStrict].
func ParseVerifyPolicy(name string) (VerifyPolicy, error) {
	switch name {
	case "", "strict":
		return VerifyStrict, nil
	case "skip":
		return VerifySkip, nil
	default:
		return 0, fmt.Errorf("unknown verify policy %q (want strict or skip)", name)
	}
}

// Options configures an [Archiver], [Extractor], or [Rewriter]. The
// zero value is usable: real clock, no logging, xz compression,
// strict verification, no seal.
type Options struct {
	// Clock supplies the Compressed Date of new containers.
	Clock clock.Clock

	// Logger receives diagnostic events. Nil discards them.
	Logger *slog.Logger

	// Algorithm compresses new containers. Zero selects
	// [compress.Default]. Rewrites keep the algorithm of their input.
	Algorithm compress.Algorithm

	// Verify is the extraction policy on checksum or seal failure.
	Verify VerifyPolicy

	// Sealer, when set, seals new containers and requires a valid seal
	// on extraction. The caller owns it and closes it.
	Sealer *checksum.Sealer

	// Random is the entropy source for generated replacement
	// checksums. Nil selects crypto/rand.
	Random io.Reader
}

func (o Options) withDefaults() Options {
	if o.Clock == nil {
		o.Clock = clock.Real()
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if o.Algorithm == 0 {
		o.Algorithm = compress.Default
	}
	if o.Random == nil {
		o.Random = rand.Reader
	}
	return o
}

// sealParts lists the values a seal covers, in order: the three
// standard header values followed by the payload.
func sealParts(extension, date, digest string, payload []byte) [][]byte {
	return [][]byte{[]byte(extension), []byte(date), []byte(digest), payload}
}
