// Copyright 2026 The YAVA Authors
// SPDX-License-Identifier: Apache-2.0

package yava

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/Nichokas/YAVA/lib/compress"
	"github.com/Nichokas/YAVA/lib/container"
)

// Kind classifies a failure.
type Kind int

const (
	// KindUnknown is returned by [KindOf] for errors this package did
	// not produce and cannot classify.
	KindUnknown Kind = iota

	// KindUsage covers bad arguments: an invalid replacement hash, a
	// source that already is a container, an extension that cannot be
	// stored.
	KindUsage

	// KindIO covers reading inputs and writing outputs.
	KindIO

	// KindCodec covers compression and decompression failures.
	KindCodec

	// KindFormat covers decoded content that is not a container.
	KindFormat

	// KindIntegrity covers checksum and seal mismatches.
	KindIntegrity
)

func (k Kind) String() string {
	switch k {
	case KindUsage:
		return "usage"
	case KindIO:
		return "io"
	case KindCodec:
		return "codec"
	case KindFormat:
		return "format"
	case KindIntegrity:
		return "integrity"
	default:
		return "unknown"
	}
}

// Error is the error type returned by every operation in this package.
type Error struct {
	Kind Kind

	// Op describes what was being done, e.g. "reading" or "writing".
	Op string

	// Path is the file involved, if any.
	Path string

	Err error
}

func (e *Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// IntegrityError reports a container whose stored checksum or seal
// does not match its payload.
type IntegrityError struct {
	// Stored is the value found in the header: the Compressed by line,
	// or the Sealed by line when Seal is set.
	Stored string

	// Computed is the digest of the payload. It is empty for seal
	// failures; the expected seal is never disclosed.
	Computed string

	// Seal is set when the keyed seal, not the checksum, failed.
	Seal bool
}

func (e *IntegrityError) Error() string {
	if e.Seal {
		if e.Stored == "" {
			return "container is not sealed"
		}
		return "seal does not match the container contents"
	}
	return fmt.Sprintf("checksum mismatch: stored %s, computed %s", e.Stored, e.Computed)
}

// KindOf classifies any error chain. Errors from this package report
// their own Kind; lower-level sentinels are recognized as well.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}

	var yavaErr *Error
	if errors.As(err, &yavaErr) && yavaErr.Kind != KindUnknown {
		return yavaErr.Kind
	}

	var integrity *IntegrityError
	var pathErr *fs.PathError
	switch {
	case errors.As(err, &integrity):
		return KindIntegrity
	case errors.Is(err, container.ErrFormat):
		return KindFormat
	case errors.Is(err, compress.ErrCodec):
		return KindCodec
	case errors.As(err, &pathErr):
		return KindIO
	default:
		return KindUnknown
	}
}

// wrap builds an *Error whose Kind is derived from err, falling back
// to fallback when err is not recognized.
func wrap(fallback Kind, op, path string, err error) *Error {
	kind := KindOf(err)
	if kind == KindUnknown {
		kind = fallback
	}
	return &Error{Kind: kind, Op: op, Path: path, Err: err}
}
