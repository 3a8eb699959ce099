// Copyright 2026 The YAVA Authors
// SPDX-License-Identifier: Apache-2.0

package yava

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/Nichokas/YAVA/lib/checksum"
	"github.com/Nichokas/YAVA/lib/container"
)

// RewriteResult describes a container written by [Rewriter.Rewrite].
type RewriteResult struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`

	// OldChecksum is the Compressed by value of the source, empty when
	// the line was missing.
	OldChecksum string `json:"old_checksum"`
	NewChecksum string `json:"new_checksum"`
}

// Rewriter replaces the stored checksum of a container without
// touching its payload. Its output deliberately fails verification
// unless the replacement happens to be the correct digest.
type Rewriter struct {
	logger *slog.Logger
	random io.Reader
}

// NewRewriter returns a Rewriter configured by options.
func NewRewriter(options Options) *Rewriter {
	options = options.withDefaults()
	return &Rewriter{
		logger: options.Logger,
		random: options.Random,
	}
}

// ValidateReplacement checks that value can be stored as a Compressed
// by value: non-empty and on a single line. Any other text, including
// strings that are not hex, is accepted verbatim.
func ValidateReplacement(value string) error {
	if value == "" {
		return errors.New("replacement checksum is empty")
	}
	if strings.ContainsAny(value, "\r\n") {
		return errors.New("replacement checksum contains a line break")
	}
	return nil
}

// Rewrite decodes the container at path, replaces its Compressed by
// line with replacement, and writes the result to <stem>_modified.yava
// in the same directory. Every other header line, the payload, and the
// compression algorithm are kept. An empty replacement is replaced by
// 64 random lowercase hex characters.
func (r *Rewriter) Rewrite(path, replacement string) (*RewriteResult, error) {
	if replacement == "" {
		generated, err := RandomChecksum(r.random)
		if err != nil {
			return nil, &Error{Kind: KindIO, Op: "generating checksum", Err: err}
		}
		replacement = generated
	}
	if err := ValidateReplacement(replacement); err != nil {
		return nil, &Error{Kind: KindUsage, Op: "rewriting", Path: path, Err: err}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, wrap(KindIO, "reading", path, err)
	}

	decoded, err := container.Decode(data)
	if err != nil {
		return nil, wrap(KindFormat, "decoding", path, err)
	}

	header := decoded.Header.Clone()
	old := header.Checksum()
	if err := header.Set(container.FieldChecksum, replacement); err != nil {
		return nil, &Error{Kind: KindUsage, Op: "rewriting", Path: path, Err: err}
	}

	encoded, err := container.Encode(header, decoded.Payload, decoded.Algorithm)
	if err != nil {
		return nil, wrap(KindCodec, "encoding", path, err)
	}

	destination := RewritePath(path)
	if err := writeFileAtomic(destination, encoded); err != nil {
		return nil, wrap(KindIO, "writing", destination, err)
	}

	r.logger.Info("checksum rewritten",
		"source", path,
		"destination", destination,
		"checksum", replacement,
		"previous", old,
	)

	return &RewriteResult{
		Source:      path,
		Destination: destination,
		OldChecksum: old,
		NewChecksum: replacement,
	}, nil
}

// RandomChecksum returns a value shaped like a digest, read from
// random: [checksum.HexLength] lowercase hex characters.
func RandomChecksum(random io.Reader) (string, error) {
	buffer := make([]byte, checksum.Size)
	if _, err := io.ReadFull(random, buffer); err != nil {
		return "", fmt.Errorf("reading random bytes: %w", err)
	}
	return hex.EncodeToString(buffer), nil
}
