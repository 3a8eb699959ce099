// Copyright 2026 The YAVA Authors
// SPDX-License-Identifier: Apache-2.0

package yava

import (
	"log/slog"
	"os"

	"github.com/Nichokas/YAVA/lib/checksum"
	"github.com/Nichokas/YAVA/lib/container"
)

// ExtractResult describes a payload restored by [Extractor.Extract].
type ExtractResult struct {
	Container   string `json:"container"`
	Destination string `json:"destination"`

	StoredChecksum   string `json:"stored_checksum"`
	ComputedChecksum string `json:"computed_checksum"`

	// Verified is set when the checksum matched and, with a seal key
	// configured, the seal was valid. It is false only under
	// [VerifySkip].
	Verified bool `json:"verified"`

	// SealChecked is set when a seal key was configured and the seal
	// line was checked against it.
	SealChecked bool `json:"seal_checked"`

	// Date is the Compressed Date line as stored.
	Date      string `json:"date"`
	Extension string `json:"extension"`
	Algorithm string `json:"algorithm"`
	Size      int64  `json:"size"`
}

// Extractor restores payloads from containers.
type Extractor struct {
	logger *slog.Logger
	policy VerifyPolicy
	sealer *checksum.Sealer
}

// NewExtractor returns an Extractor configured by options.
func NewExtractor(options Options) *Extractor {
	options = options.withDefaults()
	return &Extractor{
		logger: options.Logger,
		policy: options.Verify,
		sealer: options.Sealer,
	}
}

// Extract decodes the container at path, verifies it, and writes the
// payload next to it as <stem>.<Original Extension>, replacing any
// existing file of that name.
//
// Under [VerifyStrict] a verification failure returns an error of
// [KindIntegrity] wrapping an *[IntegrityError] and nothing is
// written. Under [VerifySkip] the payload is written and the result
// reports Verified false.
func (e *Extractor) Extract(path string) (*ExtractResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, wrap(KindIO, "reading", path, err)
	}

	decoded, err := container.Decode(data)
	if err != nil {
		return nil, wrap(KindFormat, "decoding", path, err)
	}

	header := decoded.Header
	destination, err := RestorePath(path, header.Extension())
	if err != nil {
		return nil, wrap(KindFormat, "decoding", path, err)
	}

	result := &ExtractResult{
		Container:        path,
		Destination:      destination,
		StoredChecksum:   header.Checksum(),
		ComputedChecksum: checksum.Digest(decoded.Payload),
		Date:             header.Date(),
		Extension:        header.Extension(),
		Algorithm:        decoded.Algorithm.String(),
		Size:             int64(len(decoded.Payload)),
	}

	failure := e.verify(header, result, decoded.Payload)
	result.Verified = failure == nil
	if failure != nil {
		if e.policy == VerifyStrict {
			e.logger.Warn("verification failed, no output written",
				"source", path,
				"stored", failure.Stored,
				"computed", failure.Computed,
				"seal", failure.Seal,
			)
			return nil, &Error{Kind: KindIntegrity, Op: "verifying", Path: path, Err: failure}
		}
		e.logger.Warn("verification failed, writing output anyway",
			"source", path,
			"destination", destination,
			"error", failure.Error(),
		)
	}

	if err := writeFileAtomic(destination, decoded.Payload); err != nil {
		return nil, wrap(KindIO, "writing", destination, err)
	}

	e.logger.Info("container extracted",
		"source", path,
		"destination", destination,
		"checksum", result.ComputedChecksum,
		"verified", result.Verified,
	)
	return result, nil
}

// verify checks the stored checksum, then the seal when a key is
// configured. It returns nil when both pass.
func (e *Extractor) verify(header *container.Header, result *ExtractResult, payload []byte) *IntegrityError {
	if !checksum.Equal(result.StoredChecksum, result.ComputedChecksum) {
		return &IntegrityError{Stored: result.StoredChecksum, Computed: result.ComputedChecksum}
	}

	stored := header.Seal()
	if e.sealer == nil {
		if stored != "" {
			e.logger.Warn("container is sealed but no seal key is configured; seal not checked",
				"source", result.Container)
		}
		return nil
	}

	result.SealChecked = true
	if stored == "" {
		return &IntegrityError{Seal: true}
	}
	parts := sealParts(header.Extension(), header.Date(), result.StoredChecksum, payload)
	if !e.sealer.Verify(stored, parts...) {
		return &IntegrityError{Stored: stored, Seal: true}
	}
	return nil
}
