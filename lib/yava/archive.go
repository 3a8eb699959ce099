// Copyright 2026 The YAVA Authors
// SPDX-License-Identifier: Apache-2.0

package yava

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/Nichokas/YAVA/lib/checksum"
	"github.com/Nichokas/YAVA/lib/clock"
	"github.com/Nichokas/YAVA/lib/compress"
	"github.com/Nichokas/YAVA/lib/container"
)

// ArchiveResult describes a container written by [Archiver.Archive].
type ArchiveResult struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`

	// Checksum is the digest stored in the Compressed by line.
	Checksum string `json:"checksum"`

	// Sealed is set when a Sealed by line was written.
	Sealed bool `json:"sealed"`

	// Date is the Compressed Date, UTC at second precision.
	Date time.Time `json:"date"`

	Algorithm      string `json:"algorithm"`
	OriginalSize   int64  `json:"original_size"`
	CompressedSize int64  `json:"compressed_size"`
}

// Archiver turns files into containers.
type Archiver struct {
	clock     clock.Clock
	logger    *slog.Logger
	algorithm compress.Algorithm
	sealer    *checksum.Sealer
}

// NewArchiver returns an Archiver configured by options.
func NewArchiver(options Options) *Archiver {
	options = options.withDefaults()
	return &Archiver{
		clock:     options.Clock,
		logger:    options.Logger,
		algorithm: options.Algorithm,
		sealer:    options.Sealer,
	}
}

// Archive reads source and writes its container next to it, named
// after the source with the extension replaced by "yava". The source
// is not modified. An existing container of that name is replaced.
func (a *Archiver) Archive(source string) (*ArchiveResult, error) {
	if IsContainer(source) {
		return nil, &Error{Kind: KindUsage, Op: "archiving", Path: source,
			Err: fmt.Errorf("file already has the .%s extension", container.Extension)}
	}
	destination := ArchivePath(source)

	payload, err := os.ReadFile(source)
	if err != nil {
		return nil, wrap(KindIO, "reading", source, err)
	}

	encoded, header, err := a.Build(payload, Extension(source))
	if err != nil {
		var yavaErr *Error
		if errors.As(err, &yavaErr) {
			yavaErr.Path = source
		}
		return nil, err
	}

	if err := writeFileAtomic(destination, encoded); err != nil {
		return nil, wrap(KindIO, "writing", destination, err)
	}

	// Build formats the date from a value truncated to the second, so
	// parsing it back cannot fail.
	date, _ := time.Parse(container.DateLayout, header.Date())

	a.logger.Info("container created",
		"source", source,
		"destination", destination,
		"checksum", header.Checksum(),
		"algorithm", a.algorithm.String(),
		"sealed", header.Seal() != "",
	)

	return &ArchiveResult{
		Source:         source,
		Destination:    destination,
		Checksum:       header.Checksum(),
		Sealed:         header.Seal() != "",
		Date:           date,
		Algorithm:      a.algorithm.String(),
		OriginalSize:   int64(len(payload)),
		CompressedSize: int64(len(encoded)),
	}, nil
}

// Build encodes payload as a container in memory. An empty extension
// is stored as "unknown". The returned header is the one inside the
// encoded bytes.
func (a *Archiver) Build(payload []byte, extension string) ([]byte, *container.Header, error) {
	digest := checksum.Digest(payload)
	created := a.clock.Now().UTC().Truncate(time.Second)

	header, err := container.NewHeader(extension, created, digest)
	if err != nil {
		return nil, nil, &Error{Kind: KindUsage, Op: "building header", Err: err}
	}

	if a.sealer != nil {
		mac := a.sealer.Seal(sealParts(header.Extension(), header.Date(), digest, payload)...)
		if err := header.Set(container.FieldSeal, mac); err != nil {
			return nil, nil, &Error{Kind: KindUsage, Op: "sealing", Err: err}
		}
	}

	encoded, err := container.Encode(header, payload, a.algorithm)
	if err != nil {
		return nil, nil, wrap(KindCodec, "encoding", "", err)
	}
	return encoded, header, nil
}
