// Copyright 2026 The YAVA Authors
// SPDX-License-Identifier: Apache-2.0

package container

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/Nichokas/YAVA/lib/compress"
)

// Separator divides the header from the payload in the decoded stream.
const Separator = "---BEGIN COMPRESSED DATA---\n"

// Extension is the canonical file suffix of a container, without dot.
const Extension = "yava"

// ErrFormat is wrapped when decoded content does not contain exactly
// one separator.
var ErrFormat = errors.New("malformed container")

var separator = []byte(Separator)

// Container is a decoded .yava file.
type Container struct {
	Header  *Header
	Payload []byte

	// Algorithm is the compression the container was read with.
	// Rewrites keep it so an lz4 container stays lz4.
	Algorithm compress.Algorithm
}

// Frame concatenates header, separator and payload without
// compressing. It fails with [ErrFormat] when the payload contains the
// separator, since the result could not be decoded.
func Frame(header *Header, payload []byte) ([]byte, error) {
	if bytes.Contains(payload, separator) {
		return nil, fmt.Errorf("%w: payload contains the container separator line %q and cannot be archived", ErrFormat, strings.TrimSuffix(Separator, "\n"))
	}

	rendered := header.Render()
	if bytes.Contains(rendered, separator) {
		return nil, fmt.Errorf("%w: header contains the separator line", ErrFormat)
	}

	framed := make([]byte, 0, len(rendered)+len(separator)+len(payload))
	framed = append(framed, rendered...)
	framed = append(framed, separator...)
	framed = append(framed, payload...)
	return framed, nil
}

// Encode frames header and payload and compresses the result with
// algorithm.
func Encode(header *Header, payload []byte, algorithm compress.Algorithm) ([]byte, error) {
	framed, err := Frame(header, payload)
	if err != nil {
		return nil, err
	}
	return compress.Compress(framed, algorithm)
}

// Split divides decoded content at the separator. Exactly one
// occurrence is required.
func Split(content []byte) (header, payload []byte, err error) {
	switch count := bytes.Count(content, separator); count {
	case 1:
	case 0:
		return nil, nil, fmt.Errorf("%w: separator not found", ErrFormat)
	default:
		return nil, nil, fmt.Errorf("%w: separator found %d times, want exactly 1", ErrFormat, count)
	}

	header, payload, _ = bytes.Cut(content, separator)
	return header, payload, nil
}

// Decode decompresses data and parses the container inside. Codec
// failures wrap [compress.ErrCodec]; separator problems wrap
// [ErrFormat].
func Decode(data []byte) (*Container, error) {
	content, algorithm, err := compress.Decompress(data)
	if err != nil {
		return nil, err
	}

	headerText, payload, err := Split(content)
	if err != nil {
		return nil, err
	}

	return &Container{
		Header:    ParseHeader(headerText),
		Payload:   payload,
		Algorithm: algorithm,
	}, nil
}
