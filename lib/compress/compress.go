// Copyright 2026 The YAVA Authors
// SPDX-License-Identifier: Apache-2.0

package compress

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/ulikunitz/xz"
)

// ErrCodec is wrapped by every compression and decompression failure.
var ErrCodec = errors.New("compression codec error")

// Algorithm identifies a compressed stream format.
type Algorithm uint8

const (
	// AlgorithmXZ is an xz container around LZMA2 with an 8 MiB
	// dictionary, the same as `xz -6`. Canonical for .yava files.
	AlgorithmXZ Algorithm = iota + 1

	// AlgorithmZstd is a zstd frame at the library's default level
	// (roughly zstd -3).
	AlgorithmZstd

	// AlgorithmLZ4 is an LZ4 frame at level 5.
	AlgorithmLZ4
)

// Default is the algorithm used when none is configured.
const Default = AlgorithmXZ

// xzDictCap matches the dictionary size of the xz -6 preset.
const xzDictCap = 8 << 20

// Stream magics, used by Detect.
var (
	xzMagic   = []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	lz4Magic  = []byte{0x04, 0x22, 0x4d, 0x18}
)

// String returns the configuration name of the algorithm.
func (a Algorithm) String() string {
	switch a {
	case AlgorithmXZ:
		return "xz"
	case AlgorithmZstd:
		return "zstd"
	case AlgorithmLZ4:
		return "lz4"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(a))
	}
}

// ParseAlgorithm parses a configuration name. The empty string selects
// [Default].
func ParseAlgorithm(name string) (Algorithm, error) {
	switch name {
	case "":
		return Default, nil
	case "xz":
		return AlgorithmXZ, nil
	case "zstd":
		return AlgorithmZstd, nil
	case "lz4":
		return AlgorithmLZ4, nil
	default:
		return 0, fmt.Errorf("unknown compression algorithm %q (want xz, zstd, or lz4)", name)
	}
}

// zstdEncoder and zstdDecoder are shared; both are safe for concurrent
// use and expensive to construct.
var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	// Zero frames are required so that an empty payload still
	// produces a stream Detect can recognize.
	zstdEncoder, err = zstd.NewWriter(nil,
		zstd.WithEncoderLevel(zstd.SpeedDefault),
		zstd.WithZeroFrames(true),
	)
	if err != nil {
		panic("compress: zstd encoder initialization failed: " + err.Error())
	}
	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("compress: zstd decoder initialization failed: " + err.Error())
	}
}

// Compress returns data wrapped in a complete stream of the given
// algorithm. Empty input produces a valid stream that decodes to zero
// bytes.
func Compress(data []byte, algorithm Algorithm) ([]byte, error) {
	var (
		compressed []byte
		err        error
	)
	switch algorithm {
	case AlgorithmXZ:
		compressed, err = compressXZ(data)
	case AlgorithmZstd:
		compressed = zstdEncoder.EncodeAll(data, nil)
	case AlgorithmLZ4:
		compressed, err = compressLZ4(data)
	default:
		return nil, fmt.Errorf("%w: unsupported algorithm %s", ErrCodec, algorithm)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s compress: %w", ErrCodec, algorithm, err)
	}
	return compressed, nil
}

// Detect identifies the algorithm of a compressed stream from its
// leading magic bytes.
func Detect(data []byte) (Algorithm, error) {
	switch {
	case len(data) == 0:
		return 0, fmt.Errorf("%w: empty input", ErrCodec)
	case bytes.HasPrefix(data, xzMagic):
		return AlgorithmXZ, nil
	case bytes.HasPrefix(data, zstdMagic):
		return AlgorithmZstd, nil
	case bytes.HasPrefix(data, lz4Magic):
		return AlgorithmLZ4, nil
	default:
		return 0, fmt.Errorf("%w: not a recognized compressed stream", ErrCodec)
	}
}

// Decompress detects the stream algorithm and returns the decoded
// bytes together with the algorithm that was found.
func Decompress(data []byte) ([]byte, Algorithm, error) {
	algorithm, err := Detect(data)
	if err != nil {
		return nil, 0, err
	}

	var decompressed []byte
	switch algorithm {
	case AlgorithmXZ:
		decompressed, err = decompressXZ(data)
	case AlgorithmZstd:
		decompressed, err = zstdDecoder.DecodeAll(data, nil)
	case AlgorithmLZ4:
		decompressed, err = io.ReadAll(lz4.NewReader(bytes.NewReader(data)))
	}
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %s decompress: %w", ErrCodec, algorithm, err)
	}
	return decompressed, algorithm, nil
}

func compressXZ(data []byte) ([]byte, error) {
	var buffer bytes.Buffer
	writer, err := xz.WriterConfig{DictCap: xzDictCap}.NewWriter(&buffer)
	if err != nil {
		return nil, fmt.Errorf("creating writer: %w", err)
	}
	if _, err := writer.Write(data); err != nil {
		writer.Close()
		return nil, fmt.Errorf("writing data: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("finishing stream: %w", err)
	}
	return buffer.Bytes(), nil
}

func decompressXZ(data []byte) ([]byte, error) {
	reader, err := xz.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return io.ReadAll(reader)
}

func compressLZ4(data []byte) ([]byte, error) {
	var buffer bytes.Buffer
	writer := lz4.NewWriter(&buffer)
	if err := writer.Apply(lz4.CompressionLevelOption(lz4.Level5)); err != nil {
		return nil, fmt.Errorf("configuring writer: %w", err)
	}
	if _, err := writer.Write(data); err != nil {
		writer.Close()
		return nil, fmt.Errorf("writing data: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("finishing frame: %w", err)
	}
	return buffer.Bytes(), nil
}
