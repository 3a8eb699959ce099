// Copyright 2026 The YAVA Authors
// SPDX-License-Identifier: Apache-2.0

// Package compress wraps whole byte slices in a self-identifying
// compressed stream and back.
//
// Three algorithms are supported. xz (LZMA2) is the canonical choice
// for .yava files and the default; zstd and LZ4 frames trade ratio for
// speed. Each is run at a fixed mid-range level that is not recorded
// anywhere: [Decompress] identifies the algorithm from the stream's
// magic bytes, so a reader never needs to know how a file was written.
//
// Every failure to decode (empty input, unknown magic, truncated or
// corrupt stream) wraps [ErrCodec].
package compress
