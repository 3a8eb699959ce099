// Copyright 2026 The YAVA Authors
// SPDX-License-Identifier: Apache-2.0

// Package container owns the byte layout of .yava files.
//
// A container is one compressed stream whose decoded content is a
// plaintext header, a fixed separator line, and the payload verbatim:
//
//	Original Extension: pdf
//	Compressed Date: 2026-03-14 09:26:53 UTC
//	Compressed by: 9f86d081884c7d659a2feaa0c55ad015a3bf4f1b2b0b822cd15d6c15b0f00a08
//	---BEGIN COMPRESSED DATA---
//	<payload bytes until end of stream>
//
// There is no length prefix; the payload ends where the stream ends.
// The separator must occur exactly once in the decoded content, which
// means a payload that itself contains the separator line cannot be
// stored. [Encode] refuses such payloads and [Decode] rejects any
// stream with zero or several separators, both with [ErrFormat].
//
// Header parsing is lenient: unknown lines are kept in order, and
// missing fields read as defaults ([UnknownExtension] for the extension,
// the empty string otherwise). Only the separator count is fatal.
package container
