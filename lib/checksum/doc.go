// Copyright 2026 The YAVA Authors
// SPDX-License-Identifier: Apache-2.0

// Package checksum computes the content digests stored in YAVA
// containers.
//
// The digest is lowercase hex SHA-256 over the raw payload bytes. It is
// computed once when a container is written and again when it is read
// back, and the two call sites must agree byte for byte; [Digest] is
// the only function either side uses.
//
// A plain digest detects accidental corruption but not tampering:
// anyone who can rewrite a container can also recompute the digest.
// [Sealer] is the opt-in answer. It computes a keyed BLAKE3 MAC over
// the header fields and payload using a key that is never stored in
// the container, so a forged header is detectable by anyone holding
// the key.
package checksum
