// Copyright 2026 The YAVA Authors
// SPDX-License-Identifier: Apache-2.0

// Package secret holds seal key material in memory outside the Go heap.
//
// A [Buffer] is backed by an anonymous mmap region that is locked
// against swap (mlock) and excluded from core dumps (MADV_DONTDUMP).
// Close zeroes, unlocks and unmaps the region. YAVA keeps two kinds of
// secret in these buffers: the raw bytes read from a seal key file and
// the 32-byte MAC key derived from them.
//
// Depends on golang.org/x/sys/unix. No YAVA-internal dependencies.
package secret
