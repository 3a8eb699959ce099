// Copyright 2026 The YAVA Authors
// SPDX-License-Identifier: Apache-2.0

// Package yava implements the file-level operations on .yava
// containers: archiving a file, extracting and verifying a container,
// and rewriting the stored checksum of an existing container.
//
// Each operation reads its whole input into memory, works on it with
// [container.Encode] and [container.Decode], and writes exactly one
// output file through an atomic temp-file-and-rename. Inputs are never
// modified.
//
// Errors returned by this package are *[Error] values carrying a
// [Kind]. Verification failures additionally wrap an *[IntegrityError]
// with the stored and recomputed checksums:
//
//	result, err := yava.NewExtractor(yava.Options{}).Extract("report.yava")
//	var integrity *yava.IntegrityError
//	if errors.As(err, &integrity) {
//	    fmt.Println(integrity.Stored, integrity.Computed)
//	}
//
// The package never exits the process and never prints; reporting is
// left to the caller.
package yava
