// Copyright 2026 The YAVA Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable time source.
//
// Container headers carry the moment of creation and the command line
// reports elapsed time. Both read the clock through this interface so
// tests can pin the date that lands in a header:
//
//	c := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
//	archiver := yava.NewArchiver(yava.Options{Clock: c})
//	c.Advance(5 * time.Second)
package clock
