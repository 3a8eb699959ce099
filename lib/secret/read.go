// Copyright 2026 The YAVA Authors
// SPDX-License-Identifier: Apache-2.0

package secret

import (
	"bytes"
	"fmt"
	"os"
)

// ReadFile loads a key file into a Buffer. Surrounding whitespace is
// dropped so that keys written with a trailing newline by editors or
// `openssl rand -hex 32 > key` behave the same as keys without one.
// The heap copy read from disk is zeroed before returning.
func ReadFile(path string) (*Buffer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading key file %s: %w", path, err)
	}
	defer Zero(data)

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("key file %s is empty", path)
	}
	return NewFromBytes(trimmed)
}
