// Copyright 2026 The YAVA Authors
// SPDX-License-Identifier: Apache-2.0

package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// Size is the digest length in bytes.
const Size = sha256.Size

// HexLength is the length of a formatted digest.
const HexLength = 2 * Size

// shortLength is the prefix length used when a digest is shown to a
// person rather than compared.
const shortLength = 8

// Digest returns the lowercase hex SHA-256 of data.
func Digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// ParseDigest decodes a 64-character hex digest.
func ParseDigest(hexString string) ([Size]byte, error) {
	var digest [Size]byte
	decoded, err := hex.DecodeString(hexString)
	if err != nil {
		return digest, fmt.Errorf("parsing digest: %w", err)
	}
	if len(decoded) != Size {
		return digest, fmt.Errorf("digest is %d bytes, want %d", len(decoded), Size)
	}
	copy(digest[:], decoded)
	return digest, nil
}

// IsCanonical reports whether value has the exact shape [Digest]
// produces: HexLength lowercase hex characters. Stored checksums that
// fail this were written by hand or by the header rewriter.
func IsCanonical(value string) bool {
	if _, err := ParseDigest(value); err != nil {
		return false
	}
	return strings.ToLower(value) == value
}

// Equal compares a stored checksum against a recomputed one. The
// comparison is exact and case-sensitive: an uppercase rendering of the
// right digest is a mismatch.
func Equal(stored, computed string) bool {
	return stored == computed
}

// Short returns the display prefix of a digest.
func Short(digest string) string {
	if len(digest) <= shortLength {
		return digest
	}
	return digest[:shortLength]
}
