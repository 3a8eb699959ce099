// Copyright 2026 The YAVA Authors
// SPDX-License-Identifier: Apache-2.0

package checksum

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/zeebo/blake3"
	"golang.org/x/crypto/hkdf"

	"github.com/Nichokas/YAVA/lib/secret"
)

// SealKeySize is the size of the derived MAC key. BLAKE3 keyed mode
// requires exactly 32 bytes.
const SealKeySize = 32

// hkdfInfoSeal separates seal keys from anything else the same key
// file might be used for. Changing it invalidates every existing seal.
var hkdfInfoSeal = []byte("yava.container.seal.v1")

// sealDomain is written ahead of the MAC input so that a seal can never
// be confused with a BLAKE3 keyed hash computed for another purpose
// under the same key.
var sealDomain = []byte("yava.seal")

// Sealer computes and verifies keyed MACs over container contents. The
// derived key lives in a [secret.Buffer]; call Close when done.
type Sealer struct {
	key *secret.Buffer
}

// NewSealer derives a MAC key from material with HKDF-SHA256. The
// material is borrowed and not modified.
func NewSealer(material []byte) (*Sealer, error) {
	if len(material) == 0 {
		return nil, fmt.Errorf("seal key material is empty")
	}

	reader := hkdf.New(sha256.New, material, nil, hkdfInfoSeal)
	derived := make([]byte, SealKeySize)
	if _, err := io.ReadFull(reader, derived); err != nil {
		secret.Zero(derived)
		return nil, fmt.Errorf("deriving seal key: %w", err)
	}

	key, err := secret.NewFromBytes(derived)
	if err != nil {
		return nil, fmt.Errorf("protecting seal key: %w", err)
	}
	return &Sealer{key: key}, nil
}

// LoadSealer reads key material from path and derives a Sealer from it.
// The raw material is released before returning.
func LoadSealer(path string) (*Sealer, error) {
	material, err := secret.ReadFile(path)
	if err != nil {
		return nil, err
	}
	defer material.Close()

	return NewSealer(material.Bytes())
}

// Close releases the derived key.
func (s *Sealer) Close() error {
	if s == nil || s.key == nil {
		return nil
	}
	return s.key.Close()
}

// Seal returns the hex MAC over parts. Each part is length-prefixed so
// that moving bytes between adjacent parts changes the result.
func (s *Sealer) Seal(parts ...[]byte) string {
	hasher, err := blake3.NewKeyed(s.key.Bytes())
	if err != nil {
		// Only returned for a key of the wrong length, which
		// SealKeySize rules out.
		panic("checksum: BLAKE3 keyed hash initialization failed: " + err.Error())
	}

	hasher.Write(sealDomain)
	var length [8]byte
	for _, part := range parts {
		binary.BigEndian.PutUint64(length[:], uint64(len(part)))
		hasher.Write(length[:])
		hasher.Write(part)
	}
	return hex.EncodeToString(hasher.Sum(nil))
}

// Verify reports whether mac is the seal of parts. The comparison is
// constant time.
func (s *Sealer) Verify(mac string, parts ...[]byte) bool {
	expected := s.Seal(parts...)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(mac)) == 1
}
