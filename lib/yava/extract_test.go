// Copyright 2026 The YAVA Authors
// SPDX-License-Identifier: Apache-2.0

package yava

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Nichokas/YAVA/lib/checksum"
	"github.com/Nichokas/YAVA/lib/compress"
	"github.com/Nichokas/YAVA/lib/container"
)

// emptyDigest is the SHA-256 of zero bytes.
const emptyDigest = "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"

// archiveTestFile writes content to dir/name, archives it, removes the
// source, and returns the container path.
func archiveTestFile(t *testing.T, options Options, dir, name string, content []byte) string {
	t.Helper()
	source := writeTestFile(t, dir, name, content)
	result, err := NewArchiver(options).Archive(source)
	if err != nil {
		t.Fatalf("Archive: %v", err)
	}
	if err := os.Remove(source); err != nil {
		t.Fatalf("removing source: %v", err)
	}
	return result.Destination
}

func TestExtract_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	containerPath := archiveTestFile(t, testOptions(), dir, "empty.txt", nil)

	result, err := NewExtractor(testOptions()).Extract(containerPath)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	if result.StoredChecksum != emptyDigest || result.ComputedChecksum != emptyDigest {
		t.Errorf("checksums = %q / %q, want both %q", result.StoredChecksum, result.ComputedChecksum, emptyDigest)
	}
	if !result.Verified {
		t.Error("Verified = false for an intact container")
	}
	if result.Destination != filepath.Join(dir, "empty.txt") {
		t.Errorf("Destination = %q", result.Destination)
	}
	if restored := readTestFile(t, result.Destination); len(restored) != 0 {
		t.Errorf("restored %d bytes, want 0", len(restored))
	}
}

func TestExtract_ReportRoundTrip(t *testing.T) {
	dir := t.TempDir()
	payload := make([]byte, 64*1024)
	for i := range payload {
		payload[i] = byte(i * 7 % 251)
	}
	containerPath := archiveTestFile(t, testOptions(), dir, "report.pdf", payload)
	if filepath.Base(containerPath) != "report.yava" {
		t.Fatalf("container = %q, want report.yava", containerPath)
	}

	result, err := NewExtractor(testOptions()).Extract(containerPath)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	if result.Destination != filepath.Join(dir, "report.pdf") {
		t.Errorf("Destination = %q, want report.pdf", result.Destination)
	}
	if !bytes.Equal(readTestFile(t, result.Destination), payload) {
		t.Error("restored bytes differ from the original")
	}
	if result.Extension != "pdf" || result.Date != testDate || result.Algorithm != "xz" {
		t.Errorf("result = %+v", result)
	}
	if result.Size != int64(len(payload)) {
		t.Errorf("Size = %d, want %d", result.Size, len(payload))
	}
	// The container itself is left in place.
	if _, err := os.Stat(containerPath); err != nil {
		t.Errorf("container missing after extraction: %v", err)
	}
}

func TestExtract_RoundTripExtensions(t *testing.T) {
	for _, name := range []string{"a.txt", "archive.tar.gz", "README", ".profile", "UPPER.JSON"} {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			payload := []byte("content of " + name)
			containerPath := archiveTestFile(t, testOptions(), dir, name, payload)

			result, err := NewExtractor(testOptions()).Extract(containerPath)
			if err != nil {
				t.Fatalf("Extract: %v", err)
			}
			if !bytes.Equal(readTestFile(t, result.Destination), payload) {
				t.Error("payload differs")
			}
			wantExtension := Extension(name)
			if wantExtension == "" {
				wantExtension = container.UnknownExtension
			}
			if result.Extension != wantExtension {
				t.Errorf("Extension = %q, want %q", result.Extension, wantExtension)
			}
		})
	}
}

func TestExtract_OverwritesExistingOutput(t *testing.T) {
	dir := t.TempDir()
	containerPath := archiveTestFile(t, testOptions(), dir, "note.txt", []byte("fresh"))
	writeTestFile(t, dir, "note.txt", []byte("old contents"))

	if _, err := NewExtractor(testOptions()).Extract(containerPath); err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if got := string(readTestFile(t, filepath.Join(dir, "note.txt"))); got != "fresh" {
		t.Errorf("note.txt = %q, want %q", got, "fresh")
	}
}

// tamperedContainer writes a container whose stored checksum is wrong.
func tamperedContainer(t *testing.T, dir string) (path string, payload []byte) {
	t.Helper()
	payload = []byte("genuine payload")
	header, err := container.NewHeader("txt", testTime, "deadbeef")
	if err != nil {
		t.Fatalf("NewHeader: %v", err)
	}
	encoded, err := container.Encode(header, payload, compress.AlgorithmXZ)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	return writeTestFile(t, dir, "tampered.yava", encoded), payload
}

func TestExtract_StrictMismatch(t *testing.T) {
	dir := t.TempDir()
	containerPath, payload := tamperedContainer(t, dir)

	result, err := NewExtractor(testOptions()).Extract(containerPath)
	if err == nil {
		t.Fatalf("Extract succeeded with result %+v, want integrity failure", result)
	}
	if KindOf(err) != KindIntegrity {
		t.Errorf("kind = %s, want integrity", KindOf(err))
	}

	var integrity *IntegrityError
	if !errors.As(err, &integrity) {
		t.Fatalf("error %v does not wrap *IntegrityError", err)
	}
	if integrity.Stored != "deadbeef" {
		t.Errorf("Stored = %q, want deadbeef", integrity.Stored)
	}
	if integrity.Computed != checksum.Digest(payload) {
		t.Errorf("Computed = %q, want digest of payload", integrity.Computed)
	}
	if integrity.Seal {
		t.Error("Seal = true for a checksum failure")
	}
	assertNotExist(t, filepath.Join(dir, "tampered.txt"))
}

func TestExtract_SkipPolicyWritesOutput(t *testing.T) {
	dir := t.TempDir()
	containerPath, payload := tamperedContainer(t, dir)

	options := testOptions()
	options.Verify = VerifySkip
	result, err := NewExtractor(options).Extract(containerPath)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if result.Verified {
		t.Error("Verified = true for a mismatched container")
	}
	if result.StoredChecksum != "deadbeef" || result.ComputedChecksum != checksum.Digest(payload) {
		t.Errorf("checksums = %q / %q", result.StoredChecksum, result.ComputedChecksum)
	}
	if !bytes.Equal(readTestFile(t, filepath.Join(dir, "tampered.txt")), payload) {
		t.Error("payload not written under skip policy")
	}
}

func TestExtract_CaseSensitiveChecksum(t *testing.T) {
	dir := t.TempDir()
	payload := []byte("case matters")
	header, err := container.NewHeader("txt", testTime, bytesToUpper(checksum.Digest(payload)))
	if err != nil {
		t.Fatalf("NewHeader: %v", err)
	}
	encoded, err := container.Encode(header, payload, compress.AlgorithmXZ)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	containerPath := writeTestFile(t, dir, "upper.yava", encoded)

	if _, err := NewExtractor(testOptions()).Extract(containerPath); KindOf(err) != KindIntegrity {
		t.Errorf("error = %v, want integrity failure for an uppercase checksum", err)
	}
}

func bytesToUpper(s string) string {
	return string(bytes.ToUpper([]byte(s)))
}

func TestExtract_FormatRejection(t *testing.T) {
	tests := map[string]string{
		"no separator":   "Original Extension: txt\nCompressed by: x\nbody",
		"two separators": "Original Extension: txt\n" + container.Separator + "a" + container.Separator + "b",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			containerPath := writeRawContainer(t, dir, "bad.yava", content)

			_, err := NewExtractor(testOptions()).Extract(containerPath)
			if KindOf(err) != KindFormat {
				t.Errorf("error = %v, kind %s, want format", err, KindOf(err))
			}
			if !errors.Is(err, container.ErrFormat) {
				t.Error("error does not wrap container.ErrFormat")
			}
			assertNotExist(t, filepath.Join(dir, "bad.txt"))
		})
	}
}

func TestExtract_UnsafeExtension(t *testing.T) {
	dir := t.TempDir()
	content := "Original Extension: ../escape\nCompressed by: " + emptyDigest + "\n" + container.Separator
	containerPath := writeRawContainer(t, dir, "evil.yava", content)

	_, err := NewExtractor(testOptions()).Extract(containerPath)
	if KindOf(err) != KindFormat {
		t.Errorf("error = %v, kind %s, want format", err, KindOf(err))
	}
	assertNotExist(t, filepath.Join(filepath.Dir(dir), "escape"))
}

func TestExtract_RefusesToOverwriteContainer(t *testing.T) {
	tests := []struct {
		name      string
		file      string
		extension string
	}{
		{"stored yava extension", "nested.yava", "yava"},
		{"stored extension in other case", "upper.yava", "YAVA"},
		{"container named after its payload", "data.bin", "bin"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			encoded, _, err := NewArchiver(testOptions()).Build([]byte("payload"), tt.extension)
			if err != nil {
				t.Fatalf("Build: %v", err)
			}
			containerPath := writeTestFile(t, dir, tt.file, encoded)

			result, err := NewExtractor(testOptions()).Extract(containerPath)
			if KindOf(err) != KindFormat {
				t.Fatalf("Extract = %+v, %v, want format error", result, err)
			}
			if !bytes.Equal(readTestFile(t, containerPath), encoded) {
				t.Error("container was modified")
			}
			if names := listDir(t, dir); len(names) != 1 {
				t.Errorf("directory = %v, want only the container", names)
			}
		})
	}
}

func TestExtract_CodecAndIOErrors(t *testing.T) {
	dir := t.TempDir()

	plain := writeTestFile(t, dir, "plain.yava", []byte("Original Extension: txt\n"+container.Separator))
	if _, err := NewExtractor(testOptions()).Extract(plain); KindOf(err) != KindCodec {
		t.Errorf("uncompressed container: error = %v, kind %s, want codec", err, KindOf(err))
	}

	if _, err := NewExtractor(testOptions()).Extract(filepath.Join(dir, "absent.yava")); KindOf(err) != KindIO {
		t.Errorf("missing container: error = %v, kind %s, want io", err, KindOf(err))
	}
}

func TestExtract_SealedRoundTrip(t *testing.T) {
	dir := t.TempDir()
	options := testOptions()
	options.Sealer = newTestSealer(t, "shared key")
	containerPath := archiveTestFile(t, options, dir, "doc.txt", []byte("sealed content"))

	result, err := NewExtractor(options).Extract(containerPath)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if !result.Verified || !result.SealChecked {
		t.Errorf("Verified = %v, SealChecked = %v, want both true", result.Verified, result.SealChecked)
	}
}

func TestExtract_SealDetectsRecomputedChecksum(t *testing.T) {
	dir := t.TempDir()
	sealed := testOptions()
	sealed.Sealer = newTestSealer(t, "shared key")
	containerPath := archiveTestFile(t, sealed, dir, "doc.txt", []byte("original content"))

	// Swap the payload and store its correct checksum, keeping the seal.
	decoded := decodeTestFile(t, containerPath)
	forged := []byte("forged content")
	if err := decoded.Header.Set(container.FieldChecksum, checksum.Digest(forged)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	encoded, err := container.Encode(decoded.Header, forged, decoded.Algorithm)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if err := os.WriteFile(containerPath, encoded, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	// Without the key the forgery passes the plain checksum.
	unsealed, err := NewExtractor(testOptions()).Extract(containerPath)
	if err != nil {
		t.Fatalf("Extract without key: %v", err)
	}
	if unsealed.SealChecked {
		t.Error("SealChecked = true without a key")
	}
	if err := os.Remove(unsealed.Destination); err != nil {
		t.Fatalf("Remove: %v", err)
	}

	_, err = NewExtractor(sealed).Extract(containerPath)
	var integrity *IntegrityError
	if !errors.As(err, &integrity) || !integrity.Seal {
		t.Fatalf("error = %v, want seal failure", err)
	}
	if integrity.Computed != "" {
		t.Error("seal failure should not disclose the expected seal")
	}
	assertNotExist(t, filepath.Join(dir, "doc.txt"))
}

func TestExtract_SealRequiredWhenKeyConfigured(t *testing.T) {
	dir := t.TempDir()
	containerPath := archiveTestFile(t, testOptions(), dir, "doc.txt", []byte("never sealed"))

	options := testOptions()
	options.Sealer = newTestSealer(t, "shared key")
	_, err := NewExtractor(options).Extract(containerPath)

	var integrity *IntegrityError
	if !errors.As(err, &integrity) || !integrity.Seal || integrity.Stored != "" {
		t.Fatalf("error = %v, want missing-seal failure", err)
	}
}

func TestExtract_WrongSealKey(t *testing.T) {
	dir := t.TempDir()
	writer := testOptions()
	writer.Sealer = newTestSealer(t, "writer key")
	containerPath := archiveTestFile(t, writer, dir, "doc.txt", []byte("content"))

	reader := testOptions()
	reader.Sealer = newTestSealer(t, "reader key")
	if _, err := NewExtractor(reader).Extract(containerPath); KindOf(err) != KindIntegrity {
		t.Errorf("error = %v, want integrity failure", err)
	}

	reader.Verify = VerifySkip
	result, err := NewExtractor(reader).Extract(containerPath)
	if err != nil {
		t.Fatalf("Extract with skip: %v", err)
	}
	if result.Verified {
		t.Error("Verified = true with the wrong key")
	}
}
