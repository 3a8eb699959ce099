// Copyright 2026 The YAVA Authors
// SPDX-License-Identifier: Apache-2.0

package yava

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/Nichokas/YAVA/lib/checksum"
	"github.com/Nichokas/YAVA/lib/clock"
	"github.com/Nichokas/YAVA/lib/compress"
	"github.com/Nichokas/YAVA/lib/container"
)

// testTime has a sub-second part so tests observe the truncation.
var testTime = time.Date(2026, time.March, 14, 9, 26, 53, 500_000_000, time.UTC)

const testDate = "2026-03-14 09:26:53 UTC"

func testOptions() Options {
	return Options{Clock: clock.Fake(testTime)}
}

func writeTestFile(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func readTestFile(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return data
}

func decodeTestFile(t *testing.T, path string) *container.Container {
	t.Helper()
	decoded, err := container.Decode(readTestFile(t, path))
	if err != nil {
		t.Fatalf("decoding %s: %v", path, err)
	}
	return decoded
}

// writeRawContainer compresses content as-is, bypassing the container
// encoder's checks.
func writeRawContainer(t *testing.T, dir, name, content string) string {
	t.Helper()
	compressed, err := compress.Compress([]byte(content), compress.AlgorithmXZ)
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	return writeTestFile(t, dir, name, compressed)
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	slices.Sort(names)
	return names
}

func assertNotExist(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("%s should not exist (stat error: %v)", filepath.Base(path), err)
	}
}

func newTestSealer(t *testing.T, material string) *checksum.Sealer {
	t.Helper()
	sealer, err := checksum.NewSealer([]byte(material))
	if err != nil {
		t.Fatalf("NewSealer: %v", err)
	}
	t.Cleanup(func() { sealer.Close() })
	return sealer
}
