// Copyright 2026 The YAVA Authors
// SPDX-License-Identifier: Apache-2.0

package yava

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Nichokas/YAVA/lib/container"
)

// modifiedSuffix is appended to the stem of a rewritten container.
const modifiedSuffix = "_modified"

// splitName divides the base name of path into stem and extension at
// the last dot. A name whose only dot is the leading one, like
// ".bashrc", has no extension.
func splitName(path string) (stem, extension string) {
	base := filepath.Base(path)
	index := strings.LastIndexByte(base, '.')
	if index <= 0 {
		return base, ""
	}
	return base[:index], base[index+1:]
}

// Extension returns the extension of path without the dot, or "" when
// it has none.
func Extension(path string) string {
	_, extension := splitName(path)
	return extension
}

// IsContainer reports whether path names a .yava file. The match
// ignores case so that REPORT.YAVA on a case-insensitive filesystem is
// never archived onto itself.
func IsContainer(path string) bool {
	return strings.EqualFold(Extension(path), container.Extension)
}

// ArchivePath returns where [Archiver.Archive] writes the container
// for source: the same directory, with the extension replaced by
// "yava".
func ArchivePath(source string) string {
	stem, _ := splitName(source)
	return filepath.Join(filepath.Dir(source), stem+"."+container.Extension)
}

// RestorePath returns where [Extractor.Extract] writes the payload of
// containerPath: the container stem plus the stored extension, in the
// same directory. Extensions that would leave the directory, could not
// be a file name, or would land on the container itself are rejected.
func RestorePath(containerPath, extension string) (string, error) {
	if extension == "" ||
		strings.ContainsAny(extension, `/\`) ||
		strings.ContainsRune(extension, 0) {
		return "", fmt.Errorf("%w: unusable stored extension %q", container.ErrFormat, extension)
	}
	if strings.EqualFold(extension, container.Extension) {
		return "", fmt.Errorf("%w: stored extension %q would overwrite the container", container.ErrFormat, extension)
	}
	stem, _ := splitName(containerPath)
	restored := filepath.Join(filepath.Dir(containerPath), stem+"."+extension)
	// A container not named .yava can still name its own extension.
	if strings.EqualFold(restored, filepath.Clean(containerPath)) {
		return "", fmt.Errorf("%w: restored file would overwrite the container", container.ErrFormat)
	}
	return restored, nil
}

// RewritePath returns where [Rewriter.Rewrite] writes the modified
// copy of containerPath.
func RewritePath(containerPath string) string {
	stem, _ := splitName(containerPath)
	return filepath.Join(filepath.Dir(containerPath), stem+modifiedSuffix+"."+container.Extension)
}
