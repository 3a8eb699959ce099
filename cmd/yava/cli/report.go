// Copyright 2026 The YAVA Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/muesli/termenv"

	"github.com/Nichokas/YAVA/lib/checksum"
	"github.com/Nichokas/YAVA/lib/container"
	"github.com/Nichokas/YAVA/lib/yava"
)

// ANSI color indexes used by the reporter.
const (
	colorRed     = "1"
	colorGreen   = "2"
	colorYellow  = "3"
	colorBlue    = "4"
	colorCyan    = "6"
	colorBrBlue  = "12"
	colorBrGreen = "10"
)

// ruleWidth is the width of the horizontal rules around a rewrite
// report.
const ruleWidth = 50

// Reporter prints command results to stdout and failures to stderr.
// Colors follow the terminal profile of each stream, so redirected
// output is plain text.
type Reporter struct {
	out    *termenv.Output
	errOut *termenv.Output
}

// NewReporter returns a Reporter writing to stdout and stderr. Options
// apply to both outputs; tests pass termenv.WithProfile(termenv.Ascii).
func NewReporter(stdout, stderr io.Writer, options ...termenv.OutputOption) *Reporter {
	return &Reporter{
		out:    termenv.NewOutput(stdout, options...),
		errOut: termenv.NewOutput(stderr, options...),
	}
}

// Stdout is the writer results go to, for JSON output.
func (r *Reporter) Stdout() io.Writer {
	return r.out
}

func paint(output *termenv.Output, text, color string) string {
	return output.String(text).Foreground(output.Color(color)).String()
}

// Archived prints the result of an encode.
func (r *Reporter) Archived(result *yava.ArchiveResult, elapsed time.Duration) {
	fmt.Fprintln(r.out, paint(r.out, "✨ Success! ✨", colorGreen))
	fmt.Fprintf(r.out, "Created: %s\n", paint(r.out, result.Destination, colorBlue))
	fmt.Fprintf(r.out, "Checksum: %s\n", paint(r.out, checksum.Short(result.Checksum), colorYellow))
	if result.Sealed {
		fmt.Fprintf(r.out, "Sealed: %s\n", paint(r.out, "yes", colorGreen))
	}
	fmt.Fprintf(r.out, "Time: %s\n", paint(r.out, container.FormatDate(result.Date), colorCyan))
	fmt.Fprintf(r.out, "Size: %s → %s (%s, %s)\n",
		humanize.Bytes(uint64(result.OriginalSize)),
		humanize.Bytes(uint64(result.CompressedSize)),
		result.Algorithm,
		ratio(result.OriginalSize, result.CompressedSize),
	)
	fmt.Fprintf(r.out, "Took: %s\n", elapsed.Round(time.Millisecond))
}

// ratio formats compressed as a percentage of original.
func ratio(original, compressed int64) string {
	if original == 0 {
		return "n/a"
	}
	return fmt.Sprintf("%.1f%%", float64(compressed)*100/float64(original))
}

// Extracted prints the result of a decode. A result that was written
// despite failing verification is reported with a warning on stderr.
func (r *Reporter) Extracted(result *yava.ExtractResult) {
	if !result.Verified {
		fmt.Fprintln(r.errOut, paint(r.errOut, "Warning: integrity check failed; output written because verification is disabled", colorYellow))
		fmt.Fprintf(r.errOut, "Stored checksum:   %s\n", result.StoredChecksum)
		fmt.Fprintf(r.errOut, "Computed checksum: %s\n", result.ComputedChecksum)
	}

	fmt.Fprintln(r.out, paint(r.out, "✨ Success! ✨", colorGreen))
	fmt.Fprintf(r.out, "Restored: %s\n", paint(r.out, result.Destination, colorBlue))

	status := paint(r.out, "verified", colorGreen)
	if !result.Verified {
		status = paint(r.out, "NOT verified", colorRed)
	}
	fmt.Fprintf(r.out, "Checksum: %s (%s)\n", paint(r.out, checksum.Short(result.ComputedChecksum), colorYellow), status)
	if result.SealChecked && result.Verified {
		fmt.Fprintf(r.out, "Seal: %s\n", paint(r.out, "valid", colorGreen))
	}
	fmt.Fprintf(r.out, "Compressed: %s\n", paint(r.out, result.Date, colorCyan))
	fmt.Fprintf(r.out, "Size: %s\n", humanize.Bytes(uint64(result.Size)))
}

// Rewritten prints the result of a checksum rewrite.
func (r *Reporter) Rewritten(result *yava.RewriteResult) {
	rule := paint(r.out, strings.Repeat("═", ruleWidth), colorYellow)

	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, r.out.String("🔧 Hash Modification Complete 🔧").Foreground(r.out.Color(colorBrGreen)).Bold().String())
	fmt.Fprintln(r.out, rule)
	fmt.Fprintf(r.out, "Original file: %s\n", paint(r.out, result.Source, colorBrBlue))
	fmt.Fprintf(r.out, "Modified file: %s\n", paint(r.out, result.Destination, colorBrBlue))
	fmt.Fprintf(r.out, "\nOriginal hash: %s\n", paint(r.out, result.OldChecksum, colorYellow))
	fmt.Fprintf(r.out, "New hash: %s\n", paint(r.out, result.NewChecksum, colorYellow))
	fmt.Fprintln(r.out, rule)
}

// Fail prints err to stderr and returns an [ExitError] with code 1.
// Integrity failures list the stored and computed values first.
func (r *Reporter) Fail(err error) error {
	var integrity *yava.IntegrityError
	if errors.As(err, &integrity) {
		if integrity.Seal {
			fmt.Fprintln(r.errOut, paint(r.errOut, "Integrity check failed: seal mismatch", colorRed))
			if integrity.Stored != "" {
				fmt.Fprintf(r.errOut, "Stored seal: %s\n", integrity.Stored)
			}
		} else {
			fmt.Fprintln(r.errOut, paint(r.errOut, "Integrity check failed: checksum mismatch", colorRed))
			fmt.Fprintf(r.errOut, "Stored checksum:   %s\n", integrity.Stored)
			fmt.Fprintf(r.errOut, "Computed checksum: %s\n", integrity.Computed)
			if !checksum.IsCanonical(integrity.Stored) {
				fmt.Fprintln(r.errOut, "The stored checksum is not a SHA-256 digest; the header was changed after archiving.")
			}
		}
		fmt.Fprintln(r.errOut, "No output was written.")
	}

	fmt.Fprintln(r.errOut, paint(r.errOut, "Error: "+err.Error(), colorRed))
	return &ExitError{Code: 1}
}
