// Copyright 2026 The YAVA Authors
// SPDX-License-Identifier: Apache-2.0

package container

import (
	"bytes"
	"fmt"
	"strings"
	"time"
)

// Recognized header keys.
const (
	FieldExtension = "Original Extension"
	FieldDate      = "Compressed Date"
	FieldChecksum  = "Compressed by"
	FieldSeal      = "Sealed by"
)

// UnknownExtension is stored when the source file has no extension, and
// returned by [Header.Extension] when the field is absent.
const UnknownExtension = "unknown"

// DateLayout is the time layout of the Compressed Date field.
const DateLayout = "2006-01-02 15:04:05 UTC"

// fieldDelimiter separates key from value on a header line.
const fieldDelimiter = ": "

// Field is one header line.
type Field struct {
	Key   string
	Value string

	// bare marks a line that had no delimiter. It is rendered as the
	// key alone so that unrecognized lines survive a rewrite.
	bare bool
}

// Header is the ordered list of header lines.
type Header struct {
	fields []Field
}

// NewHeader builds the three standard lines in their fixed order. An
// empty extension is stored as [UnknownExtension].
func NewHeader(extension string, created time.Time, checksum string) (*Header, error) {
	if extension == "" {
		extension = UnknownExtension
	}

	header := &Header{}
	for _, field := range []Field{
		{Key: FieldExtension, Value: extension},
		{Key: FieldDate, Value: FormatDate(created)},
		{Key: FieldChecksum, Value: checksum},
	} {
		if err := header.Set(field.Key, field.Value); err != nil {
			return nil, err
		}
	}
	return header, nil
}

// FormatDate renders t in UTC with [DateLayout].
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// ParseHeader splits header text into fields. It never fails: blank
// lines are dropped and lines without a delimiter are kept as bare
// fields.
func ParseHeader(text []byte) *Header {
	header := &Header{}
	for _, line := range strings.Split(string(text), "\n") {
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			continue
		}
		key, value, found := strings.Cut(line, fieldDelimiter)
		header.fields = append(header.fields, Field{Key: key, Value: value, bare: !found})
	}
	return header
}

// Get returns the value of the first field named key.
func (h *Header) Get(key string) (string, bool) {
	for _, field := range h.fields {
		if field.Key == key && !field.bare {
			return field.Value, true
		}
	}
	return "", false
}

// Set replaces the value of the first field named key in place, or
// appends a new field. Keys and values that would break the line
// structure are rejected.
func (h *Header) Set(key, value string) error {
	if key == "" || strings.ContainsAny(key, "\r\n") || strings.Contains(key, fieldDelimiter) {
		return fmt.Errorf("invalid header key %q", key)
	}
	if strings.ContainsAny(value, "\r\n") {
		return fmt.Errorf("header %s: value must be a single line", key)
	}

	for index := range h.fields {
		if h.fields[index].Key == key {
			h.fields[index] = Field{Key: key, Value: value}
			return nil
		}
	}
	h.fields = append(h.fields, Field{Key: key, Value: value})
	return nil
}

// Fields returns a copy of the header lines in order.
func (h *Header) Fields() []Field {
	return append([]Field(nil), h.fields...)
}

// Clone returns an independent copy.
func (h *Header) Clone() *Header {
	return &Header{fields: h.Fields()}
}

// Extension returns the Original Extension field, or
// [UnknownExtension] when it is missing or empty.
func (h *Header) Extension() string {
	if value, ok := h.Get(FieldExtension); ok && value != "" {
		return value
	}
	return UnknownExtension
}

// Date returns the Compressed Date field as stored.
func (h *Header) Date() string {
	value, _ := h.Get(FieldDate)
	return value
}

// Checksum returns the Compressed by field as stored.
func (h *Header) Checksum() string {
	value, _ := h.Get(FieldChecksum)
	return value
}

// Seal returns the Sealed by field, empty for unsealed containers.
func (h *Header) Seal() string {
	value, _ := h.Get(FieldSeal)
	return value
}

// Render returns the header lines, each terminated by a newline.
func (h *Header) Render() []byte {
	var buffer bytes.Buffer
	for _, field := range h.fields {
		buffer.WriteString(field.Key)
		if !field.bare {
			buffer.WriteString(fieldDelimiter)
			buffer.WriteString(field.Value)
		}
		buffer.WriteByte('\n')
	}
	return buffer.Bytes()
}
