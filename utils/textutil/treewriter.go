// Package textutil has small helpers for producing indented text.
package textutil

import (
	"fmt"
	"strconv"
	"strings"
)

// TreeWriter accumulates lines of text indented by nesting depth.
type TreeWriter struct {
	w      *strings.Builder
	indent string
}

// NewTreeWriter returns writer indenting every level by two spaces.
func NewTreeWriter() *TreeWriter {
	return NewTreeWriterIndent("  ")
}

// NewTreeWriterIndent returns writer indenting every level by indent.
func NewTreeWriterIndent(indent string) *TreeWriter {
	return &TreeWriter{
		w:      &strings.Builder{},
		indent: indent,
	}
}

func (tw TreeWriter) String() string {
	return tw.w.String()
}

func (tw TreeWriter) Line(depth int, format string, args ...any) {
	tw.pad(depth)
	fmt.Fprintf(tw.w, format, args...)
	tw.w.WriteByte('\n')
}

// Raw writes text as is on its own line, no formatting verbs are processed.
func (tw TreeWriter) Raw(depth int, text string) {
	tw.pad(depth)
	tw.w.WriteString(text)
	tw.w.WriteByte('\n')
}

// Empty writes an empty line.
func (tw TreeWriter) Empty() {
	tw.w.WriteByte('\n')
}

func (tw TreeWriter) TextBlock(depth int, label, value string) {
	tw.pad(depth)
	tw.w.WriteString(label)
	tw.w.WriteString(": ")
	tw.w.WriteString(encodeText(value))
	tw.w.WriteByte('\n')
}

func (tw TreeWriter) pad(depth int) {
	if depth <= 0 {
		return
	}
	tw.w.WriteString(strings.Repeat(tw.indent, depth))
}

func encodeText(raw string) string {
	if raw == "" {
		return raw
	}
	return strconv.Quote(raw)
}
