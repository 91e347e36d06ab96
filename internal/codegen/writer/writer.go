// Package writer builds generated source text line by line with tab
// indentation and column padding.
package writer

import (
	"fmt"
	"strings"
)

// Writer accumulates generated source
type Writer struct {
	sb          strings.Builder
	indent      string
	depth       int
	atLineStart bool
}

// New creates a writer that indents with the given string
func New(indent string) *Writer {
	return &Writer{
		indent:      indent,
		atLineStart: true,
	}
}

// Indent increases the indentation depth
func (w *Writer) Indent() {
	w.depth++
}

// Dedent decreases the indentation depth
func (w *Writer) Dedent() {
	if w.depth > 0 {
		w.depth--
	}
}

// Depth returns the current indentation depth
func (w *Writer) Depth() int {
	return w.depth
}

// Write appends s, indenting first if s starts a line
func (w *Writer) Write(s string) {
	if s == "" {
		return
	}
	if w.atLineStart {
		w.sb.WriteString(strings.Repeat(w.indent, w.depth))
		w.atLineStart = false
	}
	w.sb.WriteString(s)
}

// Writef is Write with formatting
func (w *Writer) Writef(format string, args ...any) {
	w.Write(fmt.Sprintf(format, args...))
}

// WriteLine appends s and ends the line
func (w *Writer) WriteLine(s string) {
	w.Write(s)
	w.Newline()
}

// WriteLinef is WriteLine with formatting
func (w *Writer) WriteLinef(format string, args ...any) {
	w.Writef(format, args...)
	w.Newline()
}

// WritePadded appends s right-padded with spaces to width columns. Strings
// already at least width long are written unchanged.
func (w *Writer) WritePadded(s string, width int) {
	w.Write(Pad(s, width))
}

// Newline ends the current line
func (w *Writer) Newline() {
	w.sb.WriteByte('\n')
	w.atLineStart = true
}

// BlankLine ends the current line and adds an empty one, never producing
// two blank lines in a row
func (w *Writer) BlankLine() {
	if w.sb.Len() == 0 || strings.HasSuffix(w.sb.String(), "\n\n") {
		return
	}
	if !w.atLineStart {
		w.Newline()
	}
	w.Newline()
}

// WriteBlock writes opener, the indented body, then closer
func (w *Writer) WriteBlock(opener, closer string, body func()) {
	w.WriteLine(opener)
	w.Indent()
	body()
	w.Dedent()
	w.WriteLine(closer)
}

// WriteComment writes a // comment line
func (w *Writer) WriteComment(comment string) {
	w.WriteLinef("// %s", comment)
}

// String returns everything written so far
func (w *Writer) String() string {
	return w.sb.String()
}

// Len returns the number of bytes written so far
func (w *Writer) Len() int {
	return w.sb.Len()
}

// Reset discards all content and indentation
func (w *Writer) Reset() {
	w.sb.Reset()
	w.depth = 0
	w.atLineStart = true
}

// Pad right-pads s with spaces to width
func Pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
