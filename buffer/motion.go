package buffer

import (
	"bytes"

	"github.com/rivo/uniseg"
)

// BeginOfLine returns the index of the newline at or before pos, or 0 if
// none exists. Note this returns the newline's own index, not the first
// byte of line content — callers that need the content start use
// LineContentStart.
func (b *Buffer) BeginOfLine(pos int) int {
	pos = clamp(pos, 0, len(b.text))
	if i := bytes.LastIndexByte(b.text[:pos], '\n'); i >= 0 {
		return i
	}
	return 0
}

// EndOfLine returns the index of the first newline at or after pos, or
// Len() if none exists.
func (b *Buffer) EndOfLine(pos int) int {
	pos = clamp(pos, 0, len(b.text))
	if i := bytes.IndexByte(b.text[pos:], '\n'); i >= 0 {
		return pos + i
	}
	return len(b.text)
}

// LineContentStart returns the byte offset of the first character of the
// line containing pos (BeginOfLine adjusted past the newline itself, or 0
// when BeginOfLine fell back to the start of the buffer).
func (b *Buffer) LineContentStart(pos int) int {
	i := b.BeginOfLine(pos)
	if i == 0 {
		if pos <= 0 || len(b.text) == 0 || b.text[0] != '\n' {
			return 0
		}
	}
	if i < len(b.text) && b.text[i] == '\n' {
		return i + 1
	}
	return i
}

// CharLeft returns the byte offset of the start of the character
// (grapheme cluster) preceding pos, not crossing a preceding newline.
func (b *Buffer) CharLeft(pos int) int {
	if pos <= 0 {
		return 0
	}
	lineStart := b.LineContentStart(pos)
	if pos <= lineStart {
		// at start of a line body; step onto the newline itself so callers
		// can distinguish "start of buffer" from "start of a wrapped line"
		if lineStart > 0 {
			return lineStart - 1
		}
		return 0
	}
	bounds := graphemeBoundaries(b.text, lineStart, len(b.text))
	prev := lineStart
	for _, at := range bounds {
		if at >= pos {
			break
		}
		prev = at
	}
	return prev
}

// CharRight returns the byte offset just past the character (grapheme
// cluster) starting at pos.
func (b *Buffer) CharRight(pos int) int {
	if pos >= len(b.text) {
		return len(b.text)
	}
	cluster, _, _, _ := uniseg.FirstGraphemeCluster(b.text[pos:], -1)
	if len(cluster) == 0 {
		return pos + 1
	}
	return pos + len(cluster)
}

// MoveLeft moves the cursor to CharLeft(position).
func (b *Buffer) MoveLeft() { b.position = b.CharLeft(b.position) }

// MoveRight moves the cursor to CharRight(position).
func (b *Buffer) MoveRight() { b.position = b.CharRight(b.position) }

// isDelimiter reports whether c is a word-motion delimiter under the
// default delimiter set: whitespace and a fixed punctuation set.
func isDelimiter(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r':
		return true
	case '.', ',', ';', ':', '!', '?', '"', '\'', '(', ')', '[', ']', '{', '}',
		'<', '>', '/', '\\', '|', '+', '-', '*', '=', '&', '%', '#', '@', '~', '`':
		return true
	}
	return false
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// WordLeft moves pos to the previous word boundary. delims classifies a
// byte as a delimiter; passing IsSpace restricts delimiters to whitespace
// only (werase semantics).
func (b *Buffer) WordLeft(pos int, delims func(byte) bool) int {
	i := pos
	for i > 0 && delims(b.text[i-1]) {
		i--
	}
	for i > 0 && !delims(b.text[i-1]) {
		i--
	}
	return i
}

// WordRight moves pos to the next word boundary using the same delimiter
// predicate as WordLeft.
func (b *Buffer) WordRight(pos int, delims func(byte) bool) int {
	i := pos
	for i < len(b.text) && delims(b.text[i]) {
		i++
	}
	for i < len(b.text) && !delims(b.text[i]) {
		i++
	}
	return i
}

// IsSpace is the delimiter predicate used by werase (whitespace only).
func IsSpace(c byte) bool { return isSpace(c) }

// IsWordDelimiter is the default delimiter predicate (whitespace + punctuation).
func IsWordDelimiter(c byte) bool { return isDelimiter(c) }

// LeadingWhitespace returns the count of leading space/tab bytes on the
// line containing pos, measured from LineContentStart(pos).
func (b *Buffer) LeadingWhitespace(pos int) int {
	start := b.LineContentStart(pos)
	n := 0
	for start+n < len(b.text) && (b.text[start+n] == ' ' || b.text[start+n] == '\t') {
		n++
	}
	return n
}

// ColumnInLine returns pos's byte offset relative to the start of its line.
func (b *Buffer) ColumnInLine(pos int) int {
	return pos - b.LineContentStart(pos)
}
