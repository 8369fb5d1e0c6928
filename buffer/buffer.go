// Package buffer implements the mutable text buffer edited by the line
// editor: a byte slice with a cursor position, an optional mark, and the
// splice primitive every higher-level edit operation is built from.
package buffer

import (
	"github.com/rivo/uniseg"
)

// RegionState describes how the region (mark, position) became active.
type RegionState int

const (
	// RegionOff means no region is active.
	RegionOff RegionState = iota
	// RegionShift means the region was activated by a shift-modified motion.
	RegionShift
	// RegionMark means the region was activated by an explicit set-mark.
	RegionMark
)

// Buffer is a mutable byte sequence with a cursor and an optional mark.
// Motion is character (grapheme cluster) aware; the underlying storage is
// addressed in bytes throughout.
type Buffer struct {
	text     []byte
	position int
	mark     int // -1 when unset
}

// New returns an empty Buffer with no mark set.
func New() *Buffer {
	return &Buffer{mark: -1}
}

// NewFromString returns a Buffer seeded with text, cursor at the end.
func NewFromString(s string) *Buffer {
	b := &Buffer{text: []byte(s), mark: -1}
	b.position = len(b.text)
	return b
}

// Text returns the buffer contents as a string.
func (b *Buffer) Text() string { return string(b.text) }

// Bytes returns the buffer contents. The slice must not be mutated by callers.
func (b *Buffer) Bytes() []byte { return b.text }

// Len returns the number of bytes in the buffer.
func (b *Buffer) Len() int { return len(b.text) }

// Position returns the 0-based cursor byte offset.
func (b *Buffer) Position() int { return b.position }

// Mark returns the mark byte offset, or -1 if unset.
func (b *Buffer) Mark() int { return b.mark }

// SetPosition moves the cursor, clamping to [0, Len()].
func (b *Buffer) SetPosition(pos int) {
	b.position = clamp(pos, 0, len(b.text))
}

// SetMark sets the mark to pos, clamped to [0, Len()].
func (b *Buffer) SetMark(pos int) {
	b.mark = clamp(pos, 0, len(b.text))
}

// ClearMark unsets the mark.
func (b *Buffer) ClearMark() { b.mark = -1 }

// HasMark reports whether a mark is currently set.
func (b *Buffer) HasMark() bool { return b.mark >= 0 }

// Region returns the (lo, hi) byte range spanning mark and position, and
// whether a mark is set at all. Callers combine this with the mode's
// region-activeness flag to decide whether the region is live.
func (b *Buffer) Region() (lo, hi int, ok bool) {
	if b.mark < 0 {
		return 0, 0, false
	}
	if b.mark < b.position {
		return b.mark, b.position, true
	}
	return b.position, b.mark, true
}

// Set replaces the buffer contents and puts the cursor at the end, clearing
// the mark. Used to seed a mode's buffer (e.g. entering search).
func (b *Buffer) Set(s string) {
	b.text = []byte(s)
	b.position = len(b.text)
	b.mark = -1
}

// Clear empties the buffer.
func (b *Buffer) Clear() {
	b.text = b.text[:0]
	b.position = 0
	b.mark = -1
}

// Snapshot captures enough state to restore the buffer verbatim (used by
// the undo stack).
type Snapshot struct {
	Text     []byte
	Position int
	Mark     int
}

// Snapshot returns a deep copy of the current buffer state.
func (b *Buffer) Snapshot() Snapshot {
	cp := make([]byte, len(b.text))
	copy(cp, b.text)
	return Snapshot{Text: cp, Position: b.position, Mark: b.mark}
}

// Restore installs a previously captured snapshot.
func (b *Buffer) Restore(s Snapshot) {
	b.text = append(b.text[:0], s.Text...)
	b.position = clamp(s.Position, 0, len(b.text))
	b.mark = s.Mark
	if b.mark >= 0 {
		b.mark = clamp(b.mark, 0, len(b.text))
	}
}

// Equal reports whether two snapshots hold byte-identical state, used to
// verify undo/redo round-trips exactly.
func (s Snapshot) Equal(o Snapshot) bool {
	if s.Position != o.Position || s.Mark != o.Mark || len(s.Text) != len(o.Text) {
		return false
	}
	for i := range s.Text {
		if s.Text[i] != o.Text[i] {
			return false
		}
	}
	return true
}

// EditSplice replaces bytes [lo, hi) with ins and returns the removed
// bytes. It keeps position and mark "with the text":
//
//   - position in [lo, hi) clamps to lo; position >= hi shifts by
//     len(ins) - (hi - lo).
//   - mark behaves the same way, except when mark sits strictly inside
//     the replaced range (or both endpoints equal mark), where rigidMark
//     chooses whether mark clamps to lo (rigid) or to lo+len(ins).
//
// An edit always clears a mark that was already unset; it never invents one.
func (b *Buffer) EditSplice(lo, hi int, ins []byte, rigidMark bool) []byte {
	lo = clamp(lo, 0, len(b.text))
	hi = clamp(hi, lo, len(b.text))

	removed := make([]byte, hi-lo)
	copy(removed, b.text[lo:hi])

	tail := make([]byte, len(b.text)-hi)
	copy(tail, b.text[hi:])

	b.text = append(b.text[:lo], ins...)
	b.text = append(b.text, tail...)

	delta := len(ins) - (hi - lo)

	b.position = adjustPosition(b.position, lo, hi, delta)
	if b.mark >= 0 {
		b.mark = adjustMark(b.mark, lo, hi, delta, len(ins), rigidMark)
	}

	return removed
}

// adjustPosition recomputes the cursor after a splice of [lo, hi) -> ins
// (delta = len(ins)-(hi-lo)): offsets inside the replaced range clamp to
// lo, offsets at or past hi shift by delta.
func adjustPosition(off, lo, hi, delta int) int {
	if off < lo {
		return off
	}
	if off >= hi {
		return off + delta
	}
	return lo
}

// adjustMark is adjustPosition's counterpart for the mark, except that
// when the mark sits strictly inside [lo, hi] with lo < hi, or both
// splice boundaries coincide with the mark (a zero-width insertion right
// at the mark), rigid decides whether the mark clamps to lo or slides to
// lo+len(ins).
func adjustMark(off, lo, hi, delta, insLen int, rigid bool) int {
	if off < lo {
		return off
	}
	if off > hi {
		return off + delta
	}
	if off == hi && hi != lo {
		return off + delta
	}
	if off == lo && lo != hi {
		return lo
	}
	if rigid {
		return lo
	}
	return lo + insLen
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// graphemeBoundaries returns the byte offsets of every grapheme cluster
// boundary within text[from:to], starting with from and ending with to.
func graphemeBoundaries(text []byte, from, to int) []int {
	bounds := []int{from}
	state := -1
	pos := from
	remainder := text[from:to]
	for len(remainder) > 0 {
		cluster, rest, _, newState := uniseg.FirstGraphemeCluster(remainder, state)
		if len(cluster) == 0 {
			break
		}
		pos += len(cluster)
		bounds = append(bounds, pos)
		remainder = rest
		state = newState
	}
	return bounds
}
