package render

import (
	"strings"
	"unicode/utf8"
)

// Terminal is the slice of the terminal abstraction the renderer needs:
// raw cursor motion and buffered output. term.Terminal satisfies it;
// keeping the dependency this small lets tests use an in-memory fake
// instead of a real tty.
type Terminal interface {
	Width() int
	Height() int
	Write(p []byte)
	WriteString(s string)
	MoveUp(n int)
	MoveDown(n int)
	MoveCol(c int)
	ClearLine()
}

// InputAreaState is the extent of the previously painted input area: how
// many rows it occupied, which row (and column) relative to the top of
// the area the cursor was on. The renderer needs its own prior extent to
// erase before repainting, since it never scrolls or assumes anything
// about off-screen content.
type InputAreaState struct {
	NumRows int
	CursRow int
	CursCol int
}

// Region describes the byte range to render in reverse video, and whether
// it is active at all (the mode's region-activeness flag combined with
// buffer.Buffer.Region()).
type Region struct {
	Active bool
	Lo, Hi int
}

// Paint erases the previously painted input area and paints prompt+text in
// its place, returning the new InputAreaState. text is the buffer's raw
// bytes; position is the cursor's byte offset into text. hint, if
// non-empty, is painted dim immediately after the buffer content (only
// meaningful when position == len(text)); an explicit clearHint flag
// forces a clear-to-end-of-line pass first, mirroring the buffer's
// empty-string hint sentinel.
func Paint(t Terminal, prev InputAreaState, prompt string, text []byte, position int, region Region, hint string, clearHint bool, tabwidth int) InputAreaState {
	eraseArea(t, prev)

	width := t.Width()
	height := t.Height()
	if width <= 0 {
		width = 80
	}

	// A one-row terminal has nowhere to put a second line: painting the
	// whole (possibly multi-line) buffer and only pretending afterward
	// that one row was used would send real "\r\n" bytes and scroll the
	// terminal. Instead paint only the current line, dropping its
	// trailing newline, and horizontally scroll it if the line itself
	// doesn't fit.
	if height == 1 {
		return paintSingleRow(t, prompt, text, position, region, hint, clearHint, tabwidth, width)
	}

	// Content is built one on-screen row at a time (rows) instead of one
	// flat buffer, so that when the buffer overflows the terminal height
	// below only the rows actually kept get written to the wire — the
	// reported NumRows must always match the bytes sent, or the next
	// paint's eraseArea clears the wrong number of lines.
	var rows []string
	var regionEndOfRow []bool
	var cur strings.Builder
	cur.WriteString(prompt)
	col := StringWidth(prompt, tabwidth)
	row := 0
	cursRow, cursCol := 0, 0

	byteOff := 0
	inRegion := false
	writeByteRegion := func() {
		if !region.Active {
			return
		}
		want := byteOff >= region.Lo && byteOff < region.Hi
		if want != inRegion {
			if want {
				cur.WriteString(ReverseOn)
			} else {
				cur.WriteString(ReverseOff)
			}
			inRegion = want
		}
	}

	// breakRow closes out the row being built and starts the next one. The
	// reverse-video state (if any) carries over onto the next row exactly
	// as a real terminal would carry SGR state across a bare "\r\n" — it's
	// only recorded here so a later truncation can close it explicitly.
	breakRow := func() {
		rows = append(rows, cur.String())
		regionEndOfRow = append(regionEndOfRow, inRegion)
		cur.Reset()
		row++
		col = 0
	}

	s := string(text)
	for _, r := range s {
		if byteOff == position {
			cursRow, cursCol = row, col
		}
		writeByteRegion()
		if r == '\n' {
			byteOff++
			breakRow()
			continue
		}
		w := RuneWidth(r)
		if r == '\t' && tabwidth > 0 {
			w = tabwidth - col%tabwidth
		}
		if col+w > width {
			breakRow()
		}
		cur.WriteRune(r)
		col += w
		byteOff += len(string(r))
	}
	if inRegion {
		cur.WriteString(ReverseOff)
		inRegion = false
	}
	if byteOff == position {
		cursRow, cursCol = row, col
	}

	if clearHint {
		cur.WriteString("\033[K")
	}
	hintWidth := 0
	if hint != "" && position == len(text) {
		cur.WriteString(Style{Dim: true}.SGR())
		cur.WriteString(hint)
		cur.WriteString(Reset)
		hintWidth = StringWidth(hint, tabwidth)
	}
	rows = append(rows, cur.String())
	regionEndOfRow = append(regionEndOfRow, inRegion)

	numRows := row + 1
	visible := numRows - 1

	if numRows > height && height > 0 {
		// Center the cursor row vertically by truncating display after
		// rows/2 rows past the cursor. Lines before the cursor are still
		// built above so the row/cursor math stays the same regardless of
		// terminal height; only the rows within the visible window are
		// actually written below.
		half := height / 2
		v := cursRow + half
		if v > numRows-1 {
			v = numRows - 1
		}
		visible = v
		numRows = visible + 1
	}

	var wire strings.Builder
	for i := 0; i <= visible; i++ {
		if i > 0 {
			wire.WriteString("\r\n")
		}
		wire.WriteString(rows[i])
		if i == visible && regionEndOfRow[i] {
			wire.WriteString(ReverseOff)
		}
	}
	t.WriteString(wire.String())

	// Move from the last written row back up (and over) to the recorded
	// cursor position.
	if visible > cursRow {
		t.MoveUp(visible - cursRow)
	}
	t.MoveCol(cursCol)
	if hintWidth > 0 {
		t.MoveCol(cursCol)
	}

	return InputAreaState{NumRows: numRows, CursRow: cursRow, CursCol: cursCol}
}

// currentLineBounds returns the byte range, within text, of the line
// containing position: from just after the previous newline (or the
// start of text) to just before the next one (or the end of text).
func currentLineBounds(text []byte, position int) (start, end int) {
	start = 0
	for i := position - 1; i >= 0; i-- {
		if text[i] == '\n' {
			start = i + 1
			break
		}
	}
	end = len(text)
	for i := position; i < len(text); i++ {
		if text[i] == '\n' {
			end = i
			break
		}
	}
	return start, end
}

type runeSpan struct {
	byteOff int
	col     int
	width   int
}

// lineSpans walks line rune by rune, recording each one's byte offset and
// display column.
func lineSpans(line []byte, tabwidth int) []runeSpan {
	spans := make([]runeSpan, 0, len(line))
	col := 0
	for i := 0; i < len(line); {
		r, size := utf8.DecodeRune(line[i:])
		w := RuneWidth(r)
		if r == '\t' && tabwidth > 0 {
			w = tabwidth - col%tabwidth
		}
		spans = append(spans, runeSpan{byteOff: i, col: col, width: w})
		col += w
		i += size
	}
	return spans
}

// paintSingleRow renders only the line containing position, scrolling it
// horizontally (rather than wrapping) so the cursor stays visible without
// ever emitting a newline.
func paintSingleRow(t Terminal, prompt string, text []byte, position int, region Region, hint string, clearHint bool, tabwidth, width int) InputAreaState {
	lineStart, lineEnd := currentLineBounds(text, position)
	line := text[lineStart:lineEnd]
	relPos := position - lineStart

	promptWidth := StringWidth(prompt, tabwidth)
	avail := width - promptWidth
	if avail < 1 {
		avail = 1
	}

	spans := lineSpans(line, tabwidth)
	cursCol := 0
	for _, s := range spans {
		if s.byteOff >= relPos {
			break
		}
		cursCol = s.col + s.width
	}

	winStartByte, winStartCol := 0, 0
	if cursCol >= avail {
		wantCol := cursCol - avail + 1
		for _, s := range spans {
			if s.col >= wantCol {
				winStartByte, winStartCol = s.byteOff, s.col
				break
			}
		}
	}

	var out strings.Builder
	out.WriteString(prompt)

	inRegion := false
	byteOff := lineStart + winStartByte
	col := 0
	i := winStartByte
	for i < len(line) {
		r, size := utf8.DecodeRune(line[i:])
		w := RuneWidth(r)
		if r == '\t' && tabwidth > 0 {
			w = tabwidth - (winStartCol+col)%tabwidth
		}
		if col+w > avail {
			break
		}
		if region.Active {
			want := byteOff >= region.Lo && byteOff < region.Hi
			if want != inRegion {
				if want {
					out.WriteString(ReverseOn)
				} else {
					out.WriteString(ReverseOff)
				}
				inRegion = want
			}
		}
		out.WriteRune(r)
		col += w
		i += size
		byteOff += size
	}
	if inRegion {
		out.WriteString(ReverseOff)
	}

	if clearHint {
		out.WriteString("\033[K")
	}
	if hint != "" && position == len(text) && col < avail {
		h := TruncateToWidth(hint, avail-col)
		out.WriteString(Style{Dim: true}.SGR())
		out.WriteString(h)
		out.WriteString(Reset)
	}

	t.WriteString(out.String())
	cursDisplayCol := promptWidth + (cursCol - winStartCol)
	t.MoveCol(cursDisplayCol)

	return InputAreaState{NumRows: 1, CursRow: 0, CursCol: cursDisplayCol}
}

// Erase clears a previously painted input area and returns the zero
// InputAreaState, used when deactivating a mode.
func Erase(t Terminal, prev InputAreaState) InputAreaState {
	eraseArea(t, prev)
	return InputAreaState{}
}

// eraseArea moves the cursor down to the last painted row, then clears
// each row upward to the first painted row. It never scrolls: only
// "up N", "down N", and "clear current line".
func eraseArea(t Terminal, prev InputAreaState) {
	if prev.NumRows <= 0 {
		return
	}
	if down := prev.NumRows - 1 - prev.CursRow; down > 0 {
		t.MoveDown(down)
	}
	for i := 0; i < prev.NumRows; i++ {
		t.ClearLine()
		if i < prev.NumRows-1 {
			t.MoveUp(1)
		}
	}
}
