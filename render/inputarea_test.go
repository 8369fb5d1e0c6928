package render

import "testing"

// fakeTerminal records every call in order, standing in for a real tty in
// tests: it never needs raw mode or an fd, just enough to check what a
// Paint/Erase call would have sent.
type fakeTerminal struct {
	width, height int
	out           []byte
	ops           []string
}

func (f *fakeTerminal) Width() int             { return f.width }
func (f *fakeTerminal) Height() int            { return f.height }
func (f *fakeTerminal) Write(p []byte)         { f.out = append(f.out, p...) }
func (f *fakeTerminal) WriteString(s string)   { f.out = append(f.out, s...) }
func (f *fakeTerminal) MoveUp(n int)           { f.ops = append(f.ops, sprintOp("up", n)) }
func (f *fakeTerminal) MoveDown(n int)         { f.ops = append(f.ops, sprintOp("down", n)) }
func (f *fakeTerminal) MoveCol(c int)          { f.ops = append(f.ops, sprintOp("col", c)) }
func (f *fakeTerminal) ClearLine()             { f.ops = append(f.ops, "clear") }

func sprintOp(name string, n int) string {
	if n == 0 {
		return name
	}
	return name + ":" + itoa(n)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

var _ Terminal = (*fakeTerminal)(nil)

func TestPaintSingleLineNoWrap(t *testing.T) {
	tm := &fakeTerminal{width: 80, height: 24}
	state := Paint(tm, InputAreaState{}, "> ", []byte("hello"), 5, Region{}, "", false, 8)
	if state.NumRows != 1 {
		t.Errorf("NumRows = %d, want 1", state.NumRows)
	}
	if state.CursRow != 0 {
		t.Errorf("CursRow = %d, want 0", state.CursRow)
	}
	got := string(tm.out)
	if got != "> hello" {
		t.Errorf("painted %q, want %q", got, "> hello")
	}
}

func TestPaintWrapsAtWidth(t *testing.T) {
	tm := &fakeTerminal{width: 5, height: 24}
	state := Paint(tm, InputAreaState{}, "", []byte("abcdefgh"), 8, Region{}, "", false, 8)
	if state.NumRows != 2 {
		t.Errorf("NumRows = %d, want 2 (8 chars at width 5)", state.NumRows)
	}
}

func TestPaintTracksCursorMidBuffer(t *testing.T) {
	tm := &fakeTerminal{width: 80, height: 24}
	Paint(tm, InputAreaState{}, "> ", []byte("hello world"), 5, Region{}, "", false, 8)
	found := false
	for _, op := range tm.ops {
		if op == "col:7" { // len("> hello") == 7
			found = true
		}
	}
	if !found {
		t.Errorf("expected a MoveCol(7) op, got %v", tm.ops)
	}
}

func TestPaintNewlineResetsColumn(t *testing.T) {
	tm := &fakeTerminal{width: 80, height: 24}
	state := Paint(tm, InputAreaState{}, "", []byte("one\ntwo"), 7, Region{}, "", false, 8)
	if state.NumRows != 2 {
		t.Errorf("NumRows = %d, want 2", state.NumRows)
	}
	if state.CursRow != 1 {
		t.Errorf("CursRow = %d, want 1", state.CursRow)
	}
}

func TestPaintHeightOneCollapsesToOneRow(t *testing.T) {
	tm := &fakeTerminal{width: 80, height: 1}
	state := Paint(tm, InputAreaState{}, "", []byte("one\ntwo\nthree"), 13, Region{}, "", false, 8)
	if state.NumRows != 1 {
		t.Errorf("NumRows = %d, want 1 (height==1 special case)", state.NumRows)
	}
	if state.CursRow != 0 {
		t.Errorf("CursRow = %d, want 0", state.CursRow)
	}
}

func TestPaintHeightOneNeverEmitsNewline(t *testing.T) {
	tm := &fakeTerminal{width: 80, height: 1}
	Paint(tm, InputAreaState{}, "> ", []byte("one\ntwo\nthree"), 13, Region{}, "", false, 8)
	got := string(tm.out)
	if contains(got, "\n") || contains(got, "\r\n") {
		t.Errorf("a one-row terminal must never receive a newline, got %q", got)
	}
}

func TestPaintHeightOnePaintsOnlyCurrentLine(t *testing.T) {
	tm := &fakeTerminal{width: 80, height: 1}
	Paint(tm, InputAreaState{}, "> ", []byte("one\ntwo\nthree"), 5, Region{}, "", false, 8)
	got := string(tm.out)
	if !contains(got, "two") || contains(got, "one") || contains(got, "three") {
		t.Errorf("expected only the cursor's own line (\"two\") painted, got %q", got)
	}
}

func TestPaintHeightOneScrollsLongLineHorizontally(t *testing.T) {
	tm := &fakeTerminal{width: 10, height: 1}
	long := "abcdefghijklmnopqrstuvwxyz"
	state := Paint(tm, InputAreaState{}, "", []byte(long), len(long), Region{}, "", false, 8)
	got := string(tm.out)
	if len(got) > 10 {
		t.Errorf("painted line %q exceeds the 10-column terminal width", got)
	}
	if !contains(got, "z") {
		t.Errorf("expected the window to scroll so the cursor's own column (at the end) stays visible, got %q", got)
	}
	if state.NumRows != 1 {
		t.Errorf("NumRows = %d, want 1", state.NumRows)
	}
}

func TestPaintEmitsHintDimStyleAtEndOfBuffer(t *testing.T) {
	tm := &fakeTerminal{width: 80, height: 24}
	Paint(tm, InputAreaState{}, "", []byte("wor"), 3, Region{}, "ld", false, 8)
	got := string(tm.out)
	if !containsAll(got, "wor", Style{Dim: true}.SGR(), "ld", Reset) {
		t.Errorf("expected dim-styled hint text in output, got %q", got)
	}
}

func TestPaintRegionWrapsReverseVideo(t *testing.T) {
	tm := &fakeTerminal{width: 80, height: 24}
	Paint(tm, InputAreaState{}, "", []byte("hello"), 5, Region{Active: true, Lo: 1, Hi: 3}, "", false, 8)
	got := string(tm.out)
	if !containsAll(got, ReverseOn, ReverseOff) {
		t.Errorf("expected region reverse-video escapes, got %q", got)
	}
}

func TestEraseClearsEveryPaintedRow(t *testing.T) {
	tm := &fakeTerminal{width: 80, height: 24}
	state := Erase(tm, InputAreaState{NumRows: 3, CursRow: 1})
	if state != (InputAreaState{}) {
		t.Errorf("Erase should return the zero state, got %+v", state)
	}
	clears := 0
	for _, op := range tm.ops {
		if op == "clear" {
			clears++
		}
	}
	if clears != 3 {
		t.Errorf("expected 3 ClearLine calls, got %d", clears)
	}
}

func TestEraseNoOpOnEmptyState(t *testing.T) {
	tm := &fakeTerminal{width: 80, height: 24}
	Erase(tm, InputAreaState{})
	if len(tm.ops) != 0 {
		t.Errorf("expected no terminal ops for an empty prior state, got %v", tm.ops)
	}
}

func TestPaintTruncatesWrittenBytesWhenContentExceedsHeight(t *testing.T) {
	tm := &fakeTerminal{width: 80, height: 4}
	text := []byte("0\n1\n2\n3\n4\n5\n6\n7\n8\n9")
	state := Paint(tm, InputAreaState{}, "", text, 0, Region{}, "", false, 8)

	// cursor sits on row 0; height/2 == 2, so rows 0-2 are kept and
	// everything from row 3 on is dropped from both the report and the
	// actual bytes written.
	if state.NumRows != 3 {
		t.Fatalf("NumRows = %d, want 3", state.NumRows)
	}
	got := string(tm.out)
	if !containsAll(got, "0", "1", "2") {
		t.Errorf("expected the visible rows in the written output, got %q", got)
	}
	if contains(got, "5") || contains(got, "8") || contains(got, "9") {
		t.Errorf("rows past the visible window must not be written to the terminal, got %q", got)
	}
	if n := countSubstr(got, "\r\n"); n != state.NumRows-1 {
		t.Errorf("wrote %d row separators, want %d (NumRows-1) so eraseArea's next pass matches what was actually painted", n, state.NumRows-1)
	}
}

func countSubstr(s, sub string) int {
	n := 0
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			n++
			i += len(sub) - 1
		}
	}
	return n
}

func containsAll(s string, subs ...string) bool {
	for _, sub := range subs {
		if !contains(s, sub) {
			return false
		}
	}
	return true
}

func contains(s, sub string) bool {
	if len(sub) == 0 {
		return true
	}
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return true
		}
	}
	return false
}
