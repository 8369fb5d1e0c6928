package buffer

import "testing"

func TestInsertAndText(t *testing.T) {
	b := New()
	b.Insert("h")
	b.Insert("i")
	if b.Text() != "hi" {
		t.Errorf("expected %q, got %q", "hi", b.Text())
	}
	if b.Position() != 2 {
		t.Errorf("expected position 2, got %d", b.Position())
	}
}

func TestEditSpliceBasic(t *testing.T) {
	b := NewFromString("hello world")
	b.SetPosition(5)
	removed := b.EditSplice(0, 5, []byte("goodbye"), true)
	if string(removed) != "hello" {
		t.Errorf("expected removed %q, got %q", "hello", removed)
	}
	if b.Text() != "goodbye world" {
		t.Errorf("got %q", b.Text())
	}
	if b.Position() != 7 {
		t.Errorf("expected position 7, got %d", b.Position())
	}
}

func TestEditSpliceClampsPositionInside(t *testing.T) {
	b := NewFromString("hello world")
	b.SetPosition(3) // inside [0,5)
	b.EditSplice(0, 5, []byte("x"), true)
	if b.Position() != 0 {
		t.Errorf("expected position clamped to 0, got %d", b.Position())
	}
}

func TestEditSpliceRigidMark(t *testing.T) {
	b := NewFromString("hello world")
	b.SetMark(2)
	b.SetPosition(2)
	// mark and position both equal lo==hi==2 for an insertion
	b.EditSplice(2, 2, []byte("XX"), true)
	if b.Mark() != 2 {
		t.Errorf("rigid mark should stay at lo=2, got %d", b.Mark())
	}

	b2 := NewFromString("hello world")
	b2.SetMark(2)
	b2.EditSplice(2, 2, []byte("XX"), false)
	if b2.Mark() != 4 {
		t.Errorf("non-rigid mark should slide to lo+len(ins)=4, got %d", b2.Mark())
	}
}

func TestSpliceComposition(t *testing.T) {
	// edit_splice(a,b,x); edit_splice(a, a+|x|, y) == edit_splice(a, b, y)
	a, bnd := 2, 6
	base := "hello world"

	lhs := NewFromString(base)
	lhs.EditSplice(a, bnd, []byte("XYZ"), true)
	lhs.EditSplice(a, a+3, []byte("Q"), true)

	rhs := NewFromString(base)
	rhs.EditSplice(a, bnd, []byte("Q"), true)

	if lhs.Text() != rhs.Text() {
		t.Errorf("splice composition law violated: %q != %q", lhs.Text(), rhs.Text())
	}
}

func TestWordLeftAcrossUnicode(t *testing.T) {
	b := NewFromString("αβ γδ")
	if b.Position() != len(b.Text()) {
		t.Fatalf("expected cursor at end")
	}
	pos := b.WordLeft(b.Position(), IsWordDelimiter)
	if pos != 5 {
		t.Errorf("expected word-left to byte 5 (start of γ), got %d", pos)
	}
	pos = b.WordLeft(pos, IsWordDelimiter)
	if pos != 0 {
		t.Errorf("expected word-left to byte 0, got %d", pos)
	}
}

func TestAutoIndentNewline(t *testing.T) {
	b := NewFromString("    x")
	b.NewlineWithAutoIndent(true)
	if b.Text() != "    x\n    " {
		t.Errorf("got %q", b.Text())
	}
	if b.Position() != len(b.Text()) {
		t.Errorf("expected cursor at end, got %d", b.Position())
	}
}

func TestBeginEndOfLine(t *testing.T) {
	b := NewFromString("abc\ndef\nghi")
	if got := b.BeginOfLine(0); got != 0 {
		t.Errorf("BeginOfLine(0) = %d, want 0", got)
	}
	if got := b.BeginOfLine(5); got != 3 {
		t.Errorf("BeginOfLine(5) = %d, want 3", got)
	}
	if got := b.EndOfLine(5); got != 7 {
		t.Errorf("EndOfLine(5) = %d, want 7", got)
	}
	if got := b.EndOfLine(9); got != 11 {
		t.Errorf("EndOfLine(9) = %d, want 11", got)
	}
}

func TestKillLineForwardAtNewline(t *testing.T) {
	b := NewFromString("abc\ndef")
	b.SetPosition(3) // sitting on the newline
	killed := b.KillLineForward()
	if string(killed) != "\n" {
		t.Errorf("expected newline killed, got %q", killed)
	}
	if b.Text() != "abcdef" {
		t.Errorf("got %q", b.Text())
	}
}

func TestTransposeCharsAtEnd(t *testing.T) {
	b := NewFromString("ab")
	b.TransposeChars()
	if b.Text() != "ba" {
		t.Errorf("got %q", b.Text())
	}
}

func TestTransposeWordsMiddle(t *testing.T) {
	b := NewFromString("hello world")
	b.SetPosition(6) // start of "world"
	ok := b.TransposeWords(IsWordDelimiter)
	if !ok {
		t.Fatalf("expected transpose to succeed")
	}
	if b.Text() != "world hello" {
		t.Errorf("got %q", b.Text())
	}
}

func TestIndentOutdentRegion(t *testing.T) {
	b := NewFromString("aa\nbb\ncc")
	b.IndentRegion(0, b.Len(), 2)
	if b.Text() != "  aa\n  bb\n  cc" {
		t.Errorf("got %q", b.Text())
	}
	ok := b.OutdentRegion(0, b.Len(), 2)
	if !ok {
		t.Fatalf("expected outdent to succeed")
	}
	if b.Text() != "aa\nbb\ncc" {
		t.Errorf("got %q", b.Text())
	}
}

func TestOutdentRefusesShortLine(t *testing.T) {
	b := NewFromString("  aa\nbb")
	ok := b.OutdentRegion(0, b.Len(), 2)
	if ok {
		t.Errorf("expected outdent to refuse when a line has fewer than n leading spaces")
	}
	if b.Text() != "  aa\nbb" {
		t.Errorf("expected no mutation on refusal, got %q", b.Text())
	}
}

func TestCaseWord(t *testing.T) {
	b := NewFromString("  hello world")
	pos, ok := b.CaseWord(0, CaseUpper, IsWordDelimiter)
	if !ok {
		t.Fatalf("expected case op to apply")
	}
	if b.Text() != "  HELLO world" {
		t.Errorf("got %q", b.Text())
	}
	if pos != 7 {
		t.Errorf("expected cursor at 7, got %d", pos)
	}
}

func TestUndoRedoRoundTrip(t *testing.T) {
	b := NewFromString("hello")
	u := NewUndoStack()

	u.Push(b.Snapshot())
	b.Insert(" world")
	if b.Text() != "hello world" {
		t.Fatalf("setup failed: %q", b.Text())
	}

	pre, ok := u.Undo(b.Snapshot())
	if !ok {
		t.Fatalf("expected undo to succeed")
	}
	b.Restore(pre)
	if b.Text() != "hello" {
		t.Errorf("after undo, got %q", b.Text())
	}

	post, ok := u.Redo(b.Snapshot())
	if !ok {
		t.Fatalf("expected redo to succeed")
	}
	b.Restore(post)
	if b.Text() != "hello world" {
		t.Errorf("after redo, got %q", b.Text())
	}
}

func TestKillRingYankPop(t *testing.T) {
	k := NewKillRing(10)
	k.SetConcat(false)
	k.Kill("one", false)
	k.SetConcat(false)
	k.Kill("two", false)
	k.SetConcat(false)
	k.Kill("three", false)

	cur, _ := k.Current()
	if cur != "three" {
		t.Fatalf("expected current entry 'three', got %q", cur)
	}
	if v, _ := k.Rotate(); v != "two" {
		t.Errorf("expected 'two', got %q", v)
	}
	if v, _ := k.Rotate(); v != "one" {
		t.Errorf("expected 'one', got %q", v)
	}
	if v, _ := k.Rotate(); v != "three" {
		t.Errorf("expected wraparound to 'three', got %q", v)
	}
}

func TestKillRingBoundedLength(t *testing.T) {
	k := NewKillRing(2)
	k.SetConcat(false)
	k.Kill("a", false)
	k.SetConcat(false)
	k.Kill("b", false)
	k.SetConcat(false)
	k.Kill("c", false)
	if k.Len() != 2 {
		t.Errorf("expected bounded length 2, got %d", k.Len())
	}
}
