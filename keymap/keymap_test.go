package keymap

import "testing"

type testAction string

func (a testAction) Name() string { return string(a) }

// fakeReader replays a fixed rune sequence, and pretends every read
// arrives "in time" -- there's no real terminal to make it possible for
// a timed-out read to occur.
type fakeReader struct {
	runes []rune
	i     int
}

func (f *fakeReader) Next() (rune, bool) {
	if f.i >= len(f.runes) {
		return 0, false
	}
	r := f.runes[f.i]
	f.i++
	return r, true
}

func (f *fakeReader) NextTimeout() (rune, bool) { return f.Next() }

func (f *fakeReader) PushBack(r rune) {
	f.i--
	f.runes[f.i] = r
}

func build(t *testing.T, layers ...Map[testAction]) *Trie[testAction] {
	t.Helper()
	tr, err := Build(layers...)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return tr
}

func TestNormalizeForms(t *testing.T) {
	cases := []struct {
		in   string
		want []rune
	}{
		{"a", []rune{'a'}},
		{"^X", []rune{24}},
		{"\\C-x", []rune{24}},
		{"\\M-b", []rune{0x1b, 'b'}},
		{"*", []rune{Wildcard}},
		{"\\r", []rune{'\r'}},
	}
	for _, c := range cases {
		got, err := Normalize(c.in)
		if err != nil {
			t.Fatalf("Normalize(%q): %v", c.in, err)
		}
		if string(got) != string(c.want) {
			t.Errorf("Normalize(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestNormalizeRejectsWildcardRune(t *testing.T) {
	_, err := Normalize(string(Wildcard))
	if err == nil {
		t.Fatalf("expected error binding the wildcard rune literally")
	}
}

func TestMergeOverridePrecedence(t *testing.T) {
	base := Map[testAction]{"a": Bind(testAction("base-a"))}
	top := Map[testAction]{"a": Bind(testAction("top-a"))}
	_, err := Merge(top, base, false)
	if err == nil {
		t.Fatalf("expected conflict without override")
	}
	merged, err := Merge(top, base, true)
	if err != nil {
		t.Fatalf("Merge with override: %v", err)
	}
	if merged["a"].Action != "top-a" {
		t.Errorf("expected override to win, got %v", merged["a"].Action)
	}
}

func TestMergeIdenticalBindingIsNotConflict(t *testing.T) {
	base := Map[testAction]{"a": Bind(testAction("same"))}
	top := Map[testAction]{"a": Bind(testAction("same"))}
	_, err := Merge(top, base, false)
	if err != nil {
		t.Fatalf("identical bindings should not conflict: %v", err)
	}
}

func TestBuildAndDecodeSimple(t *testing.T) {
	tr := build(t, Map[testAction]{
		"a":     Bind(testAction("insert-a")),
		"\\C-x": Bind(testAction("prefix-x")),
	})
	r := &fakeReader{runes: []rune{'a'}}
	res := tr.Decode(r)
	if !res.Matched || res.Action != "insert-a" {
		t.Fatalf("got %+v", res)
	}
}

func TestDecodeLongestPrefixWins(t *testing.T) {
	tr := build(t, Map[testAction]{
		"\\M-b": Bind(testAction("meta-b")),
	})
	r := &fakeReader{runes: []rune{0x1b, 'b'}}
	res := tr.Decode(r)
	if !res.Matched || res.Action != "meta-b" {
		t.Fatalf("got %+v", res)
	}
}

func TestDecodeBareEscapeWhenNoFollowup(t *testing.T) {
	tr := build(t, Map[testAction]{
		"\\e":   Bind(testAction("bare-escape")),
		"\\M-b": Bind(testAction("meta-b")),
	})
	r := &fakeReader{runes: []rune{0x1b}} // times out with nothing following
	res := tr.Decode(r)
	if !res.Matched || res.Action != "bare-escape" {
		t.Fatalf("got %+v", res)
	}
}

func TestDecodeWildcardFallback(t *testing.T) {
	tr := build(t, Map[testAction]{
		"\\M-*": Bind(testAction("meta-any")),
		"\\M-b": Bind(testAction("meta-b")),
	})
	specific := tr.Decode(&fakeReader{runes: []rune{0x1b, 'b'}})
	if !specific.Matched || specific.Action != "meta-b" {
		t.Fatalf("expected specific binding to win, got %+v", specific)
	}
	wild := tr.Decode(&fakeReader{runes: []rune{0x1b, 'z'}})
	if !wild.Matched || wild.Action != "meta-any" {
		t.Fatalf("expected wildcard fallback, got %+v", wild)
	}
}

func TestDecodeAliasChain(t *testing.T) {
	tr := build(t, Map[testAction]{
		"\\C-n": Bind(testAction("next-line")),
		"\\C-x": Redirect[testAction]("\\C-n"),
	})
	res := tr.Decode(&fakeReader{runes: []rune{24}})
	if !res.Matched || res.Action != "next-line" {
		t.Fatalf("got %+v", res)
	}
}

func TestBuildRejectsAliasCycle(t *testing.T) {
	_, err := Build(Map[testAction]{
		"a": Redirect[testAction]("b"),
		"b": Redirect[testAction]("a"),
	})
	if err == nil {
		t.Fatalf("expected alias cycle to be rejected")
	}
}

func TestBuildRejectsDanglingAlias(t *testing.T) {
	_, err := Build(Map[testAction]{
		"a": Redirect[testAction]("b"),
	})
	if err == nil {
		t.Fatalf("expected dangling alias to be rejected")
	}
}

func TestLayeredMergeAcrossThreeLayers(t *testing.T) {
	low := Map[testAction]{"a": Bind(testAction("low-a")), "b": Bind(testAction("shared-b"))}
	mid := Map[testAction]{"b": Bind(testAction("shared-b")), "c": Bind(testAction("mid-c"))}
	high := Map[testAction]{"a": Bind(testAction("high-a"))}

	tr := build(t, low, mid, high)

	if res := tr.Decode(&fakeReader{runes: []rune{'a'}}); res.Action != "high-a" {
		t.Errorf("expected highest layer to win on a, got %+v", res)
	}
	if res := tr.Decode(&fakeReader{runes: []rune{'b'}}); res.Action != "shared-b" {
		t.Errorf("expected shared identical binding on b, got %+v", res)
	}
	if res := tr.Decode(&fakeReader{runes: []rune{'c'}}); res.Action != "mid-c" {
		t.Errorf("expected mid layer's c to survive, got %+v", res)
	}
}

func TestDecodeIgnoreBinding(t *testing.T) {
	tr := build(t, Map[testAction]{
		"\\C-@": IgnoreBinding[testAction](),
	})
	res := tr.Decode(&fakeReader{runes: []rune{0}})
	if !res.Matched || res.Kind != LeafIgnore {
		t.Fatalf("expected ignore leaf, got %+v", res)
	}
}

func TestDecodeUnmatchedInput(t *testing.T) {
	tr := build(t, Map[testAction]{
		"\\C-x": Bind(testAction("prefix-x")),
	})
	res := tr.Decode(&fakeReader{runes: []rune{'z'}})
	if res.Matched {
		t.Fatalf("expected no match, got %+v", res)
	}
}
