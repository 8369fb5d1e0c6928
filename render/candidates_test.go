package render

import "testing"

func TestLayoutCandidatesSingleColumnWhenNarrow(t *testing.T) {
	lines := LayoutCandidates([]string{"alpha", "beta", "gamma"}, 10)
	if len(lines) != 3 {
		t.Fatalf("len(lines) = %d, want 3 (one item per line)", len(lines))
	}
}

func TestLayoutCandidatesMultipleColumnsWhenWide(t *testing.T) {
	lines := LayoutCandidates([]string{"a", "b", "c", "d"}, 80)
	if len(lines) != 1 {
		t.Errorf("len(lines) = %d, want 1 (everything fits on one row)", len(lines))
	}
}

func TestLayoutCandidatesEmptyInput(t *testing.T) {
	if lines := LayoutCandidates(nil, 80); lines != nil {
		t.Errorf("expected nil for no candidates, got %v", lines)
	}
	if lines := LayoutCandidates([]string{"a"}, 0); lines != nil {
		t.Errorf("expected nil for zero width, got %v", lines)
	}
}
