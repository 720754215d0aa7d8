package internal

import (
	"math"
	"testing"
)

func TestNormalizeScoresRange(t *testing.T) {
	got := NormalizeScores([]float64{2, 4, 6, 8})

	for i, s := range got {
		if s < 0 || s > 1 {
			t.Errorf("normalized score %d = %v, outside [0,1]", i, s)
		}
	}
	if got[0] != 0 {
		t.Errorf("min should map to 0, got %v", got[0])
	}
	if got[3] != 1 {
		t.Errorf("max should map to 1, got %v", got[3])
	}
	if math.Abs(got[1]-1.0/3) > 1e-9 {
		t.Errorf("got[1] = %v, want 1/3", got[1])
	}
}

func TestNormalizeScoresAllEqual(t *testing.T) {
	for _, s := range NormalizeScores([]float64{3.7, 3.7, 3.7}) {
		if s != 1 {
			t.Errorf("equal positive scores should map to 1, got %v", s)
		}
	}
	for _, s := range NormalizeScores([]float64{0, 0}) {
		if s != 0 {
			t.Errorf("equal zero scores should map to 0, got %v", s)
		}
	}
	for _, s := range NormalizeScores([]float64{-2, -2}) {
		if s != 0 {
			t.Errorf("equal negative scores should map to 0, got %v", s)
		}
	}
}

func TestNormalizeScoresEmpty(t *testing.T) {
	if got := NormalizeScores(nil); got != nil {
		t.Errorf("expected nil for empty input, got %v", got)
	}
}

func TestRankCandidatesLexicalOnly(t *testing.T) {
	candidates := []Entry{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	ranked := RankCandidates(candidates, []float64{0, 3, 1}, nil)

	if len(ranked) != 2 {
		t.Fatalf("ranked len = %d, want 2 (zero-score candidate dropped)", len(ranked))
	}
	if ranked[0].Entry.ID != "b" || ranked[1].Entry.ID != "c" {
		t.Errorf("order = %s, %s, want b, c", ranked[0].Entry.ID, ranked[1].Entry.ID)
	}
	if ranked[0].Score != 1 {
		t.Errorf("top score = %v, want 1", ranked[0].Score)
	}
}

func TestRankCandidatesBlend(t *testing.T) {
	candidates := []Entry{{ID: "a"}, {ID: "b"}}
	// a wins lexically, b wins semantically; 0.7 semantic weight must win.
	ranked := RankCandidates(candidates, []float64{5, 1}, []float64{0.1, 0.9})

	if len(ranked) != 2 {
		t.Fatalf("ranked len = %d, want 2", len(ranked))
	}
	if ranked[0].Entry.ID != "b" {
		t.Errorf("semantic-heavy blend should rank b first, got %s", ranked[0].Entry.ID)
	}
	if math.Abs(ranked[0].Score-cosineWeight) > 1e-9 {
		t.Errorf("top score = %v, want %v", ranked[0].Score, cosineWeight)
	}
	if math.Abs(ranked[1].Score-bm25Weight) > 1e-9 {
		t.Errorf("second score = %v, want %v", ranked[1].Score, bm25Weight)
	}
}

func TestRankCandidatesTieKeepsRecency(t *testing.T) {
	// Engine passes candidates most-recent-first; equal scores keep that.
	candidates := []Entry{{ID: "newest"}, {ID: "older"}, {ID: "oldest"}}
	ranked := RankCandidates(candidates, []float64{2, 2, 2}, nil)

	if len(ranked) != 3 {
		t.Fatalf("ranked len = %d, want 3", len(ranked))
	}
	for i, want := range []string{"newest", "older", "oldest"} {
		if ranked[i].Entry.ID != want {
			t.Errorf("ranked[%d] = %s, want %s", i, ranked[i].Entry.ID, want)
		}
	}
}

func TestRankCandidatesNoSignal(t *testing.T) {
	candidates := []Entry{{ID: "a"}, {ID: "b"}}
	if got := RankCandidates(candidates, nil, nil); len(got) != 0 {
		t.Errorf("no signal should rank nothing, got %v", got)
	}
	// All-zero cosine with no lexical signal drops everything too.
	if got := RankCandidates(candidates, nil, []float64{0, 0}); len(got) != 0 {
		t.Errorf("zero signal should rank nothing, got %v", got)
	}
}
