package internal

import (
	"math"
	"testing"
)

func TestCosineSimilarityIdentity(t *testing.T) {
	v := []float32{0.3, -0.5, 1.2, 0.01}
	if got := CosineSimilarity(v, v); math.Abs(got-1) > 1e-9 {
		t.Errorf("CosineSimilarity(v, v) = %v, want 1", got)
	}
}

func TestCosineSimilarityOpposite(t *testing.T) {
	a := []float32{1, 2, 3}
	b := []float32{-1, -2, -3}
	if got := CosineSimilarity(a, b); math.Abs(got+1) > 1e-9 {
		t.Errorf("CosineSimilarity(a, -a) = %v, want -1", got)
	}
}

func TestCosineSimilarityLengthMismatch(t *testing.T) {
	if got := CosineSimilarity([]float32{1, 2}, []float32{1, 2, 3}); got != 0 {
		t.Errorf("mismatched lengths should score 0, got %v", got)
	}
}

func TestCosineSimilarityZeroMagnitude(t *testing.T) {
	if got := CosineSimilarity([]float32{0, 0, 0}, []float32{1, 2, 3}); got != 0 {
		t.Errorf("zero vector should score 0, got %v", got)
	}
	if got := CosineSimilarity(nil, nil); got != 0 {
		t.Errorf("empty vectors should score 0, got %v", got)
	}
}

func TestCosineSimilarityOrthogonal(t *testing.T) {
	if got := CosineSimilarity([]float32{1, 0}, []float32{0, 1}); math.Abs(got) > 1e-9 {
		t.Errorf("orthogonal vectors should score 0, got %v", got)
	}
}

func TestScoreCosineMissingVectors(t *testing.T) {
	candidates := []Entry{
		{ID: "a", Vector: []float32{1, 0}},
		{ID: "b"}, // no cached vector yet
		{ID: "c", Vector: []float32{0, 1}},
	}

	scores := ScoreCosine([]float32{1, 0}, candidates)
	if len(scores) != 3 {
		t.Fatalf("scores len = %d, want 3", len(scores))
	}
	if math.Abs(scores[0]-1) > 1e-9 {
		t.Errorf("scores[0] = %v, want 1", scores[0])
	}
	if scores[1] != 0 {
		t.Errorf("vectorless candidate should score 0, got %v", scores[1])
	}
	if math.Abs(scores[2]) > 1e-9 {
		t.Errorf("scores[2] = %v, want 0", scores[2])
	}
}
