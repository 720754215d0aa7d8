package internal

import "math"

// CosineSimilarity returns the cosine of the angle between a and b, in
// [-1, 1]. Mismatched lengths or a zero-magnitude vector score 0, which keeps
// divide-by-zero out of the scoring path.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		fa, fb := float64(a[i]), float64(b[i])
		dot += fa * fb
		normA += fa * fa
		normB += fb * fb
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// ScoreCosine ranks candidates by similarity between the query vector and
// each candidate's cached vector, one score per candidate by position.
// Candidates without a vector score 0 rather than being excluded, so recall
// quality degrades smoothly while embeddings backfill.
func ScoreCosine(queryVec []float32, candidates []Entry) []float64 {
	scores := make([]float64, len(candidates))
	for i, c := range candidates {
		if c.Vector == nil {
			continue
		}
		scores[i] = CosineSimilarity(queryVec, c.Vector)
	}
	return scores
}
