package internal

import "sort"

// Blend weights for hybrid ranking. Semantic similarity dominates once
// vectors exist; the lexical component stays as a non-zero floor so exact
// keyword matches (proper nouns, ids) are never ranked out entirely.
const (
	bm25Weight   = 0.3
	cosineWeight = 0.7
)

// NormalizeScores rescales a score set into [0, 1] via min-max over the set
// itself. When every score is equal there is no range to divide by: a
// positive constant maps to 1, anything else to 0.
func NormalizeScores(scores []float64) []float64 {
	if len(scores) == 0 {
		return nil
	}

	min, max := scores[0], scores[0]
	for _, s := range scores[1:] {
		if s < min {
			min = s
		}
		if s > max {
			max = s
		}
	}

	normalized := make([]float64, len(scores))
	spread := max - min
	for i, s := range scores {
		switch {
		case spread > 0:
			normalized[i] = (s - min) / spread
		case s > 0:
			normalized[i] = 1
		}
	}
	return normalized
}

// Ranked pairs an entry with its combined score.
type Ranked struct {
	Entry Entry
	Score float64
}

// RankCandidates blends normalized BM25 and cosine scores, aligned with
// candidates by position, and returns candidates ordered best-first. cosine
// is nil when no vector scorer ran, in which case the lexical score stands
// alone; a nil bm25 means the query had no lexical signal. Candidates
// scoring <= 0 are dropped; ties keep the candidate order, which the engine
// passes in most-recent-first.
func RankCandidates(candidates []Entry, bm25, cosine []float64) []Ranked {
	bm25Norm := NormalizeScores(bm25)
	cosineNorm := NormalizeScores(cosine)

	at := func(scores []float64, i int) float64 {
		if i < len(scores) {
			return scores[i]
		}
		return 0
	}

	ranked := make([]Ranked, 0, len(candidates))
	for i, c := range candidates {
		score := at(bm25Norm, i)
		if cosine != nil {
			score = bm25Weight*at(bm25Norm, i) + cosineWeight*at(cosineNorm, i)
		}
		if score <= 0 {
			continue
		}
		ranked = append(ranked, Ranked{Entry: c, Score: score})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}
