package internal

import "math"

// BM25 parameters. k1 controls term-frequency saturation, b controls
// document-length normalization.
const (
	bm25K1 = 1.5
	bm25B  = 0.75
)

// ScoreBM25 ranks candidates against the query using BM25, returning one raw
// score per candidate, aligned by position. Scores are keyed by position
// rather than entry id because minute-resolution ids can collide. Document
// frequencies and the average document length are computed fresh over the
// candidate set: memory logs hold a few thousand short entries at most, so a
// persistent inverted index buys nothing here. Returns nil when the query
// has no tokens after normalization, meaning no lexical signal at all.
func ScoreBM25(query string, candidates []Entry) []float64 {
	queryTokens := Tokenize(query)
	if len(queryTokens) == 0 || len(candidates) == 0 {
		return nil
	}

	docTokens := make([][]string, len(candidates))
	totalLen := 0
	for i, c := range candidates {
		docTokens[i] = Tokenize(c.Content)
		totalLen += len(docTokens[i])
	}
	avgLen := float64(totalLen) / float64(len(candidates))
	if avgLen == 0 {
		return make([]float64, len(candidates))
	}

	// Document frequency per query term.
	df := make(map[string]int, len(queryTokens))
	for _, toks := range docTokens {
		seen := make(map[string]bool, len(toks))
		for _, t := range toks {
			seen[t] = true
		}
		for _, q := range queryTokens {
			if seen[q] {
				df[q]++
			}
		}
	}

	n := float64(len(candidates))
	scores := make([]float64, len(candidates))
	for i := range candidates {
		toks := docTokens[i]
		tf := make(map[string]int, len(toks))
		for _, t := range toks {
			tf[t]++
		}

		docLen := float64(len(toks))
		for _, q := range queryTokens {
			f := float64(tf[q])
			if f == 0 {
				continue
			}
			idf := math.Log(1 + (n-float64(df[q])+0.5)/(float64(df[q])+0.5))
			norm := 1 - bm25B + bm25B*docLen/avgLen
			scores[i] += idf * (f * (bm25K1 + 1)) / (f + bm25K1*norm)
		}
	}

	return scores
}
