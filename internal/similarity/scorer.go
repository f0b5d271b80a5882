// Package similarity scores pairs of team texts for near-duplicate
// detection.
package similarity

// MaxScore is the score an exact duplicate produces. The pipeline only ever
// consumes the "score equals MaxScore" case.
const MaxScore = 1.0

// Scorer computes a similarity score between two team texts, with MaxScore
// meaning an exact match.
type Scorer interface {
	Score(a, b string) float64
}

// ExactScorer reports MaxScore for byte-identical normalized texts and zero
// otherwise. Richer scorers can be injected where fuzzier matching is wanted;
// the dedup semantics stay the same either way.
type ExactScorer struct{}

// Score implements Scorer.
func (ExactScorer) Score(a, b string) float64 {
	if a == b {
		return MaxScore
	}
	return 0
}
