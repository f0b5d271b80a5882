package dedup

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vgcbench/teamscrape/internal/similarity"
)

// thresholdScorer returns a fixed score for every comparison.
type thresholdScorer struct {
	score float64
}

func (s thresholdScorer) Score(_, _ string) float64 {
	return s.score
}

func TestLedgerIsDuplicate(t *testing.T) {
	tests := []struct {
		name  string
		score float64
		want  bool
	}{
		{name: "max score is duplicate", score: similarity.MaxScore, want: true},
		{name: "near max is not duplicate", score: 0.999, want: false},
		{name: "zero is not duplicate", score: 0, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger := NewLedger(thresholdScorer{score: tt.score})
			ledger.Add("accepted team\n")
			assert.Equal(t, tt.want, ledger.IsDuplicate("candidate team\n"))
		})
	}
}

func TestLedgerEmpty(t *testing.T) {
	ledger := NewLedger(thresholdScorer{score: similarity.MaxScore})
	assert.False(t, ledger.IsDuplicate("anything"), "empty ledger never matches")
	assert.Equal(t, 0, ledger.Len())
}

func TestLedgerExactScorer(t *testing.T) {
	ledger := NewLedger(similarity.ExactScorer{})
	ledger.Add("Incineroar @ Safety Goggles\n")

	assert.True(t, ledger.IsDuplicate("Incineroar @ Safety Goggles\n"))
	assert.False(t, ledger.IsDuplicate("Incineroar @ Sitrus Berry\n"))
	assert.Equal(t, 1, ledger.Len())
}
