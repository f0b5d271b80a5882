// Package dedup tracks the teams accepted during one scrape run and rejects
// near-duplicates of them.
package dedup

import "github.com/vgcbench/teamscrape/internal/similarity"

// Ledger is the per-run ordered record of accepted team texts. It lives for
// one orchestrator invocation; cross-run duplicates are handled by file
// existence checks instead.
type Ledger struct {
	scorer   similarity.Scorer
	accepted []string
}

// NewLedger returns an empty ledger using the given scorer.
func NewLedger(scorer similarity.Scorer) *Ledger {
	return &Ledger{scorer: scorer}
}

// IsDuplicate reports whether candidate scores an exact match against any
// previously accepted text. Linear scan; ledger size is bounded by one run's
// team count.
func (l *Ledger) IsDuplicate(candidate string) bool {
	for _, prev := range l.accepted {
		if l.scorer.Score(candidate, prev) == similarity.MaxScore {
			return true
		}
	}
	return false
}

// Add appends text to the accepted record.
func (l *Ledger) Add(text string) {
	l.accepted = append(l.accepted, text)
}

// Len returns the number of accepted texts.
func (l *Ledger) Len() int {
	return len(l.accepted)
}
