package model

import "time"

// Stats are the four counters reported at the end of a scrape run.
type Stats struct {
	Saved           int
	AlreadyExisting int
	Banned          int
	Duplicates      int
}

// ScrapeRun is one completed orchestrator invocation as recorded in the run
// history store. History is accounting only; the pipeline never reads it,
// since cross-run idempotence comes from file existence checks.
type ScrapeRun struct {
	StartedAt   time.Time
	CompletedAt time.Time
	Regulation  string
	ID          int64
	Stats       Stats
}
