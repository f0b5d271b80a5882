package model

import (
	"fmt"
	"regexp"

	"github.com/vgcbench/teamscrape/internal/normalize"
)

// Event identifies one tournament occurrence. Key is used for per-run
// grouping and dedup of repeated spreadsheet entries; DirName is the on-disk
// directory. Both come from the same derivation in ResolveEvent, so rows
// whose (name, date) normalize alike always share one directory.
type Event struct {
	Key     string
	DirName string
}

var (
	bareYearRe  = regexp.MustCompile(`\b\d{4}\b`)
	eventYearRe = regexp.MustCompile(`\b(20\d{2})\b`)
)

// ResolveEvent derives the canonical Event for a raw event name and date
// cell. The slug is built from the normalized name with any bare year token
// removed; if that is empty the non-year-stripped name is used, and "event"
// is the last resort. The year suffix prefers a 20xx token in the original
// name over the parsed date, so "2024 Liverpool" and "Liverpool 2024" agree
// regardless of what the date cell says.
func ResolveEvent(eventName, dateStr string) Event {
	normalized := normalize.EventName(eventName)
	base := normalize.Slugify(bareYearRe.ReplaceAllString(normalized, ""))
	if base == "" {
		base = normalize.Slugify(normalized)
	}
	if base == "" {
		base = "event"
	}

	key := base
	if m := eventYearRe.FindStringSubmatch(eventName); m != nil {
		key = base + "_" + m[1]
	} else if dt, ok := normalize.ParseEventDate(dateStr); ok {
		key = fmt.Sprintf("%s_%d", base, dt.Year())
	}
	return Event{Key: key, DirName: key}
}
