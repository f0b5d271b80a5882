package normalize

import (
	"regexp"
	"strings"
)

var (
	regionalChampsRe = regexp.MustCompile(`(?i)\bregional\s+championships?\b`)
	regionalsRe      = regexp.MustCompile(`(?i)\bregionals?\b`)
	whitespaceRe     = regexp.MustCompile(`\s+`)
)

// EventName strips the "Regional Championships" / "Regionals" boilerplate
// from an event name so that differently-phrased entries for the same event
// compare equal. The result is only used for slug derivation, never written
// back to the record.
func EventName(name string) string {
	name = strings.TrimSpace(name)
	name = regionalChampsRe.ReplaceAllString(name, "")
	name = regionalsRe.ReplaceAllString(name, "")
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(name, " "))
}
