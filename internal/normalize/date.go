package normalize

import (
	"regexp"
	"strings"
	"time"
)

// Layouts accepted for spreadsheet date cells, most specific first.
var dateLayouts = []string{
	"2 Jan 2006",
	"2 January 2006",
	"2 Jan, 2006",
	"2 January, 2006",
	"Jan 2006",
	"January 2006",
}

var embeddedDateRe = regexp.MustCompile(`\b(\d{1,2}\s+[A-Za-z]{3,9}\s+\d{4})\b`)

// ParseEventDate parses a human-entered date cell. It tries a fixed set of
// day-month-year and month-year layouts, then falls back to scanning for an
// embedded "DD Month YYYY" substring. The "Sept" abbreviation is rewritten to
// "Sep" first since the time package rejects the four-letter form. Returns
// ok=false when nothing matches; it never errors.
func ParseEventDate(dateStr string) (time.Time, bool) {
	dateStr = strings.ReplaceAll(strings.TrimSpace(dateStr), "Sept", "Sep")
	if dateStr == "" {
		return time.Time{}, false
	}
	cleaned := whitespaceRe.ReplaceAllString(dateStr, " ")
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, cleaned); err == nil {
			return t, true
		}
	}
	if m := embeddedDateRe.FindStringSubmatch(dateStr); m != nil {
		embedded := whitespaceRe.ReplaceAllString(m[1], " ")
		for _, layout := range []string{"2 Jan 2006", "2 January 2006"} {
			if t, err := time.Parse(layout, embedded); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}
