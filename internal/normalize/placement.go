package normalize

import "strings"

// PlacementFilename converts a tournament placement string to the token used
// as the on-disk filename stem. "Champion"/"Winner" and "Runner-up" map to
// their numeric ranks; everything else passes through as a slug. Callers that
// only persist numerically-ranked placements must check the leading digit
// themselves.
func PlacementFilename(placement string) string {
	slug := Slugify(strings.TrimSpace(placement))
	switch slug {
	case "champion", "winner":
		return "1st"
	case "runner_up":
		return "2nd"
	}
	if slug == "" {
		return "unknown_placement"
	}
	return slug
}
