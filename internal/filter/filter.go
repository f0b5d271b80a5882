// Package filter decides whether a team's raw text is admissible for the
// dataset.
package filter

import "regexp"

// Illusion and Commander produce battle logs that downstream consumers cannot
// attribute to the right team member, so teams carrying either are dropped
// outright.
var bannedAbilityRes = []*regexp.Regexp{
	regexp.MustCompile(`(?im)^\s*Ability:\s*Illusion\s*$`),
	regexp.MustCompile(`(?im)^\s*Ability:\s*Commander\s*$`),
}

// HasBannedAbility reports whether any team member's ability line names a
// banned mechanic.
func HasBannedAbility(teamText string) bool {
	for _, re := range bannedAbilityRes {
		if re.MatchString(teamText) {
			return true
		}
	}
	return false
}
