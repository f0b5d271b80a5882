package normalize

import (
	"regexp"
	"strings"
)

var (
	abilityLineRe  = regexp.MustCompile(`(?i)^(\s*Ability:\s*)(.*?)\s*$`)
	calyrexIceRe   = regexp.MustCompile(`(?i)\bCalyrex-Ice\b`)
	nonAlnumRe     = regexp.MustCompile(`[^a-z0-9]`)
	asOneGlastrier = "As One (Glastrier)"
	asOneSpectrier = "As One (Spectrier)"
)

// TeamText normalizes raw paste text into the canonical block format: one
// blank line between members, no trailing whitespace, exactly one trailing
// newline. The bare "As One" ability is ambiguous between the two Calyrex
// forms, so it is rewritten based on the member's header line. Idempotent.
func TeamText(raw string) string {
	lines := strings.Split(raw, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t\r")
	}
	for len(lines) > 0 && lines[0] == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	var blocks [][]string
	var block []string
	for _, line := range lines {
		if line == "" {
			if len(block) > 0 {
				blocks = append(blocks, block)
				block = nil
			}
			continue
		}
		block = append(block, line)
	}
	if len(block) > 0 {
		blocks = append(blocks, block)
	}

	normalized := make([]string, 0, len(blocks))
	for _, block := range blocks {
		asOne := asOneSpectrier
		if calyrexIceRe.MatchString(block[0]) {
			asOne = asOneGlastrier
		}
		for i, line := range block {
			m := abilityLineRe.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			if nonAlnumRe.ReplaceAllString(strings.ToLower(m[2]), "") == "asone" {
				block[i] = m[1] + asOne
			}
		}
		normalized = append(normalized, strings.Join(block, "\n"))
	}
	return strings.Join(normalized, "\n\n") + "\n"
}
