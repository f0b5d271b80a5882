// Package showdown parses teams in Pokemon Showdown export format. The
// scraper only consumes it as a pass/fail oracle: text that does not parse is
// dropped as a data-quality rejection.
package showdown

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Set is one team member parsed from a text block.
type Set struct {
	EVs      map[string]int
	IVs      map[string]int
	Name     string
	Species  string
	Item     string
	Ability  string
	Nature   string
	TeraType string
	Moves    []string
	Level    int
}

var statKeys = map[string]string{
	"hp":  "hp",
	"atk": "atk",
	"def": "def",
	"spa": "spa",
	"spd": "spd",
	"spe": "spe",
}

var (
	genderRe   = regexp.MustCompile(`\s+\((?i:[MF])\)$`)
	nicknameRe = regexp.MustCompile(`^(.*)\s+\(([^()]+)\)$`)
)

// ParseTeam parses full team text: blocks separated by blank lines, one Set
// per block. An unrecognized attribute line or stat key anywhere fails the
// whole team.
func ParseTeam(text string) ([]Set, error) {
	var sets []Set
	for i, block := range splitBlocks(text) {
		set, err := parseSet(block)
		if err != nil {
			return nil, fmt.Errorf("member %d: %w", i+1, err)
		}
		sets = append(sets, set)
	}
	if len(sets) == 0 {
		return nil, fmt.Errorf("no team members found")
	}
	return sets, nil
}

func splitBlocks(text string) [][]string {
	var blocks [][]string
	var block []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, " \t\r")
		if strings.TrimSpace(line) == "" {
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
	return blocks
}

func parseSet(lines []string) (Set, error) {
	set := Set{Level: 100}
	if err := parseHeader(&set, lines[0]); err != nil {
		return set, err
	}

	for _, line := range lines[1:] {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "- "):
			move := strings.TrimSpace(strings.TrimPrefix(line, "- "))
			if move == "" {
				return set, fmt.Errorf("empty move line")
			}
			set.Moves = append(set.Moves, move)
		case hasField(line, "Ability"):
			set.Ability = fieldValue(line)
		case hasField(line, "Tera Type"):
			set.TeraType = fieldValue(line)
		case hasField(line, "Level"):
			lvl, err := strconv.Atoi(fieldValue(line))
			if err != nil {
				return set, fmt.Errorf("bad level: %w", err)
			}
			set.Level = lvl
		case hasField(line, "EVs"):
			evs, err := parseStats(fieldValue(line))
			if err != nil {
				return set, err
			}
			set.EVs = evs
		case hasField(line, "IVs"):
			ivs, err := parseStats(fieldValue(line))
			if err != nil {
				return set, err
			}
			set.IVs = ivs
		case hasField(line, "Shiny"), hasField(line, "Happiness"),
			hasField(line, "Gigantamax"), hasField(line, "Dynamax Level"),
			hasField(line, "Hidden Power"):
			// Accepted but not material to the pipeline.
		case strings.HasSuffix(line, " Nature"):
			set.Nature = strings.TrimSuffix(line, " Nature")
		default:
			return set, fmt.Errorf("unrecognized line %q", line)
		}
	}
	return set, nil
}

func parseHeader(set *Set, header string) error {
	rest := strings.TrimSpace(header)
	if at := strings.Index(rest, " @ "); at >= 0 {
		set.Item = strings.TrimSpace(rest[at+3:])
		rest = strings.TrimSpace(rest[:at])
	}
	rest = genderRe.ReplaceAllString(rest, "")
	if m := nicknameRe.FindStringSubmatch(rest); m != nil {
		set.Name = strings.TrimSpace(m[1])
		set.Species = strings.TrimSpace(m[2])
	} else {
		set.Species = rest
	}
	if set.Species == "" {
		return fmt.Errorf("missing species in header %q", header)
	}
	return nil
}

func hasField(line, field string) bool {
	return len(line) > len(field) && strings.EqualFold(line[:len(field)], field) &&
		strings.HasPrefix(strings.TrimSpace(line[len(field):]), ":")
}

func fieldValue(line string) string {
	_, value, _ := strings.Cut(line, ":")
	return strings.TrimSpace(value)
}

// parseStats parses "252 HP / 4 Def / 252 Spe". Unknown stat names are the
// classic malformed-paste signal and fail the parse.
func parseStats(spec string) (map[string]int, error) {
	stats := make(map[string]int)
	for _, part := range strings.Split(spec, "/") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		fields := strings.Fields(part)
		if len(fields) != 2 {
			return nil, fmt.Errorf("malformed stat entry %q", part)
		}
		value, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("malformed stat value %q", fields[0])
		}
		key, ok := statKeys[strings.ToLower(fields[1])]
		if !ok {
			return nil, fmt.Errorf("unknown stat %q", fields[1])
		}
		stats[key] = value
	}
	return stats, nil
}
