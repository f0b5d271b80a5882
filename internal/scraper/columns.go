package scraper

import (
	"fmt"
	"strings"

	"github.com/vgcbench/teamscrape/internal/common"
)

// Required header names. Column positions vary between sheets, so they are
// resolved by header text rather than fixed index.
const (
	headerTeamID    = "Team ID"
	headerCategory  = "Category"
	headerEVs       = "EVs"
	headerPokepaste = "Pokepaste"
	headerEvent     = "Tournament / Event"
	headerRank      = "Rank"
	headerDate      = "Date"
)

// columnMap is the typed row accessor for one sheet's resolved schema.
type columnMap struct {
	category  int
	evs       int
	pokepaste int
	event     int
	rank      int
	date      int
	max       int
}

// findHeaderRow scans for the row that starts with "Team ID" and also carries
// a "Pokepaste" column. Returns common.ErrNoHeaderRow when no row qualifies.
func findHeaderRow(rows [][]string) (int, error) {
	for i, row := range rows {
		if len(row) == 0 || strings.TrimSpace(row[0]) != headerTeamID {
			continue
		}
		if indexOf(row, headerPokepaste) >= 0 {
			return i, nil
		}
	}
	return 0, common.ErrNoHeaderRow
}

// resolveColumns builds the typed accessor from a located header row. A
// missing required header fails fast here rather than deep in iteration. The
// Date column is optional; sheets without one keep the date in the cell just
// before the event column.
func resolveColumns(header []string) (columnMap, error) {
	cols := columnMap{}
	var err error
	if cols.category, err = requireColumn(header, headerCategory); err != nil {
		return cols, err
	}
	if cols.evs, err = requireColumn(header, headerEVs); err != nil {
		return cols, err
	}
	if cols.pokepaste, err = requireColumn(header, headerPokepaste); err != nil {
		return cols, err
	}
	if cols.event, err = requireColumn(header, headerEvent); err != nil {
		return cols, err
	}
	if cols.rank, err = requireColumn(header, headerRank); err != nil {
		return cols, err
	}
	cols.date = indexOf(header, headerDate)
	if cols.date < 0 {
		cols.date = cols.event - 1
	}

	cols.max = cols.category
	for _, idx := range []int{cols.evs, cols.pokepaste, cols.event, cols.rank, cols.date} {
		if idx > cols.max {
			cols.max = idx
		}
	}
	return cols, nil
}

func requireColumn(header []string, name string) (int, error) {
	idx := indexOf(header, name)
	if idx < 0 {
		return 0, fmt.Errorf("%w: %q", common.ErrMissingColumn, name)
	}
	return idx, nil
}

func indexOf(row []string, name string) int {
	for i, cell := range row {
		if cell == name {
			return i
		}
	}
	return -1
}

// cell returns the trimmed value at idx, or "" when the row has no such cell.
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
