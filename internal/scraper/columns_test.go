package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vgcbench/teamscrape/internal/common"
)

func TestFindHeaderRow(t *testing.T) {
	tests := []struct {
		name    string
		rows    [][]string
		want    int
		wantErr error
	}{
		{
			name: "header after banner rows",
			rows: [][]string{
				{"VGCPastes", ""},
				{},
				{"Team ID", "Category", "Pokepaste"},
				{"1", "In Person Event", "https://pokepast.es/abc"},
			},
			want: 2,
		},
		{
			name: "team id without pokepaste is not a header",
			rows: [][]string{
				{"Team ID", "Category"},
				{"Team ID", "Category", "Pokepaste"},
			},
			want: 1,
		},
		{
			name:    "no header row",
			rows:    [][]string{{"just", "data"}, {}},
			wantErr: common.ErrNoHeaderRow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := findHeaderRow(tt.rows)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveColumns(t *testing.T) {
	header := []string{"Team ID", "Category", "EVs", "Date", "Tournament / Event", "Rank", "Pokepaste"}

	cols, err := resolveColumns(header)
	require.NoError(t, err)
	assert.Equal(t, 1, cols.category)
	assert.Equal(t, 2, cols.evs)
	assert.Equal(t, 3, cols.date)
	assert.Equal(t, 4, cols.event)
	assert.Equal(t, 5, cols.rank)
	assert.Equal(t, 6, cols.pokepaste)
	assert.Equal(t, 6, cols.max)
}

func TestResolveColumnsShiftedOrder(t *testing.T) {
	header := []string{"Team ID", "Pokepaste", "Rank", "Tournament / Event", "EVs", "Category"}

	cols, err := resolveColumns(header)
	require.NoError(t, err)
	assert.Equal(t, 5, cols.category)
	assert.Equal(t, 1, cols.pokepaste)
	assert.Equal(t, 2, cols.date, "missing Date column falls back to the cell before the event column")
}

func TestResolveColumnsMissingRequired(t *testing.T) {
	header := []string{"Team ID", "Category", "EVs", "Tournament / Event", "Pokepaste"}

	_, err := resolveColumns(header)
	assert.ErrorIs(t, err, common.ErrMissingColumn)
	assert.Contains(t, err.Error(), "Rank")
}
