package scraper

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vgcbench/teamscrape/internal/common"
	"github.com/vgcbench/teamscrape/internal/model"
	"github.com/vgcbench/teamscrape/internal/normalize"
	"github.com/vgcbench/teamscrape/internal/showdown"
	"github.com/vgcbench/teamscrape/internal/similarity"
)

const (
	teamA = "Incineroar @ Safety Goggles\nAbility: Intimidate\nLevel: 50\nEVs: 252 HP / 4 Atk / 252 SpD\nCareful Nature\n- Fake Out\n- Knock Off\n"
	teamB = "Flutter Mane @ Booster Energy\nAbility: Protosynthesis\nLevel: 50\nEVs: 252 SpA / 252 Spe\nTimid Nature\n- Moonblast\n- Protect\n"
	teamC = "Amoonguss @ Sitrus Berry\nAbility: Regenerator\nLevel: 50\n- Spore\n- Rage Powder\n"
	teamD = "Urshifu @ Focus Sash\nAbility: Unseen Fist\nLevel: 50\n- Surging Strikes\n- Detect\n"

	bannedTeam      = "Zoroark @ Focus Sash\nAbility: Illusion\nLevel: 50\n- Night Daze\n"
	unparseableTeam = "Incineroar @ Safety Goggles\nEVs: 252 Zzz\n- Fake Out\n"
)

type fakeSheets struct {
	rows  map[string][][]string
	names []string
}

func (f *fakeSheets) SheetNames(_ context.Context) ([]string, error) {
	return f.names, nil
}

func (f *fakeSheets) Rows(_ context.Context, sheetName string) ([][]string, error) {
	rows, ok := f.rows[sheetName]
	if !ok {
		return nil, fmt.Errorf("sheet %q returned status 400", sheetName)
	}
	return rows, nil
}

type fakePastes struct {
	pastes map[string]string
}

func (f *fakePastes) RawTeam(_ context.Context, pasteURL string) (string, error) {
	raw, ok := f.pastes[pasteURL]
	if !ok {
		return "", fmt.Errorf("paste %q returned status 404", pasteURL)
	}
	return normalize.TeamText(raw), nil
}

func featuredRows() [][]string {
	header := []string{"Team ID", "Category", "EVs", "Date", "Tournament / Event", "Rank", "Pokepaste"}
	return [][]string{
		{"VGCPastes Featured Teams banner"},
		{},
		header,
		// Saved as liverpool_2024/1st.txt.
		{"1", "In Person Event", "Yes", "15 Jan 2024", "Liverpool Regional Championships 2024", "Champion", "https://pokepast.es/team-a"},
		// Wrong EVs flag: never fetched.
		{"2", "In Person Event", "No", "15 Jan 2024", "Liverpool Regional Championships 2024", "Top 4", "https://pokepast.es/team-b"},
		// Wrong category: never fetched.
		{"3", "Online Event", "Yes", "15 Jan 2024", "Liverpool Regional Championships 2024", "Top 8", "https://pokepast.es/team-b"},
		// Banned mechanic.
		{"4", "In Person Event", "Yes", "15 Jan 2024", "Liverpool Regional Championships 2024", "Top 8", "https://pokepast.es/banned"},
		// Same text as team-a under another paste: duplicate.
		{"5", "In Person Event", "Yes", "15 Jan 2024", "Liverpool Regional Championships 2024", "Top 16", "https://pokepast.es/team-a-copy"},
		// Non-numeric placement: admitted to the ledger, then dropped.
		{"6", "In Person Event", "Yes", "15 Jan 2024", "Liverpool Regional Championships 2024", "Top Performer", "https://pokepast.es/team-c"},
		// Seniors division event: dropped after the ledger.
		{"7", "In Person Event", "Yes", "15 Jan 2024", "Liverpool Regional Championships 2024 Seniors", "Champion", "https://pokepast.es/team-d"},
		// Unparseable paste: silent skip.
		{"8", "In Person Event", "Yes", "15 Jan 2024", "Liverpool Regional Championships 2024", "Top 32", "https://pokepast.es/unparseable"},
		// Saved as liverpool_2024/2nd.txt despite a differently spelled event name.
		{"9", "In Person Event", "Yes", "", "2024 Liverpool Regionals", "Runner-Up", "https://pokepast.es/team-b"},
		// Short row: skipped as malformed.
		{"10", "In Person Event", "Yes"},
	}
}

func newTestScraper(t *testing.T, dataDir string) *Scraper {
	t.Helper()
	sheets := &fakeSheets{
		names: []string{"Reg G Featured Teams", "Reg G Featured Teams (Presentable)", "Archive"},
		rows:  map[string][][]string{"Reg G Featured Teams": featuredRows()},
	}
	pastes := &fakePastes{pastes: map[string]string{
		"https://pokepast.es/team-a":      teamA,
		"https://pokepast.es/team-a-copy": teamA,
		"https://pokepast.es/team-b":      teamB,
		"https://pokepast.es/team-c":      teamC,
		"https://pokepast.es/team-d":      teamD,
		"https://pokepast.es/banned":      bannedTeam,
		"https://pokepast.es/unparseable": unparseableTeam,
	}}
	return New(sheets, pastes, showdown.Validator{}, similarity.ExactScorer{}, Config{DataDir: dataDir})
}

func TestScrapeRegulation(t *testing.T) {
	dataDir := t.TempDir()
	s := newTestScraper(t, dataDir)

	stats, err := s.ScrapeRegulation(context.Background(), "G")
	require.NoError(t, err)

	assert.Equal(t, model.Stats{Saved: 2, Banned: 1, Duplicates: 1}, stats)

	eventDir := filepath.Join(dataDir, "teams", "regg", "liverpool_2024")
	first, err := os.ReadFile(filepath.Join(eventDir, "1st.txt"))
	require.NoError(t, err)
	assert.Equal(t, normalize.TeamText(teamA), string(first))

	second, err := os.ReadFile(filepath.Join(eventDir, "2nd.txt"))
	require.NoError(t, err)
	assert.Equal(t, normalize.TeamText(teamB), string(second))

	entries, err := os.ReadDir(eventDir)
	require.NoError(t, err)
	assert.Len(t, entries, 2, "non-numeric and out-of-policy rows produce no files")
}

func TestScrapeRegulationIdempotent(t *testing.T) {
	dataDir := t.TempDir()

	first, err := newTestScraper(t, dataDir).ScrapeRegulation(context.Background(), "G")
	require.NoError(t, err)

	second, err := newTestScraper(t, dataDir).ScrapeRegulation(context.Background(), "G")
	require.NoError(t, err)

	assert.Equal(t, 0, second.Saved)
	assert.Equal(t, first.Saved, second.AlreadyExisting)
	assert.Equal(t, first.Banned, second.Banned)
	assert.Equal(t, first.Duplicates, second.Duplicates)
}

func TestScrapeRegulationInvalidCode(t *testing.T) {
	tests := []struct {
		name       string
		regulation string
	}{
		{name: "empty", regulation: ""},
		{name: "two letters", regulation: "GG"},
		{name: "digit", regulation: "7"},
		{name: "symbol", regulation: "!"},
	}

	s := newTestScraper(t, t.TempDir())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.ScrapeRegulation(context.Background(), tt.regulation)
			assert.ErrorIs(t, err, common.ErrInvalidRegulation)
		})
	}
}

func TestScrapeRegulationFallbackSheetMissing(t *testing.T) {
	// No tabs match, so the synthesized fallback name is requested; the fake
	// returns a transport error for it, which must abort the run.
	sheets := &fakeSheets{names: []string{"Archive"}, rows: map[string][][]string{}}
	s := New(sheets, &fakePastes{}, showdown.Validator{}, similarity.ExactScorer{}, Config{DataDir: t.TempDir()})

	_, err := s.ScrapeRegulation(context.Background(), "G")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Reg G Featured Teams")
}

func TestScrapeSheetWithoutHeaderIsSkipped(t *testing.T) {
	sheets := &fakeSheets{
		names: []string{"Reg G Featured Teams"},
		rows: map[string][][]string{
			"Reg G Featured Teams": {{"nothing"}, {"useful", "here"}},
		},
	}
	s := New(sheets, &fakePastes{}, showdown.Validator{}, similarity.ExactScorer{}, Config{DataDir: t.TempDir()})

	stats, err := s.ScrapeRegulation(context.Background(), "G")
	require.NoError(t, err)
	assert.Equal(t, model.Stats{}, stats)
}

func TestScrapeSheetMissingColumnFailsFast(t *testing.T) {
	sheets := &fakeSheets{
		names: []string{"Reg G Featured Teams"},
		rows: map[string][][]string{
			"Reg G Featured Teams": {
				{"Team ID", "Category", "EVs", "Tournament / Event", "Pokepaste"},
			},
		},
	}
	s := New(sheets, &fakePastes{}, showdown.Validator{}, similarity.ExactScorer{}, Config{DataDir: t.TempDir()})

	_, err := s.ScrapeRegulation(context.Background(), "G")
	assert.ErrorIs(t, err, common.ErrMissingColumn)
}

func TestScrapePasteFailureAborts(t *testing.T) {
	sheets := &fakeSheets{
		names: []string{"Reg G Featured Teams"},
		rows: map[string][][]string{
			"Reg G Featured Teams": {
				{"Team ID", "Category", "EVs", "Date", "Tournament / Event", "Rank", "Pokepaste"},
				{"1", "In Person Event", "Yes", "15 Jan 2024", "Liverpool Regionals 2024", "Champion", "https://pokepast.es/gone"},
			},
		},
	}
	s := New(sheets, &fakePastes{pastes: map[string]string{}}, showdown.Validator{}, similarity.ExactScorer{}, Config{DataDir: t.TempDir()})

	_, err := s.ScrapeRegulation(context.Background(), "G")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to resolve paste")
}
