package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlacementFilename(t *testing.T) {
	tests := []struct {
		name      string
		placement string
		want      string
	}{
		{name: "champion maps to 1st", placement: "Champion", want: "1st"},
		{name: "winner maps to 1st", placement: "Winner", want: "1st"},
		{name: "runner-up maps to 2nd", placement: "Runner-Up", want: "2nd"},
		{name: "runner up with space", placement: "runner up", want: "2nd"},
		{name: "numeric rank passes through", placement: "Top 4", want: "top_4"},
		{name: "already numeric", placement: "3rd", want: "3rd"},
		{name: "empty placement", placement: "", want: "unknown_placement"},
		{name: "symbols only", placement: "???", want: "unknown_placement"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PlacementFilename(tt.placement))
		})
	}
}

func TestEventName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "strips regional championships", input: "Liverpool Regional Championships", want: "Liverpool"},
		{name: "strips regionals", input: "Knoxville Regionals", want: "Knoxville"},
		{name: "strips regional", input: "Perth Regional 2024", want: "Perth 2024"},
		{name: "case insensitive", input: "PERTH REGIONAL CHAMPIONSHIP", want: "PERTH"},
		{name: "collapses whitespace", input: "Santiago   Regional  Championships", want: "Santiago"},
		{name: "untouched when no suffix", input: "Worlds 2024", want: "Worlds 2024"},
		{name: "word bounded", input: "Regionalville Open", want: "Regionalville Open"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EventName(tt.input))
		})
	}
}
