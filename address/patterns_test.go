package address

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchPatterns(t *testing.T) {
	tests := []struct {
		name string
		text string
		want PatternMatch
	}{
		{
			name: "full street line",
			text: "123 Main Street",
			want: PatternMatch{StreetNumber: "123", StreetType: "Street"},
		},
		{
			name: "unit prefix",
			text: "2/45 George St",
			want: PatternMatch{UnitNumber: "2", StreetNumber: "45", StreetType: "St"},
		},
		{
			name: "lettered unit",
			text: "4B/12 Collins Street",
			want: PatternMatch{UnitNumber: "4B", StreetNumber: "12", StreetType: "Street"},
		},
		{
			name: "ranged street number",
			text: "12-14 Station Road",
			want: PatternMatch{StreetNumber: "12", StreetType: "Road"},
		},
		{
			name: "state and postcode",
			text: "Richmond VIC 3121",
			want: PatternMatch{State: "VIC", Postcode: "3121"},
		},
		{
			name: "lowercase state",
			text: "Bondi nsw 2026",
			want: PatternMatch{State: "NSW", Postcode: "2026"},
		},
		{
			name: "no tokens",
			text: "somewhere over the rainbow",
			want: PatternMatch{},
		},
		{
			name: "street type abbreviation with dot",
			text: "9 High Rd.",
			want: PatternMatch{StreetNumber: "9", StreetType: "Rd"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchPatterns(tt.text))
		})
	}
}

func TestMatchPatternsUnitNotMistakenForStreetNumber(t *testing.T) {
	// The unit prefix must not be re-detected as the street number.
	m := MatchPatterns("12/34 Smith Street")
	assert.Equal(t, "12", m.UnitNumber)
	assert.Equal(t, "34", m.StreetNumber)
}

func TestStateCode(t *testing.T) {
	assert.Equal(t, "VIC", StateCode("Victoria"))
	assert.Equal(t, "NSW", StateCode("new south wales"))
	assert.Equal(t, "ACT", StateCode("Australian Capital Territory"))
	assert.Equal(t, "QLD", StateCode("qld"))
	assert.Equal(t, "WA", StateCode("WA"))

	// Unrecognized input passes through untouched.
	assert.Equal(t, "Springfield", StateCode("Springfield"))
	assert.Equal(t, "", StateCode(""))
}
