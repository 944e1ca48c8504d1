package address

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFallbackValidateAllSignals(t *testing.T) {
	candidate := FallbackValidate("2/45 George St, Sydney NSW 2000")
	require.NotNil(t, candidate)

	// Base 0.5 plus street, state, postcode and unit signals.
	assert.Equal(t, 0.9, candidate.Confidence)
	assert.Equal(t, SourceFallback, candidate.Source)
	assert.Equal(t, "2/45 George St, Sydney NSW 2000", candidate.FormattedAddress)
	assert.Equal(t, "2", candidate.UnitNumber)
	assert.Equal(t, "45", candidate.Components[ComponentStreetNumber])
	assert.Equal(t, "NSW", candidate.Components[ComponentState])
	assert.Equal(t, "2000", candidate.Components[ComponentPostcode])
	assert.Equal(t, "2", candidate.Components[ComponentUnit])
}

func TestFallbackValidateFullStreetAddress(t *testing.T) {
	candidate := FallbackValidate("12/34 Smith Street, Carlton VIC 3053")
	require.NotNil(t, candidate)
	assert.Equal(t, 0.9, candidate.Confidence)
	assert.Equal(t, "12", candidate.UnitNumber)
}

func TestFallbackValidateUnitOnly(t *testing.T) {
	// The unit detector is an increment like any other, so a unit with no
	// street type, state or postcode still clears the base.
	candidate := FallbackValidate("2/9 zzz qqq")
	require.NotNil(t, candidate)
	assert.Equal(t, 0.6, candidate.Confidence)
	assert.Equal(t, map[string]string{ComponentUnit: "2"}, candidate.Components)
}

func TestFallbackValidateSingleSignal(t *testing.T) {
	candidate := FallbackValidate("somewhere, Melbourne VIC")
	require.NotNil(t, candidate)
	assert.Equal(t, 0.6, candidate.Confidence)
	assert.Equal(t, "VIC", candidate.Components[ComponentState])
	assert.Empty(t, candidate.Components[ComponentPostcode])
}

func TestFallbackValidateStreetSignalNeedsBothTokens(t *testing.T) {
	// A street number without a street type is not a signal on its own.
	candidate := FallbackValidate("123 Anything, QLD")
	require.NotNil(t, candidate)
	assert.Equal(t, 0.6, candidate.Confidence)
	assert.Empty(t, candidate.Components[ComponentStreetNumber])
}

func TestFallbackValidateNoSignals(t *testing.T) {
	assert.Nil(t, FallbackValidate("complete gibberish"))
	assert.Nil(t, FallbackValidate(""))
	assert.Nil(t, FallbackValidate("   "))
}

func TestFallbackValidateStateOnlyCountedAfterFirstComma(t *testing.T) {
	// State and postcode are locality tokens; in the first segment they are
	// part of the street line and do not score.
	candidate := FallbackValidate("VIC 3121 without commas")
	assert.Nil(t, candidate)
}
