package address

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNormalizeReply(t *testing.T) {
	reply := `Normalized Address: 2/45 George Street, Sydney NSW 2000
Unit: 2
Street Number: 45
Street: George Street
Suburb: Sydney
State: NSW
Postcode: 2000
Confidence: 0.92`

	result := parseNormalizeReply(reply)
	require.NotNil(t, result)
	assert.Equal(t, "2/45 George Street, Sydney NSW 2000", result.FormattedAddress)
	assert.Equal(t, 0.92, result.Confidence)
	assert.Equal(t, "2", result.UnitNumber)
	assert.Equal(t, map[string]string{
		ComponentUnit:         "2",
		ComponentStreetNumber: "45",
		ComponentStreet:       "George Street",
		ComponentSuburb:       "Sydney",
		ComponentState:        "NSW",
		ComponentPostcode:     "2000",
	}, result.Components)
}

func TestParseNormalizeReplyOptionalFieldsNA(t *testing.T) {
	reply := `Normalized Address: 45 George Street, Sydney NSW 2000
Unit: N/A
Street Number: 45
Street: George Street
Suburb: Sydney
State: NSW
Postcode: N/A
Confidence: 0.7`

	result := parseNormalizeReply(reply)
	require.NotNil(t, result)
	assert.Empty(t, result.UnitNumber)
	assert.NotContains(t, result.Components, ComponentUnit)
	assert.NotContains(t, result.Components, ComponentPostcode)
	assert.Equal(t, "45", result.Components[ComponentStreetNumber])
}

func TestParseNormalizeReplyMissingMandatoryFields(t *testing.T) {
	// No confidence line.
	assert.Nil(t, parseNormalizeReply("Normalized Address: 45 George Street"))

	// No address line.
	assert.Nil(t, parseNormalizeReply("Confidence: 0.8"))

	// Address answered N/A.
	assert.Nil(t, parseNormalizeReply("Normalized Address: N/A\nConfidence: 0.8"))

	// Free-form chatter instead of labelled lines.
	assert.Nil(t, parseNormalizeReply("I think this address is probably in Sydney somewhere."))

	assert.Nil(t, parseNormalizeReply(""))
}

func TestParseNormalizeReplyConfidenceClamped(t *testing.T) {
	result := parseNormalizeReply("Normalized Address: 45 George Street\nConfidence: 1.7")
	require.NotNil(t, result)
	assert.Equal(t, 1.0, result.Confidence)
}

func TestParseNormalizeReplyTolerantOfSurroundingText(t *testing.T) {
	// Labels are matched per line, so leading whitespace and extra lines
	// around the block do not break parsing.
	reply := "Here is the result:\n  Normalized Address: 45 George Street, Sydney NSW 2000\n  Confidence: 0.85\nThanks!"
	result := parseNormalizeReply(reply)
	require.NotNil(t, result)
	assert.Equal(t, "45 George Street, Sydney NSW 2000", result.FormattedAddress)
	assert.Equal(t, 0.85, result.Confidence)
}
