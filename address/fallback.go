package address

import (
	"math"
	"strings"
)

const (
	baseConfidence  = 0.5
	signalIncrement = 0.1
)

// FallbackValidate applies the pattern matcher to the raw input when the
// LLM path produced nothing usable. The first comma segment is scanned for
// unit, street number and street type; the remaining segments for state
// and postcode. Confidence starts at the 0.5 base and gains 0.1 per
// structural signal found; a result is only emitted when at least one
// signal lifted it above the base, otherwise nil.
func FallbackValidate(raw string) *Candidate {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	segments := strings.Split(raw, ",")
	first := segments[0]
	rest := strings.Join(segments[1:], ",")

	streetMatch := MatchPatterns(first)
	localityMatch := MatchPatterns(rest)

	confidence := baseConfidence
	components := make(map[string]string)

	if streetMatch.StreetNumber != "" && streetMatch.StreetType != "" {
		confidence += signalIncrement
		components[ComponentStreetNumber] = streetMatch.StreetNumber
	}
	if localityMatch.State != "" {
		confidence += signalIncrement
		components[ComponentState] = localityMatch.State
	}
	if localityMatch.Postcode != "" {
		confidence += signalIncrement
		components[ComponentPostcode] = localityMatch.Postcode
	}
	if streetMatch.UnitNumber != "" {
		confidence += signalIncrement
		components[ComponentUnit] = streetMatch.UnitNumber
	}

	if confidence <= baseConfidence {
		return nil
	}

	return &Candidate{
		RawInput:         raw,
		FormattedAddress: raw,
		Confidence:       math.Round(confidence*100) / 100,
		Components:       components,
		UnitNumber:       streetMatch.UnitNumber,
		Source:           SourceFallback,
	}
}
