package address

import (
	"regexp"
	"strings"
)

// Precompiled patterns for the structural tokens of an Australian address.
// Detection only: no ordering between tokens is enforced.
var (
	unitPattern         = regexp.MustCompile(`^\s*(\d+[A-Za-z]?)\s*/\s*\d`)
	streetNumberPattern = regexp.MustCompile(`\b(\d+[A-Za-z]?)(?:\s*-\s*\d+[A-Za-z]?)?\s+[A-Za-z]`)
	postcodePattern     = regexp.MustCompile(`\b(\d{4})\b`)
	statePattern        = regexp.MustCompile(`(?i)\b(VIC|NSW|QLD|WA|SA|TAS|ACT|NT)\b`)
	streetTypePattern   = regexp.MustCompile(`(?i)\b(street|st|road|rd|avenue|ave|av|boulevard|blvd|court|ct|crescent|cres|close|cl|circuit|cct|drive|dr|esplanade|esp|grove|gr|highway|hwy|lane|ln|parade|pde|place|pl|square|sq|terrace|tce|track|trk|way)\b\.?`)
)

// stateCodes maps full Australian state and territory names to their
// abbreviations, for suggestion records that carry the long form.
var stateCodes = map[string]string{
	"victoria":                     "VIC",
	"new south wales":              "NSW",
	"queensland":                   "QLD",
	"western australia":            "WA",
	"south australia":              "SA",
	"tasmania":                     "TAS",
	"australian capital territory": "ACT",
	"northern territory":           "NT",
}

// StateCode abbreviates a state name. Input that is already an abbreviation
// (any case) is upper-cased; anything unrecognized is returned as given.
func StateCode(state string) string {
	normalized := strings.ToLower(strings.TrimSpace(state))
	if code, ok := stateCodes[normalized]; ok {
		return code
	}
	if statePattern.MatchString(state) && len(strings.Fields(state)) == 1 {
		return strings.ToUpper(strings.TrimSpace(state))
	}
	return state
}

// PatternMatch reports which structural elements were found in a string.
// Empty string means the element was not located.
type PatternMatch struct {
	UnitNumber   string
	StreetNumber string
	StreetType   string
	State        string
	Postcode     string
}

// MatchPatterns locates address tokens in raw text. It is a pure, total
// function: it never fails, it just reports absence.
func MatchPatterns(text string) PatternMatch {
	var m PatternMatch

	rest := text
	if sub := unitPattern.FindStringSubmatch(text); sub != nil {
		m.UnitNumber = sub[1]
		// Skip past the unit prefix so the street number is not mistaken
		// for the unit.
		if idx := strings.Index(text, "/"); idx >= 0 {
			rest = text[idx+1:]
		}
	}

	if sub := streetNumberPattern.FindStringSubmatch(rest); sub != nil {
		m.StreetNumber = sub[1]
	}
	if sub := streetTypePattern.FindStringSubmatch(text); sub != nil {
		m.StreetType = sub[1]
	}
	if sub := statePattern.FindStringSubmatch(text); sub != nil {
		m.State = strings.ToUpper(sub[1])
	}
	if sub := postcodePattern.FindStringSubmatch(text); sub != nil {
		m.Postcode = sub[1]
	}

	return m
}
