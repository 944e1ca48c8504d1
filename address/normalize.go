package address

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"

	"cleanops-backend/llm"
)

// Temperature for normalization calls; low to bias toward deterministic
// extraction over creative rewriting.
const normalizeTemperature = 0.1

const normalizeSystemPrompt = `You are an Australian postal address specialist. ` +
	`You validate, standardise and score user-entered Australian addresses.`

const normalizeReplyFormat = `Reply with exactly these labelled lines and nothing else:
Normalized Address: <the full standardised address>
Unit: <unit number, or N/A>
Street Number: <street number, or N/A>
Street: <street name and type, or N/A>
Suburb: <suburb, or N/A>
State: <VIC, NSW, QLD, WA, SA, TAS, ACT or NT, or N/A>
Postcode: <4-digit postcode, or N/A>
Confidence: <decimal between 0 and 1 estimating how likely this interpretation is correct>

Use N/A for any field you cannot determine. Do not add any commentary.`

// Per-field patterns for the labelled-line reply. The address and
// confidence lines are mandatory; everything else is optional.
var (
	replyAddressPattern      = regexp.MustCompile(`(?im)^\s*Normalized Address:\s*(.+?)\s*$`)
	replyConfidencePattern   = regexp.MustCompile(`(?im)^\s*Confidence:\s*([0-9]*\.?[0-9]+)`)
	replyUnitPattern         = regexp.MustCompile(`(?im)^\s*Unit:\s*(.+?)\s*$`)
	replyStreetNumberPattern = regexp.MustCompile(`(?im)^\s*Street Number:\s*(.+?)\s*$`)
	replyStreetPattern       = regexp.MustCompile(`(?im)^\s*Street:\s*(.+?)\s*$`)
	replySuburbPattern       = regexp.MustCompile(`(?im)^\s*Suburb:\s*(.+?)\s*$`)
	replyStatePattern        = regexp.MustCompile(`(?im)^\s*State:\s*(.+?)\s*$`)
	replyPostcodePattern     = regexp.MustCompile(`(?im)^\s*Postcode:\s*(.+?)\s*$`)
)

// Normalizer asks the LLM to parse, standardise and score one candidate
// address. Retry and backoff live in the underlying chat client; exhausted
// retries surface here as a nil result, not an error.
type Normalizer struct {
	client *llm.Client
}

// NewNormalizer creates a normalizer over the given chat client.
func NewNormalizer(client *llm.Client) *Normalizer {
	return &Normalizer{client: client}
}

// NormalizedAddress is the parsed form of a successful LLM reply.
type NormalizedAddress struct {
	FormattedAddress string
	Confidence       float64
	UnitNumber       string
	Components       map[string]string
}

// Normalize sends one candidate (the raw text, optionally paired with one
// upstream suggestion) through the LLM and parses the reply. It returns
// nil when the call fails, the reply is missing a mandatory field, or the
// model could not determine the address.
func (n *Normalizer) Normalize(ctx context.Context, raw string, suggestion *Suggestion) *NormalizedAddress {
	var prompt strings.Builder
	prompt.WriteString("Normalise the following Australian address.\n\n")
	prompt.WriteString(fmt.Sprintf("Address: %s\n", raw))
	if suggestion != nil {
		prompt.WriteString(fmt.Sprintf("Suggested match: %s\n", suggestion.FormatLine()))
	}
	prompt.WriteString("\n")
	prompt.WriteString(normalizeReplyFormat)

	messages := []llm.Message{
		{Role: "system", Content: normalizeSystemPrompt},
		{Role: "user", Content: prompt.String()},
	}

	reply, err := n.client.Chat(ctx, messages, normalizeTemperature)
	if err != nil {
		log.Printf("Warning: address normalization call failed: %v", err)
		return nil
	}

	return parseNormalizeReply(reply)
}

// parseNormalizeReply extracts the labelled fields from the reply text.
// A reply missing the address or confidence line, or whose address is
// "N/A", yields nil. Optional fields answered "N/A" are omitted.
func parseNormalizeReply(reply string) *NormalizedAddress {
	addressMatch := replyAddressPattern.FindStringSubmatch(reply)
	confidenceMatch := replyConfidencePattern.FindStringSubmatch(reply)
	if addressMatch == nil || confidenceMatch == nil {
		return nil
	}

	formatted := strings.TrimSpace(addressMatch[1])
	if formatted == "" || strings.EqualFold(formatted, "N/A") {
		return nil
	}

	confidence, err := strconv.ParseFloat(confidenceMatch[1], 64)
	if err != nil {
		return nil
	}
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}

	result := &NormalizedAddress{
		FormattedAddress: formatted,
		Confidence:       confidence,
		Components:       make(map[string]string),
	}

	setComponent := func(field string, pattern *regexp.Regexp) string {
		match := pattern.FindStringSubmatch(reply)
		if match == nil {
			return ""
		}
		value := strings.TrimSpace(match[1])
		if value == "" || strings.EqualFold(value, "N/A") {
			return ""
		}
		result.Components[field] = value
		return value
	}

	result.UnitNumber = setComponent(ComponentUnit, replyUnitPattern)
	setComponent(ComponentStreetNumber, replyStreetNumberPattern)
	setComponent(ComponentStreet, replyStreetPattern)
	setComponent(ComponentSuburb, replySuburbPattern)
	setComponent(ComponentState, replyStatePattern)
	setComponent(ComponentPostcode, replyPostcodePattern)

	return result
}
