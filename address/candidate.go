package address

// Source records which pipeline stage produced a candidate. Callers use it
// to decide whether to show an "unverified" warning next to the address.
type Source string

const (
	SourceLLM       Source = "llm"
	SourceFallback  Source = "fallback"
	SourceUserInput Source = "user_input"
)

// Component field names used in Candidate.Components.
const (
	ComponentUnit         = "unit"
	ComponentStreetNumber = "street_number"
	ComponentStreet       = "street"
	ComponentSuburb       = "suburb"
	ComponentState        = "state"
	ComponentPostcode     = "postcode"
)

// Candidate is one proposed interpretation of a raw address. Candidates are
// immutable once constructed; a returned list is sorted by confidence
// descending and holds no two candidates with the same formatted address.
type Candidate struct {
	RawInput         string            `json:"raw_input"`
	FormattedAddress string            `json:"formatted_address"`
	Confidence       float64           `json:"confidence_score"`
	Components       map[string]string `json:"components,omitempty"`
	UnitNumber       string            `json:"unit_number,omitempty"`
	Source           Source            `json:"validation_source"`
}
