package address

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"

	"cleanops-backend/llm"
)

const (
	defaultSuggestURL = "https://autosuggest.search.hereapi.com/v1/autosuggest"
	suggestLimit      = 5
	targetCountry     = "AUS"
	suggestLanguage   = "en-AU"
)

// Suggestion is one raw, unscored address record from the autosuggest
// provider, prior to LLM normalization.
type Suggestion struct {
	Unit        string
	HouseNumber string
	Street      string
	District    string
	State       string
	PostalCode  string
	CountryCode string
}

// FormatLine renders the suggestion as the single comma-joined line that is
// embedded in the normalization prompt. Missing pieces are skipped; the
// state is abbreviated to its code.
func (s Suggestion) FormatLine() string {
	pieces := make([]string, 0, 6)
	for _, piece := range []string{
		s.Unit,
		s.HouseNumber,
		s.Street,
		s.District,
		StateCode(s.State),
		s.PostalCode,
	} {
		if strings.TrimSpace(piece) != "" {
			pieces = append(pieces, strings.TrimSpace(piece))
		}
	}
	return strings.Join(pieces, ", ")
}

// Components maps the suggestion's sub-fields into candidate component
// form, omitting anything the provider left empty.
func (s Suggestion) Components() map[string]string {
	components := make(map[string]string)
	set := func(field, value string) {
		if strings.TrimSpace(value) != "" {
			components[field] = strings.TrimSpace(value)
		}
	}
	set(ComponentUnit, s.Unit)
	set(ComponentStreetNumber, s.HouseNumber)
	set(ComponentStreet, s.Street)
	set(ComponentSuburb, s.District)
	set(ComponentState, StateCode(s.State))
	set(ComponentPostcode, s.PostalCode)
	return components
}

// SuggestClient wraps the third-party address-autosuggest endpoint.
type SuggestClient struct {
	apiKey      string
	baseURL     string
	countryCode string
	language    string
	at          string // optional geo-bias point, "lat,lng"
	httpClient  llm.Doer
}

// SuggestOption is a functional option for SuggestClient
type SuggestOption func(*SuggestClient)

// SuggestWithAPIKey sets the provider API key
func SuggestWithAPIKey(key string) SuggestOption {
	return func(c *SuggestClient) {
		c.apiKey = key
	}
}

// SuggestWithBaseURL overrides the autosuggest endpoint URL
func SuggestWithBaseURL(url string) SuggestOption {
	return func(c *SuggestClient) {
		c.baseURL = url
	}
}

// SuggestWithGeoBias sets the geo-bias point sent with each query
func SuggestWithGeoBias(at string) SuggestOption {
	return func(c *SuggestClient) {
		c.at = at
	}
}

// SuggestWithHTTPClient sets the HTTP client used for requests
func SuggestWithHTTPClient(d llm.Doer) SuggestOption {
	return func(c *SuggestClient) {
		c.httpClient = d
	}
}

// NewSuggestClient creates a client restricted to Australian addresses.
func NewSuggestClient(opts ...SuggestOption) *SuggestClient {
	c := &SuggestClient{
		baseURL:     defaultSuggestURL,
		countryCode: targetCountry,
		language:    suggestLanguage,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = NewSession()
	}
	return c
}

type suggestResponse struct {
	Items []struct {
		Address struct {
			Unit        string `json:"unit"`
			HouseNumber string `json:"houseNumber"`
			Street      string `json:"street"`
			District    string `json:"district"`
			State       string `json:"state"`
			PostalCode  string `json:"postalCode"`
			CountryCode string `json:"countryCode"`
		} `json:"address"`
	} `json:"items"`
}

// FetchSuggestions returns up to suggestLimit raw suggestion records for
// the query text. Any transport or HTTP-level failure degrades to an empty
// list with a logged warning; it never surfaces as an error.
func (c *SuggestClient) FetchSuggestions(ctx context.Context, text string) []Suggestion {
	params := url.Values{}
	params.Set("q", text)
	params.Set("apiKey", c.apiKey)
	params.Set("limit", fmt.Sprintf("%d", suggestLimit))
	params.Set("in", "countryCode:"+c.countryCode)
	params.Set("lang", c.language)
	if c.at != "" {
		params.Set("at", c.at)
	}

	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		log.Printf("Warning: failed to build autosuggest request: %v", err)
		return nil
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("Warning: address suggestion lookup failed: %v", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		log.Printf("Warning: autosuggest API error: %d - %s", resp.StatusCode, string(body))
		return nil
	}

	var apiResp suggestResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		log.Printf("Warning: failed to decode autosuggest response: %v", err)
		return nil
	}

	suggestions := make([]Suggestion, 0, len(apiResp.Items))
	for _, item := range apiResp.Items {
		suggestions = append(suggestions, Suggestion{
			Unit:        item.Address.Unit,
			HouseNumber: item.Address.HouseNumber,
			Street:      item.Address.Street,
			District:    item.Address.District,
			State:       item.Address.State,
			PostalCode:  item.Address.PostalCode,
			CountryCode: item.Address.CountryCode,
		})
	}
	return suggestions
}
