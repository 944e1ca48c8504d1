package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cleanops-backend/address"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubValidator struct {
	candidates []address.Candidate
}

func (s *stubValidator) Validate(ctx context.Context, raw string) []address.Candidate {
	return s.candidates
}

func newAddressRouter(validator *stubValidator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/address/validate", NewAddressHandler(validator).ValidateAddress)
	return r
}

func TestValidateAddressVerified(t *testing.T) {
	router := newAddressRouter(&stubValidator{candidates: []address.Candidate{{
		RawInput:         "45 george st",
		FormattedAddress: "45 George Street, Sydney NSW 2000",
		Confidence:       0.95,
		Source:           address.SourceLLM,
	}}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/address/validate", strings.NewReader(`{"address":"45 george st"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Candidates []address.Candidate `json:"candidates"`
			Verified   bool                `json:"verified"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.True(t, resp.Data.Verified)
	require.Len(t, resp.Data.Candidates, 1)
	assert.Equal(t, 0.95, resp.Data.Candidates[0].Confidence)
}

func TestValidateAddressUnverified(t *testing.T) {
	router := newAddressRouter(&stubValidator{candidates: []address.Candidate{{
		RawInput:         "blue house",
		FormattedAddress: "blue house",
		Confidence:       0.5,
		Source:           address.SourceUserInput,
	}}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/address/validate", strings.NewReader(`{"address":"blue house"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Verified bool `json:"verified"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Data.Verified)
}

func TestValidateAddressMissingField(t *testing.T) {
	router := newAddressRouter(&stubValidator{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/address/validate", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
