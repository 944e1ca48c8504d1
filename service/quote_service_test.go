package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateQuoteWithoutChatClient(t *testing.T) {
	s := NewQuoteService(nil)

	quote, err := s.GenerateQuote(context.Background(), QuoteRequest{
		CustomerName: "Jane Citizen",
		ServiceType:  "standard",
		Hours:        2,
	})
	require.NoError(t, err)

	// Quotes price for a GST-registered team.
	assert.Equal(t, 126.5, quote.Subtotal)
	assert.Equal(t, 12.65, quote.GSTAmount)
	assert.Equal(t, 139.15, quote.Total)

	// The deterministic template is used when no chat client is wired.
	assert.Contains(t, quote.Text, "Jane Citizen")
	assert.Contains(t, quote.Text, "$139.15")
	assert.Contains(t, quote.Text, "30 days")
}

func TestGenerateQuoteUnknownServiceType(t *testing.T) {
	s := NewQuoteService(nil)

	_, err := s.GenerateQuote(context.Background(), QuoteRequest{
		CustomerName: "Jane Citizen",
		ServiceType:  "chimney",
		Hours:        2,
	})
	assert.ErrorIs(t, err, ErrUnknownServiceType)
}
