package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"cleanops-backend/llm"
)

const quoteTemperature = 0.4

// QuoteService produces written price quotes for prospective customers.
// The wording is drafted by the LLM when available; pricing itself always
// comes from the fixed rate table.
type QuoteService struct {
	chat *llm.Client
}

// NewQuoteService creates a new quote service. A nil chat client disables
// LLM drafting; quotes then use the deterministic template.
func NewQuoteService(chat *llm.Client) *QuoteService {
	return &QuoteService{chat: chat}
}

// QuoteRequest represents a request for a written quote
type QuoteRequest struct {
	CustomerName string
	ServiceType  string
	Hours        float64
}

// QuoteResult carries the computed price and the quote wording
type QuoteResult struct {
	ServiceType string  `json:"service_type"`
	Hours       float64 `json:"hours"`
	Subtotal    float64 `json:"subtotal"`
	GSTAmount   float64 `json:"gst_amount"`
	Total       float64 `json:"total"`
	Text        string  `json:"text"`
}

// GenerateQuote computes the price for a prospective job and drafts the
// covering text. Quotes assume a GST-registered team since assignment
// happens later.
func (s *QuoteService) GenerateQuote(ctx context.Context, req QuoteRequest) (*QuoteResult, error) {
	_, subtotal, gst, total, err := ComputeCharges(req.ServiceType, req.Hours, true)
	if err != nil {
		return nil, err
	}

	result := &QuoteResult{
		ServiceType: req.ServiceType,
		Hours:       req.Hours,
		Subtotal:    subtotal,
		GSTAmount:   gst,
		Total:       total,
	}

	result.Text = s.draftText(ctx, req, total)
	return result, nil
}

func (s *QuoteService) draftText(ctx context.Context, req QuoteRequest, total float64) string {
	fallback := fmt.Sprintf(
		"Dear %s,\n\nThank you for your enquiry. We can provide %s cleaning (%.1f hours) for a total of $%.2f including GST. This quote is valid for 30 days.\n",
		req.CustomerName, strings.ReplaceAll(req.ServiceType, "_", " "), req.Hours, total)

	if s.chat == nil {
		return fallback
	}

	messages := []llm.Message{
		{Role: "system", Content: "You write short, friendly, professional quotes for a cleaning-services business. Plain text only, no markdown."},
		{Role: "user", Content: fmt.Sprintf(
			"Write a brief quote letter for %s: %s cleaning, %.1f hours, total $%.2f including GST. Mention the quote is valid for 30 days. Keep it under 120 words.",
			req.CustomerName, strings.ReplaceAll(req.ServiceType, "_", " "), req.Hours, total)},
	}

	text, err := s.chat.Chat(ctx, messages, quoteTemperature)
	if err != nil {
		log.Printf("Warning: quote drafting failed, using template text: %v", err)
		return fallback
	}
	return text
}
