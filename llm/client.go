package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"
	defaultTimeout = 30 * time.Second

	maxRetries     = 3
	initialBackoff = 2 * time.Second
	maxBackoff     = 10 * time.Second
)

var ErrNoContent = errors.New("chat completion returned no content")

// Doer is the HTTP execution surface the client needs. It is satisfied by
// *http.Client and by the shared lazily-initialized session owned by the
// address validator.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Message is a single chat message in a completion request.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client calls an OpenAI-compatible chat-completions endpoint.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient Doer
}

// Option is a functional option for Client
type Option func(*Client)

// WithAPIKey sets the bearer token
func WithAPIKey(key string) Option {
	return func(c *Client) {
		c.apiKey = key
	}
}

// WithModel sets the model identifier
func WithModel(model string) Option {
	return func(c *Client) {
		c.model = model
	}
}

// WithBaseURL overrides the API base URL
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithHTTPClient sets the HTTP client used for requests
func WithHTTPClient(d Doer) Option {
	return func(c *Client) {
		c.httpClient = d
	}
}

// NewClient creates a new chat-completions client
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL: defaultBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return c
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason,omitempty"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message,omitempty"`
		Type    string `json:"type,omitempty"`
	} `json:"error,omitempty"`
}

// Chat sends a chat-completion exchange and returns the generated text.
// Transport failures and non-2xx responses are retried up to maxRetries
// attempts with exponential backoff; 400 and 401 are not retried.
func (c *Client) Chat(ctx context.Context, messages []Message, temperature float64) (string, error) {
	reqBody := chatRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: temperature,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	backoff := initialBackoff
	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(backoff)
			backoff *= 2
			if backoff > maxBackoff {
				backoff = maxBackoff
			}
		}

		content, retryable, err := c.doChat(ctx, jsonData)
		if err == nil {
			return content, nil
		}
		lastErr = err
		if !retryable {
			return "", err
		}
	}

	return "", fmt.Errorf("chat completion failed after %d attempts: %w", maxRetries, lastErr)
}

func (c *Client) doChat(ctx context.Context, jsonData []byte) (string, bool, error) {
	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", false, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", true, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		// Don't retry on 400 or 401 errors
		retryable := resp.StatusCode != http.StatusBadRequest && resp.StatusCode != http.StatusUnauthorized
		return "", retryable, fmt.Errorf("API error: %d - %s", resp.StatusCode, string(bodyBytes))
	}

	var apiResp chatResponse
	if err := json.Unmarshal(bodyBytes, &apiResp); err != nil {
		log.Printf("Warning: failed to decode chat response. Body: %s", string(bodyBytes))
		return "", true, fmt.Errorf("failed to decode response: %w", err)
	}

	if apiResp.Error != nil && apiResp.Error.Message != "" {
		return "", true, fmt.Errorf("API error: %s (type: %s)", apiResp.Error.Message, apiResp.Error.Type)
	}

	if len(apiResp.Choices) == 0 {
		return "", true, ErrNoContent
	}

	choice := apiResp.Choices[0]
	if choice.FinishReason != "" && choice.FinishReason != "stop" {
		log.Printf("Warning: chat completion finished with reason: %s", choice.FinishReason)
	}

	if choice.Message.Content == "" {
		return "", true, ErrNoContent
	}

	return choice.Message.Content, false, nil
}
