package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req chatRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req.Model)
		assert.Equal(t, 0.1, req.Temperature)
		assert.Len(t, req.Messages, 2)

		fmt.Fprint(w, `{"choices":[{"message":{"role":"assistant","content":"hello"},"finish_reason":"stop"}]}`)
	}))
	defer server.Close()

	client := NewClient(
		WithAPIKey("test-key"),
		WithModel("test-model"),
		WithBaseURL(server.URL),
	)

	content, err := client.Chat(context.Background(), []Message{
		{Role: "system", Content: "be brief"},
		{Role: "user", Content: "say hello"},
	}, 0.1)

	require.NoError(t, err)
	assert.Equal(t, "hello", content)
}

func TestChatDoesNotRetryClientErrors(t *testing.T) {
	for _, status := range []int{http.StatusBadRequest, http.StatusUnauthorized} {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			http.Error(w, `{"error":{"message":"nope"}}`, status)
		}))

		client := NewClient(WithAPIKey("test-key"), WithModel("test-model"), WithBaseURL(server.URL))
		_, err := client.Chat(context.Background(), []Message{{Role: "user", Content: "hi"}}, 0)

		assert.Error(t, err)
		assert.Equal(t, int32(1), calls.Load(), "status %d must not be retried", status)
		server.Close()
	}
}

func TestChatRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, "upstream hiccup", http.StatusBadGateway)
			return
		}
		fmt.Fprint(w, `{"choices":[{"message":{"role":"assistant","content":"recovered"}}]}`)
	}))
	defer server.Close()

	client := NewClient(WithAPIKey("test-key"), WithModel("test-model"), WithBaseURL(server.URL))
	content, err := client.Chat(context.Background(), []Message{{Role: "user", Content: "hi"}}, 0)

	require.NoError(t, err)
	assert.Equal(t, "recovered", content)
	assert.Equal(t, int32(2), calls.Load())
}

func TestChatEmptyChoices(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		fmt.Fprint(w, `{"choices":[]}`)
	}))
	defer server.Close()

	client := NewClient(WithAPIKey("test-key"), WithModel("test-model"), WithBaseURL(server.URL))
	_, err := client.Chat(context.Background(), []Message{{Role: "user", Content: "hi"}}, 0)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoContent)
	assert.Equal(t, int32(maxRetries), calls.Load())
}

func TestChatAPIErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"error":{"message":"model overloaded","type":"overloaded_error"}}`)
	}))
	defer server.Close()

	client := NewClient(WithAPIKey("test-key"), WithModel("test-model"), WithBaseURL(server.URL))
	_, err := client.Chat(context.Background(), []Message{{Role: "user", Content: "hi"}}, 0)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "model overloaded")
}
