package address

import (
	"net/http"
	"sync"
	"time"
)

const sessionTimeout = 15 * time.Second

// Session is the shared network handle used by the suggestion and LLM
// clients of one validator. The underlying http.Client is created on first
// use and may carry concurrent outstanding requests; Close must be called
// once validation work is finished to release pooled connections.
type Session struct {
	mu      sync.Mutex
	timeout time.Duration
	client  *http.Client
}

// NewSession creates a session with the default per-request timeout.
func NewSession() *Session {
	return &Session{timeout: sessionTimeout}
}

// Do executes the request, creating the underlying client on first use.
func (s *Session) Do(req *http.Request) (*http.Response, error) {
	s.mu.Lock()
	if s.client == nil {
		s.client = &http.Client{Timeout: s.timeout}
	}
	client := s.client
	s.mu.Unlock()

	return client.Do(req)
}

// Close releases the pooled connections held by the session. The session
// remains usable afterwards; a later request lazily re-creates the client.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.client != nil {
		s.client.CloseIdleConnections()
		s.client = nil
	}
}
