package testhelpers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
)

// ChatServer is a fake OpenAI compatible chat completion upstream.
type ChatServer struct {
	*httptest.Server

	calls    atomic.Int32
	mu       sync.Mutex
	lastBody map[string]any
	lastAuth string
}

// NewChatServer starts a fake upstream that answers every request with reply.
// It is closed when the test ends.
func NewChatServer(t testing.TB, reply http.HandlerFunc) *ChatServer {
	t.Helper()
	s := &ChatServer{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.calls.Add(1)
		raw, _ := io.ReadAll(r.Body)
		var body map[string]any
		_ = json.Unmarshal(raw, &body)

		s.mu.Lock()
		s.lastBody = body
		s.lastAuth = r.Header.Get("Authorization")
		s.mu.Unlock()

		reply(w, r)
	}))
	t.Cleanup(s.Close)
	return s
}

// Calls returns how many requests reached the server.
func (s *ChatServer) Calls() int {
	return int(s.calls.Load())
}

// LastAuthorization returns the Authorization header of the latest request.
func (s *ChatServer) LastAuthorization() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastAuth
}

// LastUserMessage returns the content of the last user message in the latest
// request, or "" when none was received.
func (s *ChatServer) LastUserMessage() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	messages, _ := s.lastBody["messages"].([]any)
	for i := len(messages) - 1; i >= 0; i-- {
		m, _ := messages[i].(map[string]any)
		if m["role"] == "user" {
			content, _ := m["content"].(string)
			return content
		}
	}
	return ""
}

// Reply answers with a single assistant choice carrying content.
func Reply(content string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":     "chatcmpl-test",
			"object": "chat.completion",
			"choices": []map[string]any{
				{"index": 0, "message": map[string]any{"role": "assistant", "content": content}, "finish_reason": "stop"},
			},
		})
	}
}

// Fail answers with status and a raw body.
func Fail(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}
