// Package backendtest runs a stub BeTogether backend for tests.
package backendtest

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"betogether-admin/internal/backend"
	"betogether-admin/internal/backend/config"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// Call is one request the stub received.
type Call struct {
	Method      string
	Path        string
	Auth        string
	ContentType string
	Body        []byte
}

// Server is an httptest server with per-route handlers and a call log.
type Server struct {
	*httptest.Server
	mux *http.ServeMux

	mu    sync.Mutex
	calls []Call
}

// NewServer starts a stub backend that is closed when the test ends.
func NewServer(t testing.TB) *Server {
	s := &Server{mux: http.NewServeMux()}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Close)
	return s
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	r.Body = io.NopCloser(bytes.NewReader(body))
	s.mu.Lock()
	s.calls = append(s.calls, Call{
		Method:      r.Method,
		Path:        r.URL.Path,
		Auth:        r.Header.Get("Authorization"),
		ContentType: r.Header.Get("Content-Type"),
		Body:        body,
	})
	s.mu.Unlock()
	s.mux.ServeHTTP(w, r)
}

// Handle registers fn for method and path. Paths may use ServeMux wildcards.
func (s *Server) Handle(method, path string, fn http.HandlerFunc) {
	s.mux.HandleFunc(method+" "+path, fn)
}

// Reply registers a canned JSON response.
func (s *Server) Reply(method, path string, status int, body interface{}) {
	s.Handle(method, path, func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, status, body)
	})
}

// Calls returns every request received so far.
func (s *Server) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Call, len(s.calls))
	copy(out, s.calls)
	return out
}

// CallsTo returns the requests received for method and path.
func (s *Server) CallsTo(method, path string) []Call {
	var out []Call
	for _, c := range s.Calls() {
		if c.Method == method && c.Path == path {
			out = append(out, c)
		}
	}
	return out
}

// Config returns a backend configuration pointing at the stub.
func (s *Server) Config() *config.Config {
	return &config.Config{Host: s.URL, Timeout: 5 * time.Second}
}

// Client returns a backend client pointing at the stub.
func (s *Server) Client(t testing.TB) *backend.Client {
	client, err := backend.NewClient(s.Config(), zap.NewNop())
	require.NoError(t, err)
	return client
}

// WriteJSON writes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	body, _ := sonic.Marshal(v)
	_, _ = w.Write(body)
}

// M is shorthand for JSON objects in stub responses.
type M = map[string]interface{}
