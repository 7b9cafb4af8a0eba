// Package hosttest provides an in-process rendering host for tests.
//
// The server answers stencil method calls ("PUT /<address>@boot",
// "PUT /<address>@render") and serves static scripts by path, recording
// every request it receives.
package hosttest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/custodia-labs/stencil-cli/internal/core/domain"
)

// RenderFunc produces the replacement content for a render call.
type RenderFunc func(address, content string) (string, error)

// Call is a recorded stencil method call.
type Call struct {
	Address     string
	Method      string
	ContentType string
	Accept      string
	Body        []byte
}

// Server is a fake rendering host.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	calls    []Call
	fetches  []string
	render   RenderFunc
	scripts  map[string][]byte
	statuses map[string]int
}

// NewServer starts a host that echoes rendered content back unchanged.
// Close it when done.
func NewServer() *Server {
	s := &Server{
		render:   func(_, content string) (string, error) { return content, nil },
		scripts:  make(map[string][]byte),
		statuses: make(map[string]int),
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Put("/*", s.handleMethod)
	r.Get("/*", s.handleScript)

	s.Server = httptest.NewServer(r)
	return s
}

// OnRender replaces the render behaviour.
func (s *Server) OnRender(fn RenderFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.render = fn
}

// FailWith makes every call to method answer with status.
func (s *Server) FailWith(method string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statuses[method] = status
}

// ServeScript makes the host answer GET path with body.
func (s *Server) ServeScript(path string, body []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scripts[path] = body
}

// Calls returns the recorded method calls.
func (s *Server) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Call(nil), s.calls...)
}

// CallsTo returns the recorded calls of one method.
func (s *Server) CallsTo(method string) []Call {
	var out []Call
	for _, c := range s.Calls() {
		if c.Method == method {
			out = append(out, c)
		}
	}
	return out
}

// Fetches returns the paths of script requests, including misses.
func (s *Server) Fetches() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.fetches...)
}

// Location returns a Location on this host for address.
func (s *Server) Location(address string) domain.Location {
	u, _ := url.Parse(s.URL)
	return domain.Location{
		Protocol: u.Scheme + ":",
		Host:     u.Hostname(),
		Port:     u.Port(),
		Address:  domain.DocumentAddress(address),
	}
}

func (s *Server) handleMethod(w http.ResponseWriter, r *http.Request) {
	path := chi.URLParam(r, "*")
	address, method, ok := strings.Cut(path, "@")
	if !ok {
		http.Error(w, "missing method", http.StatusNotFound)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	s.calls = append(s.calls, Call{
		Address:     address,
		Method:      method,
		ContentType: r.Header.Get("Content-Type"),
		Accept:      r.Header.Get("Accept"),
		Body:        body,
	})
	status, failing := s.statuses[method]
	render := s.render
	s.mu.Unlock()

	if failing {
		http.Error(w, method+" failed", status)
		return
	}

	switch method {
	case domain.MethodBoot:
		writeJSON(w, map[string]any{"address": address, "booted": true})
	case domain.MethodRender:
		var req domain.RenderRequest
		if err := json.Unmarshal(body, &req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if req.Format != domain.FormatHTML {
			http.Error(w, "unsupported format", http.StatusUnprocessableEntity)
			return
		}
		content, err := render(address, req.Content)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, domain.RenderResponse{Content: content})
	default:
		http.Error(w, "unknown method "+method, http.StatusNotFound)
	}
}

func (s *Server) handleScript(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.fetches = append(s.fetches, r.URL.Path)
	body, ok := s.scripts[r.URL.Path]
	s.mu.Unlock()

	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/javascript")
	_, _ = w.Write(body)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(v)
}
