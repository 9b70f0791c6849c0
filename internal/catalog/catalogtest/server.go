// Package catalogtest provides a fake provider API for tests.
package catalogtest

import (
	"net/http"
	"net/http/httptest"
	"sync"

	"zee5/internal/catalog"
	"zee5/internal/config"
)

// Server is a TLS test server that answers provider API paths with canned
// JSON bodies and counts every request it receives.
type Server struct {
	*httptest.Server

	mu        sync.Mutex
	responses map[string]response
	hits      map[string]int
	headers   []http.Header
}

type response struct {
	status int
	body   string
}

// NewServer starts a fake API. Close it when done.
func NewServer() *Server {
	s := &Server{
		responses: make(map[string]response),
		hits:      make(map[string]int),
	}
	s.Server = httptest.NewTLSServer(http.HandlerFunc(s.handle))
	return s
}

// Handle registers a 200 JSON body for a path.
func (s *Server) Handle(path, body string) {
	s.HandleStatus(path, http.StatusOK, body)
}

// HandleStatus registers a status and body for a path.
func (s *Server) HandleStatus(path string, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.responses[path] = response{status: status, body: body}
}

// Hits returns how many requests reached path.
func (s *Server) Hits(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[path]
}

// TotalHits returns the number of requests received on any path.
func (s *Server) TotalHits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, h := range s.hits {
		n += h
	}
	return n
}

// Headers returns the request headers seen so far, in arrival order.
func (s *Server) Headers() []http.Header {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]http.Header(nil), s.headers...)
}

// Endpoints points every provider host at this server.
func (s *Server) Endpoints() config.Endpoints {
	return config.Endpoints{
		API:        s.URL,
		UserAction: s.URL,
		B2B:        s.URL,
		VOD:        s.URL + "/vod",
		VODND:      s.URL + "/vodnd",
	}
}

// Options returns catalog options for this server with a page size of 25.
func (s *Server) Options() catalog.Options {
	return catalog.Options{
		Endpoints:       s.Endpoints(),
		Platform:        "web_app",
		Country:         "CA",
		Languages:       "en,hi",
		SearchLanguages: "hi,ta,en",
		PageSize:        25,
	}
}

// Session returns a session that trusts this server's certificate.
func (s *Server) Session(token string) catalog.Session {
	return catalog.Session{HTTP: s.Client(), Token: token}
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.hits[r.URL.Path]++
	s.headers = append(s.headers, r.Header.Clone())
	resp, ok := s.responses[r.URL.Path]
	s.mu.Unlock()

	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.status)
	_, _ = w.Write([]byte(resp.body))
}
