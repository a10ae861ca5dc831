// Package testsupport holds helpers shared by package tests: a scripted
// quote server and page fixtures.
package testsupport

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"

	"github.com/goliatone/go-cotizador/pkg/page"
)

// Request is one call received by a QuoteServer.
type Request struct {
	Method string
	Path   string
	Token  string
	Body   map[string]any
}

// Route answers one method and path.
type Route struct {
	Status int
	Body   string
}

// QuoteServer is an httptest server answering scripted routes. Unknown routes
// get a 404 with a Django-like HTML body.
type QuoteServer struct {
	*httptest.Server

	mu       sync.Mutex
	routes   map[string]Route
	requests []Request
}

// NewQuoteServer starts a server closed at the end of the test.
func NewQuoteServer(t *testing.T) *QuoteServer {
	t.Helper()
	s := &QuoteServer{routes: make(map[string]Route)}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Close)
	return s
}

// Handle scripts the answer for method and path. A zero status means 200.
func (s *QuoteServer) Handle(method, path string, route Route) {
	if route.Status == 0 {
		route.Status = http.StatusOK
	}
	s.mu.Lock()
	s.routes[method+" "+path] = route
	s.mu.Unlock()
}

// Requests returns the calls received so far.
func (s *QuoteServer) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

func (s *QuoteServer) serve(w http.ResponseWriter, r *http.Request) {
	req := Request{Method: r.Method, Path: r.URL.Path, Token: r.Header.Get("X-CSRFToken")}
	if raw, _ := io.ReadAll(r.Body); len(raw) > 0 {
		_ = json.Unmarshal(raw, &req.Body)
	}

	s.mu.Lock()
	s.requests = append(s.requests, req)
	route, ok := s.routes[r.Method+" "+r.URL.Path]
	s.mu.Unlock()

	if !ok {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, "<h1>Not Found</h1>")
		return
	}
	w.WriteHeader(route.Status)
	_, _ = io.WriteString(w, route.Body)
}

// MustLoadPage parses an HTML fixture from disk.
func MustLoadPage(t *testing.T, path string) *page.Document {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open page fixture: %v", err)
	}
	defer f.Close()
	doc, err := page.Parse(f)
	if err != nil {
		t.Fatalf("parse page fixture: %v", err)
	}
	return doc
}
