// Package registrytest provides an in-process MCP registry for tests.
//
//	reg := registrytest.NewServer()
//	defer reg.Close()
//	reg.Add(registrytest.Fixture("io.github.acme/weather", registry.StatusActive))
//	client, _ := registry.New(reg.URL)
package registrytest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/matzehuels/mcp-registry/pkg/registry"
)

// Server is a fake registry serving GET /v0/servers and GET /v0/servers/{id}.
//
// Search matches names case-insensitively by substring and, like the real
// registry, returns servers of every status in insertion order.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	servers  []registry.Server
	failures []int
	delay    time.Duration
	requests map[string]int
	headers  []http.Header
	rawBody  map[string]string
}

// NewServer starts a fake registry. Call Close when done.
func NewServer() *Server {
	s := &Server{
		requests: make(map[string]int),
		rawBody:  make(map[string]string),
	}
	s.Server = httptest.NewServer(s.routes())
	return s
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.record)
	r.Get("/v0/servers", s.handleSearch)
	r.Get("/v0/servers/{id}", s.handleServer)
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, registry.RegistryError{Error: "Not found", Message: "No route for " + r.URL.Path})
	})
	return r
}

// record counts requests, applies injected delays and failures, and serves
// raw body overrides.
func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests[r.URL.Path]++
		s.headers = append(s.headers, r.Header.Clone())
		delay := s.delay
		var status int
		if len(s.failures) > 0 {
			status, s.failures = s.failures[0], s.failures[1:]
		}
		raw, hasRaw := s.rawBody[r.URL.Path]
		s.mu.Unlock()

		if delay > 0 {
			select {
			case <-time.After(delay):
			case <-r.Context().Done():
				return
			}
		}
		if status != 0 {
			writeJSON(w, status, registry.RegistryError{Error: http.StatusText(status)})
			return
		}
		if hasRaw {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(raw))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	term := strings.ToLower(r.URL.Query().Get("search"))

	s.mu.Lock()
	matches := make([]registry.Server, 0, len(s.servers))
	for _, srv := range s.servers {
		if strings.Contains(strings.ToLower(srv.Name), term) {
			matches = append(matches, srv)
		}
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, registry.SearchResponse{Servers: matches})
}

func (s *Server) handleServer(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, srv := range s.servers {
		if srv.ID() == id {
			writeJSON(w, http.StatusOK, srv)
			return
		}
	}
	writeJSON(w, http.StatusNotFound, registry.RegistryError{Error: "Not found", Message: "Server not found"})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// Add registers servers and returns them with ids assigned where missing.
func (s *Server) Add(servers ...registry.Server) []registry.Server {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range servers {
		if servers[i].Meta.Official.ID == "" {
			servers[i].Meta.Official.ID = uuid.NewString()
		}
		s.servers = append(s.servers, servers[i])
	}
	return servers
}

// FailNext makes the next len(statuses) requests fail with the given
// statuses, in order.
func (s *Server) FailNext(statuses ...int) {
	s.mu.Lock()
	s.failures = append(s.failures, statuses...)
	s.mu.Unlock()
}

// SetDelay delays every response by d.
func (s *Server) SetDelay(d time.Duration) {
	s.mu.Lock()
	s.delay = d
	s.mu.Unlock()
}

// SetRawBody serves body verbatim with status 200 for requests to path.
func (s *Server) SetRawBody(path, body string) {
	s.mu.Lock()
	s.rawBody[path] = body
	s.mu.Unlock()
}

// Requests returns how many requests were made to path.
func (s *Server) Requests(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests[path]
}

// TotalRequests returns the number of requests across all paths.
func (s *Server) TotalRequests() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.requests {
		n += c
	}
	return n
}

// Headers returns the request headers seen so far, in arrival order.
func (s *Server) Headers() []http.Header {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]http.Header(nil), s.headers...)
}
