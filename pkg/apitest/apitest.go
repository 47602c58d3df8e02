// Package apitest provides a scripted fake of the legal QA backend for tests.
package apitest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Request is a request the server received.
type Request struct {
	Method        string
	Path          string
	RawQuery      string
	Authorization string
	HasAuth       bool
	Body          []byte
}

// Reply is a scripted response.
type Reply struct {
	Status int
	Body   any
	Raw    []byte
	Delay  time.Duration
}

// Server is an httptest server that replays scripted replies keyed by
// "METHOD /path".
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	replies  map[string]Reply
	requests []Request
}

// New starts a server. Unscripted routes answer 404.
func New() *Server {
	s := &Server{replies: make(map[string]Reply)}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.record)
	r.HandleFunc("/*", s.serve)

	s.Server = httptest.NewServer(r)
	return s
}

// Reply scripts the response for method and path. path includes the /api
// prefix, e.g. "/api/legal/case/42".
func (s *Server) Reply(method, path string, reply Reply) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replies[method+" "+path] = reply
}

// Envelope scripts a 200 reply carrying an envelope.
func (s *Server) Envelope(method, path string, code int, message string, data any) {
	env := map[string]any{"code": code}
	if message != "" {
		env["message"] = message
	}
	if data != nil {
		env["data"] = data
	}
	s.Reply(method, path, Reply{Status: http.StatusOK, Body: env})
}

// Requests returns a copy of every request received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// Last returns the most recent request, or false if none arrived.
func (s *Server) Last() (Request, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return Request{}, false
	}
	return s.requests[len(s.requests)-1], true
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		auth, hasAuth := r.Header["Authorization"]

		req := Request{
			Method:   r.Method,
			Path:     r.URL.Path,
			RawQuery: r.URL.RawQuery,
			HasAuth:  hasAuth,
			Body:     body,
		}
		if hasAuth && len(auth) > 0 {
			req.Authorization = auth[0]
		}

		s.mu.Lock()
		s.requests = append(s.requests, req)
		s.mu.Unlock()

		next.ServeHTTP(w, r)
	})
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	reply, ok := s.replies[r.Method+" "+r.URL.Path]
	s.mu.Unlock()

	if !ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]any{"code": 404, "message": "not found"})
		return
	}

	if reply.Delay > 0 {
		select {
		case <-time.After(reply.Delay):
		case <-r.Context().Done():
			return
		}
	}

	status := reply.Status
	if status == 0 {
		status = http.StatusOK
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if reply.Raw != nil {
		w.Write(reply.Raw)
		return
	}
	if reply.Body != nil {
		json.NewEncoder(w).Encode(reply.Body)
	}
}
