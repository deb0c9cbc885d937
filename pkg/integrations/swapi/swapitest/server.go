// Package swapitest provides an in-process fake of the Star Wars API for
// tests.
//
// The fake serves a small fixed data set (a few people, planets, films,
// vehicles, starships and one species) with SWAPI's URL layout, listing
// pages, and name/title search. It counts requests per URL and can be told
// to fail specific paths.
package swapitest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
)

// DefaultPageSize is the number of results per listing page.
const DefaultPageSize = 2

// Server is a fake SWAPI. Create one with [NewServer].
type Server struct {
	srv      *httptest.Server
	pageSize int

	mu       sync.Mutex
	entities map[string][]entity
	hits     map[string]int
	status   map[string]int
	hold     chan struct{}
}

type entity struct {
	id   string
	name string
	body string
}

// NewServer starts a fake loaded with the default fixtures. It is closed
// when the test ends.
func NewServer(tb testing.TB) *Server {
	tb.Helper()
	s := &Server{
		pageSize: DefaultPageSize,
		entities: make(map[string][]entity),
		hits:     make(map[string]int),
		status:   make(map[string]int),
	}
	for typ, fixtures := range defaultFixtures {
		for _, f := range fixtures {
			s.entities[typ] = append(s.entities[typ], entity{id: f.id, name: nameOf(f.body), body: f.body})
		}
	}

	r := chi.NewRouter()
	r.Use(s.count, s.forcedStatus, s.holdPages)
	r.Get("/api/{type}", s.list)
	r.Get("/api/{type}/", s.list)
	r.Get("/api/{type}/{id}", s.object)
	r.Get("/api/{type}/{id}/", s.object)
	r.NotFound(notFound)

	s.srv = httptest.NewServer(r)
	tb.Cleanup(s.srv.Close)
	return s
}

// URL returns the server base URL.
func (s *Server) URL() string { return s.srv.URL }

// Root returns the API root to configure clients with.
func (s *Server) Root() string { return s.srv.URL + "/api" }

// Client returns an *http.Client wired to the server.
func (s *Server) Client() *http.Client { return s.srv.Client() }

// Close shuts the server down.
func (s *Server) Close() { s.srv.Close() }

// SetPageSize changes the listing page size.
func (s *Server) SetPageSize(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pageSize = n
}

// Hits returns how many requests were made for u, given either as an
// absolute URL on this server or as a request URI ("/api/people/1/").
func (s *Server) Hits(u string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[strings.TrimPrefix(u, s.srv.URL)]
}

// TotalHits returns the number of requests served.
func (s *Server) TotalHits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, h := range s.hits {
		n += h
	}
	return n
}

// SetStatus makes every request whose path equals path answer code.
// A code of 0 restores normal handling.
func (s *Server) SetStatus(path string, code int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if code == 0 {
		delete(s.status, path)
		return
	}
	s.status[path] = code
}

// HoldPages makes listing requests that name a page wait until release is
// called or the client gives up. Search and object requests are served as
// usual. Calling release more than once is fine.
func (s *Server) HoldPages() (release func()) {
	gate := make(chan struct{})
	s.mu.Lock()
	s.hold = gate
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			s.hold = nil
			s.mu.Unlock()
			close(gate)
		})
	}
}

// Add serves body as an entity of entityType. body may use "{root}" in
// place of the API root; its url field decides the id. An entity with the
// same id is replaced.
func (s *Server) Add(entityType, body string) error {
	var probe struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal([]byte(body), &probe); err != nil {
		return fmt.Errorf("swapitest: decode entity: %w", err)
	}
	segs := strings.Split(strings.Trim(probe.URL, "/"), "/")
	id := segs[len(segs)-1]
	if id == "" {
		return fmt.Errorf("swapitest: entity url %q has no id", probe.URL)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	e := entity{id: id, name: nameOf(body), body: body}
	list := s.entities[entityType]
	for i := range list {
		if list[i].id == id {
			list[i] = e
			return nil
		}
	}
	s.entities[entityType] = append(list, e)
	return nil
}

// Clear removes every entity of entityType.
func (s *Server) Clear(entityType string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entities, entityType)
}

func (s *Server) count(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.hits[r.URL.RequestURI()]++
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) forcedStatus(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		code, ok := s.status[r.URL.Path]
		s.mu.Unlock()
		if ok {
			w.WriteHeader(code)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) holdPages(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		gate := s.hold
		s.mu.Unlock()
		if gate != nil && r.URL.Query().Has("page") {
			select {
			case <-gate:
			case <-r.Context().Done():
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

type listing struct {
	Count    int               `json:"count"`
	Next     *string           `json:"next"`
	Previous *string           `json:"previous"`
	Results  []json.RawMessage `json:"results"`
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	typ := chi.URLParam(r, "type")
	query := strings.ToLower(r.URL.Query().Get("search"))
	page := 1
	if p := r.URL.Query().Get("page"); p != "" {
		n, err := strconv.Atoi(p)
		if err != nil || n < 1 {
			notFound(w, r)
			return
		}
		page = n
	}

	s.mu.Lock()
	all, known := s.entities[typ]
	size := s.pageSize
	var matched []entity
	for _, e := range all {
		if query == "" || strings.Contains(strings.ToLower(e.name), query) {
			matched = append(matched, e)
		}
	}
	s.mu.Unlock()

	if !known && !isKnownType(typ) {
		notFound(w, r)
		return
	}

	start := (page - 1) * size
	if start > len(matched) || (start == len(matched) && page > 1) {
		notFound(w, r)
		return
	}
	end := min(start+size, len(matched))

	out := listing{Count: len(matched), Results: []json.RawMessage{}}
	for _, e := range matched[start:end] {
		out.Results = append(out.Results, json.RawMessage(s.expand(e.body)))
	}
	if end < len(matched) {
		out.Next = s.pageLink(typ, r.URL.Query().Get("search"), page+1)
	}
	if page > 1 {
		out.Previous = s.pageLink(typ, r.URL.Query().Get("search"), page-1)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) object(w http.ResponseWriter, r *http.Request) {
	typ, id := chi.URLParam(r, "type"), chi.URLParam(r, "id")

	s.mu.Lock()
	var body string
	for _, e := range s.entities[typ] {
		if e.id == id {
			body = e.body
			break
		}
	}
	s.mu.Unlock()

	if body == "" {
		notFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(s.expand(body)))
}

func (s *Server) pageLink(typ, search string, page int) *string {
	link := fmt.Sprintf("%s/%s/?page=%d", s.Root(), typ, page)
	if search != "" {
		link = fmt.Sprintf("%s/%s/?search=%s&page=%d", s.Root(), typ, url.QueryEscape(search), page)
	}
	return &link
}

func (s *Server) expand(body string) string {
	return strings.ReplaceAll(body, "{root}", s.Root())
}

func notFound(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Not found"})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func nameOf(body string) string {
	var probe struct {
		Name  string `json:"name"`
		Title string `json:"title"`
	}
	_ = json.Unmarshal([]byte(body), &probe)
	if probe.Name != "" {
		return probe.Name
	}
	return probe.Title
}

func isKnownType(typ string) bool {
	_, ok := defaultFixtures[typ]
	return ok
}
