// Package demoserver is a local stand-in for the remote JSON API so the
// client can be exercised without network access. It mimics the resource
// shapes of jsonplaceholder.typicode.com for the endpoints the client uses.
package demoserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/dhyeyp/restcli/internal/logging"
)

// Post mirrors the /posts resource shape.
type Post struct {
	UserID int    `json:"userId"`
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}

// Comment mirrors the /comments resource shape.
type Comment struct {
	PostID int    `json:"postId"`
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Body   string `json:"body"`
}

// User mirrors a trimmed /users resource shape.
type User struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// DemoServer serves a seeded, in-memory copy of the API.
type DemoServer struct {
	cfg    Config
	logger logging.Logger
	router chi.Router

	mu       sync.RWMutex
	posts    []Post
	comments []Comment
	users    []User
	nextID   int
}

// New creates a demo server with seeded data.
func New(cfg Config, logger logging.Logger) *DemoServer {
	s := &DemoServer{
		cfg:      cfg,
		logger:   logger.With(logging.Field{Key: "component", Value: "demoserver"}),
		posts:    seedPosts(),
		comments: seedComments(),
		users:    seedUsers(),
	}
	s.nextID = len(s.posts) + 1

	r := chi.NewRouter()
	r.Get("/posts", s.handleListPosts)
	r.Post("/posts", s.handleCreatePost)
	r.Get("/posts/{id}", s.handleGetPost)
	r.Get("/posts/{id}/comments", s.handlePostComments)
	r.Get("/comments", s.handleListComments)
	r.Get("/users", s.handleListUsers)
	r.NotFound(s.handleNotFound)
	s.router = r

	return s
}

// Handler exposes the router, mainly for httptest servers.
func (s *DemoServer) Handler() http.Handler {
	return s.router
}

// Start blocks serving on the configured port.
func (s *DemoServer) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.logger.Info("demo server starting", logging.Field{Key: "addr", Value: addr})
	return http.ListenAndServe(addr, s.router)
}

func (s *DemoServer) handleListPosts(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	posts := append([]Post(nil), s.posts...)
	s.mu.RUnlock()
	writeJSON(w, http.StatusOK, posts)
}

func (s *DemoServer) handleGetPost(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]any{})
		return
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.posts {
		if p.ID == id {
			writeJSON(w, http.StatusOK, p)
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]any{})
}

func (s *DemoServer) handlePostComments(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]any{})
		return
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []Comment{}
	for _, c := range s.comments {
		if c.PostID == id {
			out = append(out, c)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

// handleCreatePost echoes the submitted body back with an assigned id, the
// way the real API does. Nothing is validated beyond "decodes as JSON".
func (s *DemoServer) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid JSON body"})
		return
	}

	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.mu.Unlock()

	if body == nil {
		body = map[string]any{}
	}
	body["id"] = id
	writeJSON(w, http.StatusCreated, body)
}

func (s *DemoServer) handleListComments(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	comments := append([]Comment(nil), s.comments...)
	s.mu.RUnlock()
	writeJSON(w, http.StatusOK, comments)
}

func (s *DemoServer) handleListUsers(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	users := append([]User(nil), s.users...)
	s.mu.RUnlock()
	writeJSON(w, http.StatusOK, users)
}

func (s *DemoServer) handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, map[string]any{})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
