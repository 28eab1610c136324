// Package apitest provides a fake CityHop API server for service-level
// tests. It honors the real wire contract: bearer auth on every domain
// endpoint, {token, profile} login responses and {message} error bodies.
package apitest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/gorilla/mux"

	"cityhop/models"
)

// Token is the bearer value the fake server issues and accepts.
const Token = "apitest-token"

// Server is an in-process CityHop API double.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	requests map[string]int
	lastAuth string

	// Profile is returned by login and register.
	Profile models.Profile
	// Coupons, Missions and Places back the listing endpoints.
	Coupons  []models.Coupon
	Missions []models.Mission
	Places   []models.Place
	// FailWith, when non-zero, makes every endpoint respond with that
	// status and FailMessage in the error body.
	FailWith    int
	FailMessage string
}

// New starts the fake server. It is shut down automatically when the test
// finishes.
func New(t interface {
	Helper()
	Cleanup(func())
}) *Server {
	t.Helper()

	s := &Server{
		requests: make(map[string]int),
		Profile:  models.Profile{ID: "p1", Name: "Test User", Email: "test@example.com"},
	}

	r := mux.NewRouter()
	r.HandleFunc("/users/login", s.handleLogin).Methods(http.MethodPost)
	r.HandleFunc("/users/register", s.handleLogin).Methods(http.MethodPost)
	r.HandleFunc("/admins/login", s.handleLogin).Methods(http.MethodPost)
	r.HandleFunc("/admins/register", s.handleLogin).Methods(http.MethodPost)
	r.HandleFunc("/coupons", s.handleCoupons).Methods(http.MethodGet)
	r.HandleFunc("/missions", s.handleMissions).Methods(http.MethodGet)
	r.HandleFunc("/places", s.handlePlaces).Methods(http.MethodGet)

	s.Server = httptest.NewServer(r)
	t.Cleanup(s.Close)
	return s
}

// Requests returns how many calls the given path received.
func (s *Server) Requests(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests[path]
}

// LastAuthorization returns the Authorization header of the most recent
// authenticated call.
func (s *Server) LastAuthorization() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastAuth
}

func (s *Server) record(r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests[r.URL.Path]++
	if auth := r.Header.Get("Authorization"); auth != "" {
		s.lastAuth = auth
	}
}

func (s *Server) failing(w http.ResponseWriter) bool {
	if s.FailWith == 0 {
		return false
	}
	writeJSON(w, s.FailWith, map[string]string{"message": s.FailMessage})
	return true
}

func (s *Server) authorized(w http.ResponseWriter, r *http.Request) bool {
	if r.Header.Get("Authorization") == "Bearer "+Token {
		return true
	}
	writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "invalid session"})
	return false
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	s.record(r)
	if s.failing(w) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"token":   Token,
		"profile": s.Profile,
	})
}

func (s *Server) handleCoupons(w http.ResponseWriter, r *http.Request) {
	s.record(r)
	if s.failing(w) {
		return
	}
	if !s.authorized(w, r) {
		return
	}
	writeJSON(w, http.StatusOK, models.CouponList{
		Coupons:    s.Coupons,
		Pagination: models.Pagination{Total: len(s.Coupons), Page: 1, TotalPages: 1, PerPage: len(s.Coupons)},
	})
}

func (s *Server) handleMissions(w http.ResponseWriter, r *http.Request) {
	s.record(r)
	if s.failing(w) {
		return
	}
	if !s.authorized(w, r) {
		return
	}
	writeJSON(w, http.StatusOK, models.MissionList{
		Missions:   s.Missions,
		Pagination: models.Pagination{Total: len(s.Missions), Page: 1, TotalPages: 1, PerPage: len(s.Missions)},
	})
}

func (s *Server) handlePlaces(w http.ResponseWriter, r *http.Request) {
	s.record(r)
	if s.failing(w) {
		return
	}
	if !s.authorized(w, r) {
		return
	}
	writeJSON(w, http.StatusOK, models.PlaceList{
		Places:     s.Places,
		Pagination: models.Pagination{Total: len(s.Places), Page: 1, TotalPages: 1, PerPage: len(s.Places)},
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
