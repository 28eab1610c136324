// Package session owns the lifecycle of the current authenticated session:
// the bearer token and the cached profile, persisted together and cleared
// together. It is the single source of truth for "is the user signed in,
// and who are they".
package session

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"

	"cityhop/api"
	"cityhop/keystore"
	"cityhop/models"
)

// ErrNotAuthenticated is wrapped into the Auth-classified error returned by
// operations that require a session when none is persisted.
var ErrNotAuthenticated = errors.New("session: not authenticated")

const msgNotAuthenticated = "You are not signed in."

// Service manages the persisted session for one realm. The write path
// (Login, Register, Logout, UpdateProfile, HandleUnauthorized) is serialized
// by a mutex so the token and profile keys are always updated as a pair.
type Service struct {
	client *api.Client
	store  keystore.Store
	realm  Realm
	logger *slog.Logger

	mu sync.Mutex // guards the persisted token+profile pair
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger used for session diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// New creates the session service for the given realm and wires it into the
// client: the outbound hook re-reads the persisted token before every
// request, and a 401 response tears the session down via HandleUnauthorized.
func New(client *api.Client, store keystore.Store, realm Realm, opts ...Option) *Service {
	s := &Service{
		client: client,
		store:  store,
		realm:  realm,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	client.SetTokenSource(s.Token)
	client.SetUnauthorizedHandler(s.HandleUnauthorized)
	return s
}

// authResponse is the success body of the login and register endpoints.
type authResponse struct {
	Token   string         `json:"token"`
	Profile models.Profile `json:"profile"`
}

// profileResponse is the success body of the profile update endpoint.
type profileResponse struct {
	Profile models.Profile `json:"profile"`
}

// Login exchanges credentials for a session. On success both keys are
// persisted and the client's default Authorization header is set. On failure
// the classified error propagates and no persisted state changes.
func (s *Service) Login(ctx context.Context, creds models.Credentials) (*models.Profile, error) {
	var resp authResponse
	if err := s.client.Post(ctx, s.realm.LoginPath, creds, &resp); err != nil {
		return nil, err
	}
	return s.establish(ctx, resp)
}

// Register creates an account and signs in, with the same side effects as
// Login.
func (s *Service) Register(ctx context.Context, reg models.Registration) (*models.Profile, error) {
	var resp authResponse
	if err := s.client.Post(ctx, s.realm.RegisterPath, reg, &resp); err != nil {
		return nil, err
	}
	return s.establish(ctx, resp)
}

// establish persists the token+profile pair and primes the client header.
func (s *Service) establish(ctx context.Context, resp authResponse) (*models.Profile, error) {
	encoded, err := json.Marshal(resp.Profile)
	if err != nil {
		return nil, api.NewError(api.CategoryUnknown, "Something went wrong. Try again.", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Set(ctx, s.realm.TokenKey, resp.Token); err != nil {
		return nil, err
	}
	if err := s.store.Set(ctx, s.realm.ProfileKey, string(encoded)); err != nil {
		// Never leave a token without its profile behind.
		_ = s.store.Delete(ctx, s.realm.TokenKey)
		return nil, err
	}

	s.client.SetDefaultHeader("Authorization", "Bearer "+resp.Token)
	s.logger.Debug("session established", "realm", s.realm.Name, "profile", resp.Profile.ID)
	return &resp.Profile, nil
}

// Logout destroys the persisted session. It is idempotent: logging out with
// no session stored succeeds.
func (s *Service) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clearLocked(ctx)
}

// HandleUnauthorized is the inbound hook reaction to a 401: the server no
// longer honors the session, so the local copy is cleared eagerly. Redundant
// calls (a stale in-flight request 401ing after logout) are safe no-ops.
// Navigation to a sign-in screen is the caller's concern.
func (s *Service) HandleUnauthorized(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.clearLocked(ctx); err != nil {
		s.logger.Warn("session teardown after 401 failed", "realm", s.realm.Name, "error", err)
		return
	}
	s.logger.Debug("session cleared after 401", "realm", s.realm.Name)
}

func (s *Service) clearLocked(ctx context.Context) error {
	err := errors.Join(
		s.store.Delete(ctx, s.realm.TokenKey),
		s.store.Delete(ctx, s.realm.ProfileKey),
	)
	s.client.UnsetDefaultHeader("Authorization")
	return err
}

// Token returns the persisted bearer token, empty when no session exists.
func (s *Service) Token(ctx context.Context) (string, error) {
	token, err := s.store.Get(ctx, s.realm.TokenKey)
	if errors.Is(err, keystore.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return token, nil
}

// Profile returns the cached profile snapshot, nil when no session exists.
// A malformed stored value is treated as no profile rather than an error.
func (s *Service) Profile(ctx context.Context) (*models.Profile, error) {
	stored, err := s.store.Get(ctx, s.realm.ProfileKey)
	if errors.Is(err, keystore.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var profile models.Profile
	if err := json.Unmarshal([]byte(stored), &profile); err != nil {
		s.logger.Warn("discarding malformed cached profile", "realm", s.realm.Name, "error", err)
		return nil, nil
	}
	return &profile, nil
}

// IsAuthenticated reports whether a non-empty token is persisted. The token
// reaches outgoing requests through the client's outbound hook, so there is
// no header side effect here.
func (s *Service) IsAuthenticated(ctx context.Context) bool {
	token, err := s.Token(ctx)
	return err == nil && token != ""
}

// UpdateProfile sends a partial update and replaces the cached profile
// wholesale with the server's authoritative copy. Without a persisted token
// it fails locally, before any network call.
func (s *Service) UpdateProfile(ctx context.Context, update models.ProfileUpdate) (*models.Profile, error) {
	token, err := s.Token(ctx)
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, api.NewError(api.CategoryAuth, msgNotAuthenticated, ErrNotAuthenticated)
	}

	var resp profileResponse
	if err := s.client.Put(ctx, s.realm.ProfilePath, update, &resp); err != nil {
		return nil, err
	}

	encoded, err := json.Marshal(resp.Profile)
	if err != nil {
		return nil, api.NewError(api.CategoryUnknown, "Something went wrong. Try again.", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Set(ctx, s.realm.ProfileKey, string(encoded)); err != nil {
		return nil, err
	}
	return &resp.Profile, nil
}
