// Package pointsconfig is the back-office client for the gamification
// ruleset: how many points each action awards and how levels are computed.
package pointsconfig

import (
	"context"
	"strconv"

	"cityhop/api"
	"cityhop/models"
)

// Service calls the points configuration endpoints.
type Service struct {
	client *api.Client
}

// NewService creates a points configuration service on top of the shared
// client.
func NewService(client *api.Client) *Service {
	return &Service{client: client}
}

type configResponse struct {
	Config models.PointsConfig `json:"config"`
}

// Get returns the active ruleset.
func (s *Service) Get(ctx context.Context) (*models.PointsConfig, error) {
	var config models.PointsConfig
	if err := s.client.Get(ctx, "/points-config", &config); err != nil {
		return nil, err
	}
	return &config, nil
}

// Update submits a new ruleset. The server stores it as a fresh version and
// activates it.
func (s *Service) Update(ctx context.Context, config models.PointsConfig) (*models.PointsConfig, error) {
	var resp configResponse
	if err := s.client.Put(ctx, "/points-config", config, &resp); err != nil {
		return nil, err
	}
	return &resp.Config, nil
}

// NextLevel reports how many points separate the given level from the next.
func (s *Service) NextLevel(ctx context.Context, level int) (*models.LevelProgress, error) {
	var progress models.LevelProgress
	if err := s.client.Get(ctx, "/points-config/level/"+strconv.Itoa(level), &progress); err != nil {
		return nil, err
	}
	return &progress, nil
}

// Simulate runs a what-if for performing action quantity times under the
// active ruleset.
func (s *Service) Simulate(ctx context.Context, action string, quantity int) (*models.PointsSimulation, error) {
	if quantity <= 0 {
		quantity = 1
	}
	body := map[string]any{"action": action, "quantity": quantity}

	var sim models.PointsSimulation
	if err := s.client.Post(ctx, "/points-config/simulate", body, &sim); err != nil {
		return nil, err
	}
	return &sim, nil
}

// History returns the ruleset version history, newest first.
func (s *Service) History(ctx context.Context) ([]models.ConfigVersion, error) {
	var versions []models.ConfigVersion
	if err := s.client.Get(ctx, "/points-config/history", &versions); err != nil {
		return nil, err
	}
	return versions, nil
}
