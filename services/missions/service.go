// Package missions is the client for the mission endpoints.
package missions

import (
	"context"
	"net/url"
	"strconv"

	"cityhop/api"
	"cityhop/models"
	"cityhop/utils"
)

// Service calls the mission endpoints.
type Service struct {
	client *api.Client
}

// NewService creates a mission service on top of the shared client.
func NewService(client *api.Client) *Service {
	return &Service{client: client}
}

// ListFilters narrows a mission listing. Zero values are omitted.
type ListFilters struct {
	Page    int
	PerPage int
	Active  *bool
	PlaceID string
	Search  string
}

func (f ListFilters) values() url.Values {
	q := url.Values{}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.PerPage > 0 {
		q.Set("perPage", strconv.Itoa(f.PerPage))
	}
	if f.Active != nil {
		q.Set("active", strconv.FormatBool(*f.Active))
	}
	if f.PlaceID != "" {
		q.Set("placeId", f.PlaceID)
	}
	if f.Search != "" {
		q.Set("search", utils.NormalizeQuery(f.Search))
	}
	return q
}

type missionResponse struct {
	Mission models.Mission `json:"mission"`
}

// List returns a page of missions matching the filters.
func (s *Service) List(ctx context.Context, filters ListFilters) (*models.MissionList, error) {
	var list models.MissionList
	if err := s.client.Get(ctx, "/missions", &list, api.WithQuery(filters.values())); err != nil {
		return nil, err
	}
	return &list, nil
}

// Get returns a single mission by ID.
func (s *Service) Get(ctx context.Context, id string) (*models.Mission, error) {
	var resp missionResponse
	if err := s.client.Get(ctx, "/missions/"+id, &resp); err != nil {
		return nil, err
	}
	return &resp.Mission, nil
}

// Create registers a new mission.
func (s *Service) Create(ctx context.Context, mission models.Mission) (*models.Mission, error) {
	var resp missionResponse
	if err := s.client.Post(ctx, "/missions", mission, &resp); err != nil {
		return nil, err
	}
	return &resp.Mission, nil
}

// Update replaces the mission's editable fields.
func (s *Service) Update(ctx context.Context, id string, mission models.Mission) (*models.Mission, error) {
	var resp missionResponse
	if err := s.client.Put(ctx, "/missions/"+id, mission, &resp); err != nil {
		return nil, err
	}
	return &resp.Mission, nil
}

// Delete removes a mission.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.client.Delete(ctx, "/missions/"+id)
}

// ToggleStatus flips the mission between active and inactive.
func (s *Service) ToggleStatus(ctx context.Context, id string) (*models.Mission, error) {
	var resp missionResponse
	if err := s.client.Patch(ctx, "/missions/"+id+"/status", nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Mission, nil
}

// ToggleHighlight flips the mission's home-screen highlight flag.
func (s *Service) ToggleHighlight(ctx context.Context, id string) (*models.Mission, error) {
	var resp missionResponse
	if err := s.client.Patch(ctx, "/missions/"+id+"/highlight", nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Mission, nil
}

// Stats returns the mission dashboard summary.
func (s *Service) Stats(ctx context.Context) (*models.MissionStats, error) {
	var stats models.MissionStats
	if err := s.client.Get(ctx, "/missions/stats", &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
