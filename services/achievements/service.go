// Package achievements is the back-office client for the achievement
// catalog.
package achievements

import (
	"context"
	"net/url"
	"strconv"

	"cityhop/api"
	"cityhop/models"
)

// Service calls the achievement endpoints.
type Service struct {
	client *api.Client
}

// NewService creates an achievement service on top of the shared client.
func NewService(client *api.Client) *Service {
	return &Service{client: client}
}

// ListFilters narrows an achievement listing. Zero values are omitted.
type ListFilters struct {
	Page     int
	PerPage  int
	Tier     string
	Category string
	Active   *bool
}

func (f ListFilters) values() url.Values {
	q := url.Values{}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.PerPage > 0 {
		q.Set("perPage", strconv.Itoa(f.PerPage))
	}
	if f.Tier != "" {
		q.Set("tier", f.Tier)
	}
	if f.Category != "" {
		q.Set("category", f.Category)
	}
	if f.Active != nil {
		q.Set("active", strconv.FormatBool(*f.Active))
	}
	return q
}

type achievementResponse struct {
	Achievement models.Achievement `json:"achievement"`
}

// List returns a page of achievements matching the filters.
func (s *Service) List(ctx context.Context, filters ListFilters) (*models.AchievementList, error) {
	var list models.AchievementList
	if err := s.client.Get(ctx, "/achievements", &list, api.WithQuery(filters.values())); err != nil {
		return nil, err
	}
	return &list, nil
}

// Get returns a single achievement by ID.
func (s *Service) Get(ctx context.Context, id string) (*models.Achievement, error) {
	var resp achievementResponse
	if err := s.client.Get(ctx, "/achievements/"+id, &resp); err != nil {
		return nil, err
	}
	return &resp.Achievement, nil
}

// Create registers a new achievement.
func (s *Service) Create(ctx context.Context, achievement models.Achievement) (*models.Achievement, error) {
	var resp achievementResponse
	if err := s.client.Post(ctx, "/achievements", achievement, &resp); err != nil {
		return nil, err
	}
	return &resp.Achievement, nil
}

// Update replaces the achievement's editable fields.
func (s *Service) Update(ctx context.Context, id string, achievement models.Achievement) (*models.Achievement, error) {
	var resp achievementResponse
	if err := s.client.Put(ctx, "/achievements/"+id, achievement, &resp); err != nil {
		return nil, err
	}
	return &resp.Achievement, nil
}

// Delete removes an achievement.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.client.Delete(ctx, "/achievements/"+id)
}

// ToggleStatus flips the achievement between active and inactive.
func (s *Service) ToggleStatus(ctx context.Context, id string) (*models.Achievement, error) {
	var resp achievementResponse
	if err := s.client.Patch(ctx, "/achievements/"+id+"/status", nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Achievement, nil
}

// Stats returns the achievement catalog summary.
func (s *Service) Stats(ctx context.Context) (*models.AchievementStats, error) {
	var stats models.AchievementStats
	if err := s.client.Get(ctx, "/achievements/stats", &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
