// Package places is the client for the point-of-interest endpoints.
package places

import (
	"context"
	"net/url"
	"strconv"

	"cityhop/api"
	"cityhop/models"
	"cityhop/utils"
)

// Service calls the place endpoints.
type Service struct {
	client *api.Client
}

// NewService creates a place service on top of the shared client.
func NewService(client *api.Client) *Service {
	return &Service{client: client}
}

// ListFilters narrows a place listing. Zero values are omitted.
type ListFilters struct {
	Page     int
	PerPage  int
	Category string
	City     string
	Search   string
}

func (f ListFilters) values() url.Values {
	q := url.Values{}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.PerPage > 0 {
		q.Set("perPage", strconv.Itoa(f.PerPage))
	}
	if f.Category != "" {
		q.Set("category", f.Category)
	}
	if f.City != "" {
		q.Set("city", f.City)
	}
	if f.Search != "" {
		q.Set("search", utils.NormalizeQuery(f.Search))
	}
	return q
}

type placeResponse struct {
	Place models.Place `json:"place"`
}

// List returns a page of places matching the filters.
func (s *Service) List(ctx context.Context, filters ListFilters) (*models.PlaceList, error) {
	var list models.PlaceList
	if err := s.client.Get(ctx, "/places", &list, api.WithQuery(filters.values())); err != nil {
		return nil, err
	}
	return &list, nil
}

// Get returns a single place by ID.
func (s *Service) Get(ctx context.Context, id string) (*models.Place, error) {
	var resp placeResponse
	if err := s.client.Get(ctx, "/places/"+id, &resp); err != nil {
		return nil, err
	}
	return &resp.Place, nil
}

// Create registers a new point of interest.
func (s *Service) Create(ctx context.Context, place models.Place) (*models.Place, error) {
	var resp placeResponse
	if err := s.client.Post(ctx, "/places", place, &resp); err != nil {
		return nil, err
	}
	return &resp.Place, nil
}

// Update replaces the place's editable fields.
func (s *Service) Update(ctx context.Context, id string, place models.Place) (*models.Place, error) {
	var resp placeResponse
	if err := s.client.Put(ctx, "/places/"+id, place, &resp); err != nil {
		return nil, err
	}
	return &resp.Place, nil
}

// Delete removes a place.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.client.Delete(ctx, "/places/"+id)
}

// Nearby returns places within radiusMeters of the given coordinates,
// closest first.
func (s *Service) Nearby(ctx context.Context, lat, lng float64, radiusMeters int) ([]models.Place, error) {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lng", strconv.FormatFloat(lng, 'f', -1, 64))
	if radiusMeters > 0 {
		q.Set("radius", strconv.Itoa(radiusMeters))
	}

	var list models.PlaceList
	if err := s.client.Get(ctx, "/places/nearby", &list, api.WithQuery(q)); err != nil {
		return nil, err
	}
	return list.Places, nil
}

// Stats returns the place catalog summary.
func (s *Service) Stats(ctx context.Context) (*models.PlaceStats, error) {
	var stats models.PlaceStats
	if err := s.client.Get(ctx, "/places/stats", &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
