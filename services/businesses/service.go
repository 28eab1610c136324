// Package businesses is the client for the business partner endpoints.
package businesses

import (
	"context"
	"net/url"
	"strconv"

	"cityhop/api"
	"cityhop/models"
	"cityhop/utils"
)

// Service calls the business endpoints.
type Service struct {
	client *api.Client
}

// NewService creates a business service on top of the shared client.
func NewService(client *api.Client) *Service {
	return &Service{client: client}
}

// ListFilters narrows a business listing. Zero values are omitted.
type ListFilters struct {
	Page     int
	PerPage  int
	Category string
	Approval string
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
	if f.Approval != "" {
		q.Set("approval", f.Approval)
	}
	if f.City != "" {
		q.Set("city", f.City)
	}
	if f.Search != "" {
		q.Set("search", utils.NormalizeQuery(f.Search))
	}
	return q
}

type businessResponse struct {
	Business models.Business `json:"business"`
}

// List returns a page of businesses matching the filters.
func (s *Service) List(ctx context.Context, filters ListFilters) (*models.BusinessList, error) {
	var list models.BusinessList
	if err := s.client.Get(ctx, "/businesses", &list, api.WithQuery(filters.values())); err != nil {
		return nil, err
	}
	return &list, nil
}

// Get returns a single business by ID.
func (s *Service) Get(ctx context.Context, id string) (*models.Business, error) {
	var resp businessResponse
	if err := s.client.Get(ctx, "/businesses/"+id, &resp); err != nil {
		return nil, err
	}
	return &resp.Business, nil
}

// Create registers a new business partner.
func (s *Service) Create(ctx context.Context, business models.Business) (*models.Business, error) {
	var resp businessResponse
	if err := s.client.Post(ctx, "/businesses", business, &resp); err != nil {
		return nil, err
	}
	return &resp.Business, nil
}

// Update replaces the business's editable fields.
func (s *Service) Update(ctx context.Context, id string, business models.Business) (*models.Business, error) {
	var resp businessResponse
	if err := s.client.Put(ctx, "/businesses/"+id, business, &resp); err != nil {
		return nil, err
	}
	return &resp.Business, nil
}

// Delete removes a business.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.client.Delete(ctx, "/businesses/"+id)
}

// Approve marks a pending business as approved (back-office only).
func (s *Service) Approve(ctx context.Context, id string) (*models.Business, error) {
	var resp businessResponse
	if err := s.client.Patch(ctx, "/businesses/"+id+"/approve", nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Business, nil
}

// Reject marks a pending business as rejected with a reason (back-office only).
func (s *Service) Reject(ctx context.Context, id, reason string) (*models.Business, error) {
	var resp businessResponse
	body := map[string]string{"reason": reason}
	if err := s.client.Patch(ctx, "/businesses/"+id+"/reject", body, &resp); err != nil {
		return nil, err
	}
	return &resp.Business, nil
}

// Stats returns the business dashboard summary.
func (s *Service) Stats(ctx context.Context) (*models.BusinessStats, error) {
	var stats models.BusinessStats
	if err := s.client.Get(ctx, "/businesses/stats", &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
