// Package coupons is the client for the coupon endpoints. All calls go
// through the shared transport, which supplies the bearer header.
package coupons

import (
	"context"
	"net/url"
	"strconv"

	"cityhop/api"
	"cityhop/models"
	"cityhop/utils"
)

// Service calls the coupon endpoints.
type Service struct {
	client *api.Client
}

// NewService creates a coupon service on top of the shared client.
func NewService(client *api.Client) *Service {
	return &Service{client: client}
}

// ListFilters narrows a coupon listing. Zero values are omitted.
type ListFilters struct {
	Page       int
	PerPage    int
	Status     string
	Approval   string
	BusinessID string
	Search     string
}

func (f ListFilters) values() url.Values {
	q := url.Values{}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.PerPage > 0 {
		q.Set("perPage", strconv.Itoa(f.PerPage))
	}
	if f.Status != "" {
		q.Set("status", f.Status)
	}
	if f.Approval != "" {
		q.Set("approval", f.Approval)
	}
	if f.BusinessID != "" {
		q.Set("businessId", f.BusinessID)
	}
	if f.Search != "" {
		q.Set("search", utils.NormalizeQuery(f.Search))
	}
	return q
}

type couponResponse struct {
	Coupon models.Coupon `json:"coupon"`
}

// List returns a page of coupons matching the filters.
func (s *Service) List(ctx context.Context, filters ListFilters) (*models.CouponList, error) {
	var list models.CouponList
	if err := s.client.Get(ctx, "/coupons", &list, api.WithQuery(filters.values())); err != nil {
		return nil, err
	}
	return &list, nil
}

// Get returns a single coupon by ID.
func (s *Service) Get(ctx context.Context, id string) (*models.Coupon, error) {
	var resp couponResponse
	if err := s.client.Get(ctx, "/coupons/"+id, &resp); err != nil {
		return nil, err
	}
	return &resp.Coupon, nil
}

// Create submits a new coupon for approval.
func (s *Service) Create(ctx context.Context, coupon models.Coupon) (*models.Coupon, error) {
	var resp couponResponse
	if err := s.client.Post(ctx, "/coupons", coupon, &resp); err != nil {
		return nil, err
	}
	return &resp.Coupon, nil
}

// Update replaces the coupon's editable fields.
func (s *Service) Update(ctx context.Context, id string, coupon models.Coupon) (*models.Coupon, error) {
	var resp couponResponse
	if err := s.client.Put(ctx, "/coupons/"+id, coupon, &resp); err != nil {
		return nil, err
	}
	return &resp.Coupon, nil
}

// Delete removes a coupon.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.client.Delete(ctx, "/coupons/"+id)
}

// Approve marks a pending coupon as approved (back-office only).
func (s *Service) Approve(ctx context.Context, id string) (*models.Coupon, error) {
	var resp couponResponse
	if err := s.client.Patch(ctx, "/coupons/"+id+"/approve", nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Coupon, nil
}

// Reject marks a pending coupon as rejected with a reason (back-office only).
func (s *Service) Reject(ctx context.Context, id, reason string) (*models.Coupon, error) {
	var resp couponResponse
	body := map[string]string{"reason": reason}
	if err := s.client.Patch(ctx, "/coupons/"+id+"/reject", body, &resp); err != nil {
		return nil, err
	}
	return &resp.Coupon, nil
}

// Stats returns the coupon dashboard summary.
func (s *Service) Stats(ctx context.Context) (*models.CouponStats, error) {
	var stats models.CouponStats
	if err := s.client.Get(ctx, "/coupons/stats", &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
