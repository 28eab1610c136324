// Package accounts is the back-office client for managing consumer
// accounts: listing, moderation and removal. Only administrator sessions
// are authorized for these endpoints.
package accounts

import (
	"context"
	"net/url"
	"strconv"

	"cityhop/api"
	"cityhop/models"
	"cityhop/utils"
)

// Service calls the account management endpoints.
type Service struct {
	client *api.Client
}

// NewService creates an account management service on top of the shared
// client.
func NewService(client *api.Client) *Service {
	return &Service{client: client}
}

// ListFilters narrows an account listing. Zero values are omitted.
type ListFilters struct {
	Page    int
	PerPage int
	Banned  *bool
	City    string
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
	if f.Banned != nil {
		q.Set("banned", strconv.FormatBool(*f.Banned))
	}
	if f.City != "" {
		q.Set("city", f.City)
	}
	if f.Search != "" {
		q.Set("search", utils.NormalizeQuery(f.Search))
	}
	return q
}

type accountResponse struct {
	Account models.Account `json:"account"`
}

// List returns a page of consumer accounts matching the filters.
func (s *Service) List(ctx context.Context, filters ListFilters) (*models.AccountList, error) {
	var list models.AccountList
	if err := s.client.Get(ctx, "/accounts", &list, api.WithQuery(filters.values())); err != nil {
		return nil, err
	}
	return &list, nil
}

// Get returns a single consumer account by ID.
func (s *Service) Get(ctx context.Context, id string) (*models.Account, error) {
	var resp accountResponse
	if err := s.client.Get(ctx, "/accounts/"+id, &resp); err != nil {
		return nil, err
	}
	return &resp.Account, nil
}

// Ban blocks an account with a reason.
func (s *Service) Ban(ctx context.Context, id, reason string) (*models.Account, error) {
	var resp accountResponse
	body := map[string]string{"reason": reason}
	if err := s.client.Patch(ctx, "/accounts/"+id+"/ban", body, &resp); err != nil {
		return nil, err
	}
	return &resp.Account, nil
}

// Unban lifts a block.
func (s *Service) Unban(ctx context.Context, id string) (*models.Account, error) {
	var resp accountResponse
	if err := s.client.Patch(ctx, "/accounts/"+id+"/unban", nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Account, nil
}

// Delete permanently removes an account.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.client.Delete(ctx, "/accounts/"+id)
}

// Stats returns the user base summary.
func (s *Service) Stats(ctx context.Context) (*models.AccountStats, error) {
	var stats models.AccountStats
	if err := s.client.Get(ctx, "/accounts/stats", &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
