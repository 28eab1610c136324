// Package stickers is the back-office client for the collectible sticker
// album.
package stickers

import (
	"context"
	"net/url"
	"strconv"

	"cityhop/api"
	"cityhop/models"
)

// Service calls the sticker endpoints.
type Service struct {
	client *api.Client
}

// NewService creates a sticker service on top of the shared client.
func NewService(client *api.Client) *Service {
	return &Service{client: client}
}

// ListFilters narrows a sticker listing. Zero values are omitted.
type ListFilters struct {
	Page    int
	PerPage int
	Rarity  string
	Series  string
	PlaceID string
	Active  *bool
}

func (f ListFilters) values() url.Values {
	q := url.Values{}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.PerPage > 0 {
		q.Set("perPage", strconv.Itoa(f.PerPage))
	}
	if f.Rarity != "" {
		q.Set("rarity", f.Rarity)
	}
	if f.Series != "" {
		q.Set("series", f.Series)
	}
	if f.PlaceID != "" {
		q.Set("placeId", f.PlaceID)
	}
	if f.Active != nil {
		q.Set("active", strconv.FormatBool(*f.Active))
	}
	return q
}

type stickerResponse struct {
	Sticker models.Sticker `json:"sticker"`
}

// List returns a page of stickers matching the filters.
func (s *Service) List(ctx context.Context, filters ListFilters) (*models.StickerList, error) {
	var list models.StickerList
	if err := s.client.Get(ctx, "/stickers", &list, api.WithQuery(filters.values())); err != nil {
		return nil, err
	}
	return &list, nil
}

// Get returns a single sticker by ID.
func (s *Service) Get(ctx context.Context, id string) (*models.Sticker, error) {
	var resp stickerResponse
	if err := s.client.Get(ctx, "/stickers/"+id, &resp); err != nil {
		return nil, err
	}
	return &resp.Sticker, nil
}

// GetByNumber returns the sticker printed with the given album number.
func (s *Service) GetByNumber(ctx context.Context, number int) (*models.Sticker, error) {
	var resp stickerResponse
	if err := s.client.Get(ctx, "/stickers/number/"+strconv.Itoa(number), &resp); err != nil {
		return nil, err
	}
	return &resp.Sticker, nil
}

// Create registers a new sticker.
func (s *Service) Create(ctx context.Context, sticker models.Sticker) (*models.Sticker, error) {
	var resp stickerResponse
	if err := s.client.Post(ctx, "/stickers", sticker, &resp); err != nil {
		return nil, err
	}
	return &resp.Sticker, nil
}

// Update replaces the sticker's editable fields.
func (s *Service) Update(ctx context.Context, id string, sticker models.Sticker) (*models.Sticker, error) {
	var resp stickerResponse
	if err := s.client.Put(ctx, "/stickers/"+id, sticker, &resp); err != nil {
		return nil, err
	}
	return &resp.Sticker, nil
}

// Delete removes a sticker.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.client.Delete(ctx, "/stickers/"+id)
}

// ToggleStatus flips the sticker between active and inactive.
func (s *Service) ToggleStatus(ctx context.Context, id string) (*models.Sticker, error) {
	var resp stickerResponse
	if err := s.client.Patch(ctx, "/stickers/"+id+"/status", nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Sticker, nil
}

// Stats returns the sticker album summary.
func (s *Service) Stats(ctx context.Context) (*models.StickerStats, error) {
	var stats models.StickerStats
	if err := s.client.Get(ctx, "/stickers/stats", &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
