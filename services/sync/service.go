// Package sync prefetches the domain lists the home screen renders, in one
// concurrent round trip per collection.
package sync

import (
	"context"

	"github.com/sourcegraph/conc/pool"

	"cityhop/models"
	"cityhop/services/coupons"
	"cityhop/services/missions"
	"cityhop/services/places"
)

// Snapshot bundles one page of each home-screen collection.
type Snapshot struct {
	Coupons  []models.Coupon
	Missions []models.Mission
	Places   []models.Place
}

// Service fans a snapshot fetch out over the domain services.
type Service struct {
	coupons  *coupons.Service
	missions *missions.Service
	places   *places.Service
	perPage  int
}

// NewService creates a sync service fetching perPage items per collection.
func NewService(c *coupons.Service, m *missions.Service, p *places.Service, perPage int) *Service {
	if perPage <= 0 {
		perPage = 20
	}
	return &Service{coupons: c, missions: m, places: p, perPage: perPage}
}

// FetchAll loads all three collections concurrently. The first failure
// cancels the remaining fetches and no partial snapshot is returned.
func (s *Service) FetchAll(ctx context.Context) (*Snapshot, error) {
	var snap Snapshot

	p := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()

	p.Go(func(ctx context.Context) error {
		list, err := s.coupons.List(ctx, coupons.ListFilters{PerPage: s.perPage, Status: models.CouponStatusActive})
		if err != nil {
			return err
		}
		snap.Coupons = list.Coupons
		return nil
	})

	p.Go(func(ctx context.Context) error {
		active := true
		list, err := s.missions.List(ctx, missions.ListFilters{PerPage: s.perPage, Active: &active})
		if err != nil {
			return err
		}
		snap.Missions = list.Missions
		return nil
	})

	p.Go(func(ctx context.Context) error {
		list, err := s.places.List(ctx, places.ListFilters{PerPage: s.perPage})
		if err != nil {
			return err
		}
		snap.Places = list.Places
		return nil
	})

	if err := p.Wait(); err != nil {
		return nil, err
	}
	return &snap, nil
}
