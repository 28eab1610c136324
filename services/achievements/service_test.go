package achievements

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"cityhop/api"
	"cityhop/models"
)

func newTestService(t *testing.T, handler http.Handler) *Service {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewService(api.NewClient(server.URL))
}

func TestListFilters(t *testing.T) {
	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("tier") != models.TierGold || q.Get("category") != "checkins" || q.Get("active") != "true" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}
		json.NewEncoder(w).Encode(models.AchievementList{
			Achievements: []models.Achievement{{ID: "a1", Title: "Explorer"}},
			Pagination:   models.Pagination{Total: 1, Page: 1, TotalPages: 1, PerPage: 20},
		})
	}))

	active := true
	list, err := svc.List(context.Background(), ListFilters{Tier: models.TierGold, Category: "checkins", Active: &active})
	if err != nil {
		t.Fatal(err)
	}
	if len(list.Achievements) != 1 || list.Achievements[0].Title != "Explorer" {
		t.Errorf("unexpected list: %+v", list)
	}
}

func TestToggleStatus(t *testing.T) {
	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch || r.URL.Path != "/achievements/a1/status" {
			t.Errorf("expected PATCH /achievements/a1/status, got %s %s", r.Method, r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"achievement": models.Achievement{ID: "a1", Active: false},
		})
	}))

	achievement, err := svc.ToggleStatus(context.Background(), "a1")
	if err != nil {
		t.Fatal(err)
	}
	if achievement.Active {
		t.Error("expected deactivated achievement")
	}
}

func TestCreateRoundTrip(t *testing.T) {
	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var got models.Achievement
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if got.Condition.Target != 10 || got.Reward.Points != 50 {
			t.Errorf("unexpected payload: %+v", got)
		}
		got.ID = "a2"
		json.NewEncoder(w).Encode(map[string]any{"achievement": got})
	}))

	created, err := svc.Create(context.Background(), models.Achievement{
		Title:     "Ten check-ins",
		Tier:      models.TierBronze,
		Condition: models.UnlockCondition{Type: "count", Target: 10},
		Reward:    models.AchievementReward{Points: 50},
	})
	if err != nil {
		t.Fatal(err)
	}
	if created.ID != "a2" {
		t.Errorf("expected assigned ID, got %q", created.ID)
	}
}
