package businesses

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
		if q.Get("category") != "restaurant" || q.Get("approval") != models.ApprovalPending || q.Get("city") != "Olinda" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}
		if q.Get("search") != "churrascaria gaucha" {
			t.Errorf("expected normalized search, got %q", q.Get("search"))
		}
		json.NewEncoder(w).Encode(models.BusinessList{
			Businesses: []models.Business{{ID: "b1", Name: "Churrascaria Gaúcha"}},
			Pagination: models.Pagination{Total: 1, Page: 1, TotalPages: 1, PerPage: 20},
		})
	}))

	list, err := svc.List(context.Background(), ListFilters{
		Category: "restaurant",
		Approval: models.ApprovalPending,
		City:     "Olinda",
		Search:   " Churrascaria GAÚCHA ",
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(list.Businesses) != 1 || list.Businesses[0].ID != "b1" {
		t.Errorf("unexpected list: %+v", list)
	}
}

func TestListOmitsZeroFilters(t *testing.T) {
	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.RawQuery != "" {
			t.Errorf("expected no query parameters, got %q", r.URL.RawQuery)
		}
		json.NewEncoder(w).Encode(models.BusinessList{})
	}))

	if _, err := svc.List(context.Background(), ListFilters{}); err != nil {
		t.Fatal(err)
	}
}

func TestApprove(t *testing.T) {
	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch || r.URL.Path != "/businesses/b1/approve" {
			t.Errorf("expected PATCH /businesses/b1/approve, got %s %s", r.Method, r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"business": models.Business{ID: "b1", Approval: models.ApprovalApproved},
		})
	}))

	business, err := svc.Approve(context.Background(), "b1")
	if err != nil {
		t.Fatal(err)
	}
	if business.Approval != models.ApprovalApproved {
		t.Errorf("expected approved business, got %q", business.Approval)
	}
}

func TestRejectSendsReason(t *testing.T) {
	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch || r.URL.Path != "/businesses/b1/reject" {
			t.Errorf("expected PATCH /businesses/b1/reject, got %s %s", r.Method, r.URL.Path)
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if body["reason"] != "incomplete documents" {
			t.Errorf("expected rejection reason, got %q", body["reason"])
		}
		json.NewEncoder(w).Encode(map[string]any{
			"business": models.Business{ID: "b1", Approval: models.ApprovalRejected, RejectionReason: "incomplete documents"},
		})
	}))

	business, err := svc.Reject(context.Background(), "b1", "incomplete documents")
	if err != nil {
		t.Fatal(err)
	}
	if business.Approval != models.ApprovalRejected {
		t.Errorf("expected rejected business, got %q", business.Approval)
	}
}

func TestGetUnwrapsEnvelope(t *testing.T) {
	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/businesses/b1" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"business": models.Business{ID: "b1", Name: "Padaria Central"},
		})
	}))

	business, err := svc.Get(context.Background(), "b1")
	if err != nil {
		t.Fatal(err)
	}
	if business.Name != "Padaria Central" {
		t.Errorf("unexpected business: %+v", business)
	}
}

func TestStats(t *testing.T) {
	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/businesses/stats" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(models.BusinessStats{Total: 30, Approved: 25, Pending: 5})
	}))

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if stats.Total != 30 || stats.Pending != 5 {
		t.Errorf("unexpected stats: %+v", stats)
	}
}
