package coupons

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

func TestListSendsNormalizedSearch(t *testing.T) {
	var gotQuery string
	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("search")
		json.NewEncoder(w).Encode(models.CouponList{})
	}))

	_, err := svc.List(context.Background(), ListFilters{Search: "  Café CENTRAL "})
	if err != nil {
		t.Fatal(err)
	}
	if gotQuery != "cafe central" {
		t.Errorf("expected normalized search, got %q", gotQuery)
	}
}

func TestListOmitsZeroFilters(t *testing.T) {
	var gotQuery string
	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		json.NewEncoder(w).Encode(models.CouponList{})
	}))

	if _, err := svc.List(context.Background(), ListFilters{}); err != nil {
		t.Fatal(err)
	}
	if gotQuery != "" {
		t.Errorf("expected no query parameters, got %q", gotQuery)
	}
}

func TestListPagination(t *testing.T) {
	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("page") != "2" || q.Get("perPage") != "5" || q.Get("status") != models.CouponStatusActive {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}
		json.NewEncoder(w).Encode(models.CouponList{
			Coupons:    []models.Coupon{{ID: "c6"}},
			Pagination: models.Pagination{Total: 6, Page: 2, TotalPages: 2, PerPage: 5},
		})
	}))

	list, err := svc.List(context.Background(), ListFilters{Page: 2, PerPage: 5, Status: models.CouponStatusActive})
	if err != nil {
		t.Fatal(err)
	}
	if list.Pagination.Page != 2 || len(list.Coupons) != 1 {
		t.Errorf("unexpected list: %+v", list)
	}
}

func TestGetUnwrapsEnvelope(t *testing.T) {
	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/coupons/c1" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"coupon": models.Coupon{ID: "c1", Title: "Free coffee"},
		})
	}))

	coupon, err := svc.Get(context.Background(), "c1")
	if err != nil {
		t.Fatal(err)
	}
	if coupon.ID != "c1" || coupon.Title != "Free coffee" {
		t.Errorf("unexpected coupon: %+v", coupon)
	}
}

func TestRejectSendsReason(t *testing.T) {
	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch || r.URL.Path != "/coupons/c1/reject" {
			t.Errorf("expected PATCH /coupons/c1/reject, got %s %s", r.Method, r.URL.Path)
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if body["reason"] != "expired offer" {
			t.Errorf("expected reason, got %q", body["reason"])
		}
		json.NewEncoder(w).Encode(map[string]any{
			"coupon": models.Coupon{ID: "c1", Approval: models.ApprovalRejected},
		})
	}))

	coupon, err := svc.Reject(context.Background(), "c1", "expired offer")
	if err != nil {
		t.Fatal(err)
	}
	if coupon.Approval != models.ApprovalRejected {
		t.Errorf("expected rejected approval, got %q", coupon.Approval)
	}
}

func TestGetNotFound(t *testing.T) {
	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"message": "coupon not found"})
	}))

	_, err := svc.Get(context.Background(), "nope")
	if api.CategoryOf(err) != api.CategoryNotFound {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}
