package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/wortheat/wortheat-backend/api/middleware"
	"github.com/wortheat/wortheat-backend/internal/orders"
	"github.com/wortheat/wortheat-backend/pkg/pagination"
)

type stubVendorOrdersService struct {
	stubOrdersService
	page       *orders.VendorOrderPage
	lastParams pagination.Params
}

func (s *stubVendorOrdersService) VendorList(ctx context.Context, vendorID uuid.UUID, params pagination.Params) (*orders.VendorOrderPage, error) {
	s.lastParams = params
	return s.page, nil
}

func TestVendorOrderList(t *testing.T) {
	logg := testLogger()
	vendorID := uuid.New()

	t.Run("missing vendor session", func(t *testing.T) {
		ctx := middleware.WithUserID(context.Background(), uuid.NewString())
		req := httptest.NewRequest(http.MethodGet, "/api/v1/vendor/orders", nil).WithContext(ctx)
		rec := httptest.NewRecorder()
		VendorOrderList(&stubVendorOrdersService{}, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403 without vendor context, got %d", rec.Code)
		}
	})

	t.Run("passes limit and cursor through", func(t *testing.T) {
		ctx := middleware.WithUserID(context.Background(), uuid.NewString())
		ctx = middleware.WithVendorID(ctx, vendorID.String())
		req := httptest.NewRequest(http.MethodGet, "/api/v1/vendor/orders?limit=10&cursor=abc", nil).WithContext(ctx)
		rec := httptest.NewRecorder()

		stub := &stubVendorOrdersService{page: &orders.VendorOrderPage{Orders: []orders.OrderDTO{}}}
		VendorOrderList(stub, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if stub.lastParams.Limit != 10 || stub.lastParams.Cursor != "abc" {
			t.Fatalf("unexpected pagination params %+v", stub.lastParams)
		}
	})

	t.Run("rejects out-of-range limit", func(t *testing.T) {
		ctx := middleware.WithUserID(context.Background(), uuid.NewString())
		ctx = middleware.WithVendorID(ctx, vendorID.String())
		req := httptest.NewRequest(http.MethodGet, "/api/v1/vendor/orders?limit=5000", nil).WithContext(ctx)
		rec := httptest.NewRecorder()
		VendorOrderList(&stubVendorOrdersService{}, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for oversized limit, got %d", rec.Code)
		}
	})
}
