package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/wortheat/wortheat-backend/internal/analytics"
	"github.com/wortheat/wortheat-backend/internal/auth"
	"github.com/wortheat/wortheat-backend/internal/cart"
	"github.com/wortheat/wortheat-backend/internal/catalog"
	"github.com/wortheat/wortheat-backend/internal/leads"
	"github.com/wortheat/wortheat-backend/internal/orders"
	"github.com/wortheat/wortheat-backend/internal/payments"
	"github.com/wortheat/wortheat-backend/internal/recommend"
	"github.com/wortheat/wortheat-backend/internal/users"
	"github.com/wortheat/wortheat-backend/internal/vendors"
	pkgAuth "github.com/wortheat/wortheat-backend/pkg/auth"
	"github.com/wortheat/wortheat-backend/pkg/auth/session"
	"github.com/wortheat/wortheat-backend/pkg/config"
	"github.com/wortheat/wortheat-backend/pkg/enums"
	"github.com/wortheat/wortheat-backend/pkg/logger"
	"github.com/wortheat/wortheat-backend/pkg/pagination"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubSessionChecker struct{}

func (stubSessionChecker) HasSession(ctx context.Context, accessID string) (bool, error) {
	return true, nil
}

type stubAuthService struct{}

func (stubAuthService) RegisterCustomer(context.Context, auth.RegisterCustomerRequest) (*users.UserDTO, error) {
	panic("unimplemented")
}

func (stubAuthService) RegisterVendor(context.Context, auth.RegisterVendorRequest) (*vendors.VendorDTO, error) {
	panic("unimplemented")
}

func (stubAuthService) LoginCustomer(context.Context, auth.LoginRequest) (*auth.CustomerLoginResponse, error) {
	panic("unimplemented")
}

func (stubAuthService) LoginVendor(context.Context, auth.LoginRequest) (*auth.VendorLoginResponse, error) {
	panic("unimplemented")
}

func (stubAuthService) Refresh(context.Context, auth.RefreshRequest) (*auth.TokenPair, error) {
	panic("unimplemented")
}

func (stubAuthService) Logout(context.Context, string) error {
	return nil
}

type stubCatalogService struct{}

func (stubCatalogService) ListMenus(context.Context, catalog.MenuQuery) ([]catalog.MenuItemDTO, error) {
	return []catalog.MenuItemDTO{}, nil
}

func (stubCatalogService) ListBreakfast(context.Context) ([]catalog.SnackItemDTO, error) {
	return []catalog.SnackItemDTO{}, nil
}

func (stubCatalogService) ListAllDaySnacks(context.Context) ([]catalog.SnackItemDTO, error) {
	return []catalog.SnackItemDTO{}, nil
}

func (stubCatalogService) ListVendors(context.Context) ([]vendors.VendorSummary, error) {
	return []vendors.VendorSummary{}, nil
}

func (stubCatalogService) CreateMenuItem(context.Context, uuid.UUID, catalog.CreateMenuItemInput) (*catalog.MenuItemDTO, error) {
	panic("unimplemented")
}

func (stubCatalogService) UpdateMenuItem(context.Context, uuid.UUID, uuid.UUID, catalog.UpdateMenuItemInput) (*catalog.MenuItemDTO, error) {
	panic("unimplemented")
}

func (stubCatalogService) DeleteMenuItem(context.Context, uuid.UUID, uuid.UUID) error {
	panic("unimplemented")
}

func (stubCatalogService) ListVendorMenuItems(context.Context, uuid.UUID) ([]catalog.MenuItemDTO, error) {
	return []catalog.MenuItemDTO{}, nil
}

func (stubCatalogService) CreateSnackItem(context.Context, uuid.UUID, catalog.CreateSnackItemInput) (*catalog.SnackItemDTO, error) {
	panic("unimplemented")
}

func (stubCatalogService) UpdateSnackItem(context.Context, uuid.UUID, uuid.UUID, catalog.UpdateSnackItemInput) (*catalog.SnackItemDTO, error) {
	panic("unimplemented")
}

func (stubCatalogService) DeleteSnackItem(context.Context, uuid.UUID, uuid.UUID) error {
	panic("unimplemented")
}

func (stubCatalogService) ListVendorSnackItems(context.Context, uuid.UUID) ([]catalog.SnackItemDTO, error) {
	return []catalog.SnackItemDTO{}, nil
}

type stubCartService struct{}

func (stubCartService) Upsert(context.Context, uuid.UUID, cart.UpsertInput) (*cart.EntryDTO, error) {
	panic("unimplemented")
}

func (stubCartService) List(context.Context, uuid.UUID, cart.DayFilter) ([]cart.EntryDTO, error) {
	return []cart.EntryDTO{}, nil
}

func (stubCartService) Delete(context.Context, uuid.UUID, uuid.UUID) error {
	panic("unimplemented")
}

func (stubCartService) Clear(context.Context, uuid.UUID) error {
	panic("unimplemented")
}

type stubOrdersService struct{}

func (stubOrdersService) Create(context.Context, uuid.UUID, orders.CreateOrderInput) (*orders.OrderDTO, error) {
	panic("unimplemented")
}

func (stubOrdersService) Get(context.Context, uuid.UUID, uuid.UUID) (*orders.OrderDTO, error) {
	panic("unimplemented")
}

func (stubOrdersService) History(context.Context, uuid.UUID) ([]orders.DayGroup, error) {
	return []orders.DayGroup{}, nil
}

func (stubOrdersService) Cancel(context.Context, uuid.UUID, uuid.UUID) error {
	panic("unimplemented")
}

func (stubOrdersService) VendorList(context.Context, uuid.UUID, pagination.Params) (*orders.VendorOrderPage, error) {
	return &orders.VendorOrderPage{Orders: []orders.OrderDTO{}}, nil
}

func (stubOrdersService) VendorVerify(context.Context, uuid.UUID, uuid.UUID) (*orders.OrderDTO, error) {
	panic("unimplemented")
}

type stubPaymentsService struct{}

func (stubPaymentsService) CreateGatewayOrder(context.Context, uuid.UUID, payments.CreateGatewayOrderInput) (*payments.GatewayOrderDTO, error) {
	panic("unimplemented")
}

func (stubPaymentsService) Verify(context.Context, uuid.UUID, payments.VerifyInput) (*payments.VerifyResult, error) {
	panic("unimplemented")
}

type stubRecommendService struct{}

func (stubRecommendService) Recommend(context.Context, string, string) (*recommend.Recommendation, error) {
	return &recommend.Recommendation{}, nil
}

type stubLeadsService struct{}

func (stubLeadsService) Create(context.Context, uuid.UUID, leads.CreateInput) (*leads.LeadDTO, error) {
	panic("unimplemented")
}

type stubAnalyticsService struct{}

func (stubAnalyticsService) Summary(context.Context, uuid.UUID, analytics.SummaryQuery) (*analytics.Summary, error) {
	return &analytics.Summary{}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		JWT: config.JWTConfig{
			Secret:                 "secret",
			Issuer:                 "issuer",
			ExpirationMinutes:      60,
			RefreshTokenTTLMinutes: 120,
		},
	}
}

func newTestRouter(cfg *config.Config) http.Handler {
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})
	return NewRouter(Dependencies{
		Config:         cfg,
		Logger:         logg,
		DB:             stubPinger{},
		SessionChecker: stubSessionChecker{},
		Auth:           stubAuthService{},
		Catalog:        stubCatalogService{},
		Cart:           stubCartService{},
		Orders:         stubOrdersService{},
		Payments:       stubPaymentsService{},
		Recommend:      stubRecommendService{},
		Leads:          stubLeadsService{},
		Analytics:      stubAnalyticsService{},
	})
}

func buildToken(t *testing.T, cfg *config.Config, role enums.ActorRole, vendorID *uuid.UUID) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(cfg.JWT, time.Now(), pkgAuth.AccessTokenPayload{
		UserID:   uuid.New(),
		Role:     role,
		VendorID: vendorID,
		JTI:      session.NewAccessID(),
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestHealthLiveIsPublic(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for liveness got %d", resp.Code)
	}
}

func TestProtectedGroupRejectsMissingJWT(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token got %d", resp.Code)
	}
}

func TestProtectedGroupSucceedsWithJWT(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.ActorRoleCustomer, nil))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for order history got %d", resp.Code)
	}
}

func TestVendorGroupRequiresVendorRole(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	customer := httptest.NewRequest(http.MethodGet, "/api/v1/vendor/orders", nil)
	customer.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.ActorRoleCustomer, nil))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, customer)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for customer on vendor route got %d", resp.Code)
	}

	vendorID := uuid.New()
	vendor := httptest.NewRequest(http.MethodGet, "/api/v1/vendor/orders", nil)
	vendor.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.ActorRoleVendor, &vendorID))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, vendor)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for vendor orders got %d", resp.Code)
	}
}

func TestVendorAnalyticsRequiresVendorRole(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	customer := httptest.NewRequest(http.MethodGet, "/api/v1/vendor/analytics/summary", nil)
	customer.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.ActorRoleCustomer, nil))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, customer)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for customer on analytics got %d", resp.Code)
	}

	vendorID := uuid.New()
	vendor := httptest.NewRequest(http.MethodGet, "/api/v1/vendor/analytics/summary", nil)
	vendor.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.ActorRoleVendor, &vendorID))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, vendor)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for vendor analytics got %d", resp.Code)
	}
}

func TestRecommendationsRequireCity(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/recommendations", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.ActorRoleCustomer, nil))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without city got %d", resp.Code)
	}
}
