package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/wortheat/wortheat-backend/api/controllers"
	"github.com/wortheat/wortheat-backend/api/middleware"
	"github.com/wortheat/wortheat-backend/internal/analytics"
	"github.com/wortheat/wortheat-backend/internal/auth"
	"github.com/wortheat/wortheat-backend/internal/cart"
	"github.com/wortheat/wortheat-backend/internal/catalog"
	"github.com/wortheat/wortheat-backend/internal/leads"
	"github.com/wortheat/wortheat-backend/internal/orders"
	"github.com/wortheat/wortheat-backend/internal/payments"
	"github.com/wortheat/wortheat-backend/internal/recommend"
	"github.com/wortheat/wortheat-backend/pkg/auth/session"
	"github.com/wortheat/wortheat-backend/pkg/config"
	"github.com/wortheat/wortheat-backend/pkg/enums"
	"github.com/wortheat/wortheat-backend/pkg/logger"
	"github.com/wortheat/wortheat-backend/pkg/metrics"
	"github.com/wortheat/wortheat-backend/pkg/redis"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// Dependencies carries everything the router needs to wire its routes.
type Dependencies struct {
	Config         *config.Config
	Logger         *logger.Logger
	DB             pinger
	Redis          *redis.Client
	SessionChecker session.AccessSessionChecker
	HTTPMetrics    *metrics.HTTPMetrics
	Gatherer       prometheus.Gatherer

	Auth      auth.Service
	Catalog   catalog.Service
	Cart      cart.Service
	Orders    orders.Service
	Payments  payments.Service
	Recommend recommend.Service
	Leads     leads.Service
	Analytics analytics.Service
}

// NewRouter assembles the HTTP surface: health and metrics, public auth and
// browsing routes, the authenticated customer surface, and the vendor surface
// behind the vendor role gate.
func NewRouter(deps Dependencies) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg, deps.HTTPMetrics),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	var cachePinger pinger
	if deps.Redis != nil {
		cachePinger = deps.Redis
	}
	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, cachePinger))
	})
	if deps.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler(deps.Gatherer))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(registerPolicy, deps.Redis, logg)).
			Post("/register", controllers.AuthRegister(deps.Auth, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, deps.Redis, logg)).
			Post("/vendor/register", controllers.AuthVendorRegister(deps.Auth, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)).
			Post("/login", controllers.AuthLogin(deps.Auth, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)).
			Post("/vendor/login", controllers.AuthVendorLogin(deps.Auth, logg))
		r.Post("/refresh", controllers.AuthRefresh(deps.Auth, logg))
		r.Post("/logout", controllers.AuthLogout(deps.Auth, cfg.JWT, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.SessionChecker, logg))
		r.Use(middleware.Idempotency(deps.Redis, logg))

		r.Route("/catalog", func(r chi.Router) {
			r.Get("/menus", controllers.CatalogMenus(deps.Catalog, logg))
			r.Get("/snacks/breakfast", controllers.CatalogBreakfast(deps.Catalog, logg))
			r.Get("/snacks/all-day", controllers.CatalogAllDaySnacks(deps.Catalog, logg))
			r.Get("/vendors", controllers.CatalogVendors(deps.Catalog, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Put("/", controllers.CartUpsert(deps.Cart, logg))
			r.Get("/", controllers.CartList(deps.Cart, logg))
			r.Delete("/", controllers.CartClear(deps.Cart, logg))
			r.Delete("/{entryId}", controllers.CartDeleteEntry(deps.Cart, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", controllers.OrderCreate(deps.Orders, logg))
			r.Get("/", controllers.OrderHistory(deps.Orders, logg))
			r.Get("/{orderId}", controllers.OrderDetail(deps.Orders, logg))
			r.Post("/{orderId}/cancel", controllers.OrderCancel(deps.Orders, logg))
		})

		r.Route("/payments", func(r chi.Router) {
			r.Post("/order", controllers.PaymentOrderCreate(deps.Payments, logg))
			r.Post("/verify", controllers.PaymentVerify(deps.Payments, logg))
		})

		r.Get("/recommendations", controllers.Recommendations(deps.Recommend, logg))
		r.Post("/leads", controllers.LeadCreate(deps.Leads, logg))

		r.Route("/vendor", func(r chi.Router) {
			r.Use(middleware.RequireRole(string(enums.ActorRoleVendor), logg))
			r.Use(middleware.VendorContext(logg))

			r.Route("/menu-items", func(r chi.Router) {
				r.Get("/", controllers.VendorMenuItemList(deps.Catalog, logg))
				r.Post("/", controllers.VendorMenuItemCreate(deps.Catalog, logg))
				r.Patch("/{itemId}", controllers.VendorMenuItemUpdate(deps.Catalog, logg))
				r.Delete("/{itemId}", controllers.VendorMenuItemDelete(deps.Catalog, logg))
			})
			r.Route("/snack-items", func(r chi.Router) {
				r.Get("/", controllers.VendorSnackItemList(deps.Catalog, logg))
				r.Post("/", controllers.VendorSnackItemCreate(deps.Catalog, logg))
				r.Patch("/{itemId}", controllers.VendorSnackItemUpdate(deps.Catalog, logg))
				r.Delete("/{itemId}", controllers.VendorSnackItemDelete(deps.Catalog, logg))
			})
			r.Route("/orders", func(r chi.Router) {
				r.Get("/", controllers.VendorOrderList(deps.Orders, logg))
				r.Post("/{orderId}/verify", controllers.VendorOrderVerify(deps.Orders, logg))
			})
			r.Get("/analytics/summary", controllers.VendorAnalyticsSummary(deps.Analytics, logg))
		})
	})

	return r
}
