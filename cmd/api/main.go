package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"

	"github.com/wortheat/wortheat-backend/api/routes"
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
	"github.com/wortheat/wortheat-backend/pkg/auth/session"
	"github.com/wortheat/wortheat-backend/pkg/config"
	"github.com/wortheat/wortheat-backend/pkg/db"
	"github.com/wortheat/wortheat-backend/pkg/genai"
	"github.com/wortheat/wortheat-backend/pkg/logger"
	"github.com/wortheat/wortheat-backend/pkg/metrics"
	"github.com/wortheat/wortheat-backend/pkg/migrate"
	"github.com/wortheat/wortheat-backend/pkg/outbox"
	"github.com/wortheat/wortheat-backend/pkg/razorpay"
	"github.com/wortheat/wortheat-backend/pkg/redis"
	"github.com/wortheat/wortheat-backend/pkg/weather"
)

const shutdownGrace = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, cfg.FeatureFlags, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	closers := []func() error{dbClient.Close}
	defer func() {
		if err := closeAll(closers); err != nil {
			logg.Error(context.Background(), "error closing resources", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	closers = append(closers, redisClient.Close)

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	razorpayClient, err := razorpay.NewClient(context.Background(), cfg.Razorpay, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create razorpay client", err)
		os.Exit(1)
	}
	weatherClient, err := weather.NewClient(context.Background(), cfg.Weather, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create weather client", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)

	userRepo := users.NewRepository(dbClient.DB())
	vendorRepo := vendors.NewRepository(dbClient.DB())
	catalogRepo := catalog.NewRepository(dbClient.DB())
	cartRepo := cart.NewRepository(dbClient.DB())
	orderRepo := orders.NewRepository(dbClient.DB())
	leadRepo := leads.NewRepository(dbClient.DB())
	outboxService := outbox.NewService(outbox.NewRepository(dbClient.DB()), logg)

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       userRepo,
		VendorRepo:     vendorRepo,
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	})
	exitOnError(logg, "failed to create auth service", err)

	catalogService, err := catalog.NewService(catalogRepo, vendorRepo)
	exitOnError(logg, "failed to create catalog service", err)

	cartService, err := cart.NewService(cartRepo, catalogRepo)
	exitOnError(logg, "failed to create cart service", err)

	orderService, err := orders.NewService(orders.ServiceParams{
		Repo:    orderRepo,
		Catalog: catalogRepo,
		Tx:      dbClient,
		Outbox:  outboxService,
	})
	exitOnError(logg, "failed to create orders service", err)

	paymentService, err := payments.NewService(payments.ServiceParams{
		Orders:  orderRepo,
		Gateway: razorpayClient,
		Tx:      dbClient,
		Outbox:  outboxService,
		KeyID:   cfg.Razorpay.KeyID,
	})
	exitOnError(logg, "failed to create payments service", err)

	recommendParams := recommend.ServiceParams{
		Weather: weatherClient,
		Logger:  logg,
	}
	if cfg.GenAI.APIKey != "" {
		genaiClient, err := genai.NewClient(context.Background(), cfg.GenAI, logg)
		exitOnError(logg, "failed to create genai client", err)
		recommendParams.GenAI = genaiClient
	} else {
		logg.Warn(context.Background(), "genai api key not set, ai recommendations will fall back to the heuristic")
	}
	recommendService, err := recommend.NewService(recommendParams)
	exitOnError(logg, "failed to create recommendation service", err)

	leadService, err := leads.NewService(leadRepo)
	exitOnError(logg, "failed to create leads service", err)

	analyticsService, err := analytics.NewService(analytics.NewRepository(dbClient.DB()), nil)
	exitOnError(logg, "failed to create analytics service", err)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Dependencies{
			Config:         cfg,
			Logger:         logg,
			DB:             dbClient,
			Redis:          redisClient,
			SessionChecker: sessionManager,
			HTTPMetrics:    httpMetrics,
			Gatherer:       registry,
			Auth:           authService,
			Catalog:        catalogService,
			Cart:           cartService,
			Orders:         orderService,
			Payments:       paymentService,
			Recommend:      recommendService,
			Leads:          leadService,
			Analytics:      analyticsService,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		logg.Info(ctx, "shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
			os.Exit(1)
		}
	}

	logg.Info(ctx, "api server shut down gracefully")
}

// closeAll releases resources in reverse acquisition order, collecting every
// close error.
func closeAll(closers []func() error) error {
	var errs []error
	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return multierr.Combine(errs...)
}

func exitOnError(logg *logger.Logger, msg string, err error) {
	if err == nil {
		return
	}
	logg.Error(context.Background(), msg, err)
	os.Exit(1)
}
