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
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/Chinmay1145/velocity-speed-emporium/api/routes"
	"github.com/Chinmay1145/velocity-speed-emporium/internal/cart"
	"github.com/Chinmay1145/velocity-speed-emporium/internal/catalog"
	"github.com/Chinmay1145/velocity-speed-emporium/internal/checkout"
	"github.com/Chinmay1145/velocity-speed-emporium/pkg/config"
	"github.com/Chinmay1145/velocity-speed-emporium/pkg/instance"
	"github.com/Chinmay1145/velocity-speed-emporium/pkg/logger"
	"github.com/Chinmay1145/velocity-speed-emporium/pkg/metrics"
)

const shutdownTimeout = 10 * time.Second

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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps, err := bootstrap(ctx, cfg, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap dependencies", err)
		os.Exit(1)
	}
	defer func() {
		if err := deps.Close(); err != nil {
			logg.Error(context.Background(), "error closing dependencies", err)
		}
	}()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	storefrontMetrics := metrics.NewStorefront(reg)

	data, err := loadCatalog(cfg)
	if err != nil {
		logg.Error(ctx, "failed to load catalog", err)
		os.Exit(1)
	}

	catalogService, err := catalog.NewService(catalog.ServiceParams{
		Data:          data,
		MaxPrice:      cfg.Catalog.MaxPrice,
		RelatedLimit:  cfg.Catalog.RelatedLimit,
		FeaturedLimit: cfg.Catalog.FeaturedLimit,
		Metrics:       storefrontMetrics,
	})
	if err != nil {
		logg.Error(ctx, "failed to create catalog service", err)
		os.Exit(1)
	}

	cartService, err := cart.NewService(cart.ServiceParams{
		Store:   deps.Store,
		Catalog: catalogService,
		Logger:  logg,
		Metrics: storefrontMetrics,
		SlotKey: cfg.Store.CartKey,
	})
	if err != nil {
		logg.Error(ctx, "failed to create cart service", err)
		os.Exit(1)
	}

	checkoutService, err := checkout.NewService(checkout.ServiceParams{
		Carts:         cartService,
		Pricing:       checkout.NewPricing(cfg.Checkout.Tax(), cfg.Checkout.ExpressFee),
		PaymentDelay:  cfg.Checkout.PaymentDelay,
		RedirectAfter: cfg.Checkout.RedirectCountdown,
		Logger:        logg,
		Metrics:       storefrontMetrics,
	})
	if err != nil {
		logg.Error(ctx, "failed to create checkout service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx = logg.WithFields(ctx, map[string]any{
		"env":          cfg.App.Env,
		"addr":         addr,
		"instance":     instance.GetID(),
		"store_driver": cfg.Store.Normalized(),
		"products":     len(data.Products),
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Params{
			Config:      cfg,
			Logger:      logg,
			Catalog:     catalogService,
			Cart:        cartService,
			Checkout:    checkoutService,
			Idempotency: deps.Idempotency,
			Gatherer:    reg,
			Checks:      deps.Checks,
		}),
		ReadHeaderTimeout: 5 * time.Second,
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
		logg.Info(context.Background(), "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(shutdownCtx, "graceful shutdown failed", err)
		}
	}
}

func loadCatalog(cfg *config.Config) (catalog.Data, error) {
	if cfg.Catalog.Path == "" {
		return catalog.SeedData(), nil
	}
	return catalog.LoadFile(cfg.Catalog.Path)
}
