package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Chinmay1145/velocity-speed-emporium/api/controllers"
	"github.com/Chinmay1145/velocity-speed-emporium/api/middleware"
	"github.com/Chinmay1145/velocity-speed-emporium/internal/cart"
	"github.com/Chinmay1145/velocity-speed-emporium/internal/catalog"
	"github.com/Chinmay1145/velocity-speed-emporium/internal/checkout"
	"github.com/Chinmay1145/velocity-speed-emporium/pkg/config"
	"github.com/Chinmay1145/velocity-speed-emporium/pkg/logger"
	pkgredis "github.com/Chinmay1145/velocity-speed-emporium/pkg/redis"
)

// Params groups what the router serves. Idempotency, Gatherer and Checks are optional.
type Params struct {
	Config      *config.Config
	Logger      *logger.Logger
	Catalog     catalog.Service
	Cart        cart.Service
	Checkout    checkout.Service
	Idempotency pkgredis.IdempotencyStore
	Gatherer    prometheus.Gatherer
	Checks      map[string]controllers.Pinger
}

func NewRouter(p Params) http.Handler {
	cfg := p.Config
	if cfg == nil {
		cfg = &config.Config{}
	}
	logg := p.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, p.Checks))
	})

	if p.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(p.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/catalog", func(r chi.Router) {
		r.Get("/products", controllers.CatalogList(p.Catalog, logg))
		r.Get("/products/{productId}", controllers.CatalogProduct(p.Catalog, logg))
		r.Get("/products/{productId}/related", controllers.CatalogRelated(p.Catalog, logg))
		r.Get("/featured", controllers.CatalogFeatured(p.Catalog, logg))
		r.Get("/categories", controllers.CatalogCategories(p.Catalog, logg))
		r.Get("/brands", controllers.CatalogBrands(p.Catalog, logg))
	})

	r.Group(func(r chi.Router) {
		r.Use(
			middleware.Session(logg),
			middleware.Idempotency(p.Idempotency, logg),
		)

		r.Get("/api/v1/cart", controllers.CartGet(p.Cart, logg))
		r.Delete("/api/v1/cart", controllers.CartClear(p.Cart, logg))
		r.Post("/api/v1/cart/items", controllers.CartAddItem(p.Cart, logg))
		r.Patch("/api/v1/cart/items/{productId}", controllers.CartUpdateItem(p.Cart, logg))
		r.Delete("/api/v1/cart/items/{productId}", controllers.CartRemoveItem(p.Cart, logg))

		r.Post("/api/v1/checkout", controllers.CheckoutPlace(p.Checkout, logg))
		r.Post("/api/v1/checkout/quote", controllers.CheckoutQuote(p.Checkout, logg))
	})

	return r
}
