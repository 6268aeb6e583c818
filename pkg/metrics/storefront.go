package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Storefront records catalog, cart and checkout activity.
type Storefront struct {
	catalogQueries   *prometheus.CounterVec
	catalogResults   prometheus.Histogram
	cartEvents       *prometheus.CounterVec
	cartLoadFailures *prometheus.CounterVec
	checkouts        *prometheus.CounterVec
	checkoutFailures *prometheus.CounterVec
}

// NewStorefront registers the storefront metrics on the provided registerer.
// A nil registerer yields a recorder whose methods are no-ops.
func NewStorefront(reg prometheus.Registerer) *Storefront {
	if reg == nil {
		return &Storefront{}
	}
	catalogQueries := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_queries_total",
		Help: "Catalog queries served, by sort mode.",
	}, []string{"sort"})
	catalogResults := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "catalog_query_results",
		Help:    "Number of products returned per catalog query.",
		Buckets: []float64{0, 1, 5, 10, 25, 50, 100},
	})
	cartEvents := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_events_total",
		Help: "Cart mutations, by event kind.",
	}, []string{"kind"})
	cartLoadFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_rehydrate_failures_total",
		Help: "Persisted carts discarded because they could not be decoded or read.",
	}, []string{"reason"})
	checkouts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_orders_total",
		Help: "Orders placed, by payment and delivery method.",
	}, []string{"payment_method", "delivery_method"})
	checkoutFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_failures_total",
		Help: "Checkout attempts rejected, by error code.",
	}, []string{"code"})
	reg.MustRegister(catalogQueries, catalogResults, cartEvents, cartLoadFailures, checkouts, checkoutFailures)
	return &Storefront{
		catalogQueries:   catalogQueries,
		catalogResults:   catalogResults,
		cartEvents:       cartEvents,
		cartLoadFailures: cartLoadFailures,
		checkouts:        checkouts,
		checkoutFailures: checkoutFailures,
	}
}

// ObserveCatalogQuery counts a query and records its result size.
func (s *Storefront) ObserveCatalogQuery(sort string, results int) {
	if s == nil || s.catalogQueries == nil {
		return
	}
	s.catalogQueries.WithLabelValues(normalizeLabel(sort)).Inc()
	s.catalogResults.Observe(float64(results))
}

// IncCartEvent counts a cart mutation.
func (s *Storefront) IncCartEvent(kind string) {
	if s == nil || s.cartEvents == nil {
		return
	}
	s.cartEvents.WithLabelValues(normalizeLabel(kind)).Inc()
}

// IncCartLoadFailure counts a discarded persisted cart.
func (s *Storefront) IncCartLoadFailure(reason string) {
	if s == nil || s.cartLoadFailures == nil {
		return
	}
	s.cartLoadFailures.WithLabelValues(normalizeLabel(reason)).Inc()
}

// IncCheckout counts a placed order.
func (s *Storefront) IncCheckout(paymentMethod, deliveryMethod string) {
	if s == nil || s.checkouts == nil {
		return
	}
	s.checkouts.WithLabelValues(normalizeLabel(paymentMethod), normalizeLabel(deliveryMethod)).Inc()
}

// IncCheckoutFailure counts a rejected checkout.
func (s *Storefront) IncCheckoutFailure(code string) {
	if s == nil || s.checkoutFailures == nil {
		return
	}
	s.checkoutFailures.WithLabelValues(normalizeLabel(code)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
