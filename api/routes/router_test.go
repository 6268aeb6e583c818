package routes

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/Chinmay1145/velocity-speed-emporium/api/controllers"
	"github.com/Chinmay1145/velocity-speed-emporium/internal/cart"
	"github.com/Chinmay1145/velocity-speed-emporium/internal/catalog"
	"github.com/Chinmay1145/velocity-speed-emporium/internal/checkout"
	"github.com/Chinmay1145/velocity-speed-emporium/pkg/config"
	"github.com/Chinmay1145/velocity-speed-emporium/pkg/metrics"
	pkgredis "github.com/Chinmay1145/velocity-speed-emporium/pkg/redis"
	"github.com/Chinmay1145/velocity-speed-emporium/pkg/storage/kv"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type memoryIdempotency struct {
	mu   sync.Mutex
	data map[string]string
}

func (m *memoryIdempotency) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok := m.data[key]; ok {
		return v, nil
	}
	return "", pkgredis.Nil
}

func (m *memoryIdempotency) SetNX(_ context.Context, key string, value any, _ time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.data[key]; ok {
		return false, nil
	}
	m.data[key] = fmt.Sprint(value)
	return true, nil
}

func (m *memoryIdempotency) Del(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range keys {
		delete(m.data, key)
	}
	return nil
}

func (m *memoryIdempotency) IdempotencyKey(scope, id string) string {
	return scope + ":" + id
}

func newTestRouter(t *testing.T, idem pkgredis.IdempotencyStore) http.Handler {
	t.Helper()
	reg := prometheus.NewRegistry()
	m := metrics.NewStorefront(reg)

	catalogSvc, err := catalog.NewService(catalog.ServiceParams{Data: catalog.SeedData(), Metrics: m})
	require.NoError(t, err)
	cartSvc, err := cart.NewService(cart.ServiceParams{Store: kv.NewMemory(), Catalog: catalogSvc, Metrics: m})
	require.NoError(t, err)
	checkoutSvc, err := checkout.NewService(checkout.ServiceParams{
		Carts:   cartSvc,
		Pricing: checkout.NewPricing(checkout.DefaultTaxRate, 5000),
		Metrics: m,
	})
	require.NoError(t, err)

	cfg := &config.Config{App: config.AppConfig{Env: "dev"}}
	return NewRouter(Params{
		Config:      cfg,
		Catalog:     catalogSvc,
		Cart:        cartSvc,
		Checkout:    checkoutSvc,
		Idempotency: idem,
		Gatherer:    reg,
		Checks:      map[string]controllers.Pinger{"store": stubPinger{}},
	})
}

func do(t *testing.T, h http.Handler, method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, req)
	return resp
}

func TestHealthRoutes(t *testing.T) {
	h := newTestRouter(t, nil)

	require.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/health/live", "", nil).Code)
	require.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/health/ready", "", nil).Code)
}

func TestCatalogRoutes(t *testing.T) {
	h := newTestRouter(t, nil)

	resp := do(t, h, http.MethodGet, "/api/v1/catalog/products?category=sport&sort=popular", "", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	require.NotEmpty(t, resp.Header().Get("X-Request-Id"))

	var body struct {
		Data struct {
			Products []catalog.Product `json:"products"`
			Count    int               `json:"count"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, len(body.Data.Products), body.Data.Count)
	require.NotZero(t, body.Data.Count)
	for _, p := range body.Data.Products {
		require.Equal(t, "sport", p.Category)
	}

	require.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/api/v1/catalog/products/ninja-zx10r", "", nil).Code)
	require.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/api/v1/catalog/products/ninja-zx10r/related", "", nil).Code)
	require.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/api/v1/catalog/products/unknown", "", nil).Code)
	require.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/api/v1/catalog/featured", "", nil).Code)
	require.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/api/v1/catalog/categories", "", nil).Code)
	require.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/api/v1/catalog/brands", "", nil).Code)
}

func TestCartRoutesEchoSession(t *testing.T) {
	h := newTestRouter(t, nil)

	resp := do(t, h, http.MethodGet, "/api/v1/cart", "", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	session := resp.Header().Get("X-Session-Id")
	require.NotEmpty(t, session)

	headers := map[string]string{"X-Session-Id": session}
	resp = do(t, h, http.MethodPost, "/api/v1/cart/items", `{"productId":"ninja-zx10r","quantity":2}`, headers)
	require.Equal(t, http.StatusOK, resp.Code)
	require.Equal(t, session, resp.Header().Get("X-Session-Id"))

	resp = do(t, h, http.MethodPatch, "/api/v1/cart/items/ninja-zx10r", `{"quantity":1}`, headers)
	require.Equal(t, http.StatusOK, resp.Code)
	resp = do(t, h, http.MethodDelete, "/api/v1/cart/items/ninja-zx10r", "", headers)
	require.Equal(t, http.StatusOK, resp.Code)
	resp = do(t, h, http.MethodDelete, "/api/v1/cart", "", headers)
	require.Equal(t, http.StatusOK, resp.Code)
}

const orderForm = `{"firstName":"Asha","lastName":"Rao","email":"asha@example.com","phone":"9876543210","address":"12 MG Road","city":"Bengaluru","state":"karnataka","postalCode":"560001","paymentMethod":"cod","deliveryMethod":"standard"}`

func TestCheckoutIsIdempotent(t *testing.T) {
	h := newTestRouter(t, &memoryIdempotency{data: map[string]string{}})
	headers := map[string]string{"X-Session-Id": "shopper-1"}

	resp := do(t, h, http.MethodPost, "/api/v1/cart/items", `{"productId":"ninja-zx10r"}`, headers)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = do(t, h, http.MethodPost, "/api/v1/checkout/quote", `{"deliveryMethod":"express"}`, headers)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = do(t, h, http.MethodPost, "/api/v1/checkout", orderForm, headers)
	require.Equal(t, http.StatusBadRequest, resp.Code, "checkout needs an Idempotency-Key when a store is wired")

	keyed := map[string]string{"X-Session-Id": "shopper-1", "Idempotency-Key": "order-1"}
	first := do(t, h, http.MethodPost, "/api/v1/checkout", orderForm, keyed)
	require.Equal(t, http.StatusCreated, first.Code)

	replay := do(t, h, http.MethodPost, "/api/v1/checkout", orderForm, keyed)
	require.Equal(t, http.StatusCreated, replay.Code)
	require.JSONEq(t, first.Body.String(), replay.Body.String())
}

func TestMetricsRoute(t *testing.T) {
	h := newTestRouter(t, nil)
	do(t, h, http.MethodGet, "/api/v1/catalog/products", "", nil)

	resp := do(t, h, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	require.Contains(t, resp.Body.String(), "catalog_queries_total")
}
