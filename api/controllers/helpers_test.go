package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/Chinmay1145/velocity-speed-emporium/api/middleware"
	"github.com/Chinmay1145/velocity-speed-emporium/internal/cart"
	"github.com/Chinmay1145/velocity-speed-emporium/internal/catalog"
	"github.com/Chinmay1145/velocity-speed-emporium/internal/checkout"
	"github.com/Chinmay1145/velocity-speed-emporium/pkg/storage/kv"
)

func fixtureCatalog(t *testing.T) catalog.Service {
	t.Helper()
	data := catalog.Data{
		Products: []catalog.Product{
			{ID: "ninja", Name: "Ninja", Description: "Track weapon", Price: 1000, Brand: "kawasaki", Category: "sport", Colors: []string{"Green", "Black"}, InStock: true, Featured: true},
			{ID: "classic", Name: "Classic", Description: "Retro thumper", Price: 200, Brand: "royalenfield", Category: "cruiser", Colors: []string{"Bronze"}, InStock: true, Discount: catalog.Percent(10)},
			{ID: "z900", Name: "Z900", Description: "Street fighter", Price: 800, Brand: "kawasaki", Category: "naked", Colors: []string{"Black"}},
		},
		Categories: catalog.SeedCategories(),
		Brands:     catalog.SeedBrands(),
	}
	svc, err := catalog.NewService(catalog.ServiceParams{Data: data})
	require.NoError(t, err)
	return svc
}

func fixtureCart(t *testing.T, catalogSvc catalog.Service) cart.Service {
	t.Helper()
	svc, err := cart.NewService(cart.ServiceParams{Store: kv.NewMemory(), Catalog: catalogSvc})
	require.NoError(t, err)
	return svc
}

func fixtureCheckout(t *testing.T, carts cart.Service) checkout.Service {
	t.Helper()
	svc, err := checkout.NewService(checkout.ServiceParams{
		Carts:   carts,
		Pricing: checkout.NewPricing(checkout.DefaultTaxRate, 5000),
	})
	require.NoError(t, err)
	return svc
}

func serve(t *testing.T, method, pattern string, handler http.HandlerFunc, target, body, sessionID string) *httptest.ResponseRecorder {
	t.Helper()
	r := chi.NewRouter()
	r.Use(middleware.Session(nil))
	r.MethodFunc(method, pattern, handler)

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if sessionID != "" {
		req.Header.Set("X-Session-Id", sessionID)
	}
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func decodeData(t *testing.T, resp *httptest.ResponseRecorder, dest any) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, dest))
}

func errorCode(t *testing.T, resp *httptest.ResponseRecorder) string {
	t.Helper()
	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return envelope.Error.Code
}

type stubPinger struct {
	err error
}

func (s stubPinger) Ping(context.Context) error {
	return s.err
}
