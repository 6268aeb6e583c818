package controllers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Chinmay1145/velocity-speed-emporium/internal/cart"
	"github.com/Chinmay1145/velocity-speed-emporium/pkg/enums"
	pkgerrors "github.com/Chinmay1145/velocity-speed-emporium/pkg/errors"
)

func TestCartAddItemDefaultsQuantityAndColor(t *testing.T) {
	carts := fixtureCart(t, fixtureCatalog(t))

	resp := serve(t, http.MethodPost, "/cart/items", CartAddItem(carts, nil), "/cart/items", `{"productId":"ninja"}`, "s1")
	require.Equal(t, http.StatusOK, resp.Code)

	var snapshot cart.Snapshot
	decodeData(t, resp, &snapshot)
	require.Equal(t, 1, snapshot.ItemCount)
	require.Len(t, snapshot.Lines, 1)
	require.Equal(t, "Green", snapshot.Lines[0].Color)
	require.Equal(t, "1000", snapshot.TotalAmount.String())
	require.NotNil(t, snapshot.Event)
	require.Equal(t, enums.CartEventItemAdded, snapshot.Event.Kind)
}

func TestCartAddItemValidation(t *testing.T) {
	carts := fixtureCart(t, fixtureCatalog(t))
	handler := CartAddItem(carts, nil)

	resp := serve(t, http.MethodPost, "/cart/items", handler, "/cart/items", `{"productId":"ninja","quantity":-1}`, "s1")
	require.Equal(t, http.StatusBadRequest, resp.Code)

	resp = serve(t, http.MethodPost, "/cart/items", handler, "/cart/items", `{"productId":"ninja","color":"Pink"}`, "s1")
	require.Equal(t, http.StatusBadRequest, resp.Code)

	resp = serve(t, http.MethodPost, "/cart/items", handler, "/cart/items", `{"productId":"missing"}`, "s1")
	require.Equal(t, http.StatusNotFound, resp.Code)

	resp = serve(t, http.MethodPost, "/cart/items", handler, "/cart/items", `not json`, "s1")
	require.Equal(t, http.StatusBadRequest, resp.Code)
	require.Equal(t, string(pkgerrors.CodeValidation), errorCode(t, resp))
}

func TestCartSessionsAreIsolated(t *testing.T) {
	carts := fixtureCart(t, fixtureCatalog(t))

	resp := serve(t, http.MethodPost, "/cart/items", CartAddItem(carts, nil), "/cart/items", `{"productId":"classic","quantity":2}`, "s1")
	require.Equal(t, http.StatusOK, resp.Code)

	resp = serve(t, http.MethodGet, "/cart", CartGet(carts, nil), "/cart", "", "s2")
	require.Equal(t, http.StatusOK, resp.Code)
	var other cart.Snapshot
	decodeData(t, resp, &other)
	require.Equal(t, 0, other.ItemCount)

	resp = serve(t, http.MethodGet, "/cart", CartGet(carts, nil), "/cart", "", "s1")
	var mine cart.Snapshot
	decodeData(t, resp, &mine)
	require.Equal(t, 2, mine.ItemCount)
	require.Equal(t, "360", mine.TotalAmount.String())
}

func TestCartUpdateRemoveAndClear(t *testing.T) {
	carts := fixtureCart(t, fixtureCatalog(t))
	add := CartAddItem(carts, nil)
	serve(t, http.MethodPost, "/cart/items", add, "/cart/items", `{"productId":"ninja"}`, "s1")
	serve(t, http.MethodPost, "/cart/items", add, "/cart/items", `{"productId":"z900"}`, "s1")

	resp := serve(t, http.MethodPatch, "/cart/items/{productId}", CartUpdateItem(carts, nil), "/cart/items/ninja", `{"quantity":3}`, "s1")
	require.Equal(t, http.StatusOK, resp.Code)
	var snapshot cart.Snapshot
	decodeData(t, resp, &snapshot)
	require.Equal(t, 4, snapshot.ItemCount)

	resp = serve(t, http.MethodPatch, "/cart/items/{productId}", CartUpdateItem(carts, nil), "/cart/items/ninja", `{}`, "s1")
	require.Equal(t, http.StatusBadRequest, resp.Code)

	resp = serve(t, http.MethodDelete, "/cart/items/{productId}", CartRemoveItem(carts, nil), "/cart/items/z900", "", "s1")
	require.Equal(t, http.StatusOK, resp.Code)
	snapshot = cart.Snapshot{}
	decodeData(t, resp, &snapshot)
	require.Equal(t, 3, snapshot.ItemCount)
	require.Equal(t, enums.CartEventItemRemoved, snapshot.Event.Kind)

	resp = serve(t, http.MethodDelete, "/cart", CartClear(carts, nil), "/cart", "", "s1")
	require.Equal(t, http.StatusOK, resp.Code)
	snapshot = cart.Snapshot{}
	decodeData(t, resp, &snapshot)
	require.Equal(t, 0, snapshot.ItemCount)
	require.Empty(t, snapshot.Lines)
}

func TestCartUpdateToZeroRemovesItem(t *testing.T) {
	carts := fixtureCart(t, fixtureCatalog(t))
	serve(t, http.MethodPost, "/cart/items", CartAddItem(carts, nil), "/cart/items", `{"productId":"ninja"}`, "s1")

	resp := serve(t, http.MethodPatch, "/cart/items/{productId}", CartUpdateItem(carts, nil), "/cart/items/ninja", `{"quantity":0}`, "s1")
	require.Equal(t, http.StatusOK, resp.Code)
	var snapshot cart.Snapshot
	decodeData(t, resp, &snapshot)
	require.Equal(t, 0, snapshot.ItemCount)
}
