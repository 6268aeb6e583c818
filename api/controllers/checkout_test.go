package controllers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Chinmay1145/velocity-speed-emporium/internal/checkout"
	"github.com/Chinmay1145/velocity-speed-emporium/pkg/enums"
	pkgerrors "github.com/Chinmay1145/velocity-speed-emporium/pkg/errors"
)

const validOrderForm = `{
	"firstName": "Asha",
	"lastName": "Rao",
	"email": "asha@example.com",
	"phone": "9876543210",
	"address": "12 MG Road",
	"city": "Bengaluru",
	"state": "karnataka",
	"postalCode": "560001",
	"paymentMethod": "upi",
	"deliveryMethod": "express"
}`

func TestCheckoutQuote(t *testing.T) {
	carts := fixtureCart(t, fixtureCatalog(t))
	svc := fixtureCheckout(t, carts)
	serve(t, http.MethodPost, "/cart/items", CartAddItem(carts, nil), "/cart/items", `{"productId":"ninja"}`, "s1")

	resp := serve(t, http.MethodPost, "/checkout/quote", CheckoutQuote(svc, nil), "/checkout/quote", "", "s1")
	require.Equal(t, http.StatusOK, resp.Code)
	var quote checkout.Quote
	decodeData(t, resp, &quote)
	require.Equal(t, "1000", quote.Totals.Subtotal.String())
	require.Equal(t, "180", quote.Totals.Tax.String())
	require.Equal(t, "1180", quote.Totals.Total.String())
	require.Equal(t, enums.DeliveryStandard, quote.Totals.DeliveryMethod)

	resp = serve(t, http.MethodPost, "/checkout/quote", CheckoutQuote(svc, nil), "/checkout/quote", `{"deliveryMethod":"express"}`, "s1")
	require.Equal(t, http.StatusOK, resp.Code)
	quote = checkout.Quote{}
	decodeData(t, resp, &quote)
	require.Equal(t, "6180", quote.Totals.Total.String())

	resp = serve(t, http.MethodPost, "/checkout/quote", CheckoutQuote(svc, nil), "/checkout/quote", `{"deliveryMethod":"drone"}`, "s1")
	require.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestCheckoutPlaceClearsCart(t *testing.T) {
	carts := fixtureCart(t, fixtureCatalog(t))
	svc := fixtureCheckout(t, carts)
	serve(t, http.MethodPost, "/cart/items", CartAddItem(carts, nil), "/cart/items", `{"productId":"ninja","quantity":2}`, "s1")

	resp := serve(t, http.MethodPost, "/checkout", CheckoutPlace(svc, nil), "/checkout", validOrderForm, "s1")
	require.Equal(t, http.StatusCreated, resp.Code)
	var confirmation checkout.Confirmation
	decodeData(t, resp, &confirmation)
	require.Equal(t, 2, confirmation.ItemCount)
	require.Equal(t, enums.PaymentMethodUPI, confirmation.PaymentMethod)
	require.Equal(t, "2000", confirmation.Totals.Subtotal.String())
	require.Equal(t, "7360", confirmation.Totals.Total.String())
	require.Equal(t, "Order placed successfully!", confirmation.Message)

	resp = serve(t, http.MethodGet, "/cart", CartGet(carts, nil), "/cart", "", "s1")
	var body struct {
		ItemCount int `json:"itemCount"`
	}
	decodeData(t, resp, &body)
	require.Equal(t, 0, body.ItemCount)
}

func TestCheckoutPlaceRejectsEmptyCartAndBadForm(t *testing.T) {
	carts := fixtureCart(t, fixtureCatalog(t))
	svc := fixtureCheckout(t, carts)

	resp := serve(t, http.MethodPost, "/checkout", CheckoutPlace(svc, nil), "/checkout", validOrderForm, "empty")
	require.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	require.Equal(t, string(pkgerrors.CodeStateConflict), errorCode(t, resp))

	serve(t, http.MethodPost, "/cart/items", CartAddItem(carts, nil), "/cart/items", `{"productId":"ninja"}`, "s1")
	resp = serve(t, http.MethodPost, "/checkout", CheckoutPlace(svc, nil), "/checkout", `{"firstName":"Asha","paymentMethod":"credit-card"}`, "s1")
	require.Equal(t, http.StatusBadRequest, resp.Code)
	require.Equal(t, string(pkgerrors.CodeValidation), errorCode(t, resp))
}
