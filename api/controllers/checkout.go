package controllers

import (
	"net/http"

	"github.com/Chinmay1145/velocity-speed-emporium/api/middleware"
	"github.com/Chinmay1145/velocity-speed-emporium/api/responses"
	"github.com/Chinmay1145/velocity-speed-emporium/api/validators"
	"github.com/Chinmay1145/velocity-speed-emporium/internal/checkout"
	"github.com/Chinmay1145/velocity-speed-emporium/pkg/enums"
	pkgerrors "github.com/Chinmay1145/velocity-speed-emporium/pkg/errors"
	"github.com/Chinmay1145/velocity-speed-emporium/pkg/logger"
)

type quoteRequest struct {
	DeliveryMethod enums.DeliveryMethod `json:"deliveryMethod"`
}

// CheckoutQuote prices the session cart. The body is optional and defaults to
// standard delivery.
func CheckoutQuote(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		var payload quoteRequest
		if r.ContentLength != 0 {
			if err := validators.DecodeJSON(r, &payload); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		}

		quote, err := svc.Quote(r.Context(), middleware.SessionIDFromContext(r.Context()), payload.DeliveryMethod)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, quote)
	}
}

// CheckoutPlace submits the checkout form for the session cart.
func CheckoutPlace(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		var form checkout.Form
		if err := validators.DecodeJSON(r, &form); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		confirmation, err := svc.PlaceOrder(r.Context(), middleware.SessionIDFromContext(r.Context()), form)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, confirmation)
	}
}
