package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Chinmay1145/velocity-speed-emporium/api/responses"
	"github.com/Chinmay1145/velocity-speed-emporium/api/validators"
	"github.com/Chinmay1145/velocity-speed-emporium/internal/catalog"
	pkgerrors "github.com/Chinmay1145/velocity-speed-emporium/pkg/errors"
	"github.com/Chinmay1145/velocity-speed-emporium/pkg/logger"
	"github.com/Chinmay1145/velocity-speed-emporium/pkg/pagination"
)

const (
	maxIDLen        = 64
	maxRelatedLimit = 24
)

type catalogListResponse struct {
	Products   []catalog.Product  `json:"products"`
	Count      int                `json:"count"`
	Filter     catalog.FilterSpec `json:"filter"`
	NextCursor string             `json:"nextCursor,omitempty"`
}

// CatalogList runs a filtered, sorted catalog query from the URL parameters. The
// result is paged only when limit or cursor is given; count is always the total.
func CatalogList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		spec, err := catalog.ParseFilterSpec(r.URL.Query(), svc.DefaultFilter())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.List(r.Context(), spec)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		payload := catalogListResponse{
			Products: result.Products,
			Count:    result.Count,
			Filter:   spec,
		}

		query := r.URL.Query()
		if query.Has("limit") || query.Has("cursor") {
			limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			page, next, err := pagination.Page(result.Products, pagination.Params{Limit: limit, Cursor: query.Get("cursor")})
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor").WithDetails(map[string]string{"field": "cursor"}))
				return
			}
			payload.Products = page
			payload.NextCursor = next
		}

		responses.WriteSuccess(w, payload)
	}
}

func CatalogProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		product, err := svc.Get(r.Context(), productIDParam(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

// CatalogRelated lists products from the same category or brand. limit is optional.
func CatalogRelated(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", 0, 1, maxRelatedLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		related, err := svc.Related(r.Context(), productIDParam(r), limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, related)
	}
}

func CatalogFeatured(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		featured, err := svc.Featured(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, featured)
	}
}

func CatalogCategories(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		categories, err := svc.Categories(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, categories)
	}
}

func CatalogBrands(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		brands, err := svc.Brands(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, brands)
	}
}

func productIDParam(r *http.Request) string {
	return validators.SanitizeString(chi.URLParam(r, "productId"), maxIDLen)
}
