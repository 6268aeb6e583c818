package catalog

import (
	"context"

	pkgerrors "github.com/Chinmay1145/velocity-speed-emporium/pkg/errors"
	"github.com/Chinmay1145/velocity-speed-emporium/pkg/metrics"
)

const defaultRelatedLimit = 4

// Result is a filtered and ordered page of the catalog.
type Result struct {
	Products []Product `json:"products"`
	Count    int       `json:"count"`
}

// ServiceParams groups dependencies for the catalog service.
type ServiceParams struct {
	Data          Data
	MaxPrice      int64
	RelatedLimit  int
	FeaturedLimit int
	Metrics       *metrics.Storefront
}

// Service answers read-only catalog questions.
type Service interface {
	DefaultFilter() FilterSpec
	List(ctx context.Context, spec FilterSpec) (Result, error)
	Get(ctx context.Context, id string) (Product, error)
	Related(ctx context.Context, id string, limit int) ([]Product, error)
	Featured(ctx context.Context) ([]Product, error)
	Categories(ctx context.Context) ([]Category, error)
	Brands(ctx context.Context) ([]Brand, error)
}

type service struct {
	products      []Product
	index         map[string]int
	categories    []Category
	brands        []Brand
	maxPrice      int64
	relatedLimit  int
	featuredLimit int
	metrics       *metrics.Storefront
}

// NewService validates the catalog data and builds an in-memory catalog service.
func NewService(params ServiceParams) (Service, error) {
	if err := params.Data.Validate(); err != nil {
		return nil, err
	}
	if params.MaxPrice <= 0 {
		params.MaxPrice = DefaultMaxPrice
	}
	if params.RelatedLimit <= 0 {
		params.RelatedLimit = defaultRelatedLimit
	}

	products := make([]Product, len(params.Data.Products))
	index := make(map[string]int, len(products))
	for i, p := range params.Data.Products {
		products[i] = p.Clone()
		index[p.ID] = i
	}
	return &service{
		products:      products,
		index:         index,
		categories:    append([]Category(nil), params.Data.Categories...),
		brands:        append([]Brand(nil), params.Data.Brands...),
		maxPrice:      params.MaxPrice,
		relatedLimit:  params.RelatedLimit,
		featuredLimit: params.FeaturedLimit,
		metrics:       params.Metrics,
	}, nil
}

// DefaultFilter returns the unfiltered view bounded by the configured max price.
func (s *service) DefaultFilter() FilterSpec {
	return DefaultFilterSpec(s.maxPrice)
}

// List runs the query engine over the whole catalog.
func (s *service) List(ctx context.Context, spec FilterSpec) (Result, error) {
	products := cloneAll(Query(s.products, spec))
	s.metrics.ObserveCatalogQuery(spec.Sort.String(), len(products))
	return Result{Products: products, Count: len(products)}, nil
}

// Get returns the product with the given id.
func (s *service) Get(ctx context.Context, id string) (Product, error) {
	i, ok := s.index[id]
	if !ok {
		return Product{}, pkgerrors.New(pkgerrors.CodeNotFound, "product not found").WithDetails(map[string]any{"productId": id})
	}
	return s.products[i].Clone(), nil
}

// Related lists products sharing the category or brand of id, excluding itself,
// in catalog order.
func (s *service) Related(ctx context.Context, id string, limit int) ([]Product, error) {
	product, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = s.relatedLimit
	}

	out := make([]Product, 0, limit)
	for _, p := range s.products {
		if len(out) == limit {
			break
		}
		if p.ID == product.ID {
			continue
		}
		if p.Category == product.Category || p.Brand == product.Brand {
			out = append(out, p.Clone())
		}
	}
	return out, nil
}

// Featured lists products that are flagged featured or carry a discount.
func (s *service) Featured(ctx context.Context) ([]Product, error) {
	out := make([]Product, 0)
	for _, p := range s.products {
		if s.featuredLimit > 0 && len(out) == s.featuredLimit {
			break
		}
		if p.Featured || p.HasDiscount() {
			out = append(out, p.Clone())
		}
	}
	return out, nil
}

func (s *service) Categories(ctx context.Context) ([]Category, error) {
	return append([]Category(nil), s.categories...), nil
}

func (s *service) Brands(ctx context.Context) ([]Brand, error) {
	return append([]Brand(nil), s.brands...), nil
}

func cloneAll(products []Product) []Product {
	out := make([]Product, len(products))
	for i, p := range products {
		out[i] = p.Clone()
	}
	return out
}
