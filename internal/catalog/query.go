package catalog

import (
	"cmp"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/Chinmay1145/velocity-speed-emporium/pkg/enums"
	pkgerrors "github.com/Chinmay1145/velocity-speed-emporium/pkg/errors"
)

// DefaultMaxPrice is the upper bound of the price slider when none is configured.
const DefaultMaxPrice int64 = 3000000

const maxSearchLen = 128

// FilterSpec drives a catalog query. Empty category or brand sets do not restrict.
// The price range is inclusive and applies to the effective (discounted) price.
type FilterSpec struct {
	Search     string         `json:"search"`
	Categories []string       `json:"categories"`
	Brands     []string       `json:"brands"`
	MinPrice   int64          `json:"minPrice"`
	MaxPrice   int64          `json:"maxPrice"`
	Sort       enums.SortMode `json:"sort"`
}

// DefaultFilterSpec is the unfiltered view sorted by ascending price.
func DefaultFilterSpec(maxPrice int64) FilterSpec {
	if maxPrice <= 0 {
		maxPrice = DefaultMaxPrice
	}
	return FilterSpec{
		MinPrice: 0,
		MaxPrice: maxPrice,
		Sort:     enums.SortPriceLowHigh,
	}
}

// ParseFilterSpec reads q, category, brand, min_price, max_price and sort from
// query parameters on top of defaults. category and brand may repeat or be comma lists.
func ParseFilterSpec(values url.Values, defaults FilterSpec) (FilterSpec, error) {
	spec := defaults
	spec.Categories = append([]string(nil), defaults.Categories...)
	spec.Brands = append([]string(nil), defaults.Brands...)

	if q := strings.TrimSpace(values.Get("q")); q != "" {
		spec.Search = truncateSearch(q)
	}
	if categories := splitList(values["category"]); len(categories) > 0 {
		spec.Categories = categories
	}
	if brands := splitList(values["brand"]); len(brands) > 0 {
		spec.Brands = brands
	}

	var err error
	if spec.MinPrice, err = parsePrice(values, "min_price", spec.MinPrice); err != nil {
		return FilterSpec{}, err
	}
	if spec.MaxPrice, err = parsePrice(values, "max_price", spec.MaxPrice); err != nil {
		return FilterSpec{}, err
	}
	if spec.MinPrice > spec.MaxPrice {
		return FilterSpec{}, pkgerrors.New(pkgerrors.CodeValidation, "min_price must not exceed max_price").WithDetails(map[string]any{
			"min_price": spec.MinPrice,
			"max_price": spec.MaxPrice,
		})
	}

	if raw := strings.TrimSpace(values.Get("sort")); raw != "" {
		mode, err := enums.ParseSortMode(raw)
		if err != nil {
			return FilterSpec{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid sort").WithDetails(map[string]any{
				"field":   "sort",
				"allowed": enums.SortModes(),
			})
		}
		spec.Sort = mode
	}
	return spec, nil
}

// truncateSearch caps q at maxSearchLen bytes without splitting a rune.
func truncateSearch(q string) string {
	if len(q) <= maxSearchLen {
		return q
	}
	n := maxSearchLen
	for n > 0 && !utf8.RuneStart(q[n]) {
		n--
	}
	return q[:n]
}

func parsePrice(values url.Values, key string, fallback int64) (int64, error) {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be numeric").WithDetails(map[string]any{"field": key})
	}
	if value < 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be non-negative").WithDetails(map[string]any{"field": key})
	}
	return value, nil
}

func splitList(raw []string) []string {
	var out []string
	for _, entry := range raw {
		for _, part := range strings.Split(entry, ",") {
			part = strings.TrimSpace(part)
			if part != "" && !slices.Contains(out, part) {
				out = append(out, part)
			}
		}
	}
	return out
}

// Matches reports whether p passes every active predicate of the spec.
func (s FilterSpec) Matches(p Product) bool {
	if s.Search != "" && !matchesSearch(p, strings.ToLower(s.Search)) {
		return false
	}
	if len(s.Categories) > 0 && !slices.Contains(s.Categories, p.Category) {
		return false
	}
	if len(s.Brands) > 0 && !slices.Contains(s.Brands, p.Brand) {
		return false
	}
	price := p.EffectivePrice()
	return price.GreaterThanOrEqual(decimal.NewFromInt(s.MinPrice)) &&
		price.LessThanOrEqual(decimal.NewFromInt(s.MaxPrice))
}

func matchesSearch(p Product, needle string) bool {
	return strings.Contains(strings.ToLower(p.Name), needle) ||
		strings.Contains(strings.ToLower(p.Description), needle) ||
		strings.Contains(strings.ToLower(p.Brand), needle)
}

// Query filters products by spec and orders the survivors by spec.Sort. The input
// is never modified. Every ordering is stable; SortNewest keeps input order.
func Query(products []Product, spec FilterSpec) []Product {
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if spec.Matches(p) {
			out = append(out, p)
		}
	}

	switch spec.Sort {
	case enums.SortPriceLowHigh:
		slices.SortStableFunc(out, func(a, b Product) int {
			return a.EffectivePrice().Cmp(b.EffectivePrice())
		})
	case enums.SortPriceHighLow:
		slices.SortStableFunc(out, func(a, b Product) int {
			return b.EffectivePrice().Cmp(a.EffectivePrice())
		})
	case enums.SortPopular:
		slices.SortStableFunc(out, func(a, b Product) int {
			if c := cmp.Compare(popularityRank(a.Featured), popularityRank(b.Featured)); c != 0 {
				return c
			}
			return cmp.Compare(popularityRank(a.HasDiscount()), popularityRank(b.HasDiscount()))
		})
	}
	return out
}

func popularityRank(flag bool) int {
	if flag {
		return 0
	}
	return 1
}
