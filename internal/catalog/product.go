package catalog

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/Chinmay1145/velocity-speed-emporium/pkg/errors"
)

var hundred = decimal.NewFromInt(100)

// Product is an immutable catalog entry. Prices are whole currency units.
type Product struct {
	ID             string   `json:"id" yaml:"id"`
	Name           string   `json:"name" yaml:"name"`
	Description    string   `json:"description" yaml:"description"`
	Price          int64    `json:"price" yaml:"price"`
	Image          string   `json:"image" yaml:"image"`
	Brand          string   `json:"brand" yaml:"brand"`
	Category       string   `json:"category" yaml:"category"`
	EngineCapacity string   `json:"engineCapacity" yaml:"engineCapacity"`
	Power          string   `json:"power" yaml:"power"`
	TopSpeed       string   `json:"topSpeed" yaml:"topSpeed"`
	Weight         string   `json:"weight" yaml:"weight"`
	Colors         []string `json:"colors" yaml:"colors"`
	InStock        bool     `json:"inStock" yaml:"inStock"`
	Featured       bool     `json:"featured,omitempty" yaml:"featured,omitempty"`
	Discount       *int     `json:"discount,omitempty" yaml:"discount,omitempty"`
}

// Category groups products by riding style.
type Category struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// Brand identifies a manufacturer.
type Brand struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// HasDiscount reports whether a non-zero discount applies.
func (p Product) HasDiscount() bool {
	return p.Discount != nil && *p.Discount > 0
}

// EffectivePrice applies the optional discount percentage to the base price.
func (p Product) EffectivePrice() decimal.Decimal {
	price := decimal.NewFromInt(p.Price)
	if !p.HasDiscount() {
		return price
	}
	keep := decimal.NewFromInt(int64(100 - *p.Discount))
	return price.Mul(keep).Div(hundred)
}

// HasColor reports whether color is one of the product's offered colors.
func (p Product) HasColor(color string) bool {
	for _, c := range p.Colors {
		if c == color {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so callers never share the colors slice or discount pointer.
func (p Product) Clone() Product {
	out := p
	out.Colors = append([]string(nil), p.Colors...)
	if p.Discount != nil {
		d := *p.Discount
		out.Discount = &d
	}
	return out
}

// Validate checks the invariants every catalog entry must hold.
func (p Product) Validate() error {
	var problems []string
	if strings.TrimSpace(p.ID) == "" {
		problems = append(problems, "id is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		problems = append(problems, "name is required")
	}
	if p.Price <= 0 {
		problems = append(problems, "price must be positive")
	}
	if len(p.Colors) == 0 {
		problems = append(problems, "at least one color is required")
	}
	if p.Discount != nil && (*p.Discount < 0 || *p.Discount > 100) {
		problems = append(problems, "discount must be within 0-100")
	}
	if len(problems) == 0 {
		return nil
	}
	return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid product %q", p.ID)).WithDetails(map[string]any{
		"problems": problems,
	})
}

// Percent is a convenience for building products with a discount percentage.
func Percent(percent int) *int {
	return &percent
}
