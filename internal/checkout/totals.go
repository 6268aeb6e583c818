package checkout

import (
	"github.com/shopspring/decimal"

	"github.com/Chinmay1145/velocity-speed-emporium/pkg/enums"
)

// DefaultTaxRate is the GST applied to the cart subtotal.
var DefaultTaxRate = decimal.RequireFromString("0.18")

// Pricing turns a cart subtotal into order totals.
type Pricing struct {
	TaxRate    decimal.Decimal
	ExpressFee decimal.Decimal
}

// Totals is the order price breakdown.
type Totals struct {
	Subtotal       decimal.Decimal      `json:"subtotal"`
	TaxRate        decimal.Decimal      `json:"taxRate"`
	Tax            decimal.Decimal      `json:"tax"`
	Shipping       decimal.Decimal      `json:"shipping"`
	Total          decimal.Decimal      `json:"total"`
	DeliveryMethod enums.DeliveryMethod `json:"deliveryMethod"`
}

// Compute rounds tax to whole currency units, half away from zero. Standard
// delivery ships free; express adds the flat fee.
func (p Pricing) Compute(subtotal decimal.Decimal, delivery enums.DeliveryMethod) Totals {
	if delivery == "" {
		delivery = enums.DeliveryStandard
	}
	tax := subtotal.Mul(p.TaxRate).Round(0)
	shipping := decimal.Zero
	if delivery == enums.DeliveryExpress {
		shipping = p.ExpressFee
	}
	return Totals{
		Subtotal:       subtotal,
		TaxRate:        p.TaxRate,
		Tax:            tax,
		Shipping:       shipping,
		Total:          subtotal.Add(tax).Add(shipping),
		DeliveryMethod: delivery,
	}
}
