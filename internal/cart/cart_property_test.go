package cart

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/shopspring/decimal"

	"github.com/Chinmay1145/velocity-speed-emporium/internal/catalog"
)

var propertyProducts = []catalog.Product{
	{ID: "a", Name: "A", Price: 100, Colors: []string{"Red", "Blue"}},
	{ID: "b", Name: "B", Price: 250, Discount: catalog.Percent(10), Colors: []string{"Red", "Blue"}},
	{ID: "c", Name: "C", Price: 999, Discount: catalog.Percent(33), Colors: []string{"Red", "Blue"}},
	{ID: "d", Name: "D", Price: 1, Colors: []string{"Red", "Blue"}},
}

// applyOps decodes each op as kind, product, color and amount and runs it.
func applyOps(ops []int) Cart {
	var c Cart
	for _, op := range ops {
		product := propertyProducts[(op/4)%len(propertyProducts)]
		color := product.Colors[(op/16)%2]
		amount := (op / 32) % 5
		switch op % 4 {
		case 0:
			c, _, _ = c.Add(product, amount+1, color)
		case 1:
			c, _ = c.Remove(product.ID)
		case 2:
			c, _ = c.UpdateQuantity(product.ID, amount-1)
		case 3:
			if amount == 0 {
				c, _ = c.Clear()
			}
		}
	}
	return c
}

func TestCartInvariants(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 300
	properties := gopter.NewProperties(parameters)

	properties.Property("derived values match an independent recomputation", prop.ForAll(
		func(ops []int) bool {
			c := applyOps(ops)
			count := 0
			total := decimal.Zero
			for _, l := range c.Lines() {
				if l.Quantity < 1 {
					return false
				}
				count += l.Quantity
				price := decimal.NewFromInt(l.Product.Price)
				if l.Product.Discount != nil {
					price = price.Mul(decimal.NewFromInt(int64(100 - *l.Product.Discount))).Div(decimal.NewFromInt(100))
				}
				total = total.Add(price.Mul(decimal.NewFromInt(int64(l.Quantity))))
			}
			return count == c.ItemCount() && total.Equal(c.Total())
		},
		gen.SliceOf(gen.IntRange(0, 159)),
	))

	properties.Property("product and color pairs stay unique", prop.ForAll(
		func(ops []int) bool {
			seen := map[string]bool{}
			for _, l := range applyOps(ops).Lines() {
				key := l.Product.ID + "/" + l.Color
				if seen[key] {
					return false
				}
				seen[key] = true
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, 159)),
	))

	properties.Property("serialization round-trips", prop.ForAll(
		func(ops []int) bool {
			c := applyOps(ops)
			raw, err := Marshal(c)
			if err != nil {
				return false
			}
			restored, err := Unmarshal(raw)
			if err != nil {
				return false
			}
			return restored.ItemCount() == c.ItemCount() &&
				restored.Total().Equal(c.Total()) &&
				len(restored.Lines()) == len(c.Lines())
		},
		gen.SliceOf(gen.IntRange(0, 159)),
	))

	properties.TestingRun(t)
}
