// Package cart holds the shopper's cart: an immutable value with derived totals
// and a service that persists it to a durable slot after every mutation.
package cart

import (
	"github.com/shopspring/decimal"

	"github.com/Chinmay1145/velocity-speed-emporium/internal/catalog"
	"github.com/Chinmay1145/velocity-speed-emporium/pkg/enums"
	pkgerrors "github.com/Chinmay1145/velocity-speed-emporium/pkg/errors"
)

// Line is one product/color pair in the cart. Product is the snapshot taken when
// the line was created.
type Line struct {
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
	Color    string          `json:"color"`
}

// Subtotal is the effective unit price times the quantity.
func (l Line) Subtotal() decimal.Decimal {
	return l.Product.EffectivePrice().Mul(decimal.NewFromInt(int64(l.Quantity)))
}

func (l Line) clone() Line {
	l.Product = l.Product.Clone()
	return l
}

// Event describes what a mutation did, for the presentation layer to surface.
type Event struct {
	Kind      enums.CartEventKind `json:"kind"`
	ProductID string              `json:"productId,omitempty"`
	Color     string              `json:"color,omitempty"`
	Quantity  int                 `json:"quantity,omitempty"`
	Message   string              `json:"message"`
}

func newEvent(kind enums.CartEventKind, productID, color string, quantity int) Event {
	return Event{
		Kind:      kind,
		ProductID: productID,
		Color:     color,
		Quantity:  quantity,
		Message:   kind.Message(),
	}
}

// Cart is an immutable list of lines. Every operation returns a new Cart and
// leaves the receiver untouched. The zero value is an empty cart.
type Cart struct {
	lines []Line
}

// FromLines builds a cart from existing lines, copying them.
func FromLines(lines []Line) Cart {
	out := make([]Line, len(lines))
	for i, l := range lines {
		out[i] = l.clone()
	}
	return Cart{lines: out}
}

// Lines returns a copy of the cart lines in insertion order.
func (c Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	for i, l := range c.lines {
		out[i] = l.clone()
	}
	return out
}

// ItemCount is the sum of line quantities.
func (c Cart) ItemCount() int {
	count := 0
	for _, l := range c.lines {
		count += l.Quantity
	}
	return count
}

// Total is the sum of the line subtotals at effective prices.
func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

func (c Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Add increments the line matching product id and color, or appends a new line.
func (c Cart) Add(product catalog.Product, quantity int, color string) (Cart, Event, error) {
	if quantity < 1 {
		return c, Event{}, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1").WithDetails(map[string]any{
			"field":    "quantity",
			"quantity": quantity,
		})
	}

	lines := c.Lines()
	for i := range lines {
		if lines[i].Product.ID == product.ID && lines[i].Color == color {
			lines[i].Quantity += quantity
			return Cart{lines: lines}, newEvent(enums.CartEventQuantityIncreased, product.ID, color, lines[i].Quantity), nil
		}
	}
	lines = append(lines, Line{Product: product.Clone(), Quantity: quantity, Color: color})
	return Cart{lines: lines}, newEvent(enums.CartEventItemAdded, product.ID, color, quantity), nil
}

// Remove drops every line for productID, whatever its color.
func (c Cart) Remove(productID string) (Cart, Event) {
	lines := make([]Line, 0, len(c.lines))
	for _, l := range c.lines {
		if l.Product.ID != productID {
			lines = append(lines, l.clone())
		}
	}
	return Cart{lines: lines}, newEvent(enums.CartEventItemRemoved, productID, "", 0)
}

// UpdateQuantity sets the quantity of the first line for productID. A quantity of
// zero or less removes the product.
func (c Cart) UpdateQuantity(productID string, quantity int) (Cart, Event) {
	if quantity <= 0 {
		return c.Remove(productID)
	}
	lines := c.Lines()
	for i := range lines {
		if lines[i].Product.ID == productID {
			lines[i].Quantity = quantity
			return Cart{lines: lines}, newEvent(enums.CartEventQuantityUpdated, productID, lines[i].Color, quantity)
		}
	}
	return Cart{lines: lines}, newEvent(enums.CartEventQuantityUpdated, productID, "", quantity)
}

// Clear returns an empty cart.
func (c Cart) Clear() (Cart, Event) {
	return Cart{}, newEvent(enums.CartEventCleared, "", "", 0)
}

// Settle removes the quantities in paid from the matching product/color lines.
// Lines added or increased after paid was taken keep the difference.
func (c Cart) Settle(paid Cart) (Cart, Event) {
	lines := make([]Line, 0, len(c.lines))
	for _, l := range c.lines {
		for _, p := range paid.lines {
			if p.Product.ID == l.Product.ID && p.Color == l.Color {
				l.Quantity -= p.Quantity
				break
			}
		}
		if l.Quantity > 0 {
			lines = append(lines, l.clone())
		}
	}
	return Cart{lines: lines}, newEvent(enums.CartEventCheckedOut, "", "", paid.ItemCount())
}
