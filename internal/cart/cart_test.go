package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/Chinmay1145/velocity-speed-emporium/internal/catalog"
	"github.com/Chinmay1145/velocity-speed-emporium/pkg/enums"
	pkgerrors "github.com/Chinmay1145/velocity-speed-emporium/pkg/errors"
)

func p1() catalog.Product {
	return catalog.Product{ID: "p1", Name: "P1", Price: 100, Colors: []string{"Red", "Blue"}, InStock: true}
}

func p2() catalog.Product {
	return catalog.Product{ID: "p2", Name: "P2", Price: 200, Discount: catalog.Percent(50), Colors: []string{"Black"}, InStock: true}
}

func mustAdd(t *testing.T, c Cart, p catalog.Product, qty int, color string) (Cart, Event) {
	t.Helper()
	next, event, err := c.Add(p, qty, color)
	require.NoError(t, err)
	return next, event
}

func TestAddMergesSameProductAndColor(t *testing.T) {
	var c Cart
	c, first := mustAdd(t, c, p1(), 2, "Red")
	c, second := mustAdd(t, c, p1(), 3, "Red")

	lines := c.Lines()
	require.Len(t, lines, 1)
	require.Equal(t, 5, lines[0].Quantity)
	require.Equal(t, 5, c.ItemCount())
	require.True(t, c.Total().Equal(decimal.NewFromInt(500)))

	require.Equal(t, enums.CartEventItemAdded, first.Kind)
	require.Equal(t, "Item added to cart", first.Message)
	require.Equal(t, enums.CartEventQuantityIncreased, second.Kind)
	require.Equal(t, "Item quantity updated in cart", second.Message)
	require.Equal(t, 5, second.Quantity)
}

func TestRemoveDropsEveryColorVariant(t *testing.T) {
	var c Cart
	c, _ = mustAdd(t, c, p1(), 1, "Red")
	c, _ = mustAdd(t, c, p1(), 1, "Blue")
	c, _ = mustAdd(t, c, p2(), 1, "Black")
	require.Len(t, c.Lines(), 3)

	c, event := c.Remove("p1")
	require.Len(t, c.Lines(), 1)
	require.Equal(t, "p2", c.Lines()[0].Product.ID)
	require.Equal(t, enums.CartEventItemRemoved, event.Kind)
	require.Equal(t, "Item removed from cart", event.Message)

	c, _ = c.Remove("p2")
	require.True(t, c.IsEmpty())
	require.Equal(t, 0, c.ItemCount())
	require.True(t, c.Total().IsZero())
}

func TestUpdateQuantityTargetsFirstLine(t *testing.T) {
	var c Cart
	c, _ = mustAdd(t, c, p1(), 1, "Red")
	c, _ = mustAdd(t, c, p1(), 1, "Blue")

	c, event := c.UpdateQuantity("p1", 4)
	lines := c.Lines()
	require.Equal(t, 4, lines[0].Quantity)
	require.Equal(t, "Red", lines[0].Color)
	require.Equal(t, 1, lines[1].Quantity)
	require.Equal(t, enums.CartEventQuantityUpdated, event.Kind)
	require.Equal(t, 5, c.ItemCount())

	unchanged, _ := c.UpdateQuantity("missing", 3)
	require.Equal(t, c.Lines(), unchanged.Lines())
}

func TestUpdateQuantityNonPositiveRemoves(t *testing.T) {
	for _, qty := range []int{0, -1} {
		var c Cart
		c, _ = mustAdd(t, c, p1(), 1, "Red")
		c, _ = mustAdd(t, c, p1(), 2, "Blue")
		c, event := c.UpdateQuantity("p1", qty)
		require.True(t, c.IsEmpty(), "quantity %d should remove the product", qty)
		require.Equal(t, enums.CartEventItemRemoved, event.Kind)
	}
}

func TestClear(t *testing.T) {
	var c Cart
	c, _ = mustAdd(t, c, p1(), 1, "Red")
	c, event := c.Clear()
	require.True(t, c.IsEmpty())
	require.Equal(t, enums.CartEventCleared, event.Kind)
	require.Equal(t, "Cart cleared", event.Message)
}

func TestSettleKeepsUnpaidQuantities(t *testing.T) {
	var paid Cart
	paid, _ = mustAdd(t, paid, p1(), 2, "Red")

	current, _ := mustAdd(t, paid, p1(), 1, "Red")
	current, _ = mustAdd(t, current, p2(), 3, "Black")

	next, event := current.Settle(paid)
	require.Equal(t, enums.CartEventCheckedOut, event.Kind)
	require.Equal(t, 2, event.Quantity)

	lines := next.Lines()
	require.Len(t, lines, 2)
	require.Equal(t, "p1", lines[0].Product.ID)
	require.Equal(t, 1, lines[0].Quantity)
	require.Equal(t, "p2", lines[1].Product.ID)
	require.Equal(t, 3, lines[1].Quantity)

	settled, _ := paid.Settle(paid)
	require.True(t, settled.IsEmpty())
}

func TestAddRejectsNonPositiveQuantity(t *testing.T) {
	var c Cart
	_, _, err := c.Add(p1(), 0, "Red")
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestTotalUsesEffectivePrice(t *testing.T) {
	var c Cart
	c, _ = mustAdd(t, c, p1(), 1, "Red")
	c, _ = mustAdd(t, c, p2(), 3, "Black")
	require.True(t, c.Total().Equal(decimal.NewFromInt(400)), "got %s", c.Total())
	require.Equal(t, 4, c.ItemCount())
}

func TestOperationsDoNotMutateReceiver(t *testing.T) {
	var base Cart
	base, _ = mustAdd(t, base, p1(), 1, "Red")

	_, _ = mustAdd(t, base, p1(), 5, "Red")
	_, _ = base.UpdateQuantity("p1", 9)
	_, _ = base.Remove("p1")
	_, _ = base.Clear()

	require.Equal(t, 1, base.ItemCount())

	lines := base.Lines()
	lines[0].Quantity = 42
	lines[0].Product.Colors[0] = "mutated"
	require.Equal(t, 1, base.Lines()[0].Quantity)
	require.Equal(t, "Red", base.Lines()[0].Product.Colors[0])
}
