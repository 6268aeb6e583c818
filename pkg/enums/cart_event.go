package enums

// CartEventKind tags the notification raised by a cart mutation.
type CartEventKind string

const (
	CartEventItemAdded         CartEventKind = "item_added"
	CartEventQuantityIncreased CartEventKind = "item_quantity_incremented"
	CartEventItemRemoved       CartEventKind = "item_removed"
	CartEventQuantityUpdated   CartEventKind = "quantity_updated"
	CartEventCleared           CartEventKind = "cart_cleared"
	CartEventCheckedOut        CartEventKind = "cart_checked_out"
)

// String implements fmt.Stringer.
func (k CartEventKind) String() string {
	return string(k)
}

// Message returns the default shopper-facing text for the event.
func (k CartEventKind) Message() string {
	switch k {
	case CartEventItemAdded:
		return "Item added to cart"
	case CartEventQuantityIncreased:
		return "Item quantity updated in cart"
	case CartEventItemRemoved:
		return "Item removed from cart"
	case CartEventQuantityUpdated:
		return "Cart quantity updated"
	case CartEventCleared:
		return "Cart cleared"
	case CartEventCheckedOut:
		return "Ordered items removed from cart"
	}
	return ""
}
