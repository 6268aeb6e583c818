package cart

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Marshal serializes the cart lines as a JSON array.
func Marshal(c Cart) ([]byte, error) {
	lines := c.lines
	if lines == nil {
		lines = []Line{}
	}
	raw, err := json.Marshal(lines)
	if err != nil {
		return nil, fmt.Errorf("encode cart: %w", err)
	}
	return raw, nil
}

type lineKey struct {
	productID string
	color     string
}

// Unmarshal rebuilds a cart from Marshal output. Anything that is not a JSON
// array of well-formed lines is rejected.
func Unmarshal(raw []byte) (Cart, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return Cart{}, fmt.Errorf("decode cart: expected a JSON array")
	}
	var lines []Line
	if err := json.Unmarshal(trimmed, &lines); err != nil {
		return Cart{}, fmt.Errorf("decode cart: %w", err)
	}
	seen := make(map[lineKey]struct{}, len(lines))
	for i, l := range lines {
		if l.Product.ID == "" {
			return Cart{}, fmt.Errorf("decode cart: line %d has no product id", i)
		}
		if l.Quantity < 1 {
			return Cart{}, fmt.Errorf("decode cart: line %d has quantity %d", i, l.Quantity)
		}
		if err := l.Product.Validate(); err != nil {
			return Cart{}, fmt.Errorf("decode cart: line %d: %w", i, err)
		}
		key := lineKey{productID: l.Product.ID, color: l.Color}
		if _, dup := seen[key]; dup {
			return Cart{}, fmt.Errorf("decode cart: line %d repeats %s/%s", i, l.Product.ID, l.Color)
		}
		seen[key] = struct{}{}
	}
	return Cart{lines: lines}, nil
}
