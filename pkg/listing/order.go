package listing

import "strings"

// Order is the direction of a sort
type Order string

const (
	Ascending  Order = "asc"
	Descending Order = "desc"
)

// ParseOrder converts user input to an Order, falling back to fallback for
// anything it does not recognise
func ParseOrder(s string, fallback Order) Order {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc", "ascending", "up":
		return Ascending
	case "desc", "descending", "down":
		return Descending
	default:
		return fallback
	}
}

// Reverse returns the opposite direction
func (o Order) Reverse() Order {
	if o == Descending {
		return Ascending
	}
	return Descending
}

// Arrow returns a short glyph for headers
func (o Order) Arrow() string {
	if o == Descending {
		return "↓"
	}
	return "↑"
}

// NextOrder implements "click the same column again to reverse". Selecting a
// different key starts ascending. The controller never infers this itself:
// callers pass the result to Controller.Sort.
func NextOrder[K comparable](current K, order Order, selected K) Order {
	if selected == current {
		return order.Reverse()
	}
	return Ascending
}
