package coupon

import "strings"

// Table is a read-only coupon code to discount percent lookup.
// It is built once from configuration and injected where needed.
type Table struct {
	codes map[string]int
}

func NewTable(codes map[string]int) Table {
	normalized := make(map[string]int, len(codes))
	for code, percent := range codes {
		if percent <= 0 || percent > 100 {
			continue
		}
		normalized[strings.ToUpper(strings.TrimSpace(code))] = percent
	}

	return Table{codes: normalized}
}

// Lookup matches codes case-insensitively, ignoring surrounding whitespace.
func (t Table) Lookup(code string) (int, bool) {
	percent, ok := t.codes[strings.ToUpper(strings.TrimSpace(code))]
	return percent, ok
}

type Breakdown struct {
	Subtotal        int64 `json:"subtotal"`
	DiscountPercent int   `json:"discount_percent"`
	DiscountAmount  int64 `json:"discount_amount"`
	FinalTotal      int64 `json:"final_total"`
}

// Calculate sums the given ticket prices and applies a percent discount,
// rounding the discount to the nearest whole currency unit.
func Calculate(prices []int64, percent int) Breakdown {
	var subtotal int64
	for _, price := range prices {
		subtotal += price
	}

	discount := (subtotal*int64(percent) + 50) / 100

	return Breakdown{
		Subtotal:        subtotal,
		DiscountPercent: percent,
		DiscountAmount:  discount,
		FinalTotal:      subtotal - discount,
	}
}
