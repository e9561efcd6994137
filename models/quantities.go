package models

// QuantitySelection maps item ids to the number of pieces in the order being built
type QuantitySelection map[string]int

// Clone returns an independent copy of the selection
func (q QuantitySelection) Clone() QuantitySelection {
	out := make(QuantitySelection, len(q))
	for id, qty := range q {
		out[id] = qty
	}
	return out
}

// Total is the number of pieces across all items
func (q QuantitySelection) Total() int {
	total := 0
	for _, qty := range q {
		total += qty
	}
	return total
}

// Reset sets every entry to zero, keeping the keys
func (q QuantitySelection) Reset() {
	for id := range q {
		q[id] = 0
	}
}
