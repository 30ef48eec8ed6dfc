package domain

// CartLine is one selected item in the in-progress order. Name and price are
// copied from the catalog when the line is created.
type CartLine struct {
	ItemID   int     `json:"itemId"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// Subtotal returns price × quantity
func (l CartLine) Subtotal() float64 {
	return l.Price * float64(l.Quantity)
}

// CartTotal sums the subtotals of every line
func CartTotal(lines []CartLine) float64 {
	var total float64
	for _, line := range lines {
		total += line.Subtotal()
	}
	return total
}

// FindCartLine returns the index of the line for itemID, or -1
func FindCartLine(lines []CartLine, itemID int) int {
	for i := range lines {
		if lines[i].ItemID == itemID {
			return i
		}
	}
	return -1
}
