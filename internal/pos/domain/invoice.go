package domain

import (
	"fmt"
	"time"
)

// DefaultPaymentMethod is recorded on every invoice
const DefaultPaymentMethod = "Cash"

// InvoiceLine is an immutable snapshot of a sold cart line
type InvoiceLine struct {
	ItemID   int     `json:"itemId"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// Subtotal returns price × quantity
func (l InvoiceLine) Subtotal() float64 {
	return l.Price * float64(l.Quantity)
}

// Invoice is a settled order. It is never modified after it is appended to the ledger.
type Invoice struct {
	InvoiceID     string        `json:"invoiceId"`
	Timestamp     time.Time     `json:"timestamp"`
	Date          string        `json:"date"`
	Time          string        `json:"time"`
	Items         []InvoiceLine `json:"items"`
	Total         float64       `json:"total"`
	PaymentMethod string        `json:"paymentMethod"`
}

// FormatInvoiceID renders sequence numbers as INV-0001
func FormatInvoiceID(seq int) string {
	return fmt.Sprintf("INV-%04d", seq)
}

// NextInvoiceID derives the next id from the ledger length.
// Ids would collide if invoices were ever deleted; nothing deletes them.
func NextInvoiceID(ledger []Invoice) string {
	return FormatInvoiceID(len(ledger) + 1)
}

// InvoiceLinesFromCart snapshots cart lines into invoice lines
func InvoiceLinesFromCart(lines []CartLine) []InvoiceLine {
	out := make([]InvoiceLine, 0, len(lines))
	for _, line := range lines {
		out = append(out, InvoiceLine{
			ItemID:   line.ItemID,
			Name:     line.Name,
			Price:    line.Price,
			Quantity: line.Quantity,
		})
	}
	return out
}

// InvoiceTotal sums the invoice lines
func InvoiceTotal(lines []InvoiceLine) float64 {
	var total float64
	for _, line := range lines {
		total += line.Subtotal()
	}
	return total
}

// FindInvoice returns the index of the invoice with id, or -1
func FindInvoice(ledger []Invoice, id string) int {
	for i := range ledger {
		if ledger[i].InvoiceID == id {
			return i
		}
	}
	return -1
}

// DateRange is an inclusive time window. The zero value matches everything.
type DateRange struct {
	From time.Time
	To   time.Time
}

// IsZero reports whether the range is unbounded
func (r DateRange) IsZero() bool {
	return r.From.IsZero() && r.To.IsZero()
}

// Contains reports whether t falls within the range
func (r DateRange) Contains(t time.Time) bool {
	if r.IsZero() {
		return true
	}
	return !t.Before(r.From) && !t.After(r.To)
}

// FilterInvoices returns the invoices whose timestamp falls within r, in ledger order
func FilterInvoices(ledger []Invoice, r DateRange) []Invoice {
	out := make([]Invoice, 0, len(ledger))
	for _, inv := range ledger {
		if r.Contains(inv.Timestamp) {
			out = append(out, inv)
		}
	}
	return out
}
