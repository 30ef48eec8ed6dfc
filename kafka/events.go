package kafka

import (
	"time"

	"github.com/tair/tiffin-pos/internal/pos/domain"
)

// InvoiceCreatedEvent is published after a checkout commits
type InvoiceCreatedEvent struct {
	EventID       string               `json:"event_id"`
	EventType     string               `json:"event_type"`
	InvoiceID     string               `json:"invoice_id"`
	Items         []domain.InvoiceLine `json:"items"`
	Total         float64              `json:"total"`
	PaymentMethod string               `json:"payment_method"`
	InvoicedAt    time.Time            `json:"invoiced_at"`
	Timestamp     time.Time            `json:"timestamp"`
}

// StockChangedEvent is published for every stock ledger entry
type StockChangedEvent struct {
	EventID         string    `json:"event_id"`
	EventType       string    `json:"event_type"`
	TransactionID   string    `json:"transaction_id"`
	ItemID          int       `json:"item_id"`
	ItemName        string    `json:"item_name"`
	TransactionType string    `json:"transaction_type"`
	Quantity        int       `json:"quantity"`
	PreviousStock   int       `json:"previous_stock"`
	NewStock        int       `json:"new_stock"`
	Notes           string    `json:"notes"`
	Timestamp       time.Time `json:"timestamp"`
}

// Event types
const (
	EventTypeInvoiceCreated = "invoice.created"
	EventTypeStockChanged   = "stock.changed"
)

// Kafka topics
const (
	TopicInvoices = "pos-invoices"
	TopicStock    = "pos-stock"
)

// NewInvoiceCreatedEvent builds the event payload for inv
func NewInvoiceCreatedEvent(inv domain.Invoice) InvoiceCreatedEvent {
	return InvoiceCreatedEvent{
		EventType:     EventTypeInvoiceCreated,
		InvoiceID:     inv.InvoiceID,
		Items:         inv.Items,
		Total:         inv.Total,
		PaymentMethod: inv.PaymentMethod,
		InvoicedAt:    inv.Timestamp,
	}
}

// NewStockChangedEvent builds the event payload for tx
func NewStockChangedEvent(tx domain.StockTransaction) StockChangedEvent {
	return StockChangedEvent{
		EventType:       EventTypeStockChanged,
		TransactionID:   tx.TransactionID,
		ItemID:          tx.ItemID,
		ItemName:        tx.ItemName,
		TransactionType: string(tx.Type),
		Quantity:        tx.Quantity,
		PreviousStock:   tx.PreviousStock,
		NewStock:        tx.NewStock,
		Notes:           tx.Notes,
	}
}
