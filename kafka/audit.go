package kafka

import (
	"context"
	"sync"

	"github.com/tair/tiffin-pos/pkg/logger"
	"github.com/tair/tiffin-pos/pkg/metrics"
)

const (
	auditResultOK         = "ok"
	auditResultChainBreak = "chain_break"
	auditResultInvalid    = "invalid"
)

// Auditor follows the event stream and flags stock events whose previous
// stock does not continue the last seen level for that item.
type Auditor struct {
	mu        sync.Mutex
	lastStock map[int]int
	revenue   float64
	invoices  int
}

func NewAuditor() *Auditor {
	return &Auditor{lastStock: make(map[int]int)}
}

// Register installs the audit handlers on c
func (a *Auditor) Register(c *Consumer) {
	c.RegisterHandler(EventTypeInvoiceCreated, a.HandleInvoiceCreated)
	c.RegisterHandler(EventTypeStockChanged, a.HandleStockChanged)
}

func (a *Auditor) HandleInvoiceCreated(ctx context.Context, msg Message) error {
	event, err := DecodeInvoiceCreated(msg)
	if err != nil {
		metrics.EventsConsumedTotal.WithLabelValues(msg.EventType, auditResultInvalid).Inc()
		return err
	}

	a.mu.Lock()
	a.invoices++
	a.revenue += event.Total
	invoices, revenue := a.invoices, a.revenue
	a.mu.Unlock()

	metrics.EventsConsumedTotal.WithLabelValues(msg.EventType, auditResultOK).Inc()
	logger.Info(ctx).
		Str("invoice_id", event.InvoiceID).
		Float64("total", event.Total).
		Int("lines", len(event.Items)).
		Str("payment_method", event.PaymentMethod).
		Int("invoices_seen", invoices).
		Float64("revenue_seen", revenue).
		Msg("Invoice created")
	return nil
}

func (a *Auditor) HandleStockChanged(ctx context.Context, msg Message) error {
	event, err := DecodeStockChanged(msg)
	if err != nil {
		metrics.EventsConsumedTotal.WithLabelValues(msg.EventType, auditResultInvalid).Inc()
		return err
	}

	a.mu.Lock()
	last, seen := a.lastStock[event.ItemID]
	a.lastStock[event.ItemID] = event.NewStock
	a.mu.Unlock()

	if seen && last != event.PreviousStock {
		metrics.EventsConsumedTotal.WithLabelValues(msg.EventType, auditResultChainBreak).Inc()
		logger.Warn(ctx).
			Int("item_id", event.ItemID).
			Str("transaction_id", event.TransactionID).
			Int("expected_previous", last).
			Int("previous_stock", event.PreviousStock).
			Msg("Stock ledger chain break")
		return nil
	}

	metrics.EventsConsumedTotal.WithLabelValues(msg.EventType, auditResultOK).Inc()
	logger.Info(ctx).
		Int("item_id", event.ItemID).
		Str("item_name", event.ItemName).
		Str("type", event.TransactionType).
		Int("quantity", event.Quantity).
		Int("previous_stock", event.PreviousStock).
		Int("new_stock", event.NewStock).
		Msg("Stock changed")
	return nil
}

// LastStock returns the last stock level seen for itemID
func (a *Auditor) LastStock(itemID int) (int, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	stock, ok := a.lastStock[itemID]
	return stock, ok
}

// Totals returns the invoice count and revenue seen so far
func (a *Auditor) Totals() (int, float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.invoices, a.revenue
}
