package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/tair/tiffin-pos/internal/pos/domain"
	"github.com/tair/tiffin-pos/pkg/logger"
	"github.com/tair/tiffin-pos/pkg/metrics"
	"github.com/tair/tiffin-pos/pkg/timeutil"
)

// CheckoutHandler settles the cart into an invoice
type CheckoutHandler struct {
	repo          domain.Repository
	clock         timeutil.Clock
	publisher     domain.EventPublisher
	paymentMethod string
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(repo domain.Repository, clock timeutil.Clock, publisher domain.EventPublisher, paymentMethod string) *CheckoutHandler {
	if paymentMethod == "" {
		paymentMethod = domain.DefaultPaymentMethod
	}
	return &CheckoutHandler{
		repo:          repo,
		clock:         clockOrDefault(clock),
		publisher:     publisherOrNop(publisher),
		paymentMethod: paymentMethod,
	}
}

// Handle validates every cart line against live stock, then in one atomic write
// prepends the invoice, decrements stock with one sale entry per line and
// clears the cart. On any rejection nothing is written.
func (h *CheckoutHandler) Handle(ctx context.Context) (*domain.Invoice, error) {
	var (
		invoice domain.Invoice
		sales   []domain.StockTransaction
	)
	err := h.repo.Update(ctx, func(rec *domain.Records) error {
		sales = nil
		if len(rec.Cart) == 0 {
			return domain.NewValidationError("cart", "cart is empty")
		}

		// a stored cart may repeat an item, so demand is summed per item
		requested := make(map[int]int, len(rec.Cart))
		for _, line := range rec.Cart {
			if line.Quantity < 1 {
				return domain.NewValidationError("quantity", fmt.Sprintf("invalid quantity %d for %s", line.Quantity, line.Name))
			}
			requested[line.ItemID] += line.Quantity
		}
		for _, line := range rec.Cart {
			idx := domain.FindMenuItem(rec.MenuItems, line.ItemID)
			if idx < 0 {
				return fmt.Errorf("%w for %s (item no longer on the menu)", domain.ErrInsufficientStock, line.Name)
			}
			if item := rec.MenuItems[idx]; item.Stock < requested[line.ItemID] {
				return fmt.Errorf("%w for %s (available %d, requested %d)",
					domain.ErrInsufficientStock, item.Name, item.Stock, requested[line.ItemID])
			}
		}

		now := h.clock()
		lines := domain.InvoiceLinesFromCart(rec.Cart)
		invoice = domain.Invoice{
			InvoiceID:     domain.NextInvoiceID(rec.Invoices),
			Timestamp:     now,
			Date:          timeutil.DisplayDate(now),
			Time:          timeutil.DisplayTime(now),
			Items:         lines,
			Total:         domain.InvoiceTotal(lines),
			PaymentMethod: h.paymentMethod,
		}
		rec.Invoices = append([]domain.Invoice{invoice}, rec.Invoices...)

		for _, line := range rec.Cart {
			idx := domain.FindMenuItem(rec.MenuItems, line.ItemID)
			newStock := rec.MenuItems[idx].Stock - line.Quantity
			if newStock < 0 {
				return fmt.Errorf("%w for %s", domain.ErrInsufficientStock, line.Name)
			}
			notes := fmt.Sprintf("Sale - Invoice %s", invoice.InvoiceID)
			sales = append(sales, recordStockChange(rec, idx, domain.TransactionSale, line.Quantity, newStock, notes, now))
		}

		rec.Cart = []domain.CartLine{}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation), domain.IsBusinessRule(err):
			metrics.CheckoutsTotal.WithLabelValues(metrics.ResultRejected).Inc()
			logger.Info(ctx).Err(err).Msg("Checkout rejected")
			return nil, err
		default:
			metrics.CheckoutsTotal.WithLabelValues(metrics.ResultError).Inc()
			return nil, fmt.Errorf("failed to checkout: %w", err)
		}
	}

	metrics.CheckoutsTotal.WithLabelValues(metrics.ResultSuccess).Inc()
	metrics.RevenueTotal.Add(invoice.Total)
	for _, line := range invoice.Items {
		metrics.ItemsSoldTotal.WithLabelValues(line.Name).Add(float64(line.Quantity))
	}

	if err := h.publisher.PublishInvoiceCreated(ctx, invoice); err != nil {
		logger.Warn(ctx).
			Err(err).
			Str("invoice_id", invoice.InvoiceID).
			Msg("Failed to publish invoice created event")
	}
	publishStockChanges(ctx, h.publisher, sales)

	logger.Info(ctx).
		Str("invoice_id", invoice.InvoiceID).
		Int("lines", len(invoice.Items)).
		Float64("total", invoice.Total).
		Msg("Checkout completed")

	return &invoice, nil
}
