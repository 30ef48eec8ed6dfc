package query

import (
	"context"
	"fmt"

	"github.com/tair/tiffin-pos/internal/pos/domain"
)

// GetInvoiceQuery represents the query to get one invoice
type GetInvoiceQuery struct {
	InvoiceID string
}

// GetInvoiceHandler handles get invoice query
type GetInvoiceHandler struct {
	repo domain.Repository
}

// NewGetInvoiceHandler creates a new get invoice handler
func NewGetInvoiceHandler(repo domain.Repository) *GetInvoiceHandler {
	return &GetInvoiceHandler{repo: repo}
}

// Handle executes the get invoice query
func (h *GetInvoiceHandler) Handle(ctx context.Context, q GetInvoiceQuery) (*domain.Invoice, error) {
	invoices, err := h.repo.GetInvoices(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}

	idx := domain.FindInvoice(invoices, q.InvoiceID)
	if idx < 0 {
		return nil, fmt.Errorf("invoice %s: %w", q.InvoiceID, domain.ErrNotFound)
	}
	return &invoices[idx], nil
}
