package query

import (
	"context"
	"fmt"

	"github.com/tair/tiffin-pos/internal/pos/domain"
)

// ListInvoicesQuery filters the invoice ledger by optional YYYY-MM-DD bounds
type ListInvoicesQuery struct {
	Start string
	End   string
}

// ListInvoicesHandler handles list invoices query
type ListInvoicesHandler struct {
	repo domain.Repository
}

// NewListInvoicesHandler creates a new list invoices handler
func NewListInvoicesHandler(repo domain.Repository) *ListInvoicesHandler {
	return &ListInvoicesHandler{repo: repo}
}

// Handle executes the list invoices query, newest first
func (h *ListInvoicesHandler) Handle(ctx context.Context, q ListInvoicesQuery) ([]domain.Invoice, error) {
	r, err := ParseDateRange(q.Start, q.End)
	if err != nil {
		return nil, err
	}

	invoices, err := h.repo.GetInvoices(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	return domain.FilterInvoices(invoices, r), nil
}
