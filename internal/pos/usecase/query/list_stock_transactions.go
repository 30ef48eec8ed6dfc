package query

import (
	"context"
	"fmt"

	"github.com/tair/tiffin-pos/internal/pos/domain"
)

// ListStockTransactionsQuery lists ledger entries, optionally for one item.
// ItemID 0 means every item; Limit 0 means no limit.
type ListStockTransactionsQuery struct {
	ItemID int
	Limit  int
}

// ListStockTransactionsHandler handles list stock transactions query
type ListStockTransactionsHandler struct {
	repo domain.Repository
}

// NewListStockTransactionsHandler creates a new list stock transactions handler
func NewListStockTransactionsHandler(repo domain.Repository) *ListStockTransactionsHandler {
	return &ListStockTransactionsHandler{repo: repo}
}

// Handle executes the query, newest entry first
func (h *ListStockTransactionsHandler) Handle(ctx context.Context, q ListStockTransactionsQuery) ([]domain.StockTransaction, error) {
	ledger, err := h.repo.GetStockTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list stock transactions: %w", err)
	}
	if q.ItemID != 0 {
		ledger = domain.TransactionsForItem(ledger, q.ItemID)
	}

	out := make([]domain.StockTransaction, 0, len(ledger))
	for i := len(ledger) - 1; i >= 0; i-- {
		if q.Limit > 0 && len(out) == q.Limit {
			break
		}
		out = append(out, ledger[i])
	}
	return out, nil
}
