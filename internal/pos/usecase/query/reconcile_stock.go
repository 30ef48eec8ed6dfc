package query

import (
	"context"
	"fmt"

	"github.com/tair/tiffin-pos/internal/pos/domain"
)

// ReconcileStockQuery represents the query to check the ledger against the catalog
type ReconcileStockQuery struct{}

// ItemReconciliation compares an item's stock with its replayed ledger
type ItemReconciliation struct {
	ItemID       int    `json:"itemId"`
	Name         string `json:"name"`
	CurrentStock int    `json:"currentStock"`
	LedgerStock  int    `json:"ledgerStock"`
	Transactions int    `json:"transactions"`
	// BrokenChain is set when an entry's previous stock does not follow the one before it
	BrokenChain bool `json:"brokenChain"`
	Consistent  bool `json:"consistent"`
}

// StockReconciliation is the outcome for the whole catalog
type StockReconciliation struct {
	Consistent bool                 `json:"consistent"`
	Items      []ItemReconciliation `json:"items"`
}

// ReconcileStockHandler handles reconcile stock query
type ReconcileStockHandler struct {
	repo domain.Repository
}

// NewReconcileStockHandler creates a new reconcile stock handler
func NewReconcileStockHandler(repo domain.Repository) *ReconcileStockHandler {
	return &ReconcileStockHandler{repo: repo}
}

// Handle replays each item's transactions from the stock recorded before its
// first entry and compares the result with the catalog.
func (h *ReconcileStockHandler) Handle(ctx context.Context, _ ReconcileStockQuery) (*StockReconciliation, error) {
	items, err := h.repo.GetMenuItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get menu: %w", err)
	}
	ledger, err := h.repo.GetStockTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get stock transactions: %w", err)
	}

	result := &StockReconciliation{Consistent: true, Items: make([]ItemReconciliation, 0, len(items))}
	for _, item := range items {
		r := reconcileItem(item, domain.TransactionsForItem(ledger, item.ID))
		if !r.Consistent {
			result.Consistent = false
		}
		result.Items = append(result.Items, r)
	}
	return result, nil
}

func reconcileItem(item domain.MenuItem, txs []domain.StockTransaction) ItemReconciliation {
	r := ItemReconciliation{
		ItemID:       item.ID,
		Name:         item.Name,
		CurrentStock: item.Stock,
		LedgerStock:  item.Stock,
		Transactions: len(txs),
	}
	if len(txs) == 0 {
		r.Consistent = true
		return r
	}

	running := txs[0].PreviousStock
	for _, tx := range txs {
		if tx.PreviousStock != running {
			r.BrokenChain = true
		}
		running = tx.Apply(running)
	}
	r.LedgerStock = running
	r.Consistent = !r.BrokenChain && running == item.Stock
	return r
}
