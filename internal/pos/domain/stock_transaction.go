package domain

import (
	"fmt"
	"time"
)

// StockTransactionType tells how Quantity is applied to stock
type StockTransactionType string

// Transaction types. For sale, in and out Quantity is a delta; for
// adjustment it is the absolute stock after the transaction.
const (
	TransactionSale       StockTransactionType = "sale"
	TransactionIn         StockTransactionType = "in"
	TransactionOut        StockTransactionType = "out"
	TransactionAdjustment StockTransactionType = "adjustment"
)

// ParseAdjustmentType accepts the manual adjustment types (sale is reserved for checkout)
func ParseAdjustmentType(s string) (StockTransactionType, error) {
	switch t := StockTransactionType(s); t {
	case TransactionIn, TransactionOut, TransactionAdjustment:
		return t, nil
	default:
		return "", NewValidationError("type", fmt.Sprintf("unknown stock adjustment type %q", s))
	}
}

// StockTransaction is an append-only ledger entry
type StockTransaction struct {
	TransactionID string               `json:"transactionId"`
	ItemID        int                  `json:"itemId"`
	ItemName      string               `json:"itemName"`
	Type          StockTransactionType `json:"type"`
	Quantity      int                  `json:"quantity"`
	PreviousStock int                  `json:"previousStock"`
	NewStock      int                  `json:"newStock"`
	Timestamp     time.Time            `json:"timestamp"`
	Notes         string               `json:"notes"`
}

// ApplyStock returns the stock level after applying a transaction of type t with quantity q.
// It does not enforce non-negative results.
func ApplyStock(current int, t StockTransactionType, q int) int {
	switch t {
	case TransactionIn:
		return current + q
	case TransactionSale, TransactionOut:
		return current - q
	case TransactionAdjustment:
		return q
	default:
		return current
	}
}

// Apply replays this transaction on top of current
func (tx StockTransaction) Apply(current int) int {
	return ApplyStock(current, tx.Type, tx.Quantity)
}

// TransactionsForItem returns the ledger entries for itemID in ledger order
func TransactionsForItem(ledger []StockTransaction, itemID int) []StockTransaction {
	out := make([]StockTransaction, 0)
	for _, tx := range ledger {
		if tx.ItemID == itemID {
			out = append(out, tx)
		}
	}
	return out
}
