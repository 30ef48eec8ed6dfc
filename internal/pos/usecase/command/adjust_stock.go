package command

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tair/tiffin-pos/internal/pos/domain"
	"github.com/tair/tiffin-pos/pkg/logger"
	"github.com/tair/tiffin-pos/pkg/metrics"
	"github.com/tair/tiffin-pos/pkg/timeutil"
)

// AdjustStockCommand represents a manual stock movement
type AdjustStockCommand struct {
	ItemID   int
	Type     string
	Quantity int
	Notes    string
}

// AdjustStockHandler handles adjust stock command
type AdjustStockHandler struct {
	repo      domain.Repository
	clock     timeutil.Clock
	publisher domain.EventPublisher
}

// NewAdjustStockHandler creates a new adjust stock handler
func NewAdjustStockHandler(repo domain.Repository, clock timeutil.Clock, publisher domain.EventPublisher) *AdjustStockHandler {
	return &AdjustStockHandler{
		repo:      repo,
		clock:     clockOrDefault(clock),
		publisher: publisherOrNop(publisher),
	}
}

// Handle executes the adjust stock command. in adds, out removes and
// adjustment sets the absolute level. Exactly one ledger entry is appended.
func (h *AdjustStockHandler) Handle(ctx context.Context, cmd AdjustStockCommand) (*domain.StockTransaction, error) {
	txType, err := domain.ParseAdjustmentType(cmd.Type)
	if err != nil {
		return nil, err
	}

	switch txType {
	case domain.TransactionAdjustment:
		if cmd.Quantity < 0 {
			return nil, domain.NewValidationError("quantity", "stock level cannot be negative")
		}
	default:
		if cmd.Quantity <= 0 {
			return nil, domain.NewValidationError("quantity", "please enter a valid quantity")
		}
	}

	notes := strings.TrimSpace(cmd.Notes)
	if notes == "" {
		notes = fmt.Sprintf("%s transaction", txType)
	}

	var tx domain.StockTransaction
	err = h.repo.Update(ctx, func(rec *domain.Records) error {
		idx := domain.FindMenuItem(rec.MenuItems, cmd.ItemID)
		if idx < 0 {
			return fmt.Errorf("menu item %d: %w", cmd.ItemID, domain.ErrNotFound)
		}
		item := rec.MenuItems[idx]
		if txType == domain.TransactionOut && cmd.Quantity > item.Stock {
			return fmt.Errorf("%w: cannot remove %d %s, only %d in stock",
				domain.ErrInsufficientStock, cmd.Quantity, item.Name, item.Stock)
		}

		newStock := domain.ApplyStock(item.Stock, txType, cmd.Quantity)
		if newStock < 0 {
			return domain.NewValidationError("quantity", "resulting stock cannot be negative")
		}
		tx = recordStockChange(rec, idx, txType, cmd.Quantity, newStock, notes, h.clock())
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrValidation) || errors.Is(err, domain.ErrNotFound) || domain.IsBusinessRule(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to adjust stock: %w", err)
	}

	metrics.StockAdjustmentsTotal.WithLabelValues(string(txType)).Inc()
	publishStockChanges(ctx, h.publisher, []domain.StockTransaction{tx})

	logger.Info(ctx).
		Str("transaction_id", tx.TransactionID).
		Int("item_id", tx.ItemID).
		Str("type", string(tx.Type)).
		Int("previous_stock", tx.PreviousStock).
		Int("new_stock", tx.NewStock).
		Msg("Stock adjusted")

	return &tx, nil
}
