package command

import (
	"context"
	"fmt"

	"github.com/tair/tiffin-pos/internal/pos/domain"
	"github.com/tair/tiffin-pos/pkg/logger"
	"github.com/tair/tiffin-pos/pkg/timeutil"
)

// CatalogEditNote marks ledger entries created by editing an item's stock in the catalog
const CatalogEditNote = "catalog edit"

// UpdateMenuItemCommand replaces every editable field of an item
type UpdateMenuItemCommand struct {
	ID          int
	Name        string
	Price       float64
	Description string
	Image       string
	Stock       int
}

// UpdateMenuItemHandler handles update menu item command
type UpdateMenuItemHandler struct {
	repo      domain.Repository
	clock     timeutil.Clock
	publisher domain.EventPublisher
}

// NewUpdateMenuItemHandler creates a new update menu item handler
func NewUpdateMenuItemHandler(repo domain.Repository, clock timeutil.Clock, publisher domain.EventPublisher) *UpdateMenuItemHandler {
	return &UpdateMenuItemHandler{
		repo:      repo,
		clock:     clockOrDefault(clock),
		publisher: publisherOrNop(publisher),
	}
}

// Handle executes the update menu item command. An unknown id is a silent
// no-op: nil item and nil error.
func (h *UpdateMenuItemHandler) Handle(ctx context.Context, cmd UpdateMenuItemCommand) (*domain.MenuItem, error) {
	updated := domain.MenuItem{
		ID:          cmd.ID,
		Name:        cmd.Name,
		Price:       cmd.Price,
		Description: cmd.Description,
		Image:       cmd.Image,
		Stock:       cmd.Stock,
	}
	updated.Normalize()
	if err := updated.Validate(); err != nil {
		return nil, err
	}

	var (
		found bool
		txs   []domain.StockTransaction
	)
	err := h.repo.Update(ctx, func(rec *domain.Records) error {
		found, txs = false, nil
		idx := domain.FindMenuItem(rec.MenuItems, cmd.ID)
		if idx < 0 {
			return nil
		}
		found = true

		if rec.MenuItems[idx].Stock != updated.Stock {
			txs = append(txs, recordStockChange(rec, idx, domain.TransactionAdjustment,
				updated.Stock, updated.Stock, CatalogEditNote, h.clock()))
		}
		rec.MenuItems[idx] = updated
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update menu item: %w", err)
	}

	if !found {
		logger.Debug(ctx).Int("item_id", cmd.ID).Msg("Menu item not found, update ignored")
		return nil, nil
	}

	publishStockChanges(ctx, h.publisher, txs)

	logger.Info(ctx).
		Int("item_id", updated.ID).
		Bool("stock_changed", len(txs) > 0).
		Msg("Menu item updated")

	return &updated, nil
}
