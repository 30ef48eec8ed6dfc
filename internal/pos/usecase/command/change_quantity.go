package command

import (
	"context"
	"fmt"

	"github.com/tair/tiffin-pos/internal/pos/domain"
)

// ChangeQuantityCommand moves a cart line's quantity up or down by one
type ChangeQuantityCommand struct {
	ItemID int
}

// IncreaseQuantityHandler handles increase quantity command
type IncreaseQuantityHandler struct {
	repo domain.Repository
}

// NewIncreaseQuantityHandler creates a new increase quantity handler
func NewIncreaseQuantityHandler(repo domain.Repository) *IncreaseQuantityHandler {
	return &IncreaseQuantityHandler{repo: repo}
}

// Handle adds one unit unless that would exceed the item's current stock
func (h *IncreaseQuantityHandler) Handle(ctx context.Context, cmd ChangeQuantityCommand) ([]domain.CartLine, error) {
	var cart []domain.CartLine
	err := h.repo.Update(ctx, func(rec *domain.Records) error {
		line, item, err := lookupLine(rec, cmd.ItemID)
		if err != nil {
			return err
		}
		if rec.Cart[line].Quantity+1 > item.Stock {
			return fmt.Errorf("%w (only %d %s available)", domain.ErrStockLimitExceeded, item.Stock, item.Name)
		}
		rec.Cart[line].Quantity++
		cart = rec.Cart
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cart, nil
}

// DecreaseQuantityHandler handles decrease quantity command
type DecreaseQuantityHandler struct {
	repo domain.Repository
}

// NewDecreaseQuantityHandler creates a new decrease quantity handler
func NewDecreaseQuantityHandler(repo domain.Repository) *DecreaseQuantityHandler {
	return &DecreaseQuantityHandler{repo: repo}
}

// Handle removes one unit; a line at quantity 1 is left as is
func (h *DecreaseQuantityHandler) Handle(ctx context.Context, cmd ChangeQuantityCommand) ([]domain.CartLine, error) {
	var cart []domain.CartLine
	err := h.repo.Update(ctx, func(rec *domain.Records) error {
		line, _, err := lookupLine(rec, cmd.ItemID)
		if err != nil {
			return err
		}
		if rec.Cart[line].Quantity > 1 {
			rec.Cart[line].Quantity--
		}
		cart = rec.Cart
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cart, nil
}

func lookupLine(rec *domain.Records, itemID int) (int, domain.MenuItem, error) {
	line := domain.FindCartLine(rec.Cart, itemID)
	if line < 0 {
		return -1, domain.MenuItem{}, fmt.Errorf("cart line for item %d: %w", itemID, domain.ErrNotFound)
	}
	idx := domain.FindMenuItem(rec.MenuItems, itemID)
	if idx < 0 {
		return -1, domain.MenuItem{}, fmt.Errorf("menu item %d: %w", itemID, domain.ErrNotFound)
	}
	return line, rec.MenuItems[idx], nil
}
