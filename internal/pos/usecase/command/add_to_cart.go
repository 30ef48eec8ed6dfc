package command

import (
	"context"
	"fmt"

	"github.com/tair/tiffin-pos/internal/pos/domain"
	"github.com/tair/tiffin-pos/pkg/logger"
)

// AddToCartCommand adds one unit of a menu item to the cart
type AddToCartCommand struct {
	ItemID int
}

// AddToCartHandler handles add to cart command
type AddToCartHandler struct {
	repo domain.Repository
}

// NewAddToCartHandler creates a new add to cart handler
func NewAddToCartHandler(repo domain.Repository) *AddToCartHandler {
	return &AddToCartHandler{repo: repo}
}

// Handle executes the add to cart command and returns the resulting cart
func (h *AddToCartHandler) Handle(ctx context.Context, cmd AddToCartCommand) ([]domain.CartLine, error) {
	var cart []domain.CartLine
	err := h.repo.Update(ctx, func(rec *domain.Records) error {
		idx := domain.FindMenuItem(rec.MenuItems, cmd.ItemID)
		if idx < 0 {
			return fmt.Errorf("menu item %d: %w", cmd.ItemID, domain.ErrNotFound)
		}
		item := rec.MenuItems[idx]
		if !item.IsAvailable() {
			return fmt.Errorf("%s: %w", item.Name, domain.ErrOutOfStock)
		}

		if line := domain.FindCartLine(rec.Cart, item.ID); line >= 0 {
			if rec.Cart[line].Quantity+1 > item.Stock {
				return fmt.Errorf("%w (only %d %s available)", domain.ErrStockLimitExceeded, item.Stock, item.Name)
			}
			rec.Cart[line].Quantity++
		} else {
			rec.Cart = append(rec.Cart, domain.CartLine{
				ItemID:   item.ID,
				Name:     item.Name,
				Price:    item.Price,
				Quantity: 1,
			})
		}
		cart = rec.Cart
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Debug(ctx).Int("item_id", cmd.ItemID).Int("lines", len(cart)).Msg("Item added to cart")
	return cart, nil
}
