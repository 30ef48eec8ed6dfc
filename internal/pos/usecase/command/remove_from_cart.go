package command

import (
	"context"

	"github.com/tair/tiffin-pos/internal/pos/domain"
)

// RemoveFromCartCommand drops an item's line from the cart
type RemoveFromCartCommand struct {
	ItemID int
}

// RemoveFromCartHandler handles remove from cart command
type RemoveFromCartHandler struct {
	repo domain.Repository
}

// NewRemoveFromCartHandler creates a new remove from cart handler
func NewRemoveFromCartHandler(repo domain.Repository) *RemoveFromCartHandler {
	return &RemoveFromCartHandler{repo: repo}
}

// Handle removes the line regardless of quantity; a missing line is not an error
func (h *RemoveFromCartHandler) Handle(ctx context.Context, cmd RemoveFromCartCommand) ([]domain.CartLine, error) {
	var cart []domain.CartLine
	err := h.repo.Update(ctx, func(rec *domain.Records) error {
		kept := make([]domain.CartLine, 0, len(rec.Cart))
		for _, line := range rec.Cart {
			if line.ItemID != cmd.ItemID {
				kept = append(kept, line)
			}
		}
		rec.Cart = kept
		cart = kept
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cart, nil
}
