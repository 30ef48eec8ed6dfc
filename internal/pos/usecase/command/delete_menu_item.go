package command

import (
	"context"
	"fmt"

	"github.com/tair/tiffin-pos/internal/pos/domain"
	"github.com/tair/tiffin-pos/pkg/logger"
)

// DeleteMenuItemCommand represents the command to delete a catalog entry
type DeleteMenuItemCommand struct {
	ID int
}

// DeleteMenuItemHandler handles delete menu item command
type DeleteMenuItemHandler struct {
	repo domain.Repository
}

// NewDeleteMenuItemHandler creates a new delete menu item handler
func NewDeleteMenuItemHandler(repo domain.Repository) *DeleteMenuItemHandler {
	return &DeleteMenuItemHandler{repo: repo}
}

// Handle executes the delete menu item command. Deleting a missing id succeeds.
// Cart lines and past invoices keep their own snapshot of the item.
func (h *DeleteMenuItemHandler) Handle(ctx context.Context, cmd DeleteMenuItemCommand) error {
	deleted := false
	err := h.repo.Update(ctx, func(rec *domain.Records) error {
		deleted = false
		kept := make([]domain.MenuItem, 0, len(rec.MenuItems))
		for _, item := range rec.MenuItems {
			if item.ID == cmd.ID {
				deleted = true
				continue
			}
			kept = append(kept, item)
		}
		rec.MenuItems = kept
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete menu item: %w", err)
	}

	logger.Info(ctx).
		Int("item_id", cmd.ID).
		Bool("deleted", deleted).
		Msg("Menu item delete processed")

	return nil
}
