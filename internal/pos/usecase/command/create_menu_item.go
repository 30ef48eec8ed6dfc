package command

import (
	"context"
	"fmt"

	"github.com/tair/tiffin-pos/internal/pos/domain"
	"github.com/tair/tiffin-pos/pkg/logger"
)

// CreateMenuItemCommand represents the command to add a catalog entry
type CreateMenuItemCommand struct {
	Name        string
	Price       float64
	Description string
	Image       string
	Stock       int
}

// CreateMenuItemHandler handles create menu item command
type CreateMenuItemHandler struct {
	repo domain.Repository
}

// NewCreateMenuItemHandler creates a new create menu item handler
func NewCreateMenuItemHandler(repo domain.Repository) *CreateMenuItemHandler {
	return &CreateMenuItemHandler{repo: repo}
}

// Handle executes the create menu item command
func (h *CreateMenuItemHandler) Handle(ctx context.Context, cmd CreateMenuItemCommand) (*domain.MenuItem, error) {
	item := domain.MenuItem{
		Name:        cmd.Name,
		Price:       cmd.Price,
		Description: cmd.Description,
		Image:       cmd.Image,
		Stock:       cmd.Stock,
	}
	item.Normalize()
	if err := item.Validate(); err != nil {
		return nil, err
	}

	err := h.repo.Update(ctx, func(rec *domain.Records) error {
		item.ID = domain.NextMenuItemID(rec.MenuItems)
		rec.MenuItems = append(rec.MenuItems, item)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create menu item: %w", err)
	}

	logger.Info(ctx).
		Int("item_id", item.ID).
		Str("name", item.Name).
		Int("stock", item.Stock).
		Msg("Menu item created")

	return &item, nil
}
