package query

import (
	"context"
	"fmt"

	"github.com/tair/tiffin-pos/internal/pos/domain"
)

// GetMenuItemQuery represents the query to get one catalog entry
type GetMenuItemQuery struct {
	ID int
}

// GetMenuItemHandler handles get menu item query
type GetMenuItemHandler struct {
	repo         domain.Repository
	lowThreshold int
}

// NewGetMenuItemHandler creates a new get menu item handler
func NewGetMenuItemHandler(repo domain.Repository, lowThreshold int) *GetMenuItemHandler {
	return &GetMenuItemHandler{repo: repo, lowThreshold: lowThreshold}
}

// Handle executes the get menu item query
func (h *GetMenuItemHandler) Handle(ctx context.Context, q GetMenuItemQuery) (*MenuItemView, error) {
	items, err := h.repo.GetMenuItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get menu item: %w", err)
	}

	idx := domain.FindMenuItem(items, q.ID)
	if idx < 0 {
		return nil, fmt.Errorf("menu item %d: %w", q.ID, domain.ErrNotFound)
	}

	return &MenuItemView{
		MenuItem:    items[idx],
		StockStatus: items[idx].StockStatus(h.lowThreshold),
	}, nil
}
