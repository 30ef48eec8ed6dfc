package query

import (
	"context"
	"fmt"

	"github.com/tair/tiffin-pos/internal/pos/domain"
)

// ListMenuQuery represents the query to list the catalog
type ListMenuQuery struct{}

// MenuItemView is a catalog entry with its stock status class
type MenuItemView struct {
	domain.MenuItem
	StockStatus string `json:"stockStatus"`
}

// ListMenuHandler handles list menu query
type ListMenuHandler struct {
	repo         domain.Repository
	lowThreshold int
}

// NewListMenuHandler creates a new list menu handler
func NewListMenuHandler(repo domain.Repository, lowThreshold int) *ListMenuHandler {
	return &ListMenuHandler{repo: repo, lowThreshold: lowThreshold}
}

// Handle executes the list menu query
func (h *ListMenuHandler) Handle(ctx context.Context, _ ListMenuQuery) ([]MenuItemView, error) {
	items, err := h.repo.GetMenuItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list menu: %w", err)
	}

	views := make([]MenuItemView, 0, len(items))
	for i := range items {
		views = append(views, MenuItemView{
			MenuItem:    items[i],
			StockStatus: items[i].StockStatus(h.lowThreshold),
		})
	}
	return views, nil
}
