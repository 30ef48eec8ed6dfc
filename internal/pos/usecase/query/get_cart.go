package query

import (
	"context"
	"fmt"

	"github.com/tair/tiffin-pos/internal/pos/domain"
)

// GetCartQuery represents the query to read the cart
type GetCartQuery struct{}

// CartView is the cart with its derived totals
type CartView struct {
	Items     []domain.CartLine `json:"items"`
	ItemCount int               `json:"itemCount"`
	Total     float64           `json:"total"`
}

// GetCartHandler handles get cart query
type GetCartHandler struct {
	repo domain.Repository
}

// NewGetCartHandler creates a new get cart handler
func NewGetCartHandler(repo domain.Repository) *GetCartHandler {
	return &GetCartHandler{repo: repo}
}

// Handle executes the get cart query. The total is recomputed on every read.
func (h *GetCartHandler) Handle(ctx context.Context, _ GetCartQuery) (*CartView, error) {
	lines, err := h.repo.GetCart(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}
	return NewCartView(lines), nil
}

// NewCartView derives the totals for lines
func NewCartView(lines []domain.CartLine) *CartView {
	if lines == nil {
		lines = []domain.CartLine{}
	}
	count := 0
	for _, line := range lines {
		count += line.Quantity
	}
	return &CartView{
		Items:     lines,
		ItemCount: count,
		Total:     domain.CartTotal(lines),
	}
}
