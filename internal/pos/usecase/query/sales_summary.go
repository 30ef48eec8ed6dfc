package query

import (
	"context"
	"fmt"
	"sort"

	"github.com/tair/tiffin-pos/internal/pos/domain"
)

// TopItemsLimit caps the best seller list
const TopItemsLimit = 5

// SalesSummaryQuery represents the query to summarize sales in an optional date range
type SalesSummaryQuery struct {
	Start string
	End   string
}

// ItemSales is the quantity and revenue sold for one item name
type ItemSales struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Revenue  float64 `json:"revenue"`
}

// SalesSummary represents aggregated sales
type SalesSummary struct {
	TotalRevenue      float64     `json:"totalRevenue"`
	OrderCount        int         `json:"orderCount"`
	AverageOrderValue float64     `json:"averageOrderValue"`
	TopItems          []ItemSales `json:"topItems"`
}

// SalesSummaryHandler handles sales summary query
type SalesSummaryHandler struct {
	repo domain.Repository
}

// NewSalesSummaryHandler creates a new sales summary handler
func NewSalesSummaryHandler(repo domain.Repository) *SalesSummaryHandler {
	return &SalesSummaryHandler{repo: repo}
}

// Handle executes the sales summary query
func (h *SalesSummaryHandler) Handle(ctx context.Context, q SalesSummaryQuery) (*SalesSummary, error) {
	r, err := ParseDateRange(q.Start, q.End)
	if err != nil {
		return nil, err
	}

	invoices, err := h.repo.GetInvoices(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get invoices: %w", err)
	}

	return Summarize(domain.FilterInvoices(invoices, r)), nil
}

// Summarize aggregates invoices. Items are grouped by name; ties keep
// first-seen order.
func Summarize(invoices []domain.Invoice) *SalesSummary {
	summary := &SalesSummary{
		OrderCount: len(invoices),
		TopItems:   []ItemSales{},
	}

	byName := make(map[string]int)
	var items []ItemSales
	for _, inv := range invoices {
		summary.TotalRevenue += inv.Total
		for _, line := range inv.Items {
			idx, ok := byName[line.Name]
			if !ok {
				idx = len(items)
				byName[line.Name] = idx
				items = append(items, ItemSales{Name: line.Name})
			}
			items[idx].Quantity += line.Quantity
			items[idx].Revenue += line.Subtotal()
		}
	}

	if summary.OrderCount > 0 {
		summary.AverageOrderValue = summary.TotalRevenue / float64(summary.OrderCount)
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Quantity > items[j].Quantity
	})
	if len(items) > TopItemsLimit {
		items = items[:TopItemsLimit]
	}
	summary.TopItems = append(summary.TopItems, items...)

	return summary
}
