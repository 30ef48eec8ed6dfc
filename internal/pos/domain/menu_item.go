package domain

import (
	"math"
	"strings"
)

// MenuItem represents a sellable catalog entry
type MenuItem struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Image       string  `json:"image,omitempty"`
	Stock       int     `json:"stock"`
}

// Stock status classes shown next to menu items
const (
	StockStatusOut = "out-of-stock"
	StockStatusLow = "low-stock"
	StockStatusIn  = "in-stock"
)

// IsAvailable checks if the item can be added to a cart
func (m *MenuItem) IsAvailable() bool {
	return m.Stock > 0
}

// StockStatus classifies the current stock against a low-stock threshold
func (m *MenuItem) StockStatus(lowThreshold int) string {
	switch {
	case m.Stock <= 0:
		return StockStatusOut
	case m.Stock < lowThreshold:
		return StockStatusLow
	default:
		return StockStatusIn
	}
}

// Normalize trims free-text fields in place
func (m *MenuItem) Normalize() {
	m.Name = strings.TrimSpace(m.Name)
	m.Description = strings.TrimSpace(m.Description)
	m.Image = strings.TrimSpace(m.Image)
}

// Validate checks catalog rules for name, price and stock
func (m *MenuItem) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return NewValidationError("name", "please enter item name")
	}
	if math.IsNaN(m.Price) || math.IsInf(m.Price, 0) || m.Price <= 0 {
		return NewValidationError("price", "please enter a valid price")
	}
	if m.Stock < 0 {
		return NewValidationError("stock", "stock cannot be negative")
	}
	return nil
}

// FindMenuItem returns the index of the item with id, or -1
func FindMenuItem(items []MenuItem, id int) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}

// NextMenuItemID returns max(existing ids)+1, or 1 for an empty catalog.
// Deleting the highest id frees it for reuse.
func NextMenuItemID(items []MenuItem) int {
	next := 1
	for _, item := range items {
		if item.ID >= next {
			next = item.ID + 1
		}
	}
	return next
}

// DefaultMenuItems is the catalog written on first start
func DefaultMenuItems() []MenuItem {
	return []MenuItem{
		{ID: 1, Name: "Idli", Price: 30, Description: "Soft and fluffy steamed rice cakes", Stock: 100,
			Image: "https://images.unsplash.com/photo-1588166524941-3bf61a9c41db?w=500&h=400&fit=crop&auto=format"},
		{ID: 2, Name: "Dosa", Price: 50, Description: "Crispy fermented crepe", Stock: 80,
			Image: "https://images.unsplash.com/photo-1626700051175-54f28f52419a?w=500&h=400&fit=crop&auto=format"},
		{ID: 3, Name: "Vada", Price: 25, Description: "Savory fried donut", Stock: 90,
			Image: "https://images.unsplash.com/photo-1546069901-ba9599a7e63c?w=500&h=400&fit=crop&auto=format"},
		{ID: 4, Name: "Chappathi", Price: 40, Description: "Whole wheat flatbread", Stock: 75,
			Image: "https://images.unsplash.com/photo-1603133872878-684f208fb84b?w=500&h=400&fit=crop&auto=format"},
		{ID: 5, Name: "Parotta", Price: 45, Description: "Layered flatbread", Stock: 70,
			Image: "https://images.unsplash.com/photo-1571091718767-18b5b1457add?w=500&h=400&fit=crop&auto=format"},
	}
}
