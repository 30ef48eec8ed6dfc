package http

import (
	"encoding/json"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/tair/tiffin-pos/internal/pos/usecase/command"
	"github.com/tair/tiffin-pos/internal/pos/usecase/query"
)

// menuItemRequest accepts price and stock as numbers or numeric strings
type menuItemRequest struct {
	Name        string      `json:"name"`
	Price       interface{} `json:"price"`
	Description string      `json:"description"`
	Image       string      `json:"image"`
	Stock       interface{} `json:"stock"`
}

// price returns NaN when the value is not numeric so validation rejects it
func (req menuItemRequest) price() float64 {
	switch v := req.Price.(type) {
	case float64:
		return v
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		return math.NaN()
	}
}

// stock truncates fractions and reads anything unparsable or out of int32 range as 0
func (req menuItemRequest) stock() int {
	switch v := req.Stock.(type) {
	case float64:
		return stockFromFloat(v)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0
		}
		return stockFromFloat(f)
	default:
		return 0
	}
}

func stockFromFloat(f float64) int {
	if math.IsNaN(f) || f > math.MaxInt32 || f < math.MinInt32 {
		return 0
	}
	return int(f)
}

// ListMenu handles GET /api/menu
func (h *POSHandler) ListMenu(w http.ResponseWriter, r *http.Request) {
	items, err := h.queries.ListMenu.Handle(r.Context(), query.ListMenuQuery{})
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    items,
	})
}

// GetMenuItem handles GET /api/menu/{id}
func (h *POSHandler) GetMenuItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(r, "id")
	if !ok {
		respondBadRequest(w, "Invalid menu item ID")
		return
	}

	item, err := h.queries.GetMenuItem.Handle(r.Context(), query.GetMenuItemQuery{ID: id})
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    item,
	})
}

// CreateMenuItem handles POST /api/menu
func (h *POSHandler) CreateMenuItem(w http.ResponseWriter, r *http.Request) {
	var req menuItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "Invalid request body")
		return
	}

	item, err := h.commands.CreateMenuItem.Handle(r.Context(), command.CreateMenuItemCommand{
		Name:        req.Name,
		Price:       req.price(),
		Description: req.Description,
		Image:       req.Image,
		Stock:       req.stock(),
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Item added successfully",
		Data:    item,
	})
}

// UpdateMenuItem handles PUT /api/menu/{id}
func (h *POSHandler) UpdateMenuItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(r, "id")
	if !ok {
		respondBadRequest(w, "Invalid menu item ID")
		return
	}

	var req menuItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "Invalid request body")
		return
	}

	item, err := h.commands.UpdateMenuItem.Handle(r.Context(), command.UpdateMenuItemCommand{
		ID:          id,
		Name:        req.Name,
		Price:       req.price(),
		Description: req.Description,
		Image:       req.Image,
		Stock:       req.stock(),
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	if item == nil {
		respondJSON(w, http.StatusOK, Response{
			Success: true,
			Message: "No menu item with that ID, nothing updated",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Item updated successfully",
		Data:    item,
	})
}

// DeleteMenuItem handles DELETE /api/menu/{id}
func (h *POSHandler) DeleteMenuItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(r, "id")
	if !ok {
		respondBadRequest(w, "Invalid menu item ID")
		return
	}

	if err := h.commands.DeleteMenuItem.Handle(r.Context(), command.DeleteMenuItemCommand{ID: id}); err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Item deleted successfully",
	})
}
