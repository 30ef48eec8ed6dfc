package http

import (
	"encoding/json"
	"net/http"

	"github.com/tair/tiffin-pos/internal/pos/domain"
	"github.com/tair/tiffin-pos/internal/pos/usecase/command"
	"github.com/tair/tiffin-pos/internal/pos/usecase/query"
)

// GetCart handles GET /api/cart
func (h *POSHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.queries.GetCart.Handle(r.Context(), query.GetCartQuery{})
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    cart,
	})
}

// AddToCart handles POST /api/cart/items
func (h *POSHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ItemID int `json:"item_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ItemID <= 0 {
		respondBadRequest(w, "Invalid request body")
		return
	}

	lines, err := h.commands.AddToCart.Handle(r.Context(), command.AddToCartCommand{ItemID: req.ItemID})
	h.respondCart(w, r, lines, err, "Item added to cart")
}

// IncreaseQuantity handles POST /api/cart/items/{item_id}/increase
func (h *POSHandler) IncreaseQuantity(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(r, "item_id")
	if !ok {
		respondBadRequest(w, "Invalid item ID")
		return
	}

	lines, err := h.commands.IncreaseQuantity.Handle(r.Context(), command.ChangeQuantityCommand{ItemID: id})
	h.respondCart(w, r, lines, err, "")
}

// DecreaseQuantity handles POST /api/cart/items/{item_id}/decrease
func (h *POSHandler) DecreaseQuantity(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(r, "item_id")
	if !ok {
		respondBadRequest(w, "Invalid item ID")
		return
	}

	lines, err := h.commands.DecreaseQuantity.Handle(r.Context(), command.ChangeQuantityCommand{ItemID: id})
	h.respondCart(w, r, lines, err, "")
}

// RemoveFromCart handles DELETE /api/cart/items/{item_id}
func (h *POSHandler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(r, "item_id")
	if !ok {
		respondBadRequest(w, "Invalid item ID")
		return
	}

	lines, err := h.commands.RemoveFromCart.Handle(r.Context(), command.RemoveFromCartCommand{ItemID: id})
	h.respondCart(w, r, lines, err, "Item removed from cart")
}

// Checkout handles POST /api/checkout
func (h *POSHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	invoice, err := h.commands.Checkout.Handle(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Payment successful",
		Data:    invoice,
	})
}

func (h *POSHandler) respondCart(w http.ResponseWriter, r *http.Request, lines []domain.CartLine, err error, message string) {
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: message,
		Data:    query.NewCartView(lines),
	})
}
