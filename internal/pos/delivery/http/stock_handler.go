package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/tair/tiffin-pos/internal/pos/usecase/command"
	"github.com/tair/tiffin-pos/internal/pos/usecase/query"
)

// AdjustStock handles POST /api/stock/{item_id}/adjust
func (h *POSHandler) AdjustStock(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(r, "item_id")
	if !ok {
		respondBadRequest(w, "Invalid item ID")
		return
	}

	var req struct {
		Type     string `json:"type"`
		Quantity int    `json:"quantity"`
		Notes    string `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "Invalid request body")
		return
	}

	tx, err := h.commands.AdjustStock.Handle(r.Context(), command.AdjustStockCommand{
		ItemID:   id,
		Type:     req.Type,
		Quantity: req.Quantity,
		Notes:    req.Notes,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Stock updated successfully",
		Data:    tx,
	})
}

// ListStockTransactions handles GET /api/stock/transactions
func (h *POSHandler) ListStockTransactions(w http.ResponseWriter, r *http.Request) {
	var q query.ListStockTransactionsQuery
	if v := r.URL.Query().Get("item_id"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil || id <= 0 {
			respondBadRequest(w, "Invalid item ID")
			return
		}
		q.ItemID = id
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 0 {
			respondBadRequest(w, "Invalid limit")
			return
		}
		q.Limit = limit
	}

	txs, err := h.queries.ListStockTransactions.Handle(r.Context(), q)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    txs,
	})
}

// ReconcileStock handles GET /api/stock/reconcile
func (h *POSHandler) ReconcileStock(w http.ResponseWriter, r *http.Request) {
	result, err := h.queries.ReconcileStock.Handle(r.Context(), query.ReconcileStockQuery{})
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    result,
	})
}
