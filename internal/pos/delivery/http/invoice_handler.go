package http

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tair/tiffin-pos/internal/pos/receipt"
	"github.com/tair/tiffin-pos/internal/pos/usecase/query"
	"github.com/tair/tiffin-pos/pkg/logger"
)

// ListInvoices handles GET /api/invoices
func (h *POSHandler) ListInvoices(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.queries.ListInvoices.Handle(r.Context(), query.ListInvoicesQuery{
		Start: r.URL.Query().Get("start"),
		End:   r.URL.Query().Get("end"),
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    invoices,
	})
}

// GetInvoice handles GET /api/invoices/{invoice_id}
func (h *POSHandler) GetInvoice(w http.ResponseWriter, r *http.Request) {
	invoice, err := h.queries.GetInvoice.Handle(r.Context(), query.GetInvoiceQuery{
		InvoiceID: mux.Vars(r)["invoice_id"],
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    invoice,
	})
}

// GetInvoicePDF handles GET /api/invoices/{invoice_id}/pdf
func (h *POSHandler) GetInvoicePDF(w http.ResponseWriter, r *http.Request) {
	invoice, err := h.queries.GetInvoice.Handle(r.Context(), query.GetInvoiceQuery{
		InvoiceID: mux.Vars(r)["invoice_id"],
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	pdf, err := receipt.Bytes(*invoice, h.settings.ShopName)
	if err != nil {
		respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.pdf", invoice.InvoiceID))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdf); err != nil {
		logger.Warn(r.Context()).Err(err).Str("invoice_id", invoice.InvoiceID).Msg("Failed to write receipt")
	}
}

// SalesSummary handles GET /api/reports/sales
func (h *POSHandler) SalesSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.queries.SalesSummary.Handle(r.Context(), query.SalesSummaryQuery{
		Start: r.URL.Query().Get("start"),
		End:   r.URL.Query().Get("end"),
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    summary,
	})
}
