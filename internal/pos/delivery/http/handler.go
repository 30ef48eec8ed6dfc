package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/tair/tiffin-pos/internal/pos/domain"
	"github.com/tair/tiffin-pos/internal/pos/usecase/command"
	"github.com/tair/tiffin-pos/internal/pos/usecase/query"
	"github.com/tair/tiffin-pos/pkg/logger"
	"github.com/tair/tiffin-pos/pkg/timeutil"
)

// Settings are the shop-level values the handlers need
type Settings struct {
	LowStockThreshold int
	PaymentMethod     string
	ShopName          string
}

// CommandHandlers groups the write side
type CommandHandlers struct {
	CreateMenuItem   *command.CreateMenuItemHandler
	UpdateMenuItem   *command.UpdateMenuItemHandler
	DeleteMenuItem   *command.DeleteMenuItemHandler
	AddToCart        *command.AddToCartHandler
	IncreaseQuantity *command.IncreaseQuantityHandler
	DecreaseQuantity *command.DecreaseQuantityHandler
	RemoveFromCart   *command.RemoveFromCartHandler
	Checkout         *command.CheckoutHandler
	AdjustStock      *command.AdjustStockHandler
}

// QueryHandlers groups the read side
type QueryHandlers struct {
	ListMenu              *query.ListMenuHandler
	GetMenuItem           *query.GetMenuItemHandler
	GetCart               *query.GetCartHandler
	ListInvoices          *query.ListInvoicesHandler
	GetInvoice            *query.GetInvoiceHandler
	SalesSummary          *query.SalesSummaryHandler
	ListStockTransactions *query.ListStockTransactionsHandler
	ReconcileStock        *query.ReconcileStockHandler
}

// POSHandler handles HTTP requests for the point of sale using CQRS pattern
type POSHandler struct {
	commands CommandHandlers
	queries  QueryHandlers
	settings Settings
}

// NewPOSHandler creates a new POS handler (manual DI)
func NewPOSHandler(repo domain.Repository, settings Settings, clock timeutil.Clock, publisher domain.EventPublisher) *POSHandler {
	return &POSHandler{
		commands: CommandHandlers{
			CreateMenuItem:   command.NewCreateMenuItemHandler(repo),
			UpdateMenuItem:   command.NewUpdateMenuItemHandler(repo, clock, publisher),
			DeleteMenuItem:   command.NewDeleteMenuItemHandler(repo),
			AddToCart:        command.NewAddToCartHandler(repo),
			IncreaseQuantity: command.NewIncreaseQuantityHandler(repo),
			DecreaseQuantity: command.NewDecreaseQuantityHandler(repo),
			RemoveFromCart:   command.NewRemoveFromCartHandler(repo),
			Checkout:         command.NewCheckoutHandler(repo, clock, publisher, settings.PaymentMethod),
			AdjustStock:      command.NewAdjustStockHandler(repo, clock, publisher),
		},
		queries: QueryHandlers{
			ListMenu:              query.NewListMenuHandler(repo, settings.LowStockThreshold),
			GetMenuItem:           query.NewGetMenuItemHandler(repo, settings.LowStockThreshold),
			GetCart:               query.NewGetCartHandler(repo),
			ListInvoices:          query.NewListInvoicesHandler(repo),
			GetInvoice:            query.NewGetInvoiceHandler(repo),
			SalesSummary:          query.NewSalesSummaryHandler(repo),
			ListStockTransactions: query.NewListStockTransactionsHandler(repo),
			ReconcileStock:        query.NewReconcileStockHandler(repo),
		},
		settings: settings,
	}
}

// NewPOSHandlerWithDI creates a new POS handler using dependency injection
func NewPOSHandlerWithDI(commands CommandHandlers, queries QueryHandlers, settings Settings) *POSHandler {
	return &POSHandler{
		commands: commands,
		queries:  queries,
		settings: settings,
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// RegisterRoutes registers all POS routes
func (h *POSHandler) RegisterRoutes(router *mux.Router) {
	api := router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/menu", h.ListMenu).Methods("GET")
	api.HandleFunc("/menu", h.CreateMenuItem).Methods("POST")
	api.HandleFunc("/menu/{id}", h.GetMenuItem).Methods("GET")
	api.HandleFunc("/menu/{id}", h.UpdateMenuItem).Methods("PUT")
	api.HandleFunc("/menu/{id}", h.DeleteMenuItem).Methods("DELETE")

	api.HandleFunc("/cart", h.GetCart).Methods("GET")
	api.HandleFunc("/cart/items", h.AddToCart).Methods("POST")
	api.HandleFunc("/cart/items/{item_id}/increase", h.IncreaseQuantity).Methods("POST")
	api.HandleFunc("/cart/items/{item_id}/decrease", h.DecreaseQuantity).Methods("POST")
	api.HandleFunc("/cart/items/{item_id}", h.RemoveFromCart).Methods("DELETE")

	api.HandleFunc("/checkout", h.Checkout).Methods("POST")

	api.HandleFunc("/stock/transactions", h.ListStockTransactions).Methods("GET")
	api.HandleFunc("/stock/reconcile", h.ReconcileStock).Methods("GET")
	api.HandleFunc("/stock/{item_id}/adjust", h.AdjustStock).Methods("POST")

	api.HandleFunc("/invoices", h.ListInvoices).Methods("GET")
	api.HandleFunc("/invoices/{invoice_id}", h.GetInvoice).Methods("GET")
	api.HandleFunc("/invoices/{invoice_id}/pdf", h.GetInvoicePDF).Methods("GET")

	api.HandleFunc("/reports/sales", h.SalesSummary).Methods("GET")
}

// Pinger reports backend health
type Pinger interface {
	Ping(ctx context.Context) error
}

// RegisterHealthCheck registers health check endpoint
func (h *POSHandler) RegisterHealthCheck(router *mux.Router, store Pinger) {
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := store.Ping(r.Context()); err != nil {
			logger.Warn(r.Context()).Err(err).Msg("Health check failed")
			respondJSON(w, http.StatusServiceUnavailable, Response{
				Success: false,
				Error:   "Store unavailable",
			})
			return
		}

		respondJSON(w, http.StatusOK, Response{
			Success: true,
			Message: "POS service is healthy",
		})
	}).Methods("GET")
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// respondError maps domain errors to status codes; anything unexpected is a 500
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		logger.Error(r.Context()).
			Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("Request failed")
		message = "Internal server error"
	}

	respondJSON(w, status, Response{
		Success: false,
		Error:   message,
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case domain.IsBusinessRule(err), errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func respondBadRequest(w http.ResponseWriter, message string) {
	respondJSON(w, http.StatusBadRequest, Response{
		Success: false,
		Error:   message,
	})
}

func pathInt(r *http.Request, name string) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)[name])
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
