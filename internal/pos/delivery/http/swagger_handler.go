package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterSwaggerDocs registers Swagger documentation routes
// @Summary Swagger documentation
// @Description Swagger API documentation for the POS Service
// @Tags Swagger
// @Success 200 {string} string "Swagger UI"
// @Router /swagger/ [get]
func RegisterSwaggerDocs(router *mux.Router, swaggerHandler http.Handler) {
	router.PathPrefix("/swagger/").Handler(swaggerHandler)
}

// ListMenu godoc
// @Summary List menu items
// @Description Get every menu item with its stock status (in-stock, low-stock, out-of-stock)
// @Tags Menu
// @Produce json
// @Success 200 {object} object{success=bool,data=array}
// @Failure 500 {object} object{success=bool,error=string}
// @Router /api/menu [get]
func (h *POSHandler) ListMenuDoc() {}

// CreateMenuItem godoc
// @Summary Create menu item
// @Description Add a catalog entry. The id is one more than the highest existing id.
// @Tags Menu
// @Accept json
// @Produce json
// @Param request body object{name=string,price=number,description=string,image=string,stock=int} true "Menu item"
// @Success 201 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Router /api/menu [post]
func (h *POSHandler) CreateMenuItemDoc() {}

// GetMenuItem godoc
// @Summary Get menu item
// @Tags Menu
// @Produce json
// @Param id path int true "Menu item ID"
// @Success 200 {object} object{success=bool,data=object}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/menu/{id} [get]
func (h *POSHandler) GetMenuItemDoc() {}

// UpdateMenuItem godoc
// @Summary Update menu item
// @Description Replace every field of a menu item. Unknown ids are ignored. A stock change is recorded as an adjustment.
// @Tags Menu
// @Accept json
// @Produce json
// @Param id path int true "Menu item ID"
// @Param request body object{name=string,price=number,description=string,image=string,stock=int} true "Menu item"
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Router /api/menu/{id} [put]
func (h *POSHandler) UpdateMenuItemDoc() {}

// DeleteMenuItem godoc
// @Summary Delete menu item
// @Tags Menu
// @Produce json
// @Param id path int true "Menu item ID"
// @Success 200 {object} object{success=bool,message=string}
// @Router /api/menu/{id} [delete]
func (h *POSHandler) DeleteMenuItemDoc() {}

// GetCart godoc
// @Summary Get cart
// @Description Cart lines with item count and total
// @Tags Cart
// @Produce json
// @Success 200 {object} object{success=bool,data=object{items=array,itemCount=int,total=number}}
// @Router /api/cart [get]
func (h *POSHandler) GetCartDoc() {}

// AddToCart godoc
// @Summary Add item to cart
// @Tags Cart
// @Accept json
// @Produce json
// @Param request body object{item_id=int} true "Item"
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Failure 404 {object} object{success=bool,error=string}
// @Failure 409 {object} object{success=bool,error=string}
// @Router /api/cart/items [post]
func (h *POSHandler) AddToCartDoc() {}

// IncreaseQuantity godoc
// @Summary Increase cart line quantity
// @Tags Cart
// @Produce json
// @Param item_id path int true "Item ID"
// @Success 200 {object} object{success=bool,data=object}
// @Failure 404 {object} object{success=bool,error=string}
// @Failure 409 {object} object{success=bool,error=string}
// @Router /api/cart/items/{item_id}/increase [post]
func (h *POSHandler) IncreaseQuantityDoc() {}

// DecreaseQuantity godoc
// @Summary Decrease cart line quantity
// @Description Quantity never drops below 1; use remove instead
// @Tags Cart
// @Produce json
// @Param item_id path int true "Item ID"
// @Success 200 {object} object{success=bool,data=object}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/cart/items/{item_id}/decrease [post]
func (h *POSHandler) DecreaseQuantityDoc() {}

// RemoveFromCart godoc
// @Summary Remove cart line
// @Tags Cart
// @Produce json
// @Param item_id path int true "Item ID"
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Router /api/cart/items/{item_id} [delete]
func (h *POSHandler) RemoveFromCartDoc() {}

// Checkout godoc
// @Summary Checkout
// @Description Settle the cart into an invoice, decrement stock and clear the cart in one atomic write
// @Tags Checkout
// @Produce json
// @Success 201 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 409 {object} object{success=bool,error=string}
// @Router /api/checkout [post]
func (h *POSHandler) CheckoutDoc() {}

// AdjustStock godoc
// @Summary Adjust stock
// @Description in adds, out removes, adjustment sets the absolute level
// @Tags Stock
// @Accept json
// @Produce json
// @Param item_id path int true "Item ID"
// @Param request body object{type=string,quantity=int,notes=string} true "Adjustment"
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Failure 409 {object} object{success=bool,error=string}
// @Router /api/stock/{item_id}/adjust [post]
func (h *POSHandler) AdjustStockDoc() {}

// ListStockTransactions godoc
// @Summary List stock transactions
// @Description Newest first
// @Tags Stock
// @Produce json
// @Param item_id query int false "Item ID"
// @Param limit query int false "Limit"
// @Success 200 {object} object{success=bool,data=array}
// @Router /api/stock/transactions [get]
func (h *POSHandler) ListStockTransactionsDoc() {}

// ReconcileStock godoc
// @Summary Reconcile stock
// @Description Replay each item's ledger and compare it with current stock
// @Tags Stock
// @Produce json
// @Success 200 {object} object{success=bool,data=object}
// @Router /api/stock/reconcile [get]
func (h *POSHandler) ReconcileStockDoc() {}

// ListInvoices godoc
// @Summary List invoices
// @Description Newest first. Give both start and end, or neither.
// @Tags Invoices
// @Produce json
// @Param start query string false "Start date (YYYY-MM-DD)"
// @Param end query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} object{success=bool,data=array}
// @Failure 400 {object} object{success=bool,error=string}
// @Router /api/invoices [get]
func (h *POSHandler) ListInvoicesDoc() {}

// GetInvoice godoc
// @Summary Get invoice
// @Tags Invoices
// @Produce json
// @Param invoice_id path string true "Invoice ID"
// @Success 200 {object} object{success=bool,data=object}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/invoices/{invoice_id} [get]
func (h *POSHandler) GetInvoiceDoc() {}

// GetInvoicePDF godoc
// @Summary Download invoice receipt
// @Tags Invoices
// @Produce application/pdf
// @Param invoice_id path string true "Invoice ID"
// @Success 200 {file} file
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/invoices/{invoice_id}/pdf [get]
func (h *POSHandler) GetInvoicePDFDoc() {}

// SalesSummary godoc
// @Summary Sales summary
// @Description Revenue, order count, average order value and the five best sellers
// @Tags Reports
// @Produce json
// @Param start query string false "Start date (YYYY-MM-DD)"
// @Param end query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} object{success=bool,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Router /api/reports/sales [get]
func (h *POSHandler) SalesSummaryDoc() {}

// HealthCheck godoc
// @Summary Health check
// @Description Check service health and store connectivity
// @Tags Health
// @Produce json
// @Success 200 {object} object{success=bool,message=string}
// @Failure 503 {object} object{success=bool,error=string}
// @Router /health [get]
func (h *POSHandler) HealthCheckDoc() {}
