package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/tiffin-pos/internal/pos/domain"
	"github.com/tair/tiffin-pos/internal/pos/repository"
)

type testEnv struct {
	router *mux.Router
	repo   *repository.RecordRepository
}

type failingPinger struct{}

func (failingPinger) Ping(context.Context) error { return errors.New("connection refused") }

func newTestEnv(t *testing.T, items ...domain.MenuItem) *testEnv {
	t.Helper()
	store := repository.NewMemoryStore()
	repo := repository.NewRecordRepository(store)
	if len(items) > 0 {
		require.NoError(t, repo.SaveMenuItems(context.Background(), items))
	}

	clock := func() time.Time { return time.Date(2026, 1, 7, 9, 5, 3, 0, time.UTC) }
	h := NewPOSHandler(repo, Settings{LowStockThreshold: 20, PaymentMethod: "Cash", ShopName: "Tiffin Center"}, clock, nil)

	router := mux.NewRouter()
	RegisterMiddlewares(router, DefaultMiddlewareConfig(5*time.Second, nil))
	h.RegisterRoutes(router)
	h.RegisterHealthCheck(router, store)
	return &testEnv{router: router, repo: repo}
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}) (*httptest.ResponseRecorder, Response) {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)

	var resp Response
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	}
	return rec, resp
}

func dataMap(t *testing.T, resp Response) map[string]interface{} {
	t.Helper()
	m, ok := resp.Data.(map[string]interface{})
	require.True(t, ok, "data is %T", resp.Data)
	return m
}

func TestCheckoutFlow(t *testing.T) {
	env := newTestEnv(t, domain.MenuItem{ID: 1, Name: "Idli", Price: 30, Stock: 100})

	for i := 0; i < 3; i++ {
		rec, _ := env.do(t, "POST", "/api/cart/items", map[string]int{"item_id": 1})
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec, resp := env.do(t, "GET", "/api/cart", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 90.0, dataMap(t, resp)["total"])
	assert.Equal(t, 3.0, dataMap(t, resp)["itemCount"])

	rec, resp = env.do(t, "POST", "/api/checkout", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	invoice := dataMap(t, resp)
	assert.Equal(t, "INV-0001", invoice["invoiceId"])
	assert.Equal(t, 90.0, invoice["total"])
	assert.Equal(t, "Cash", invoice["paymentMethod"])

	rec, resp = env.do(t, "GET", "/api/menu/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 97.0, dataMap(t, resp)["stock"])
	assert.Equal(t, domain.StockStatusIn, dataMap(t, resp)["stockStatus"])

	rec, resp = env.do(t, "GET", "/api/stock/transactions?item_id=1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	txs := resp.Data.([]interface{})
	require.Len(t, txs, 1)
	assert.Equal(t, "sale", txs[0].(map[string]interface{})["type"])

	rec, resp = env.do(t, "GET", "/api/stock/reconcile", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, dataMap(t, resp)["consistent"])

	rec, resp = env.do(t, "GET", "/api/reports/sales?start=2026-01-07&end=2026-01-07", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1.0, dataMap(t, resp)["orderCount"])

	rec, _ = env.do(t, "GET", "/api/invoices/INV-0001/pdf", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "%PDF"))
}

func TestErrorStatusMapping(t *testing.T) {
	env := newTestEnv(t,
		domain.MenuItem{ID: 1, Name: "Idli", Price: 30, Stock: 0},
		domain.MenuItem{ID: 2, Name: "Dosa", Price: 50, Stock: 97},
	)

	cases := []struct {
		name   string
		method string
		path   string
		body   interface{}
		status int
	}{
		{"out of stock", "POST", "/api/cart/items", map[string]int{"item_id": 1}, http.StatusConflict},
		{"unknown item", "POST", "/api/cart/items", map[string]int{"item_id": 9}, http.StatusNotFound},
		{"bad body", "POST", "/api/cart/items", "{", http.StatusBadRequest},
		{"empty cart checkout", "POST", "/api/checkout", nil, http.StatusBadRequest},
		{"oversold out", "POST", "/api/stock/2/adjust", map[string]interface{}{"type": "out", "quantity": 150}, http.StatusConflict},
		{"unknown adjust type", "POST", "/api/stock/2/adjust", map[string]interface{}{"type": "gift", "quantity": 1}, http.StatusBadRequest},
		{"half date range", "GET", "/api/invoices?start=2026-01-01", nil, http.StatusBadRequest},
		{"missing invoice", "GET", "/api/invoices/INV-0042", nil, http.StatusNotFound},
		{"bad menu id", "GET", "/api/menu/abc", nil, http.StatusBadRequest},
		{"bad price", "POST", "/api/menu", map[string]interface{}{"name": "Vada", "price": "abc"}, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, resp := env.do(t, tc.method, tc.path, tc.body)
			assert.Equal(t, tc.status, rec.Code)
			assert.False(t, resp.Success)
			assert.NotEmpty(t, resp.Error)
		})
	}

	rec, resp := env.do(t, "GET", "/api/menu/2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 97.0, dataMap(t, resp)["stock"])
}

func TestMenuCRUD(t *testing.T) {
	env := newTestEnv(t)

	rec, resp := env.do(t, "POST", "/api/menu", map[string]interface{}{
		"name": " Masala Dosa ", "price": "60", "description": "With potato filling", "stock": "not a number",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := dataMap(t, resp)
	assert.Equal(t, 1.0, created["id"])
	assert.Equal(t, "Masala Dosa", created["name"])
	assert.Equal(t, 0.0, created["stock"])

	rec, resp = env.do(t, "PUT", "/api/menu/1", map[string]interface{}{
		"name": "Masala Dosa", "price": 65, "stock": 12,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 12.0, dataMap(t, resp)["stock"])

	rec, resp = env.do(t, "PUT", "/api/menu/77", map[string]interface{}{"name": "Ghost", "price": 1})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, resp.Data)

	rec, resp = env.do(t, "GET", "/api/menu", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	items := resp.Data.([]interface{})
	require.Len(t, items, 1)
	assert.Equal(t, domain.StockStatusLow, items[0].(map[string]interface{})["stockStatus"])

	rec, _ = env.do(t, "DELETE", "/api/menu/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec, _ = env.do(t, "DELETE", "/api/menu/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = env.do(t, "GET", "/api/menu/1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMenuItemRequestStock(t *testing.T) {
	tests := []struct {
		name  string
		stock interface{}
		want  int
	}{
		{"number", 12.0, 12},
		{"fraction truncates", 7.9, 7},
		{"numeric string", " 40 ", 40},
		{"negative stays negative", -3.0, -3},
		{"garbage string", "lots", 0},
		{"missing", nil, 0},
		{"huge number", 1e30, 0},
		{"huge negative number", -1e30, 0},
		{"huge string", "1e30", 0},
		{"infinite string", "Inf", 0},
		{"NaN string", "NaN", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, menuItemRequest{Stock: tt.stock}.stock())
		})
	}
}

func TestCreateMenuItem_OutOfRangeStockReadsAsZero(t *testing.T) {
	env := newTestEnv(t)

	rec, resp := env.do(t, "POST", "/api/menu", map[string]interface{}{
		"name": "Vada", "price": 25, "stock": 1e30,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 0.0, dataMap(t, resp)["stock"])
}

func TestCartQuantityRoutes(t *testing.T) {
	env := newTestEnv(t, domain.MenuItem{ID: 1, Name: "Idli", Price: 30, Stock: 2})

	rec, _ := env.do(t, "POST", "/api/cart/items", map[string]int{"item_id": 1})
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = env.do(t, "POST", "/api/cart/items/1/increase", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, resp := env.do(t, "POST", "/api/cart/items/1/increase", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, resp.Error, "stock limit")

	rec, resp = env.do(t, "POST", "/api/cart/items/1/decrease", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 30.0, dataMap(t, resp)["total"])

	rec, resp = env.do(t, "DELETE", "/api/cart/items/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0.0, dataMap(t, resp)["total"])
}

func TestHealthAndRequestID(t *testing.T) {
	env := newTestEnv(t)

	rec, resp := env.do(t, "GET", "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Success)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))

	router := mux.NewRouter()
	NewPOSHandler(env.repo, Settings{}, nil, nil).RegisterHealthCheck(router, failingPinger{})
	req := httptest.NewRequest("GET", "/health", nil)
	out := httptest.NewRecorder()
	router.ServeHTTP(out, req)
	assert.Equal(t, http.StatusServiceUnavailable, out.Code)
}

func TestRecoveryMiddleware(t *testing.T) {
	router := mux.NewRouter()
	router.Use(RecoveryMiddleware())
	router.HandleFunc("/boom", func(http.ResponseWriter, *http.Request) { panic("boom") })

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestMiddlewareChain(t *testing.T) {
	config := DefaultMiddlewareConfig(50*time.Millisecond, []string{"http://till.local"})
	router := mux.NewRouter()
	RegisterMiddlewares(router, config)
	router.HandleFunc("/slow", func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})
	router.HandleFunc("/swagger/index.html", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := SetupCORS(config)(router)

	t.Run("caller request id is kept", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/swagger/index.html", nil)
		req.Header.Set("X-Request-ID", "till-42")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, "till-42", rec.Header().Get("X-Request-ID"))
		assert.Empty(t, rec.Header().Get("Content-Security-Policy"))
	})

	t.Run("timeout answers with the envelope", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest("GET", "/slow", nil))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.JSONEq(t, `{"success":false,"error":"Request timeout"}`, rec.Body.String())
	})

	t.Run("preflight is answered for allowed origins", func(t *testing.T) {
		req := httptest.NewRequest("OPTIONS", "/api/checkout", nil)
		req.Header.Set("Origin", "http://till.local")
		req.Header.Set("Access-Control-Request-Method", "POST")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, "http://till.local", rec.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestDefaultMiddlewareConfig(t *testing.T) {
	config := DefaultMiddlewareConfig(0, nil)
	assert.Equal(t, 30*time.Second, config.RequestTimeout)
	assert.Equal(t, []string{"*"}, config.AllowedOrigins)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusConflict, statusFor(domain.ErrConflict))
	assert.Equal(t, http.StatusConflict, statusFor(domain.ErrStockLimitExceeded))
	assert.Equal(t, http.StatusBadRequest, statusFor(domain.NewValidationError("x", "y")))
	assert.Equal(t, http.StatusInternalServerError, statusFor(errors.New("disk full")))
}
