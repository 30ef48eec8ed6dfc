package domain

import (
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMenuItemValidate(t *testing.T) {
	tests := []struct {
		name  string
		item  MenuItem
		field string
	}{
		{"valid", MenuItem{Name: "Idli", Price: 30, Stock: 10}, ""},
		{"blank name", MenuItem{Name: "   ", Price: 30}, "name"},
		{"zero price", MenuItem{Name: "Idli", Price: 0}, "price"},
		{"negative price", MenuItem{Name: "Idli", Price: -1}, "price"},
		{"nan price", MenuItem{Name: "Idli", Price: math.NaN()}, "price"},
		{"inf price", MenuItem{Name: "Idli", Price: math.Inf(1)}, "price"},
		{"negative stock", MenuItem{Name: "Idli", Price: 30, Stock: -1}, "stock"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.item.Validate()
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			if assert.True(t, errors.As(err, &verr)) {
				assert.Equal(t, tt.field, verr.Field)
			}
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestValidationErrorWrapped(t *testing.T) {
	err := fmt.Errorf("create menu item: %w", NewValidationError("name", "required"))
	assert.ErrorIs(t, err, ErrValidation)
	assert.False(t, IsBusinessRule(err))
	assert.True(t, IsBusinessRule(fmt.Errorf("x: %w", ErrInsufficientStock)))
}

func TestNextMenuItemID(t *testing.T) {
	assert.Equal(t, 1, NextMenuItemID(nil))
	assert.Equal(t, 6, NextMenuItemID([]MenuItem{{ID: 2}, {ID: 5}, {ID: 3}}))
}

func TestStockStatus(t *testing.T) {
	assert.Equal(t, StockStatusOut, (&MenuItem{Stock: 0}).StockStatus(20))
	assert.Equal(t, StockStatusLow, (&MenuItem{Stock: 19}).StockStatus(20))
	assert.Equal(t, StockStatusIn, (&MenuItem{Stock: 20}).StockStatus(20))
}

func TestCartTotal(t *testing.T) {
	lines := []CartLine{
		{ItemID: 1, Price: 30, Quantity: 3},
		{ItemID: 2, Price: 50, Quantity: 2},
	}
	assert.Equal(t, 190.0, CartTotal(lines))
	assert.Equal(t, 0.0, CartTotal(nil))
}

func TestInvoiceIDs(t *testing.T) {
	assert.Equal(t, "INV-0001", NextInvoiceID(nil))
	assert.Equal(t, "INV-0003", NextInvoiceID(make([]Invoice, 2)))
	assert.Equal(t, "INV-12345", FormatInvoiceID(12345))
}

func TestApplyStock(t *testing.T) {
	assert.Equal(t, 15, ApplyStock(10, TransactionIn, 5))
	assert.Equal(t, 5, ApplyStock(10, TransactionOut, 5))
	assert.Equal(t, 7, ApplyStock(10, TransactionSale, 3))
	assert.Equal(t, 42, ApplyStock(10, TransactionAdjustment, 42))
}

func TestParseAdjustmentType(t *testing.T) {
	for _, s := range []string{"in", "out", "adjustment"} {
		_, err := ParseAdjustmentType(s)
		assert.NoError(t, err)
	}
	_, err := ParseAdjustmentType("sale")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestDateRangeContains(t *testing.T) {
	from := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 10, 31, 23, 59, 59, 0, time.UTC)
	r := DateRange{From: from, To: to}

	assert.True(t, r.Contains(from))
	assert.True(t, r.Contains(to))
	assert.False(t, r.Contains(to.Add(time.Second)))
	assert.True(t, DateRange{}.Contains(time.Time{}))
}
