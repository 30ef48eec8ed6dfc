package kafka

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/tiffin-pos/internal/pos/domain"
)

func stockMessage(t *testing.T, tx domain.StockTransaction) Message {
	t.Helper()
	payload, err := json.Marshal(NewStockChangedEvent(tx))
	require.NoError(t, err)
	return Message{Topic: TopicStock, EventType: EventTypeStockChanged, Payload: payload}
}

func TestAuditor_TracksStockChain(t *testing.T) {
	ctx := context.Background()
	a := NewAuditor()

	_, ok := a.LastStock(1)
	assert.False(t, ok)

	require.NoError(t, a.HandleStockChanged(ctx, stockMessage(t, domain.StockTransaction{
		ItemID: 1, Type: domain.TransactionSale, Quantity: -3, PreviousStock: 100, NewStock: 97,
	})))
	require.NoError(t, a.HandleStockChanged(ctx, stockMessage(t, domain.StockTransaction{
		ItemID: 1, Type: domain.TransactionIn, Quantity: 10, PreviousStock: 97, NewStock: 107,
	})))
	stock, ok := a.LastStock(1)
	require.True(t, ok)
	assert.Equal(t, 107, stock)

	// a break is reported but the stream keeps following the newest level
	require.NoError(t, a.HandleStockChanged(ctx, stockMessage(t, domain.StockTransaction{
		ItemID: 1, Type: domain.TransactionAdjustment, Quantity: 50, PreviousStock: 60, NewStock: 50,
	})))
	stock, _ = a.LastStock(1)
	assert.Equal(t, 50, stock)
}

func TestAuditor_SumsInvoices(t *testing.T) {
	ctx := context.Background()
	a := NewAuditor()

	for _, total := range []float64{90, 130} {
		payload, err := json.Marshal(NewInvoiceCreatedEvent(domain.Invoice{InvoiceID: "INV-0001", Total: total}))
		require.NoError(t, err)
		require.NoError(t, a.HandleInvoiceCreated(ctx, Message{EventType: EventTypeInvoiceCreated, Payload: payload}))
	}

	count, revenue := a.Totals()
	assert.Equal(t, 2, count)
	assert.InDelta(t, 220, revenue, 0.001)
}

func TestAuditor_RejectsMalformedPayload(t *testing.T) {
	a := NewAuditor()
	err := a.HandleStockChanged(context.Background(), Message{EventType: EventTypeStockChanged, Payload: []byte("{")})
	assert.Error(t, err)
}

func TestAuditor_RegisterRoutesThroughConsumer(t *testing.T) {
	c := newConsumer(nil, "audit", []string{TopicInvoices, TopicStock})
	NewAuditor().Register(c)

	c.handlersMutex.RLock()
	defer c.handlersMutex.RUnlock()
	assert.Contains(t, c.handlers, EventTypeInvoiceCreated)
	assert.Contains(t, c.handlers, EventTypeStockChanged)
}
