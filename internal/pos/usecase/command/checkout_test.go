package command

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/tiffin-pos/internal/pos/domain"
)

func fillCart(t *testing.T, repo domain.Repository, ids ...int) {
	t.Helper()
	h := NewAddToCartHandler(repo)
	for _, id := range ids {
		_, err := h.Handle(context.Background(), AddToCartCommand{ItemID: id})
		require.NoError(t, err)
	}
}

func TestCheckout_IdliScenario(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t, idli(100))
	pub := &recordingPublisher{}
	fillCart(t, repo, 1, 1, 1)

	cart, err := repo.GetCart(ctx)
	require.NoError(t, err)
	assert.Equal(t, 90.0, domain.CartTotal(cart))

	invoice, err := NewCheckoutHandler(repo, fixedClock, pub, "").Handle(ctx)
	require.NoError(t, err)
	assert.Equal(t, "INV-0001", invoice.InvoiceID)
	assert.Equal(t, 90.0, invoice.Total)
	assert.Equal(t, domain.DefaultPaymentMethod, invoice.PaymentMethod)
	assert.Equal(t, "7/1/2026", invoice.Date)
	assert.Equal(t, "2:35:03 pm", invoice.Time)

	assert.Equal(t, 97, stockOf(t, repo, 1))

	txs, err := repo.GetStockTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, domain.TransactionSale, txs[0].Type)
	assert.Equal(t, 3, txs[0].Quantity)
	assert.Equal(t, 100, txs[0].PreviousStock)
	assert.Equal(t, 97, txs[0].NewStock)
	assert.Equal(t, "Sale - Invoice INV-0001", txs[0].Notes)

	cart, err = repo.GetCart(ctx)
	require.NoError(t, err)
	assert.Empty(t, cart)

	require.Len(t, pub.invoices, 1)
	assert.Len(t, pub.stock, 1)
}

func TestCheckout_NewestInvoiceFirst(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t, idli(100))
	h := NewCheckoutHandler(repo, fixedClock, nil, "")

	fillCart(t, repo, 1)
	_, err := h.Handle(ctx)
	require.NoError(t, err)
	fillCart(t, repo, 1)
	_, err = h.Handle(ctx)
	require.NoError(t, err)

	invoices, err := repo.GetInvoices(ctx)
	require.NoError(t, err)
	require.Len(t, invoices, 2)
	assert.Equal(t, "INV-0002", invoices[0].InvoiceID)
	assert.Equal(t, "INV-0001", invoices[1].InvoiceID)
}

func TestCheckout_EmptyCart(t *testing.T) {
	repo := newRepo(t, idli(100))
	_, err := NewCheckoutHandler(repo, fixedClock, nil, "").Handle(context.Background())
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCheckout_StockDroppedAfterAddIsRejected(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t, idli(5), dosa(5))
	fillCart(t, repo, 2, 1, 1, 1)

	_, err := NewAdjustStockHandler(repo, fixedClock, nil).Handle(ctx, AdjustStockCommand{
		ItemID: 1, Type: "adjustment", Quantity: 2,
	})
	require.NoError(t, err)

	before, err := repo.GetStockTransactions(ctx)
	require.NoError(t, err)

	_, err = NewCheckoutHandler(repo, fixedClock, nil, "").Handle(ctx)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// nothing moved, including the valid Dosa line
	assert.Equal(t, 2, stockOf(t, repo, 1))
	assert.Equal(t, 5, stockOf(t, repo, 2))

	invoices, err := repo.GetInvoices(ctx)
	require.NoError(t, err)
	assert.Empty(t, invoices)

	after, err := repo.GetStockTransactions(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)

	cart, err := repo.GetCart(ctx)
	require.NoError(t, err)
	assert.Len(t, cart, 2)
}

func TestCheckout_DeletedItemIsRejected(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t, idli(5))
	fillCart(t, repo, 1)
	require.NoError(t, NewDeleteMenuItemHandler(repo).Handle(ctx, DeleteMenuItemCommand{ID: 1}))

	_, err := NewCheckoutHandler(repo, fixedClock, nil, "").Handle(ctx)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestCheckout_RepeatedStoredLinesAreSummed(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t, idli(100))
	require.NoError(t, repo.SaveCart(ctx, []domain.CartLine{
		{ItemID: 1, Name: "Idli", Price: 30, Quantity: 60},
		{ItemID: 1, Name: "Idli", Price: 30, Quantity: 60},
	}))

	_, err := NewCheckoutHandler(repo, fixedClock, nil, "").Handle(ctx)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 100, stockOf(t, repo, 1))

	txs, err := repo.GetStockTransactions(ctx)
	require.NoError(t, err)
	assert.Empty(t, txs)

	// within stock the repeated lines sell together
	require.NoError(t, repo.SaveCart(ctx, []domain.CartLine{
		{ItemID: 1, Name: "Idli", Price: 30, Quantity: 40},
		{ItemID: 1, Name: "Idli", Price: 30, Quantity: 60},
	}))
	inv, err := NewCheckoutHandler(repo, fixedClock, nil, "").Handle(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 3000, inv.Total, 0.001)
	assert.Equal(t, 0, stockOf(t, repo, 1))
}

func TestCheckout_NonPositiveStoredQuantityIsRejected(t *testing.T) {
	ctx := context.Background()

	for _, qty := range []int{0, -5} {
		repo := newRepo(t, idli(10), dosa(10))
		require.NoError(t, repo.SaveCart(ctx, []domain.CartLine{
			{ItemID: 2, Name: "Dosa", Price: 50, Quantity: 1},
			{ItemID: 1, Name: "Idli", Price: 30, Quantity: qty},
		}))

		_, err := NewCheckoutHandler(repo, fixedClock, nil, "").Handle(ctx)
		assert.ErrorIs(t, err, domain.ErrValidation, "quantity %d", qty)
		assert.Equal(t, 10, stockOf(t, repo, 1))
		assert.Equal(t, 10, stockOf(t, repo, 2))

		invoices, err := repo.GetInvoices(ctx)
		require.NoError(t, err)
		assert.Empty(t, invoices)
	}
}

func TestCheckout_TotalUsesSnapshottedPrices(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t, idli(10))
	fillCart(t, repo, 1, 1)

	_, err := NewUpdateMenuItemHandler(repo, fixedClock, nil).Handle(ctx, UpdateMenuItemCommand{
		ID: 1, Name: "Idli", Price: 99, Stock: 10,
	})
	require.NoError(t, err)

	invoice, err := NewCheckoutHandler(repo, fixedClock, nil, "").Handle(ctx)
	require.NoError(t, err)
	assert.Equal(t, 60.0, invoice.Total)
	assert.Equal(t, domain.InvoiceTotal(invoice.Items), invoice.Total)
}

func TestCheckout_PublishFailureDoesNotRollBack(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t, idli(10), dosa(10))
	pub := &recordingPublisher{err: errPublish}
	fillCart(t, repo, 1, 2, 2)

	invoice, err := NewCheckoutHandler(repo, fixedClock, pub, "UPI").Handle(ctx)
	require.NoError(t, err)
	assert.Equal(t, "UPI", invoice.PaymentMethod)
	assert.Equal(t, 130.0, invoice.Total)
	assert.Equal(t, 9, stockOf(t, repo, 1))
	assert.Equal(t, 8, stockOf(t, repo, 2))
	assert.Len(t, pub.stock, 2)
}

func TestCheckout_ConcurrentCheckoutsSellEachCartOnce(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t, idli(100))
	fillCart(t, repo, 1, 1)
	h := NewCheckoutHandler(repo, fixedClock, nil, "")

	var wg sync.WaitGroup
	results := make([]error, 4)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = h.Handle(ctx)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range results {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, domain.ErrValidation)
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 98, stockOf(t, repo, 1))
}
