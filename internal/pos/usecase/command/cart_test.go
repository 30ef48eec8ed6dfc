package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/tiffin-pos/internal/pos/domain"
)

func TestAddToCart_NeverExceedsStock(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t, idli(3))
	h := NewAddToCartHandler(repo)

	for i := 0; i < 3; i++ {
		_, err := h.Handle(ctx, AddToCartCommand{ItemID: 1})
		require.NoError(t, err)
	}
	for i := 0; i < 5; i++ {
		_, err := h.Handle(ctx, AddToCartCommand{ItemID: 1})
		assert.ErrorIs(t, err, domain.ErrStockLimitExceeded)
	}

	cart, err := repo.GetCart(ctx)
	require.NoError(t, err)
	require.Len(t, cart, 1)
	assert.Equal(t, 3, cart[0].Quantity)
}

func TestAddToCart_SnapshotsNameAndPrice(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t, idli(100))

	cart, err := NewAddToCartHandler(repo).Handle(ctx, AddToCartCommand{ItemID: 1})
	require.NoError(t, err)
	assert.Equal(t, []domain.CartLine{{ItemID: 1, Name: "Idli", Price: 30, Quantity: 1}}, cart)
}

func TestAddToCart_OutOfStockLeavesCartUnchanged(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t, idli(0), dosa(5))
	h := NewAddToCartHandler(repo)

	_, err := h.Handle(ctx, AddToCartCommand{ItemID: 2})
	require.NoError(t, err)

	_, err = h.Handle(ctx, AddToCartCommand{ItemID: 1})
	assert.ErrorIs(t, err, domain.ErrOutOfStock)

	cart, err := repo.GetCart(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.CartLine{{ItemID: 2, Name: "Dosa", Price: 50, Quantity: 1}}, cart)
}

func TestAddToCart_UnknownItem(t *testing.T) {
	repo := newRepo(t, idli(5))
	_, err := NewAddToCartHandler(repo).Handle(context.Background(), AddToCartCommand{ItemID: 9})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestIncreaseQuantity_RespectsCurrentStock(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t, idli(2))
	_, err := NewAddToCartHandler(repo).Handle(ctx, AddToCartCommand{ItemID: 1})
	require.NoError(t, err)

	inc := NewIncreaseQuantityHandler(repo)
	cart, err := inc.Handle(ctx, ChangeQuantityCommand{ItemID: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, cart[0].Quantity)

	_, err = inc.Handle(ctx, ChangeQuantityCommand{ItemID: 1})
	assert.ErrorIs(t, err, domain.ErrStockLimitExceeded)

	_, err = inc.Handle(ctx, ChangeQuantityCommand{ItemID: 7})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDecreaseQuantity_StopsAtOne(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t, idli(10))
	add := NewAddToCartHandler(repo)
	for i := 0; i < 2; i++ {
		_, err := add.Handle(ctx, AddToCartCommand{ItemID: 1})
		require.NoError(t, err)
	}

	dec := NewDecreaseQuantityHandler(repo)
	cart, err := dec.Handle(ctx, ChangeQuantityCommand{ItemID: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, cart[0].Quantity)

	cart, err = dec.Handle(ctx, ChangeQuantityCommand{ItemID: 1})
	require.NoError(t, err)
	require.Len(t, cart, 1)
	assert.Equal(t, 1, cart[0].Quantity)
}

func TestRemoveFromCart_IsUnconditional(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t, idli(10), dosa(10))
	add := NewAddToCartHandler(repo)
	for _, id := range []int{1, 1, 1, 2} {
		_, err := add.Handle(ctx, AddToCartCommand{ItemID: id})
		require.NoError(t, err)
	}

	rm := NewRemoveFromCartHandler(repo)
	cart, err := rm.Handle(ctx, RemoveFromCartCommand{ItemID: 1})
	require.NoError(t, err)
	assert.Equal(t, []domain.CartLine{{ItemID: 2, Name: "Dosa", Price: 50, Quantity: 1}}, cart)

	cart, err = rm.Handle(ctx, RemoveFromCartCommand{ItemID: 1})
	require.NoError(t, err)
	assert.Len(t, cart, 1)
}
