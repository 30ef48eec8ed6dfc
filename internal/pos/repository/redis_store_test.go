package repository

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/tiffin-pos/internal/pos/domain"
)

func newTestRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewRedisStore(client, "pos:", 3)
	t.Cleanup(func() { _ = store.Close() })
	return store, mr
}

func TestRedisStore_GetSetWithPrefix(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestRedisStore(t)

	v, err := store.Get(ctx, CartKey)
	require.NoError(t, err)
	assert.Nil(t, v)

	require.NoError(t, store.Set(ctx, CartKey, []byte("[]")))

	raw, err := mr.Get("pos:cart")
	require.NoError(t, err)
	assert.Equal(t, "[]", raw)

	v, err = store.Get(ctx, CartKey)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(v))
	assert.NoError(t, store.Ping(ctx))
}

func TestRedisStore_AtomicWritesAllChangedKeys(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestRedisStore(t)
	require.NoError(t, mr.Set("pos:menuItems", `[{"id":1}]`))

	err := store.Atomic(ctx, []string{MenuItemsKey, InvoicesKey}, func(current map[string][]byte) (map[string][]byte, error) {
		assert.Equal(t, `[{"id":1}]`, string(current[MenuItemsKey]))
		_, present := current[InvoicesKey]
		assert.False(t, present)
		return map[string][]byte{
			MenuItemsKey: []byte(`[{"id":2}]`),
			InvoicesKey:  []byte(`[]`),
		}, nil
	})
	require.NoError(t, err)

	menu, _ := mr.Get("pos:menuItems")
	invoices, _ := mr.Get("pos:invoices")
	assert.Equal(t, `[{"id":2}]`, menu)
	assert.Equal(t, `[]`, invoices)
}

func TestRedisStore_AtomicErrorWritesNothing(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestRedisStore(t)

	err := store.Atomic(ctx, []string{CartKey}, func(map[string][]byte) (map[string][]byte, error) {
		return nil, domain.ErrInsufficientStock
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.False(t, mr.Exists("pos:cart"))
}

func TestRecordRepository_OverRedis(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestRedisStore(t)
	repo := NewRecordRepository(store)

	require.NoError(t, repo.SaveMenuItems(ctx, domain.DefaultMenuItems()))

	err := repo.Update(ctx, func(rec *domain.Records) error {
		rec.MenuItems[0].Stock -= 3
		return nil
	})
	require.NoError(t, err)

	items, err := repo.GetMenuItems(ctx)
	require.NoError(t, err)
	assert.Equal(t, 97, items[0].Stock)
}
