package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/tair/tiffin-pos/internal/pos/domain"
	"github.com/tair/tiffin-pos/pkg/logger"
)

// RecordRepository stores each record as one JSON array in a Store
type RecordRepository struct {
	store Store
	// serializes Update within this process; the store handles other processes
	mu sync.Mutex
}

// NewRecordRepository creates a repository over store
func NewRecordRepository(store Store) *RecordRepository {
	return &RecordRepository{store: store}
}

func (r *RecordRepository) GetMenuItems(ctx context.Context) ([]domain.MenuItem, error) {
	return load[domain.MenuItem](ctx, r.store, MenuItemsKey)
}

func (r *RecordRepository) SaveMenuItems(ctx context.Context, items []domain.MenuItem) error {
	return save(ctx, r.store, MenuItemsKey, items)
}

func (r *RecordRepository) GetCart(ctx context.Context) ([]domain.CartLine, error) {
	return load[domain.CartLine](ctx, r.store, CartKey)
}

func (r *RecordRepository) SaveCart(ctx context.Context, lines []domain.CartLine) error {
	return save(ctx, r.store, CartKey, lines)
}

func (r *RecordRepository) GetInvoices(ctx context.Context) ([]domain.Invoice, error) {
	return load[domain.Invoice](ctx, r.store, InvoicesKey)
}

func (r *RecordRepository) SaveInvoices(ctx context.Context, invoices []domain.Invoice) error {
	return save(ctx, r.store, InvoicesKey, invoices)
}

func (r *RecordRepository) GetStockTransactions(ctx context.Context) ([]domain.StockTransaction, error) {
	return load[domain.StockTransaction](ctx, r.store, StockTransactionsKey)
}

func (r *RecordRepository) SaveStockTransactions(ctx context.Context, txs []domain.StockTransaction) error {
	return save(ctx, r.store, StockTransactionsKey, txs)
}

func (r *RecordRepository) MenuInitialized(ctx context.Context) (bool, error) {
	raw, err := r.store.Get(ctx, MenuItemsKey)
	if err != nil {
		return false, err
	}
	return raw != nil, nil
}

func (r *RecordRepository) Update(ctx context.Context, fn func(rec *domain.Records) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.store.Atomic(ctx, RecordKeys, func(current map[string][]byte) (map[string][]byte, error) {
		rec := &domain.Records{
			MenuItems:         decode[domain.MenuItem](ctx, MenuItemsKey, current[MenuItemsKey]),
			Cart:              decode[domain.CartLine](ctx, CartKey, current[CartKey]),
			Invoices:          decode[domain.Invoice](ctx, InvoicesKey, current[InvoicesKey]),
			StockTransactions: decode[domain.StockTransaction](ctx, StockTransactionsKey, current[StockTransactionsKey]),
		}

		if err := fn(rec); err != nil {
			return nil, err
		}

		encoded := map[string]interface{}{
			MenuItemsKey:         nonNil(rec.MenuItems),
			CartKey:              nonNil(rec.Cart),
			InvoicesKey:          nonNil(rec.Invoices),
			StockTransactionsKey: nonNil(rec.StockTransactions),
		}

		changed := make(map[string][]byte)
		for _, key := range RecordKeys {
			b, err := json.Marshal(encoded[key])
			if err != nil {
				return nil, fmt.Errorf("encode %s: %w", key, err)
			}
			// an absent record decodes to [] too, so compare the raw bytes
			if !bytes.Equal(b, current[key]) && !(isEmptyArray(b) && current[key] == nil) {
				changed[key] = b
			}
		}
		return changed, nil
	})
}

func load[T any](ctx context.Context, store Store, key string) ([]T, error) {
	raw, err := store.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", key, err)
	}
	return decode[T](ctx, key, raw), nil
}

func save[T any](ctx context.Context, store Store, key string, items []T) error {
	b, err := json.Marshal(nonNil(items))
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := store.Set(ctx, key, b); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}

// decode fails open: a malformed record reads as empty and the loss is logged
func decode[T any](ctx context.Context, key string, raw []byte) []T {
	out := make([]T, 0)
	if len(raw) == 0 {
		return out
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		logger.Warn(ctx).
			Err(err).
			Str("record", key).
			Int("bytes", len(raw)).
			Msg("Stored record is malformed, treating it as empty")
		return make([]T, 0)
	}
	if out == nil {
		out = make([]T, 0)
	}
	return out
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

func isEmptyArray(b []byte) bool {
	return len(b) == 2 && b[0] == '[' && b[1] == ']'
}
