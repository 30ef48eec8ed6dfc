package repository

import "context"

// Record keys
const (
	MenuItemsKey         = "menuItems"
	InvoicesKey          = "invoices"
	CartKey              = "cart"
	StockTransactionsKey = "stockTransactions"
)

// RecordKeys lists every record in a fixed order
var RecordKeys = []string{MenuItemsKey, CartKey, InvoicesKey, StockTransactionsKey}

// AtomicFunc receives the current raw value of each requested key (absent keys
// are missing from the map) and returns the keys to overwrite.
type AtomicFunc func(current map[string][]byte) (map[string][]byte, error)

// Store is a flat key-value store holding whole serialized records
type Store interface {
	// Get returns nil, nil when the key is absent
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// Atomic reads keys, calls fn and writes its result as one all-or-nothing step.
	// fn may be called again if another writer changed the keys in between.
	Atomic(ctx context.Context, keys []string, fn AtomicFunc) error
	Ping(ctx context.Context) error
	Close() error
}
