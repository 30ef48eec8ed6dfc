package domain

import "context"

// Records is a snapshot of the four stored records
type Records struct {
	MenuItems         []MenuItem
	Cart              []CartLine
	Invoices          []Invoice
	StockTransactions []StockTransaction
}

// Repository defines the contract for record access. Getters return an empty
// slice when a record is missing or unreadable; only backend failures are errors.
type Repository interface {
	GetMenuItems(ctx context.Context) ([]MenuItem, error)
	SaveMenuItems(ctx context.Context, items []MenuItem) error
	GetCart(ctx context.Context) ([]CartLine, error)
	SaveCart(ctx context.Context, lines []CartLine) error
	GetInvoices(ctx context.Context) ([]Invoice, error)
	SaveInvoices(ctx context.Context, invoices []Invoice) error
	GetStockTransactions(ctx context.Context) ([]StockTransaction, error)
	SaveStockTransactions(ctx context.Context, txs []StockTransaction) error

	// MenuInitialized reports whether the menu record has ever been written
	MenuInitialized(ctx context.Context) (bool, error)

	// Update runs fn on a snapshot of all records and atomically writes back
	// every record fn changed. If fn returns an error nothing is written.
	// fn may be invoked more than once when a concurrent writer wins a race.
	Update(ctx context.Context, fn func(rec *Records) error) error
}

// EventPublisher is notified after state changes commit
type EventPublisher interface {
	PublishInvoiceCreated(ctx context.Context, invoice Invoice) error
	PublishStockChanged(ctx context.Context, tx StockTransaction) error
}

// NopPublisher discards events
type NopPublisher struct{}

func (NopPublisher) PublishInvoiceCreated(context.Context, Invoice) error { return nil }

func (NopPublisher) PublishStockChanged(context.Context, StockTransaction) error { return nil }
