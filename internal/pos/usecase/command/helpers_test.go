package command

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tair/tiffin-pos/internal/pos/domain"
	"github.com/tair/tiffin-pos/internal/pos/repository"
)

var fixedNow = time.Date(2026, 1, 7, 9, 5, 3, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

type recordingPublisher struct {
	mu       sync.Mutex
	invoices []domain.Invoice
	stock    []domain.StockTransaction
	err      error
}

func (p *recordingPublisher) PublishInvoiceCreated(_ context.Context, inv domain.Invoice) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.invoices = append(p.invoices, inv)
	return p.err
}

func (p *recordingPublisher) PublishStockChanged(_ context.Context, tx domain.StockTransaction) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stock = append(p.stock, tx)
	return p.err
}

var errPublish = errors.New("broker unavailable")

func newRepo(t *testing.T, items ...domain.MenuItem) *repository.RecordRepository {
	t.Helper()
	repo := repository.NewRecordRepository(repository.NewMemoryStore())
	if len(items) > 0 {
		require.NoError(t, repo.SaveMenuItems(context.Background(), items))
	}
	return repo
}

func idli(stock int) domain.MenuItem {
	return domain.MenuItem{ID: 1, Name: "Idli", Price: 30, Description: "Steamed rice cakes", Stock: stock}
}

func dosa(stock int) domain.MenuItem {
	return domain.MenuItem{ID: 2, Name: "Dosa", Price: 50, Stock: stock}
}

func stockOf(t *testing.T, repo domain.Repository, id int) int {
	t.Helper()
	items, err := repo.GetMenuItems(context.Background())
	require.NoError(t, err)
	idx := domain.FindMenuItem(items, id)
	require.GreaterOrEqual(t, idx, 0, "item %d missing", id)
	return items[idx].Stock
}
