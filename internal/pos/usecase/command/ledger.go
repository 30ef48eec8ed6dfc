package command

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tair/tiffin-pos/internal/pos/domain"
	"github.com/tair/tiffin-pos/pkg/logger"
	"github.com/tair/tiffin-pos/pkg/timeutil"
)

// newTransactionID combines the unix millisecond timestamp with a random suffix
func newTransactionID(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("%d-%s", now.UnixMilli(), suffix)
}

// recordStockChange moves item to newStock and appends the matching ledger entry
func recordStockChange(rec *domain.Records, idx int, t domain.StockTransactionType, quantity, newStock int, notes string, now time.Time) domain.StockTransaction {
	item := &rec.MenuItems[idx]
	tx := domain.StockTransaction{
		TransactionID: newTransactionID(now),
		ItemID:        item.ID,
		ItemName:      item.Name,
		Type:          t,
		Quantity:      quantity,
		PreviousStock: item.Stock,
		NewStock:      newStock,
		Timestamp:     now,
		Notes:         notes,
	}
	item.Stock = newStock
	rec.StockTransactions = append(rec.StockTransactions, tx)
	return tx
}

func clockOrDefault(clock timeutil.Clock) timeutil.Clock {
	if clock == nil {
		return timeutil.Now
	}
	return clock
}

func publisherOrNop(publisher domain.EventPublisher) domain.EventPublisher {
	if publisher == nil {
		return domain.NopPublisher{}
	}
	return publisher
}

// publishStockChanges is best effort: the state is already committed
func publishStockChanges(ctx context.Context, publisher domain.EventPublisher, txs []domain.StockTransaction) {
	for _, tx := range txs {
		if err := publisher.PublishStockChanged(ctx, tx); err != nil {
			logger.Warn(ctx).
				Err(err).
				Str("transaction_id", tx.TransactionID).
				Int("item_id", tx.ItemID).
				Msg("Failed to publish stock changed event")
		}
	}
}
