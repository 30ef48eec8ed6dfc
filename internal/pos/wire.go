//go:build wireinject
// +build wireinject

package pos

import (
	"github.com/google/wire"

	"github.com/tair/tiffin-pos/internal/pos/delivery/http"
	"github.com/tair/tiffin-pos/internal/pos/domain"
	"github.com/tair/tiffin-pos/internal/pos/repository"
	"github.com/tair/tiffin-pos/internal/pos/usecase/command"
	"github.com/tair/tiffin-pos/internal/pos/usecase/query"
	"github.com/tair/tiffin-pos/pkg/config"
	"github.com/tair/tiffin-pos/pkg/timeutil"
)

// ProvideRepository provides the record repository over the configured store
func ProvideRepository(store repository.Store) domain.Repository {
	return repository.NewRecordRepository(store)
}

// ProvideClock provides the wall clock in the configured zone
func ProvideClock() timeutil.Clock {
	return timeutil.Now
}

// ProvideSettings extracts the handler settings from config
func ProvideSettings(cfg *config.Config) http.Settings {
	return http.Settings{
		LowStockThreshold: cfg.POS.LowStockThreshold,
		PaymentMethod:     cfg.POS.PaymentMethod,
		ShopName:          cfg.POS.ShopName,
	}
}

// Command Handlers Providers
func ProvideCreateMenuItemHandler(repo domain.Repository) *command.CreateMenuItemHandler {
	return command.NewCreateMenuItemHandler(repo)
}

func ProvideUpdateMenuItemHandler(repo domain.Repository, clock timeutil.Clock, publisher domain.EventPublisher) *command.UpdateMenuItemHandler {
	return command.NewUpdateMenuItemHandler(repo, clock, publisher)
}

func ProvideDeleteMenuItemHandler(repo domain.Repository) *command.DeleteMenuItemHandler {
	return command.NewDeleteMenuItemHandler(repo)
}

func ProvideAddToCartHandler(repo domain.Repository) *command.AddToCartHandler {
	return command.NewAddToCartHandler(repo)
}

func ProvideIncreaseQuantityHandler(repo domain.Repository) *command.IncreaseQuantityHandler {
	return command.NewIncreaseQuantityHandler(repo)
}

func ProvideDecreaseQuantityHandler(repo domain.Repository) *command.DecreaseQuantityHandler {
	return command.NewDecreaseQuantityHandler(repo)
}

func ProvideRemoveFromCartHandler(repo domain.Repository) *command.RemoveFromCartHandler {
	return command.NewRemoveFromCartHandler(repo)
}

func ProvideCheckoutHandler(repo domain.Repository, clock timeutil.Clock, publisher domain.EventPublisher, settings http.Settings) *command.CheckoutHandler {
	return command.NewCheckoutHandler(repo, clock, publisher, settings.PaymentMethod)
}

func ProvideAdjustStockHandler(repo domain.Repository, clock timeutil.Clock, publisher domain.EventPublisher) *command.AdjustStockHandler {
	return command.NewAdjustStockHandler(repo, clock, publisher)
}

// Query Handlers Providers
func ProvideListMenuHandler(repo domain.Repository, settings http.Settings) *query.ListMenuHandler {
	return query.NewListMenuHandler(repo, settings.LowStockThreshold)
}

func ProvideGetMenuItemHandler(repo domain.Repository, settings http.Settings) *query.GetMenuItemHandler {
	return query.NewGetMenuItemHandler(repo, settings.LowStockThreshold)
}

func ProvideGetCartHandler(repo domain.Repository) *query.GetCartHandler {
	return query.NewGetCartHandler(repo)
}

func ProvideListInvoicesHandler(repo domain.Repository) *query.ListInvoicesHandler {
	return query.NewListInvoicesHandler(repo)
}

func ProvideGetInvoiceHandler(repo domain.Repository) *query.GetInvoiceHandler {
	return query.NewGetInvoiceHandler(repo)
}

func ProvideSalesSummaryHandler(repo domain.Repository) *query.SalesSummaryHandler {
	return query.NewSalesSummaryHandler(repo)
}

func ProvideListStockTransactionsHandler(repo domain.Repository) *query.ListStockTransactionsHandler {
	return query.NewListStockTransactionsHandler(repo)
}

func ProvideReconcileStockHandler(repo domain.Repository) *query.ReconcileStockHandler {
	return query.NewReconcileStockHandler(repo)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideRepository,
	ProvideClock,
	ProvideSettings,
)

var CommandHandlerSet = wire.NewSet(
	ProvideCreateMenuItemHandler,
	ProvideUpdateMenuItemHandler,
	ProvideDeleteMenuItemHandler,
	ProvideAddToCartHandler,
	ProvideIncreaseQuantityHandler,
	ProvideDecreaseQuantityHandler,
	ProvideRemoveFromCartHandler,
	ProvideCheckoutHandler,
	ProvideAdjustStockHandler,
	wire.Struct(new(http.CommandHandlers), "*"),
)

var QueryHandlerSet = wire.NewSet(
	ProvideListMenuHandler,
	ProvideGetMenuItemHandler,
	ProvideGetCartHandler,
	ProvideListInvoicesHandler,
	ProvideGetInvoiceHandler,
	ProvideSalesSummaryHandler,
	ProvideListStockTransactionsHandler,
	ProvideReconcileStockHandler,
	wire.Struct(new(http.QueryHandlers), "*"),
)

var AllHandlersSet = wire.NewSet(
	RepositorySet,
	CommandHandlerSet,
	QueryHandlerSet,
)

// InitializeHTTPHandler initializes HTTP handler with all dependencies
func InitializeHTTPHandler(cfg *config.Config, store repository.Store, publisher domain.EventPublisher) (*http.POSHandler, error) {
	wire.Build(
		AllHandlersSet,
		http.NewPOSHandlerWithDI,
	)
	return nil, nil
}
