// Package storefront wires the storefront service together.
package storefront

import (
	"github.com/google/wire"

	catalog "github.com/tair/lightspace/internal/catalog/domain"
	catalogquery "github.com/tair/lightspace/internal/catalog/usecase/query"
	"github.com/tair/lightspace/internal/storefront/delivery/http"
	"github.com/tair/lightspace/internal/storefront/domain"
	"github.com/tair/lightspace/internal/storefront/metrics"
	"github.com/tair/lightspace/internal/storefront/usecase/command"
	"github.com/tair/lightspace/internal/storefront/usecase/query"
	"github.com/tair/lightspace/pkg/config"
	"github.com/tair/lightspace/pkg/task"
)

// ProvideAddToCartHandler provides the add to cart handler with the configured overlay duration
func ProvideAddToCartHandler(
	repo domain.SessionRepository,
	products catalog.ProductRepository,
	tasks *task.Registry,
	cfg *config.Config,
	m *metrics.Metrics,
) *command.AddToCartHandler {
	return command.NewAddToCartHandler(repo, products, tasks, cfg.OverlayDuration, m)
}

// ProvideStorefrontHandler provides the HTTP handler
func ProvideStorefrontHandler(
	handlers http.Handlers,
	sessions domain.SessionRepository,
	products catalog.ProductRepository,
	m *metrics.Metrics,
	cfg *config.Config,
) *http.StorefrontHandler {
	return http.NewStorefrontHandler(handlers, sessions, products, m).WithTimeout(cfg.RequestTimeout)
}

// Wire sets
var MetricsSet = wire.NewSet(
	metrics.New,
	wire.Bind(new(metrics.SessionCounter), new(domain.SessionRepository)),
)

var CommandHandlerSet = wire.NewSet(
	command.NewCreateSessionHandler,
	command.NewDeleteSessionHandler,
	ProvideAddToCartHandler,
	command.NewUpdateQuantityHandler,
	command.NewToggleFavoriteHandler,
	command.NewUpdateBrowseHandler,
	command.NewToggleFilterHandler,
	command.NewNavigateHandler,
	command.NewUploadRoomImageHandler,
	command.NewStartAnalysisHandler,
)

var QueryHandlerSet = wire.NewSet(
	catalogquery.NewListProductsHandler,
	catalogquery.NewGetProductHandler,
	catalogquery.NewGetFilterOptionsHandler,
	query.NewGetSessionHandler,
	query.NewBrowseProductsHandler,
	query.NewGetCartHandler,
)

var AllHandlersSet = wire.NewSet(
	MetricsSet,
	CommandHandlerSet,
	QueryHandlerSet,
	wire.Struct(new(http.Handlers), "*"),
)
