//go:build wireinject
// +build wireinject

package storefront

import (
	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tair/lightspace/internal/analyzer"
	catalog "github.com/tair/lightspace/internal/catalog/domain"
	"github.com/tair/lightspace/internal/storefront/delivery/http"
	"github.com/tair/lightspace/internal/storefront/domain"
	"github.com/tair/lightspace/kafka"
	"github.com/tair/lightspace/pkg/config"
	"github.com/tair/lightspace/pkg/task"
)

// InitializeHandler initializes the storefront handler with all dependencies
func InitializeHandler(
	cfg *config.Config,
	reg prometheus.Registerer,
	sessions domain.SessionRepository,
	products catalog.ProductRepository,
	publisher kafka.OrderPublisher,
	roomAnalyzer analyzer.Analyzer,
	tasks *task.Registry,
) (*http.StorefrontHandler, error) {
	wire.Build(
		AllHandlersSet,
		ProvideStorefrontHandler,
	)
	return nil, nil
}
