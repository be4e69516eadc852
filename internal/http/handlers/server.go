package handlers

import (
	"context"
	"log/slog"

	"github.com/rogerio-castellano/catalog-manager/internal/format"
	"github.com/rogerio-castellano/catalog-manager/internal/models"
	repo "github.com/rogerio-castellano/catalog-manager/internal/repo"
	"github.com/rogerio-castellano/catalog-manager/internal/service"
)

// CatalogService is the reconciliation service as seen by the handlers.
type CatalogService interface {
	GetProducts(ctx context.Context) ([]models.Product, error)
	GetProduct(ctx context.Context, id int) (models.Product, error)
	CreateProduct(ctx context.Context, in models.ProductInput) (models.Product, error)
	ImportProduct(ctx context.Context, in models.ProductInput) (models.Product, error)
	UpdateProduct(ctx context.Context, id int, in models.ProductInput) (models.Product, error)
	DeleteProduct(ctx context.Context, id int) (service.DeleteResult, error)
	RestoreProduct(ctx context.Context, p models.Product) (models.Product, error)
	Categories(ctx context.Context) ([]service.CategorySummary, error)
}

var (
	catalogService CatalogService
	favoritesRepo  repo.FavoritesRepository
	historyRepo    repo.HistoryRepository
	metricsRepo    repo.MetricsRepository

	money  = format.DefaultMoney()
	logger = slog.Default()
)

func SetCatalogService(s CatalogService) {
	catalogService = s
}

func SetFavoritesRepo(r repo.FavoritesRepository) {
	favoritesRepo = r
}

func SetHistoryRepo(r repo.HistoryRepository) {
	historyRepo = r
}

func SetMetricsRepo(r repo.MetricsRepository) {
	metricsRepo = r
}

func SetMoney(m *format.Money) {
	money = m
}

func SetLogger(l *slog.Logger) {
	logger = l
}
