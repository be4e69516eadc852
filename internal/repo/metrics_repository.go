package repo

import (
	"context"

	"github.com/rogerio-castellano/catalog-manager/internal/models"
	"github.com/rogerio-castellano/catalog-manager/internal/normalize"
)

// LowStockThreshold is the stock level under which a product counts as running low.
const LowStockThreshold = 10

type Metrics struct {
	TotalProducts   int     `json:"total_products"`
	TotalStock      int     `json:"total_stock"`
	InventoryValue  float64 `json:"inventory_value"`
	AveragePrice    float64 `json:"average_price"`
	LowStockCount   int     `json:"low_stock_count"`
	OutOfStockCount int     `json:"out_of_stock_count"`
	FavoriteCount   int     `json:"favorite_count"`
	CategoryCount   int     `json:"category_count"`
}

type MetricsRepository interface {
	GetDashboardMetrics(ctx context.Context) (Metrics, error)
}

// ProductLister yields the effective product list the dashboard reports on.
type ProductLister interface {
	GetProducts(ctx context.Context) ([]models.Product, error)
}

// CatalogMetricsRepository computes dashboard metrics over the effective catalog.
type CatalogMetricsRepository struct {
	products  ProductLister
	favorites FavoritesRepository
}

func NewCatalogMetricsRepository(products ProductLister, favorites FavoritesRepository) *CatalogMetricsRepository {
	return &CatalogMetricsRepository{products: products, favorites: favorites}
}

// GetDashboardMetrics implements MetricsRepository.
func (r *CatalogMetricsRepository) GetDashboardMetrics(ctx context.Context) (Metrics, error) {
	products, err := r.products.GetProducts(ctx)
	if err != nil {
		return Metrics{}, err
	}
	var favorites []int
	if r.favorites != nil {
		if favorites, err = r.favorites.List(ctx); err != nil {
			return Metrics{}, err
		}
	}
	return ComputeMetrics(products, favorites), nil
}

// ComputeMetrics summarizes products. Favorites pointing at products that are
// not in the list, such as deleted ones, are not counted.
func ComputeMetrics(products []models.Product, favorites []int) Metrics {
	m := Metrics{TotalProducts: len(products)}
	favSet := make(map[int]struct{}, len(favorites))
	for _, id := range favorites {
		favSet[id] = struct{}{}
	}
	categories := map[string]struct{}{}
	var priceSum float64

	for _, p := range products {
		m.TotalStock += p.Stock
		m.InventoryValue += p.Price * float64(p.Stock)
		priceSum += p.Price
		switch {
		case p.Stock == 0:
			m.OutOfStockCount++
		case p.Stock < LowStockThreshold:
			m.LowStockCount++
		}
		if _, ok := favSet[p.ID]; ok {
			m.FavoriteCount++
		}
		if c := normalize.Category(p.Category); c != "" {
			categories[c] = struct{}{}
		}
	}

	m.CategoryCount = len(categories)
	m.InventoryValue = normalize.Price(m.InventoryValue)
	if len(products) > 0 {
		m.AveragePrice = normalize.Price(priceSum / float64(len(products)))
	}
	return m
}
