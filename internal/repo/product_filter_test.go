package repo

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rogerio-castellano/catalog-manager/internal/models"
)

func catalogFixture() []models.Product {
	return []models.Product{
		{ID: 10, Title: "Desk Lamp", Price: 50, Category: "home", Stock: 3},
		{ID: 1, Title: "Backpack", Price: 110, Category: "electronics", Stock: 98},
		{ID: 2, Title: "Rain Jacket", Price: 55, Category: "men's clothing", Stock: 0},
	}
}

func idsOf(products []models.Product) []int {
	out := []int{}
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func TestFilterProducts(t *testing.T) {
	f := func(v float64) *float64 { return &v }
	i := func(v int) *int { return &v }

	tests := []struct {
		name  string
		pf    ProductFilter
		ids   []int
		total int
	}{
		{"no filter keeps order", ProductFilter{}, []int{10, 1, 2}, 3},
		{"search is case insensitive", ProductFilter{Search: " lamp"}, []int{10}, 1},
		{"category is normalized", ProductFilter{Category: " HOME "}, []int{10}, 1},
		{"price range", ProductFilter{MinPrice: f(50), MaxPrice: f(55)}, []int{10, 2}, 2},
		{"stock range", ProductFilter{MinStock: i(1), MaxStock: i(10)}, []int{10}, 1},
		{"favorites only", ProductFilter{FavoritesOnly: true}, []int{2}, 1},
		{"page", ProductFilter{Offset: i(1), Limit: i(1)}, []int{1}, 3},
		{"offset past end", ProductFilter{Offset: i(9)}, []int{}, 3},
	}
	favorites := map[int]struct{}{2: {}, 99: {}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, total := FilterProducts(catalogFixture(), tt.pf, favorites)
			assert.Equal(t, tt.total, total)
			assert.Equal(t, tt.ids, idsOf(page))
		})
	}
}
