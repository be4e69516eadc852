package repo

import (
	"strings"

	"github.com/rogerio-castellano/catalog-manager/internal/models"
	"github.com/rogerio-castellano/catalog-manager/internal/normalize"
)

type ProductFilter struct {
	Search        string
	Category      string
	MinPrice      *float64
	MaxPrice      *float64
	MinStock      *int
	MaxStock      *int
	FavoritesOnly bool
	Offset        *int
	Limit         *int
}

func matchesFilter(p models.Product, pf ProductFilter, favorites map[int]struct{}) bool {
	if pf.Search != "" && !strings.Contains(strings.ToLower(p.Title), strings.ToLower(strings.TrimSpace(pf.Search))) {
		return false
	}
	if pf.Category != "" && normalize.Category(p.Category) != normalize.Category(pf.Category) {
		return false
	}
	if pf.MinPrice != nil && p.Price < *pf.MinPrice {
		return false
	}
	if pf.MaxPrice != nil && p.Price > *pf.MaxPrice {
		return false
	}
	if pf.MinStock != nil && p.Stock < *pf.MinStock {
		return false
	}
	if pf.MaxStock != nil && p.Stock > *pf.MaxStock {
		return false
	}
	if pf.FavoritesOnly {
		if _, ok := favorites[p.ID]; !ok {
			return false
		}
	}
	return true
}

// FilterProducts applies pf to products, keeping their order. It returns the
// requested page and the total number of matches.
func FilterProducts(products []models.Product, pf ProductFilter, favorites map[int]struct{}) ([]models.Product, int) {
	filtered := []models.Product{}
	for _, p := range products {
		if matchesFilter(p, pf, favorites) {
			filtered = append(filtered, p)
		}
	}

	start, end := pageBounds(len(filtered), pf.Offset, pf.Limit)
	return filtered[start:end], len(filtered)
}

// pageBounds turns optional offset/limit into slice bounds within [0, n].
func pageBounds(n int, offset, limit *int) (int, int) {
	start := 0
	if offset != nil {
		start = clamp(*offset, 0, n)
	}

	end := n
	if limit != nil && *limit > 0 {
		end = clamp(start+*limit, start, n)
	}
	return start, end
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
