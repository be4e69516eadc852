package catalog

import "github.com/rogerio-castellano/catalog-manager/internal/models"

func productFixture() models.Product {
	return models.Product{
		ID:          3,
		Title:       "Lamp",
		Price:       10,
		Description: "A desk lamp",
		Category:    "home",
		Image:       "https://example.com/lamp.png",
	}
}
