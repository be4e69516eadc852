package handlers

import (
	"strings"

	"github.com/rogerio-castellano/catalog-manager/internal/models"
)

type ProductRequest struct {
	Title       string         `json:"title" validate:"required,min=3"`
	Price       float64        `json:"price" validate:"gt=0"`
	Description string         `json:"description" validate:"required,min=10"`
	Category    string         `json:"category" validate:"required,min=3"`
	Image       string         `json:"image" validate:"required,url"`
	Stock       *int           `json:"stock,omitempty" validate:"omitempty,gte=0"`
	Rating      *models.Rating `json:"rating,omitempty"`
}

// trimmed strips surrounding spaces so length rules see the stored value.
func (req ProductRequest) trimmed() ProductRequest {
	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	req.Category = strings.TrimSpace(req.Category)
	req.Image = strings.TrimSpace(req.Image)
	return req
}

func (req ProductRequest) toInput() models.ProductInput {
	return models.ProductInput{
		Title:       &req.Title,
		Price:       &req.Price,
		Description: &req.Description,
		Category:    &req.Category,
		Image:       &req.Image,
		Stock:       req.Stock,
		Rating:      req.Rating,
	}
}

// ProductUpdateRequest is a partial update; absent fields keep their current value.
type ProductUpdateRequest struct {
	Title       *string        `json:"title,omitempty" validate:"omitempty,min=3"`
	Price       *float64       `json:"price,omitempty" validate:"omitempty,gt=0"`
	Description *string        `json:"description,omitempty" validate:"omitempty,min=10"`
	Category    *string        `json:"category,omitempty" validate:"omitempty,min=3"`
	Image       *string        `json:"image,omitempty" validate:"omitempty,url"`
	Stock       *int           `json:"stock,omitempty" validate:"omitempty,gte=0"`
	Rating      *models.Rating `json:"rating,omitempty"`
}

func (req ProductUpdateRequest) trimmed() ProductUpdateRequest {
	for _, f := range []**string{&req.Title, &req.Description, &req.Category, &req.Image} {
		if *f != nil {
			v := strings.TrimSpace(**f)
			*f = &v
		}
	}
	return req
}

func (req ProductUpdateRequest) toInput() models.ProductInput {
	return models.ProductInput{
		Title:       req.Title,
		Price:       req.Price,
		Description: req.Description,
		Category:    req.Category,
		Image:       req.Image,
		Stock:       req.Stock,
		Rating:      req.Rating,
	}
}

// RestoreRequest carries the product value held before it was deleted.
type RestoreRequest struct {
	ID          int            `json:"id" validate:"gt=0"`
	Title       string         `json:"title"`
	Price       float64        `json:"price" validate:"gte=0"`
	Description string         `json:"description"`
	Category    string         `json:"category"`
	Image       string         `json:"image"`
	Stock       int            `json:"stock" validate:"gte=0"`
	Rating      *models.Rating `json:"rating,omitempty"`
}

func (req RestoreRequest) toProduct() models.Product {
	return models.Product{
		ID:          req.ID,
		Title:       req.Title,
		Price:       req.Price,
		Description: req.Description,
		Category:    req.Category,
		Image:       req.Image,
		Stock:       req.Stock,
		Rating:      req.Rating,
	}
}

type ProductResponse struct {
	ID             int            `json:"id"`
	Title          string         `json:"title"`
	Price          float64        `json:"price"`
	FormattedPrice string         `json:"formatted_price"`
	Description    string         `json:"description"`
	Category       string         `json:"category"`
	CategoryLabel  string         `json:"category_label"`
	Image          string         `json:"image"`
	Stock          int            `json:"stock"`
	Rating         *models.Rating `json:"rating,omitempty"`
	Local          bool           `json:"local"`
	Favorite       bool           `json:"favorite"`
	LowStock       bool           `json:"low_stock,omitempty"`
}

type Meta struct {
	TotalCount int `json:"total_count"`
}

type ProductsSearchResult struct {
	Data []ProductResponse `json:"data"`
	Meta Meta              `json:"meta,omitempty"`
}

type DeleteResponse struct {
	ID int `json:"id"`
}

type HistoryResponse struct {
	ID        int    `json:"id"`
	ProductID int    `json:"product_id"`
	Action    string `json:"action"`
	Title     string `json:"title"`
	CreatedAt string `json:"created_at"`
}

type HistorySearchResult struct {
	Data []HistoryResponse `json:"data"`
	Meta Meta              `json:"meta,omitempty"`
}

type FavoriteIDsRequest struct {
	IDs []int `json:"ids" validate:"required,min=1,dive,gt=0"`
}

type FavoritesResult struct {
	IDs []int `json:"ids"`
}

type ToggleFavoriteResult struct {
	ID       int  `json:"id"`
	Favorite bool `json:"favorite"`
}

type ImportProductsResult struct {
	ImportedProductsCount int                      `json:"imported"`
	Errors                []ProductValidationError `json:"errors"`
}
