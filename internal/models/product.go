package models

// LocalIDFloor is the smallest id handed out to locally created products.
// Remote catalog ids are small integers; local ids are derived from a
// millisecond clock, so the two spaces never meet in practice.
const LocalIDFloor = 1_000_000_000_000

// Rating is the remote catalog's review summary for a product.
type Rating struct {
	Rate  float64 `json:"rate"`
	Count int     `json:"count"`
}

// Product represents a product entity in the catalog.
type Product struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
	Stock       int     `json:"stock"`
	Rating      *Rating `json:"rating,omitempty"`
}

// IsLocal reports whether the product id belongs to the locally assigned id space.
func (p Product) IsLocal() bool {
	return IsLocalID(p.ID)
}

// IsLocalID reports whether id was assigned locally rather than by the remote catalog.
func IsLocalID(id int) bool {
	return id >= LocalIDFloor
}

// ProductInput carries the fields of a create or update request.
// A nil field means "not specified" and leaves the current value untouched on update.
type ProductInput struct {
	Title       *string  `json:"title,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Description *string  `json:"description,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Image       *string  `json:"image,omitempty"`
	Stock       *int     `json:"stock,omitempty"`
	Rating      *Rating  `json:"rating,omitempty"`
}

// Apply shallow-merges the specified input fields over p and returns the result.
func (in ProductInput) Apply(p Product) Product {
	if in.Title != nil {
		p.Title = *in.Title
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Category != nil {
		p.Category = *in.Category
	}
	if in.Image != nil {
		p.Image = *in.Image
	}
	if in.Stock != nil {
		p.Stock = *in.Stock
	}
	if in.Rating != nil {
		r := *in.Rating
		p.Rating = &r
	}
	return p
}
