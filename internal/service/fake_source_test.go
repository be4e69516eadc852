package service

import (
	"context"
	"errors"
	"sync"

	"github.com/rogerio-castellano/catalog-manager/internal/catalog"
	"github.com/rogerio-castellano/catalog-manager/internal/models"
)

// fakeSource is an in-memory catalog.Source that records mutation calls.
type fakeSource struct {
	mu       sync.Mutex
	products []models.Product
	listErr  error
	getErr   error
	mutErr   error
	calls    []string
	listHits int
}

func newFakeSource(products ...models.Product) *fakeSource {
	return &fakeSource{products: products}
}

func (f *fakeSource) ListProducts(ctx context.Context) ([]models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listHits++
	if f.listErr != nil {
		return nil, f.listErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]models.Product, len(f.products))
	copy(out, f.products)
	return out, nil
}

func (f *fakeSource) GetProduct(_ context.Context, id int) (models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return models.Product{}, f.getErr
	}
	for _, p := range f.products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, catalog.ErrNotFound
}

func (f *fakeSource) record(call string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
	return f.mutErr
}

func (f *fakeSource) CreateProduct(context.Context, models.Product) error { return f.record("create") }

func (f *fakeSource) UpdateProduct(context.Context, int, models.Product) error {
	return f.record("update")
}

func (f *fakeSource) DeleteProduct(context.Context, int) error { return f.record("delete") }

func (f *fakeSource) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

var errRemoteDown = errors.New("remote down")

func backpack() models.Product {
	return models.Product{
		ID:          1,
		Title:       "Backpack",
		Price:       20,
		Description: "Fits a laptop",
		Category:    "electronics",
		Image:       "https://example.com/1.png",
		Rating:      &models.Rating{Rate: 3.9, Count: 120},
	}
}

func jacket() models.Product {
	return models.Product{
		ID:          2,
		Title:       "Jacket",
		Price:       10,
		Description: "Warm jacket",
		Category:    "men's clothing",
		Image:       "https://example.com/2.png",
	}
}

func ptr[T any](v T) *T { return &v }
