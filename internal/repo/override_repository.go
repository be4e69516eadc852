package repo

import (
	"context"

	"github.com/rogerio-castellano/catalog-manager/internal/models"
)

// OverrideRepository is the local override store: products created or edited
// locally, ids marked deleted, and the persistent stock of remote products.
type OverrideRepository interface {
	ListLocalProducts(ctx context.Context) ([]models.Product, error)
	GetLocalProduct(ctx context.Context, id int) (models.Product, bool, error)
	SaveLocalProduct(ctx context.Context, p models.Product) error
	SaveLocalProductIfAbsent(ctx context.Context, p models.Product) (bool, error)
	DeleteLocalProduct(ctx context.Context, id int) (bool, error)

	GetDeletedIDs(ctx context.Context) (map[int]struct{}, error)
	AddDeletedID(ctx context.Context, id int) error
	RemoveDeletedID(ctx context.Context, id int) (bool, error)

	GetPersistentStock(ctx context.Context, id int) (int, error)
	SetPersistentStock(ctx context.Context, id, stock int) error
}

// SeedStock is the deterministic initial stock of a remote product, in [1,100].
func SeedStock(id int) int {
	v := (id * 1597) % 100
	if v < 0 {
		v += 100
	}
	return v + 1
}
