package repo

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/rogerio-castellano/catalog-manager/internal/kv"
	"github.com/rogerio-castellano/catalog-manager/internal/models"
)

// KVOverrideRepository implements OverrideRepository over a kv.Store. Every
// mutation loads the whole record and writes it back in full.
type KVOverrideRepository struct {
	store  kv.Store
	logger *slog.Logger
	mu     sync.Mutex
}

// NewKVOverrideRepository creates a new instance of KVOverrideRepository.
func NewKVOverrideRepository(store kv.Store, logger *slog.Logger) *KVOverrideRepository {
	return &KVOverrideRepository{store: store, logger: loggerOrDefault(logger)}
}

func (r *KVOverrideRepository) loadProducts(ctx context.Context) ([]models.Product, error) {
	return loadJSON[[]models.Product](ctx, r.store, r.logger, KeyLocalProducts)
}

// ListLocalProducts returns every override record, most recently added first.
func (r *KVOverrideRepository) ListLocalProducts(ctx context.Context) ([]models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	products, err := r.loadProducts(ctx)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, nil
}

// GetLocalProduct retrieves the override record for id, if any.
func (r *KVOverrideRepository) GetLocalProduct(ctx context.Context, id int) (models.Product, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	products, err := r.loadProducts(ctx)
	if err != nil {
		return models.Product{}, false, err
	}
	for _, p := range products {
		if p.ID == id {
			return p, true, nil
		}
	}
	return models.Product{}, false, nil
}

// SaveLocalProduct replaces the record with the same id in place, or
// prepends p when the id is new.
func (r *KVOverrideRepository) SaveLocalProduct(ctx context.Context, p models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	products, err := r.loadProducts(ctx)
	if err != nil {
		return err
	}
	if i := indexOf(products, p.ID); i >= 0 {
		products[i] = p
	} else {
		products = append([]models.Product{p}, products...)
	}
	return saveJSON(ctx, r.store, KeyLocalProducts, products)
}

// SaveLocalProductIfAbsent prepends p unless a record with its id already exists.
func (r *KVOverrideRepository) SaveLocalProductIfAbsent(ctx context.Context, p models.Product) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	products, err := r.loadProducts(ctx)
	if err != nil {
		return false, err
	}
	if indexOf(products, p.ID) >= 0 {
		return false, nil
	}
	products = append([]models.Product{p}, products...)
	if err := saveJSON(ctx, r.store, KeyLocalProducts, products); err != nil {
		return false, err
	}
	return true, nil
}

// DeleteLocalProduct removes the override record for id and reports whether one existed.
func (r *KVOverrideRepository) DeleteLocalProduct(ctx context.Context, id int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	products, err := r.loadProducts(ctx)
	if err != nil {
		return false, err
	}
	i := indexOf(products, id)
	if i < 0 {
		return false, nil
	}
	products = slices.Delete(products, i, i+1)
	if err := saveJSON(ctx, r.store, KeyLocalProducts, products); err != nil {
		return false, err
	}
	return true, nil
}

func (r *KVOverrideRepository) loadDeleted(ctx context.Context) ([]int, error) {
	return loadJSON[[]int](ctx, r.store, r.logger, KeyDeletedIDs)
}

// GetDeletedIDs returns the set of ids marked deleted.
func (r *KVOverrideRepository) GetDeletedIDs(ctx context.Context) (map[int]struct{}, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids, err := r.loadDeleted(ctx)
	if err != nil {
		return nil, err
	}
	set := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}

// AddDeletedID marks id deleted. Adding an id twice is a no-op.
func (r *KVOverrideRepository) AddDeletedID(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids, err := r.loadDeleted(ctx)
	if err != nil {
		return err
	}
	if slices.Contains(ids, id) {
		return nil
	}
	return saveJSON(ctx, r.store, KeyDeletedIDs, append(ids, id))
}

// RemoveDeletedID unmarks id and reports whether it had been marked.
func (r *KVOverrideRepository) RemoveDeletedID(ctx context.Context, id int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids, err := r.loadDeleted(ctx)
	if err != nil {
		return false, err
	}
	i := slices.Index(ids, id)
	if i < 0 {
		return false, nil
	}
	ids = slices.Delete(ids, i, i+1)
	if err := saveJSON(ctx, r.store, KeyDeletedIDs, ids); err != nil {
		return false, err
	}
	return true, nil
}

// GetPersistentStock returns the stored stock for id, seeding it on first access.
func (r *KVOverrideRepository) GetPersistentStock(ctx context.Context, id int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stock, err := loadJSON[map[int]int](ctx, r.store, r.logger, KeyPersistentStock)
	if err != nil {
		return 0, err
	}
	if v, ok := stock[id]; ok {
		return v, nil
	}
	if stock == nil {
		stock = map[int]int{}
	}
	v := SeedStock(id)
	stock[id] = v
	if err := saveJSON(ctx, r.store, KeyPersistentStock, stock); err != nil {
		return 0, err
	}
	return v, nil
}

// SetPersistentStock overwrites the stored stock for id.
func (r *KVOverrideRepository) SetPersistentStock(ctx context.Context, id, stock int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, err := loadJSON[map[int]int](ctx, r.store, r.logger, KeyPersistentStock)
	if err != nil {
		return err
	}
	if m == nil {
		m = map[int]int{}
	}
	m[id] = stock
	return saveJSON(ctx, r.store, KeyPersistentStock, m)
}

func indexOf(products []models.Product, id int) int {
	return slices.IndexFunc(products, func(p models.Product) bool { return p.ID == id })
}
