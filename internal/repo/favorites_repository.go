package repo

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/rogerio-castellano/catalog-manager/internal/kv"
)

// FavoritesRepository persists the set of favorited product ids. It does not
// track whether a favorited product still exists in the catalog.
type FavoritesRepository interface {
	List(ctx context.Context) ([]int, error)
	IsFavorite(ctx context.Context, id int) (bool, error)
	Toggle(ctx context.Context, id int) (bool, error)
	Add(ctx context.Context, ids []int) error
	Remove(ctx context.Context, ids []int) error
}

// KVFavoritesRepository stores favorites as one JSON array in insertion order.
type KVFavoritesRepository struct {
	store  kv.Store
	logger *slog.Logger
	mu     sync.Mutex
}

func NewKVFavoritesRepository(store kv.Store, logger *slog.Logger) *KVFavoritesRepository {
	return &KVFavoritesRepository{store: store, logger: loggerOrDefault(logger)}
}

func (r *KVFavoritesRepository) load(ctx context.Context) ([]int, error) {
	return loadJSON[[]int](ctx, r.store, r.logger, KeyFavorites)
}

func (r *KVFavoritesRepository) List(ctx context.Context) ([]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []int{}
	}
	return ids, nil
}

func (r *KVFavoritesRepository) IsFavorite(ctx context.Context, id int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids, err := r.load(ctx)
	if err != nil {
		return false, err
	}
	return slices.Contains(ids, id), nil
}

// Toggle adds id when absent and removes it when present. It returns whether
// id is a favorite afterwards.
func (r *KVFavoritesRepository) Toggle(ctx context.Context, id int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids, err := r.load(ctx)
	if err != nil {
		return false, err
	}
	favorite := true
	if i := slices.Index(ids, id); i >= 0 {
		ids = slices.Delete(ids, i, i+1)
		favorite = false
	} else {
		ids = append(ids, id)
	}
	if err := saveJSON(ctx, r.store, KeyFavorites, ids); err != nil {
		return false, err
	}
	return favorite, nil
}

func (r *KVFavoritesRepository) Add(ctx context.Context, add []int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids, err := r.load(ctx)
	if err != nil {
		return err
	}
	for _, id := range add {
		if !slices.Contains(ids, id) {
			ids = append(ids, id)
		}
	}
	if ids == nil {
		ids = []int{}
	}
	return saveJSON(ctx, r.store, KeyFavorites, ids)
}

func (r *KVFavoritesRepository) Remove(ctx context.Context, remove []int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids, err := r.load(ctx)
	if err != nil {
		return err
	}
	ids = slices.DeleteFunc(ids, func(id int) bool { return slices.Contains(remove, id) })
	if ids == nil {
		ids = []int{}
	}
	return saveJSON(ctx, r.store, KeyFavorites, ids)
}
