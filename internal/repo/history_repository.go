package repo

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/rogerio-castellano/catalog-manager/internal/kv"
	"github.com/rogerio-castellano/catalog-manager/internal/models"
)

// MaxHistoryEntries bounds the persisted change history; older entries are dropped first.
const MaxHistoryEntries = 500

type HistoryRepository interface {
	Log(ctx context.Context, productID int, action models.HistoryAction, title string) error
	Find(ctx context.Context, hf HistoryFilter) ([]models.HistoryEntry, int, error)
}

// KVHistoryRepository keeps the change history as one JSON array, oldest first.
type KVHistoryRepository struct {
	store  kv.Store
	logger *slog.Logger
	now    func() time.Time
	mu     sync.Mutex
}

func NewKVHistoryRepository(store kv.Store, logger *slog.Logger) *KVHistoryRepository {
	return &KVHistoryRepository{store: store, logger: loggerOrDefault(logger), now: time.Now}
}

// Log appends a change history entry.
func (r *KVHistoryRepository) Log(ctx context.Context, productID int, action models.HistoryAction, title string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	entries, err := loadJSON[[]models.HistoryEntry](ctx, r.store, r.logger, KeyHistory)
	if err != nil {
		return err
	}
	nextID := 1
	if n := len(entries); n > 0 {
		nextID = entries[n-1].ID + 1
	}
	entries = append(entries, models.HistoryEntry{
		ID:        nextID,
		ProductID: productID,
		Action:    action,
		Title:     title,
		CreatedAt: r.now().UTC().Format(time.RFC3339),
	})
	if len(entries) > MaxHistoryEntries {
		entries = entries[len(entries)-MaxHistoryEntries:]
	}
	return saveJSON(ctx, r.store, KeyHistory, entries)
}

// Find returns the entries matching hf, paginated, along with the unpaginated match count.
func (r *KVHistoryRepository) Find(ctx context.Context, hf HistoryFilter) ([]models.HistoryEntry, int, error) {
	r.mu.Lock()
	entries, err := loadJSON[[]models.HistoryEntry](ctx, r.store, r.logger, KeyHistory)
	r.mu.Unlock()
	if err != nil {
		return nil, 0, err
	}

	filtered := []models.HistoryEntry{}
	for _, e := range entries {
		if matchesHistoryFilter(e, hf) {
			filtered = append(filtered, e)
		}
	}

	start, end := pageBounds(len(filtered), hf.Offset, hf.Limit)
	return filtered[start:end], len(filtered), nil
}
