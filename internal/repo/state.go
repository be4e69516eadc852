package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/rogerio-castellano/catalog-manager/internal/kv"
)

// Stable storage keys for the persisted catalog state.
const (
	KeyLocalProducts   = "localProducts"
	KeyDeletedIDs      = "deletedProductIds"
	KeyPersistentStock = "persistentStock"
	KeyFavorites       = "productFavorites"
	KeyHistory         = "catalogHistory"
)

// loadJSON reads the record under key. A missing key yields the zero value;
// so does a record that no longer parses, which is logged and left in place
// until the next write replaces it.
func loadJSON[T any](ctx context.Context, store kv.Store, logger *slog.Logger, key string) (T, error) {
	var out T
	raw, ok, err := store.Get(ctx, key)
	if err != nil {
		return out, err
	}
	if !ok || raw == "" {
		return out, nil
	}
	var decoded T
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		logger.Warn("discarding unparseable catalog state", slog.String("key", key), slog.Any("error", err))
		return out, nil
	}
	return decoded, nil
}

func saveJSON(ctx context.Context, store kv.Store, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return store.Set(ctx, key, string(b))
}

func loggerOrDefault(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}
