package repo

import (
	"time"

	"github.com/rogerio-castellano/catalog-manager/internal/models"
)

type HistoryFilter struct {
	ProductID *int
	Action    models.HistoryAction
	Since     *time.Time
	Until     *time.Time
	Offset    *int
	Limit     *int
}

func matchesHistoryFilter(e models.HistoryEntry, hf HistoryFilter) bool {
	if hf.ProductID != nil && e.ProductID != *hf.ProductID {
		return false
	}
	if hf.Action != "" && e.Action != hf.Action {
		return false
	}
	if hf.Since == nil && hf.Until == nil {
		return true
	}
	at, err := time.Parse(time.RFC3339, e.CreatedAt)
	if err != nil {
		return false
	}
	if hf.Since != nil && at.Before(*hf.Since) {
		return false
	}
	if hf.Until != nil && at.After(*hf.Until) {
		return false
	}
	return true
}
