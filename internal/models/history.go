package models

// HistoryAction names a catalog mutation recorded in the change history.
type HistoryAction string

const (
	ActionCreated  HistoryAction = "created"
	ActionUpdated  HistoryAction = "updated"
	ActionDeleted  HistoryAction = "deleted"
	ActionRestored HistoryAction = "restored"
	ActionImported HistoryAction = "imported"
)

// HistoryEntry is one recorded catalog mutation.
type HistoryEntry struct {
	ID        int           `json:"id"`
	ProductID int           `json:"product_id"`
	Action    HistoryAction `json:"action"`
	Title     string        `json:"title,omitempty"`
	CreatedAt string        `json:"created_at"`
}
