package types

import (
	"time"

	"github.com/google/uuid"
)

// SearchHistoryItem records one successful search for the history drawer.
// Items are created once and never mutated; the user deletes them
// individually or in bulk.
type SearchHistoryItem struct {
	ID          uuid.UUID    `json:"id"`
	UserID      uuid.UUID    `json:"user_id"`
	Timestamp   time.Time    `json:"timestamp"`
	Params      SearchParams `json:"params"`
	ResultCount int          `json:"resultCount"`
}
