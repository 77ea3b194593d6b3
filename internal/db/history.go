package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jonathan/lead-prospector/internal/types"
)

// historyLimit caps how many history items are listed per user, matching
// the history drawer's retention policy.
const historyLimit = 50

// AddSearchHistory records one successful search for a user. The params
// snapshot is stored as JSONB.
func (db *DB) AddSearchHistory(ctx context.Context, userID uuid.UUID, params types.SearchParams, resultCount int) error {
	paramsJSON, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("failed to marshal search params: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO search_history (id, user_id, params, result_count)
		 VALUES ($1, $2, $3, $4)`,
		uuid.New(), userID, paramsJSON, resultCount,
	)
	if err != nil {
		return fmt.Errorf("failed to add search history: %w", err)
	}
	return nil
}

// ListSearchHistory returns a user's history, newest first, capped at the
// drawer's retention limit.
func (db *DB) ListSearchHistory(ctx context.Context, userID uuid.UUID) ([]types.SearchHistoryItem, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, params, result_count, created_at
		 FROM search_history
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		userID, historyLimit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list search history: %w", err)
	}
	defer rows.Close()

	var items []types.SearchHistoryItem
	for rows.Next() {
		var item types.SearchHistoryItem
		var paramsJSON []byte
		if err := rows.Scan(&item.ID, &item.UserID, &paramsJSON, &item.ResultCount, &item.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		if err := json.Unmarshal(paramsJSON, &item.Params); err != nil {
			return nil, fmt.Errorf("failed to unmarshal search params: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read history rows: %w", err)
	}

	return items, nil
}

// DeleteSearchHistory removes a single history item.
func (db *DB) DeleteSearchHistory(ctx context.Context, id uuid.UUID) error {
	_, err := db.pool.Exec(ctx, `DELETE FROM search_history WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete history item: %w", err)
	}
	return nil
}

// ClearSearchHistory removes all of a user's history.
func (db *DB) ClearSearchHistory(ctx context.Context, userID uuid.UUID) error {
	_, err := db.pool.Exec(ctx, `DELETE FROM search_history WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}
