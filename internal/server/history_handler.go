package server

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/lead-prospector/internal/types"
)

// HistoryStore is the database surface the history handlers need.
// *db.DB satisfies it.
type HistoryStore interface {
	AddSearchHistory(ctx context.Context, userID uuid.UUID, params types.SearchParams, resultCount int) error
	ListSearchHistory(ctx context.Context, userID uuid.UUID) ([]types.SearchHistoryItem, error)
	DeleteSearchHistory(ctx context.Context, id uuid.UUID) error
	ClearSearchHistory(ctx context.Context, userID uuid.UUID) error
}

// handleListHistory returns the user's search history, newest first.
func (s *Server) handleListHistory(w http.ResponseWriter, r *http.Request) {
	userID, err := s.authedUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	items, err := s.history.ListSearchHistory(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to list history")
		return
	}
	if items == nil {
		items = []types.SearchHistoryItem{}
	}

	s.jsonResponse(w, http.StatusOK, items)
}

// handleDeleteHistoryItem removes one history entry.
func (s *Server) handleDeleteHistoryItem(w http.ResponseWriter, r *http.Request) {
	if _, err := s.authedUserID(r); err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid history id")
		return
	}

	if err := s.history.DeleteSearchHistory(r.Context(), id); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to delete history item")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleClearHistory removes all of the user's history entries.
func (s *Server) handleClearHistory(w http.ResponseWriter, r *http.Request) {
	userID, err := s.authedUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := s.history.ClearSearchHistory(r.Context(), userID); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to clear history")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
