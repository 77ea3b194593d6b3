package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/lead-prospector/internal/types"
)

func TestHandleListHistory_EmptyHistoryIsEmptyArray(t *testing.T) {
	s := testServer(&stubSearcher{}, &fakeHistoryStore{})
	defer s.sessions.closeAll()

	rec := httptest.NewRecorder()
	s.handleListHistory(rec, authedRequest("GET", "/history", nil, uuid.New()))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestHandleListHistory_ReturnsItems(t *testing.T) {
	history := &fakeHistoryStore{}
	s := testServer(&stubSearcher{}, history)
	defer s.sessions.closeAll()

	userID := uuid.New()
	require.NoError(t, history.AddSearchHistory(
		t.Context(),
		userID,
		types.SearchParams{Location: "Campinas, SP", Niche: "padaria"},
		12,
	))

	rec := httptest.NewRecorder()
	s.handleListHistory(rec, authedRequest("GET", "/history", nil, userID))

	require.Equal(t, http.StatusOK, rec.Code)
	var items []types.SearchHistoryItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, 12, items[0].ResultCount)
	assert.Equal(t, "padaria", items[0].Params.Niche)
}

func TestHandleDeleteHistoryItem(t *testing.T) {
	history := &fakeHistoryStore{}
	s := testServer(&stubSearcher{}, history)
	defer s.sessions.closeAll()

	itemID := uuid.New()
	req := authedRequest("DELETE", "/history/"+itemID.String(), nil, uuid.New())
	req.SetPathValue("id", itemID.String())
	rec := httptest.NewRecorder()
	s.handleDeleteHistoryItem(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	require.Len(t, history.deleted, 1)
	assert.Equal(t, itemID, history.deleted[0])
}

func TestHandleDeleteHistoryItem_InvalidID(t *testing.T) {
	s := testServer(&stubSearcher{}, &fakeHistoryStore{})
	defer s.sessions.closeAll()

	req := authedRequest("DELETE", "/history/abc", nil, uuid.New())
	req.SetPathValue("id", "abc")
	rec := httptest.NewRecorder()
	s.handleDeleteHistoryItem(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleClearHistory(t *testing.T) {
	history := &fakeHistoryStore{}
	s := testServer(&stubSearcher{}, history)
	defer s.sessions.closeAll()

	rec := httptest.NewRecorder()
	s.handleClearHistory(rec, authedRequest("DELETE", "/history", nil, uuid.New()))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.True(t, history.cleared)
}
