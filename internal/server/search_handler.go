package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/jonathan/lead-prospector/internal/export"
	"github.com/jonathan/lead-prospector/internal/filter"
	"github.com/jonathan/lead-prospector/internal/session"
	"github.com/jonathan/lead-prospector/internal/types"
)

// searchTimeout bounds one full accumulated search including retries,
// pagination pauses and deep-search site visits.
const searchTimeout = 5 * time.Minute

// searchStatusResponse is the payload of GET /search/status.
type searchStatusResponse struct {
	State          session.State         `json:"state"`
	Params         types.SearchParams    `json:"params"`
	Results        []types.ContactRecord `json:"results"`
	ResultCount    int                   `json:"resultCount"`
	ElapsedSeconds int                   `json:"elapsedSeconds"`
	LoadingMore    bool                  `json:"loadingMore"`
	Error          string                `json:"error,omitempty"`
	Notices        []string              `json:"notices,omitempty"`
	AvailableDDDs  []string              `json:"availableDdds,omitempty"`
}

// handleSearch starts a new search for the authenticated user. The search
// runs in the background; clients poll /search/status for progress. A user
// gets one search at a time: starting another while one is in flight is a
// conflict, not a supersede.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	userID, err := s.authedUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var params types.SearchParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	// Validate up front so the client gets a synchronous 400 instead of a
	// background error state.
	if err := params.Validate(); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	us := s.sessions.get(userID)
	if us.session.State() == session.StateSearching || us.session.IsLoadingMore() {
		busy := &ErrSearchBusy{}
		s.errorResponse(w, HTTPStatus(busy), busy.Error())
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), searchTimeout)
		defer cancel()
		if err := us.session.StartSearch(ctx, params); err != nil {
			log.Printf("[SERVER] search for %s failed validation: %v", userID, err)
		}
	}()

	s.jsonResponse(w, http.StatusAccepted, map[string]string{"state": string(session.StateSearching)})
}

// handleLoadMore fetches additional contacts for the user's current search.
// Calling it while a load-more is in flight cancels that round instead.
func (s *Server) handleLoadMore(w http.ResponseWriter, r *http.Request) {
	userID, err := s.authedUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	us := s.sessions.get(userID)
	if us.session.State() != session.StateResults {
		s.errorResponse(w, http.StatusConflict, "no completed search to extend")
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), searchTimeout)
		defer cancel()
		_ = us.session.LoadMore(ctx)
	}()

	s.jsonResponse(w, http.StatusAccepted, map[string]string{"state": string(session.StateResults)})
}

// handleSearchStatus returns a snapshot of the user's search session,
// optionally narrowed by result filters from the query string.
func (s *Server) handleSearchStatus(w http.ResponseWriter, r *http.Request) {
	userID, err := s.authedUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	us := s.sessions.get(userID)
	results := filter.Apply(us.session.Results(), filtersFromQuery(r))

	s.jsonResponse(w, http.StatusOK, searchStatusResponse{
		State:          us.session.State(),
		Params:         us.session.Params(),
		Results:        results,
		ResultCount:    len(results),
		ElapsedSeconds: us.session.ElapsedSeconds(),
		LoadingMore:    us.session.IsLoadingMore(),
		Error:          us.session.ErrorMessage(),
		Notices:        us.notices.Drain(),
		AvailableDDDs:  filter.AvailableDDDs(us.session.Results()),
	})
}

// handleExportCSV streams the current (optionally filtered) result set as
// a spreadsheet-friendly CSV download.
func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	userID, err := s.authedUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	us := s.sessions.get(userID)
	results := filter.Apply(us.session.Results(), filtersFromQuery(r))

	filename := fmt.Sprintf("leads_%s.csv", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := export.WriteCSV(w, results); err != nil {
		log.Printf("[SERVER] CSV export failed: %v", err)
	}
}

// filtersFromQuery builds result filters from the request's query string.
// Absent parameters leave the corresponding filter inactive.
func filtersFromQuery(r *http.Request) filter.Filters {
	q := r.URL.Query()
	f := filter.Filters{
		Name:     q.Get("name"),
		DDD:      q.Get("ddd"),
		WhatsApp: filter.WhatsAppMode(q.Get("whatsapp")),
		Rating:   filter.RatingMode(q.Get("rating")),
	}
	if v := q.Get("minReviews"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			f.MinReviews = n
		}
	}
	return f
}
