// Package session owns the UI-facing search lifecycle: the state machine,
// elapsed-time tracking, cooperative cancellation via a monotonic request
// id, and the history notification on successful searches.
package session

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/lead-prospector/internal/types"
)

// State is the session's top-level search state.
type State string

// Session states.
const (
	StateIdle      State = "IDLE"
	StateSearching State = "SEARCHING"
	StateResults   State = "RESULTS"
	StateError     State = "ERROR"
)

// genericUpstreamMessage replaces opaque error payloads ({} and friends)
// that would otherwise surface unreadable text to the user.
const genericUpstreamMessage = "Ocorreu um erro interno na API. Tente novamente."

// Searcher runs one accumulated search. *prospect.Accumulator satisfies it.
type Searcher interface {
	Search(ctx context.Context, params types.SearchParams) ([]types.ContactRecord, error)
}

// Recorder persists successful searches to the user's history. Calls are
// fire-and-forget; the session never blocks on history writes.
type Recorder interface {
	Add(ctx context.Context, userID uuid.UUID, params types.SearchParams, resultCount int) error
}

// Notifier receives informational notices (e.g. "no new contacts found")
// that are not state transitions.
type Notifier interface {
	Notify(message string)
}

// Options configures a session.
type Options struct {
	// TickInterval controls the elapsed-seconds resolution; tests shrink it.
	TickInterval time.Duration
}

// Session tracks one user's search lifecycle. Methods are safe for
// concurrent use; the in-flight result set belongs exclusively to the
// active search call until it resolves or is confirmed stale.
type Session struct {
	searcher Searcher
	history  Recorder
	notifier Notifier
	userID   uuid.UUID

	mu          sync.Mutex
	state       State
	params      types.SearchParams
	results     []types.ContactRecord
	errMsg      string
	elapsed     int
	loadingMore bool
	requestID   uint64

	tickInterval time.Duration
	done         chan struct{}
	closeOnce    sync.Once
}

// New creates an idle session for the given user. The caller must Close the
// session to release the elapsed-time ticker.
func New(userID uuid.UUID, searcher Searcher, history Recorder, notifier Notifier, opts *Options) *Session {
	interval := time.Second
	if opts != nil && opts.TickInterval > 0 {
		interval = opts.TickInterval
	}

	s := &Session{
		searcher:     searcher,
		history:      history,
		notifier:     notifier,
		userID:       userID,
		state:        StateIdle,
		tickInterval: interval,
		done:         make(chan struct{}),
	}
	go s.tick()
	return s
}

// Close stops the elapsed-time ticker.
func (s *Session) Close() {
	s.closeOnce.Do(func() { close(s.done) })
}

// tick increments the elapsed counter once per interval while a search or
// load-more is in flight. It stops counting (without resetting) on terminal
// states; StartSearch resets the counter.
func (s *Session) tick() {
	ticker := time.NewTicker(s.tickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.mu.Lock()
			if s.state == StateSearching || s.loadingMore {
				s.elapsed++
			}
			s.mu.Unlock()
		}
	}
}

// State returns the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Results returns a snapshot of the current result set.
func (s *Session) Results() []types.ContactRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]types.ContactRecord, len(s.results))
	copy(out, s.results)
	return out
}

// ErrorMessage returns the normalized message from the last failure.
func (s *Session) ErrorMessage() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}

// ElapsedSeconds returns the elapsed time of the current or last search.
func (s *Session) ElapsedSeconds() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.elapsed
}

// IsLoadingMore reports whether a pagination round is in flight.
func (s *Session) IsLoadingMore() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadingMore
}

// Params returns the params of the current search.
func (s *Session) Params() types.SearchParams {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.params
}

// StartSearch runs a brand-new search. Missing required inputs return a
// validation error without any state change. The call blocks until the
// search resolves; it supersedes any in-flight load-more work.
func (s *Session) StartSearch(ctx context.Context, params types.SearchParams) error {
	if err := params.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	s.requestID++
	thisRequest := s.requestID
	s.state = StateSearching
	s.params = params
	s.results = nil
	s.errMsg = ""
	s.elapsed = 0
	s.loadingMore = false
	s.mu.Unlock()

	data, err := s.searcher.Search(ctx, params)

	s.mu.Lock()
	defer s.mu.Unlock()
	if thisRequest != s.requestID {
		// A newer search superseded this one; discard silently.
		return nil
	}

	if err != nil {
		s.state = StateError
		s.errMsg = normalizeErrorMessage(err)
		return nil
	}

	s.results = data
	s.state = StateResults
	if len(data) > 0 {
		s.recordHistory(params, len(data))
	}
	return nil
}

// LoadMore fetches additional contacts, excluding everything already
// collected. Only meaningful from the Results state. Invoking it while a
// load-more is already in flight acts as a cancel: the stale call's result
// is discarded when it resolves.
func (s *Session) LoadMore(ctx context.Context) error {
	s.mu.Lock()
	if s.state != StateResults {
		s.mu.Unlock()
		return nil
	}
	if s.loadingMore {
		// Cancel: invalidate the in-flight call and keep what we have.
		s.requestID++
		s.loadingMore = false
		s.mu.Unlock()
		return nil
	}

	s.requestID++
	thisRequest := s.requestID
	s.loadingMore = true

	currentNames := make([]string, len(s.results))
	for i, c := range s.results {
		currentNames[i] = c.Name
	}
	params := s.params.WithExcludeNames(currentNames)
	s.mu.Unlock()

	data, err := s.searcher.Search(ctx, params)

	s.mu.Lock()
	defer s.mu.Unlock()
	if thisRequest != s.requestID {
		// Superseded by a cancel or a new search; discard silently.
		return nil
	}
	s.loadingMore = false

	if err != nil {
		// Load-more failures keep the collected data and the Results state.
		s.notify("Erro ao carregar mais: " + normalizeErrorMessage(err))
		return nil
	}

	if len(data) == 0 {
		s.notify("Não foram encontrados novos contatos mesmo expandindo a área.")
		return nil
	}

	s.results = append(s.results, data...)
	s.recordHistory(s.params, len(s.results))
	return nil
}

// recordHistory notifies the history collaborator without blocking the
// session; persistence is eventually consistent. Callers hold s.mu.
func (s *Session) recordHistory(params types.SearchParams, count int) {
	if s.history == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.history.Add(ctx, s.userID, params, count); err != nil {
			log.Printf("[SESSION] failed to record history: %v", err)
		}
	}()
}

func (s *Session) notify(message string) {
	if s.notifier != nil {
		s.notifier.Notify(message)
	}
}

// normalizeErrorMessage reduces any failure to a human-readable string.
// Opaque or empty payloads are replaced with a generic upstream message.
func normalizeErrorMessage(err error) string {
	msg := strings.TrimSpace(err.Error())
	if msg == "" || msg == "{}" || msg == "[object Object]" {
		return genericUpstreamMessage
	}
	return msg
}
