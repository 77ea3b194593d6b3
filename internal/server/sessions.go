package server

import (
	"sync"

	"github.com/google/uuid"

	"github.com/jonathan/lead-prospector/internal/session"
)

// maxNotices caps the buffered informational messages per session.
const maxNotices = 20

// noticeBuffer collects session notices so the status endpoint can hand
// them to the client. Reading drains the buffer.
type noticeBuffer struct {
	mu       sync.Mutex
	messages []string
}

// Notify implements session.Notifier.
func (b *noticeBuffer) Notify(message string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.messages = append(b.messages, message)
	if len(b.messages) > maxNotices {
		b.messages = b.messages[len(b.messages)-maxNotices:]
	}
}

// Drain returns and clears the buffered notices.
func (b *noticeBuffer) Drain() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := b.messages
	b.messages = nil
	return out
}

// userSession pairs one user's search session with its notice buffer.
type userSession struct {
	session *session.Session
	notices *noticeBuffer
}

// sessionRegistry lazily creates one search session per authenticated user.
type sessionRegistry struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*userSession
	factory  func(userID uuid.UUID, notifier session.Notifier) *session.Session
}

func newSessionRegistry(factory func(userID uuid.UUID, notifier session.Notifier) *session.Session) *sessionRegistry {
	return &sessionRegistry{
		sessions: make(map[uuid.UUID]*userSession),
		factory:  factory,
	}
}

// get returns the user's session, creating it on first use.
func (r *sessionRegistry) get(userID uuid.UUID) *userSession {
	r.mu.Lock()
	defer r.mu.Unlock()
	if us, ok := r.sessions[userID]; ok {
		return us
	}
	notices := &noticeBuffer{}
	us := &userSession{
		session: r.factory(userID, notices),
		notices: notices,
	}
	r.sessions[userID] = us
	return us
}

// closeAll shuts down every session's ticker.
func (r *sessionRegistry) closeAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, us := range r.sessions {
		us.session.Close()
	}
	r.sessions = make(map[uuid.UUID]*userSession)
}
