package assistant

import (
	"github.com/google/uuid"

	"tailortalk/internal/core"
)

// Role tags a conversation turn with its speaker.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one conversation entry.
type Turn struct {
	Role Role
	Text string
}

// Session holds all conversation-scoped state: the append-only
// transcript and the single pending-booking slot awaiting confirmation.
// One session serves one conversation; nothing survives the process.
type Session struct {
	ID      string
	history []Turn
	pending *core.Interval
}

// NewSession creates an empty session with a fresh ID.
func NewSession() *Session {
	return &Session{ID: uuid.NewString()}
}

// History returns the transcript in order.
func (s *Session) History() []Turn {
	return s.history
}

// Pending returns the unconfirmed proposal, if one exists.
func (s *Session) Pending() (core.Interval, bool) {
	if s.pending == nil {
		return core.Interval{}, false
	}
	return *s.pending, true
}

func (s *Session) append(role Role, text string) {
	s.history = append(s.history, Turn{Role: role, Text: text})
}

// setPending stores a new proposal, returning the slot it displaced.
func (s *Session) setPending(iv core.Interval) (core.Interval, bool) {
	prev := s.pending
	s.pending = &iv
	if prev == nil {
		return core.Interval{}, false
	}
	return *prev, true
}

func (s *Session) clearPending() {
	s.pending = nil
}
