// Package session holds per-session state shared across command invocations.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// State is the mutable state of one interactive session. The unattended flag
// is monotonic: once promoted it stays set until a new session starts. Reads
// and the single promotion write are mutex-guarded so concurrent command
// invocations cannot race.
type State struct {
	id        string
	startedAt time.Time

	mu         sync.Mutex
	unattended bool
}

// New creates a fresh session with unattended mode off.
func New() *State {
	return &State{
		id:        uuid.NewString(),
		startedAt: time.Now(),
	}
}

// ID returns the session's unique identifier.
func (s *State) ID() string {
	return s.id
}

// StartedAt returns when the session began.
func (s *State) StartedAt() time.Time {
	return s.startedAt
}

// Unattended reports whether the session has been promoted to unattended mode.
func (s *State) Unattended() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.unattended
}

// Promote switches the session into unattended mode. There is no demotion;
// the flag resets only by starting a new session.
func (s *State) Promote() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.unattended = true
}
