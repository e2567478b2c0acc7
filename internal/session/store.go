package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"exmplr-agent/internal/trials"
	apperrors "exmplr-agent/pkg/errors"
)

// Store holds all live sessions in memory, keyed by UUID. Sessions last for
// the process lifetime; there is no persistence across restarts.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewStore constructs an empty session store.
func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

// Create registers a new session with a fresh parameter set.
func (st *Store) Create() *Session {
	sess := &Session{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
		Params:    trials.DefaultParams(),
	}
	st.mu.Lock()
	st.sessions[sess.ID] = sess
	st.mu.Unlock()
	return sess
}

// Get returns the session for id or a not-found error.
func (st *Store) Get(id string) (*Session, error) {
	st.mu.RLock()
	sess, ok := st.sessions[id]
	st.mu.RUnlock()
	if !ok {
		return nil, apperrors.NewNotFoundError("session not found: " + id)
	}
	return sess, nil
}
