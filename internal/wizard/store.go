package wizard

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Store is the in-memory registry of running wizard sessions, keyed by the
// wizard ID kept in the browser session. Sessions are not persisted; an
// evicted or torn-down session is gone, which matches the single-session
// lifetime of the conversation.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*storeEntry
	cfg      Config
	ttl      time.Duration
	logger   *slog.Logger
}

type storeEntry struct {
	session  *Session
	lastSeen time.Time
}

// NewStore creates a session registry. Sessions idle longer than ttl are
// closed and dropped by the cleanup loop.
func NewStore(cfg Config, ttl time.Duration, logger *slog.Logger) *Store {
	return &Store{
		sessions: make(map[string]*storeEntry),
		cfg:      cfg,
		ttl:      ttl,
		logger:   logger.With("source", "wizard.Store"),
	}
}

// GetOrCreate returns the session for id, starting a fresh conversation when
// none exists.
func (st *Store) GetOrCreate(id string) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()
	entry, ok := st.sessions[id]
	if !ok {
		entry = &storeEntry{session: NewSession(st.cfg)}
		st.sessions[id] = entry
	}
	entry.lastSeen = time.Now()
	return entry.session
}

// Get returns the session for id if one exists.
func (st *Store) Get(id string) (*Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	entry, ok := st.sessions[id]
	if !ok {
		return nil, false
	}
	entry.lastSeen = time.Now()
	return entry.session, true
}

// Remove tears down the session for id, cancelling its scheduled turns.
func (st *Store) Remove(id string) {
	st.mu.Lock()
	entry, ok := st.sessions[id]
	delete(st.sessions, id)
	st.mu.Unlock()
	if ok {
		entry.session.Close()
	}
}

// Len returns the number of live sessions.
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// StartCleanup sweeps idle sessions until ctx is cancelled. Call it in a
// goroutine.
func (st *Store) StartCleanup(ctx context.Context, interval time.Duration) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-time.After(interval):
			removed := st.removeExpired()
			if removed > 0 {
				st.logger.LogAttrs(ctx, slog.LevelInfo, "cleaned up idle wizard sessions",
					slog.Int("removed", removed))
			}
		}
	}
}

func (st *Store) removeExpired() int {
	cutoff := time.Now().Add(-st.ttl)
	var expired []*Session
	st.mu.Lock()
	for id, entry := range st.sessions {
		if entry.lastSeen.Before(cutoff) {
			expired = append(expired, entry.session)
			delete(st.sessions, id)
		}
	}
	st.mu.Unlock()
	for _, session := range expired {
		session.Close()
	}
	return len(expired)
}
