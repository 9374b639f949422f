package ui

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/taskboards/boards/internal/logger"
	"github.com/taskboards/boards/internal/storage"
)

// Session is one browser's screen state. All access goes through Do.
type Session struct {
	ID string

	mu          sync.Mutex
	list        *ListController
	initialized bool
	flash       string
	lastSeen    time.Time
}

// Do runs fn with the session locked, initialising the list on first use.
func (s *Session) Do(ctx context.Context, fn func(list *ListController) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		if err := s.list.Init(ctx); err != nil {
			return err
		}
		s.initialized = true
	}
	return fn(s.list)
}

// SetFlash stores a message shown once on the next render.
func (s *Session) SetFlash(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flash = msg
}

func (s *Session) TakeFlash() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	msg := s.flash
	s.flash = ""
	return msg
}

// Sessions keeps per-session state. Sessions idle longer than ttl are
// dropped, and once limit sessions exist the least recently used one makes
// room for a new one.
type Sessions struct {
	store storage.BoardStore
	ttl   time.Duration
	limit int
	now   func() time.Time

	mu        sync.Mutex
	sessions  map[string]*Session
	lastSweep time.Time
}

// NewSessions returns an empty registry. limit <= 0 means no cap.
func NewSessions(store storage.BoardStore, ttl time.Duration, limit int) *Sessions {
	return &Sessions{
		store:    store,
		ttl:      ttl,
		limit:    limit,
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
}

// Lookup returns the live session for id without creating one.
func (s *Sessions) Lookup(id string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweepLocked(now)
	return s.liveLocked(id, now)
}

// Get returns the session for id, or a fresh one with a new id when id is
// unknown or expired. The bool is true when a session was created.
func (s *Sessions) Get(id string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweepLocked(now)
	if sess, ok := s.liveLocked(id, now); ok {
		return sess, false
	}

	if s.limit > 0 && len(s.sessions) >= s.limit {
		s.evictOldestLocked()
	}
	sess := s.newSession(uuid.NewString())
	sess.lastSeen = now
	s.sessions[sess.ID] = sess
	logger.Log.Debug("ui session created", "session_id", sess.ID)
	return sess, true
}

// Transient returns a session that is never stored, for rendering the screen
// to a caller that has not acted yet. Its list starts empty: callers Refresh.
func (s *Sessions) Transient() *Session {
	sess := s.newSession("")
	sess.initialized = true
	return sess
}

func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Sessions) newSession(id string) *Session {
	return &Session{
		ID:   id,
		list: NewListController(s.store, NewEditor(s.store)),
	}
}

func (s *Sessions) liveLocked(id string, now time.Time) (*Session, bool) {
	sess, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	if s.expired(sess, now) {
		delete(s.sessions, id)
		logger.Log.Debug("ui session evicted", "session_id", id)
		return nil, false
	}
	sess.lastSeen = now
	return sess, true
}

func (s *Sessions) expired(sess *Session, now time.Time) bool {
	return s.ttl > 0 && now.Sub(sess.lastSeen) > s.ttl
}

// sweepLocked drops idle sessions at most once per ttl.
func (s *Sessions) sweepLocked(now time.Time) {
	if s.ttl <= 0 || now.Sub(s.lastSweep) < s.ttl {
		return
	}
	for id, sess := range s.sessions {
		if s.expired(sess, now) {
			delete(s.sessions, id)
			logger.Log.Debug("ui session evicted", "session_id", id)
		}
	}
	s.lastSweep = now
}

func (s *Sessions) evictOldestLocked() {
	var (
		oldestID string
		oldest   time.Time
	)
	for id, sess := range s.sessions {
		if oldestID == "" || sess.lastSeen.Before(oldest) {
			oldestID, oldest = id, sess.lastSeen
		}
	}
	if oldestID != "" {
		delete(s.sessions, oldestID)
		logger.Log.Debug("ui session evicted", "session_id", oldestID, "reason", "capacity")
	}
}
