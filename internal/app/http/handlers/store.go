package handlers

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"freightquote/internal/domain/quote/workflow"
)

type session struct {
	id string
	wf *workflow.Workflow

	mu       sync.Mutex
	lastSeen time.Time
}

func (s *session) touch(t time.Time) {
	s.mu.Lock()
	s.lastSeen = t
	s.mu.Unlock()
}

func (s *session) idleSince(t time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return t.Sub(s.lastSeen)
}

// formStore keeps open forms in memory. Forms idle for longer than ttl
// are dropped when a new form is created.
type formStore struct {
	ttl time.Duration
	now func() time.Time

	mu       sync.RWMutex
	sessions map[string]*session
}

func newFormStore(ttl time.Duration) *formStore {
	return &formStore{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]*session),
	}
}

// add registers the workflow built for a fresh id.
func (s *formStore) add(build func(id string) *workflow.Workflow) *session {
	now := s.now()
	id := uuid.NewString()
	sess := &session{id: id, wf: build(id), lastSeen: now}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.evictLocked(now)
	s.sessions[sess.id] = sess
	return sess
}

func (s *formStore) get(id string) (*session, bool) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if ok {
		sess.touch(s.now())
	}
	return sess, ok
}

func (s *formStore) remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return false
	}
	delete(s.sessions, id)
	return true
}

func (s *formStore) len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// evictLocked drops idle sessions. A form with a submission in flight
// is kept.
func (s *formStore) evictLocked(now time.Time) int {
	if s.ttl <= 0 {
		return 0
	}
	n := 0
	for id, sess := range s.sessions {
		if sess.idleSince(now) > s.ttl && sess.wf.State() == workflow.StateIdle {
			delete(s.sessions, id)
			n++
		}
	}
	return n
}
