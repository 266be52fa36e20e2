package services

import (
	"sync"

	"github.com/lucasb/storyquest/internal/puzzle"
)

// session is one live puzzle attempt. Sessions exist only in memory; a
// restart or navigation discards them.
type session struct {
	id        string
	profileID int64
	sceneID   string
	attempt   *puzzle.Attempt
}

// sessionStore holds live sessions. A profile has at most one active puzzle
// at a time; starting a new one replaces the old.
type sessionStore struct {
	mu        sync.Mutex
	byID      map[string]*session
	byProfile map[int64]string
}

func newSessionStore() *sessionStore {
	return &sessionStore{
		byID:      make(map[string]*session),
		byProfile: make(map[int64]string),
	}
}

func (st *sessionStore) put(s *session) {
	st.mu.Lock()
	defer st.mu.Unlock()
	if old, ok := st.byProfile[s.profileID]; ok {
		delete(st.byID, old)
	}
	st.byID[s.id] = s
	st.byProfile[s.profileID] = s.id
}

func (st *sessionStore) get(id string) (*session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.byID[id]
	return s, ok
}

func (st *sessionStore) remove(id string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	if s, ok := st.byID[id]; ok {
		delete(st.byProfile, s.profileID)
		delete(st.byID, id)
	}
}

func (st *sessionStore) removeProfile(profileID int64) {
	st.mu.Lock()
	defer st.mu.Unlock()
	if id, ok := st.byProfile[profileID]; ok {
		delete(st.byID, id)
		delete(st.byProfile, profileID)
	}
}
