package serviceimpl

import (
	"strings"
	"sync"
)

// SessionLocks serializes cart load → change → save per session within this
// process. An entry only lives while someone holds or waits for it.
type SessionLocks struct {
	mu    sync.Mutex
	locks map[string]*sessionLock
}

type sessionLock struct {
	mu   sync.Mutex
	refs int
}

func NewSessionLocks() *SessionLocks {
	return &SessionLocks{locks: map[string]*sessionLock{}}
}

// Lock blocks until the session is free and returns its unlock func
func (l *SessionLocks) Lock(sessionID string) func() {
	l.mu.Lock()
	entry, ok := l.locks[sessionID]
	if !ok {
		entry = &sessionLock{}
		// the id may come from a reused request buffer
		sessionID = strings.Clone(sessionID)
		l.locks[sessionID] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()
	return func() {
		entry.mu.Unlock()

		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.locks, sessionID)
		}
		l.mu.Unlock()
	}
}

// Len reports how many sessions are currently held or awaited
func (l *SessionLocks) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
