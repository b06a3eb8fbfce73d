package service

import (
	"sync"
)

// clientLocks serializes mutations per client. Set and exercise renumbering
// is not commutative, so at most one in-flight mutation may touch a given
// client's sessions at a time; different clients proceed independently.
// Locks are never removed: the registry grows with the roster, which is
// bounded for a coaching service.
type clientLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newClientLocks() *clientLocks {
	return &clientLocks{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for the given client id and returns the unlock
// function.
func (c *clientLocks) Lock(clientID string) func() {
	c.mu.Lock()
	lock, ok := c.locks[clientID]
	if !ok {
		lock = &sync.Mutex{}
		c.locks[clientID] = lock
	}
	c.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}
