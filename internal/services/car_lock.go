package services

import "sync"

// carLocks serializes the availability check and insert for a single car so
// two concurrent bookings for the same car and overlapping dates cannot both
// pass the overlap count. Different cars proceed independently.
type carLocks struct {
	mu    sync.Mutex
	locks map[string]*carLock
}

type carLock struct {
	mu   sync.Mutex
	refs int
}

func newCarLocks() *carLocks {
	return &carLocks{locks: make(map[string]*carLock)}
}

func (c *carLocks) Lock(key string) {
	c.mu.Lock()
	l, ok := c.locks[key]
	if !ok {
		l = &carLock{}
		c.locks[key] = l
	}
	l.refs++
	c.mu.Unlock()

	l.mu.Lock()
}

func (c *carLocks) Unlock(key string) {
	c.mu.Lock()
	l := c.locks[key]
	l.refs--
	if l.refs == 0 {
		delete(c.locks, key)
	}
	c.mu.Unlock()

	l.mu.Unlock()
}
