package usecase

import (
	"context"
	"sync"
)

// itemLocks serializes operations per key. Entries are dropped once nobody holds or
// waits for them.
type itemLocks struct {
	mu      sync.Mutex
	entries map[string]*itemLock
}

type itemLock struct {
	sem  chan struct{}
	refs int
}

func newItemLocks() *itemLocks {
	return &itemLocks{entries: make(map[string]*itemLock)}
}

// Lock waits for key or for ctx to be done. The returned func releases the key.
func (l *itemLocks) Lock(ctx context.Context, key string) (func(), error) {
	l.mu.Lock()
	e, ok := l.entries[key]
	if !ok {
		e = &itemLock{sem: make(chan struct{}, 1)}
		l.entries[key] = e
	}
	e.refs++
	l.mu.Unlock()

	select {
	case e.sem <- struct{}{}:
	case <-ctx.Done():
		l.release(key, e)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-e.sem
			l.release(key, e)
		})
	}, nil
}

func (l *itemLocks) release(key string, e *itemLock) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e.refs--
	if e.refs == 0 {
		delete(l.entries, key)
	}
}

func (l *itemLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
