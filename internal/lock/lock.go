package lock

import (
	"context"
	"errors"
	"sync"
	"time"
)

var ErrTimeout = errors.New("lock wait timed out")

// Locker hands out exclusive, per-key critical sections.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

// Local keeps one single-slot channel per key, so waiting can be bounded by a
// timer or the caller's context.
type Local struct {
	wait time.Duration

	mu    sync.Mutex
	slots map[string]chan struct{}
}

// NewLocal returns a Locker whose Lock gives up after wait. A non-positive
// wait means only ctx bounds the wait.
func NewLocal(wait time.Duration) *Local {
	return &Local{wait: wait, slots: make(map[string]chan struct{})}
}

func (l *Local) slot(key string) chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	s, ok := l.slots[key]
	if !ok {
		s = make(chan struct{}, 1)
		l.slots[key] = s
	}
	return s
}

func (l *Local) Lock(ctx context.Context, key string) (func(), error) {
	s := l.slot(key)

	// fast path
	select {
	case s <- struct{}{}:
		return release(s), nil
	default:
	}

	var timeout <-chan time.Time
	if l.wait > 0 {
		t := time.NewTimer(l.wait)
		defer t.Stop()
		timeout = t.C
	}
	select {
	case s <- struct{}{}:
		return release(s), nil
	case <-timeout:
		return nil, ErrTimeout
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func release(s chan struct{}) func() {
	var once sync.Once
	return func() { once.Do(func() { <-s }) }
}
