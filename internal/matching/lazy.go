package matching

import (
	"context"
	"sync"
)

// lazy loads a value once. Concurrent callers block until the first load
// finishes. A failed load is not kept, so the next call tries again.
type lazy[T any] struct {
	mu   sync.Mutex
	done bool
	val  T
	load func(ctx context.Context) (T, error)
}

func newLazy[T any](load func(ctx context.Context) (T, error)) *lazy[T] {
	return &lazy[T]{load: load}
}

func (l *lazy[T]) get(ctx context.Context) (T, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.done {
		return l.val, nil
	}

	v, err := l.load(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	l.val, l.done = v, true
	return v, nil
}
