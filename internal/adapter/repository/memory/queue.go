package memory

import (
	"context"
	"sort"
	"sync"
)

// RecomputeQueue is an in-process set of pending budget recompute keys.
type RecomputeQueue struct {
	mu   sync.Mutex
	keys map[string]struct{}
}

// NewRecomputeQueue creates an empty queue.
func NewRecomputeQueue() *RecomputeQueue {
	return &RecomputeQueue{keys: make(map[string]struct{})}
}

// Push adds keys to the queue.
func (q *RecomputeQueue) Push(_ context.Context, keys ...string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, k := range keys {
		q.keys[k] = struct{}{}
	}
	return nil
}

// Pop removes and returns up to max keys in lexical order.
func (q *RecomputeQueue) Pop(_ context.Context, max int) ([]string, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := make([]string, 0, len(q.keys))
	for k := range q.keys {
		out = append(out, k)
	}
	sort.Strings(out)
	if max > 0 && len(out) > max {
		out = out[:max]
	}
	for _, k := range out {
		delete(q.keys, k)
	}
	return out, nil
}

// Len returns the number of queued keys.
func (q *RecomputeQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.keys)
}
