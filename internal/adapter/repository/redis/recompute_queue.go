package redis

import (
	"context"
	"sort"

	"github.com/redis/go-redis/v9"
)

// RecomputeQueue keeps pending budget recompute keys in a Redis set so that
// every instance drains the same backlog and duplicates collapse.
type RecomputeQueue struct {
	client redis.UniversalClient
	key    string
}

// NewRecomputeQueue creates a queue backed by a single Redis set.
func NewRecomputeQueue(client redis.UniversalClient) *RecomputeQueue {
	return &RecomputeQueue{
		client: client,
		key:    "budgetledger:recompute:pending",
	}
}

// Push adds keys to the set.
func (q *RecomputeQueue) Push(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	members := make([]any, len(keys))
	for i, k := range keys {
		members[i] = k
	}
	return q.client.SAdd(ctx, q.key, members...).Err()
}

// Pop removes up to max keys. Keys come back sorted; which keys are taken
// from a larger set is up to Redis.
func (q *RecomputeQueue) Pop(ctx context.Context, max int) ([]string, error) {
	if max <= 0 {
		n, err := q.client.SCard(ctx, q.key).Result()
		if err != nil {
			return nil, err
		}
		max = int(n)
	}
	if max == 0 {
		return nil, nil
	}

	keys, err := q.client.SPopN(ctx, q.key, int64(max)).Result()
	if err != nil && err != redis.Nil {
		return nil, err
	}
	sort.Strings(keys)
	return keys, nil
}

// Len returns the number of queued keys.
func (q *RecomputeQueue) Len(ctx context.Context) (int64, error) {
	return q.client.SCard(ctx, q.key).Result()
}
