package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/thalha-dev/vouge-vista/internal/reconcile"
)

const queueKey = "reconcile:asset-deletes"

// Queue implements reconcile.Queue using a Redis list. Tasks survive process
// restarts, so an asset-delete that failed mid-request is still retried after
// a redeploy.
type Queue struct {
	client *redis.Client
}

// NewQueue creates a new Redis-backed reconciliation queue.
func NewQueue(client *redis.Client) *Queue {
	return &Queue{client: client}
}

// Enqueue appends a task to the tail of the list.
func (q *Queue) Enqueue(ctx context.Context, task *reconcile.Task) error {
	data, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("marshal reconcile task: %w", err)
	}

	if err := q.client.RPush(ctx, queueKey, data).Err(); err != nil {
		return fmt.Errorf("redis rpush reconcile task: %w", err)
	}

	return nil
}

// Dequeue pops the oldest task from the head of the list.
func (q *Queue) Dequeue(ctx context.Context) (*reconcile.Task, error) {
	data, err := q.client.LPop(ctx, queueKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("redis lpop reconcile task: %w", err)
	}

	var task reconcile.Task
	if err := json.Unmarshal(data, &task); err != nil {
		return nil, fmt.Errorf("unmarshal reconcile task: %w", err)
	}

	return &task, nil
}

// Len reports the number of pending tasks.
func (q *Queue) Len(ctx context.Context) (int, error) {
	n, err := q.client.LLen(ctx, queueKey).Result()
	if err != nil {
		return 0, fmt.Errorf("redis llen reconcile queue: %w", err)
	}
	return int(n), nil
}
