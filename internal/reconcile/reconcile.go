package reconcile

import (
	"context"
	"time"
)

// Task is one asset-delete that failed against the image store and should be
// retried until it succeeds.
type Task struct {
	AssetID    string    `json:"asset_id"`
	ShoeID     string    `json:"shoe_id"`
	Attempts   int       `json:"attempts"`
	EnqueuedAt time.Time `json:"enqueued_at"`
}

// Queue holds asset-delete tasks pending reconciliation.
type Queue interface {
	// Enqueue appends a task to the queue.
	Enqueue(ctx context.Context, task *Task) error

	// Dequeue pops the oldest task, or returns (nil, nil) when the queue is
	// empty.
	Dequeue(ctx context.Context) (*Task, error)

	// Len reports the number of pending tasks.
	Len(ctx context.Context) (int, error)
}
