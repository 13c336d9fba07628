package memory

import (
	"context"
	"sync"

	"github.com/thalha-dev/vouge-vista/internal/reconcile"
)

// Queue implements reconcile.Queue using an in-memory slice. Tasks are lost
// on process exit; it exists for local runs and tests.
type Queue struct {
	mu    sync.Mutex
	tasks []*reconcile.Task
}

// NewQueue creates a new in-memory reconciliation queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Enqueue appends a task.
func (q *Queue) Enqueue(_ context.Context, task *reconcile.Task) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.tasks = append(q.tasks, task)
	return nil
}

// Dequeue pops the oldest task, or returns (nil, nil) when empty.
func (q *Queue) Dequeue(_ context.Context) (*reconcile.Task, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.tasks) == 0 {
		return nil, nil
	}

	task := q.tasks[0]
	q.tasks = q.tasks[1:]
	return task, nil
}

// Len reports the number of pending tasks.
func (q *Queue) Len(_ context.Context) (int, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tasks), nil
}
