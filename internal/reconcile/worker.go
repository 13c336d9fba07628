package reconcile

import (
	"context"
	"log/slog"
	"time"

	"github.com/thalha-dev/vouge-vista/internal/imagestore"
)

const maxAttempts = 10

// Worker drains the reconciliation queue in the background, retrying asset
// deletes that failed during request handling.
type Worker struct {
	queue    Queue
	store    imagestore.Store
	logger   *slog.Logger
	interval time.Duration
}

// NewWorker creates a reconciliation worker that polls the queue at the given
// interval.
func NewWorker(queue Queue, store imagestore.Store, logger *slog.Logger, interval time.Duration) *Worker {
	return &Worker{
		queue:    queue,
		store:    store,
		logger:   logger,
		interval: interval,
	}
}

// Run polls the queue until the context is cancelled.
func (w *Worker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.drain(ctx)
		}
	}
}

// drain processes every task currently queued. Tasks that fail again are
// re-enqueued with their attempt count incremented, until maxAttempts.
func (w *Worker) drain(ctx context.Context) {
	n, err := w.queue.Len(ctx)
	if err != nil {
		w.logger.ErrorContext(ctx, "reconcile queue length failed", slog.Any("error", err))
		return
	}

	for i := 0; i < n; i++ {
		task, err := w.queue.Dequeue(ctx)
		if err != nil {
			w.logger.ErrorContext(ctx, "reconcile dequeue failed", slog.Any("error", err))
			return
		}
		if task == nil {
			return
		}

		if err := w.store.Delete(ctx, task.AssetID); err != nil {
			task.Attempts++
			if task.Attempts >= maxAttempts {
				w.logger.ErrorContext(ctx, "dropping asset delete after max attempts",
					slog.String("asset_id", task.AssetID),
					slog.String("shoe_id", task.ShoeID),
					slog.Int("attempts", task.Attempts),
				)
				continue
			}

			w.logger.WarnContext(ctx, "asset delete failed, re-queueing",
				slog.String("asset_id", task.AssetID),
				slog.Int("attempts", task.Attempts),
				slog.Any("error", err),
			)
			if err := w.queue.Enqueue(ctx, task); err != nil {
				w.logger.ErrorContext(ctx, "reconcile re-enqueue failed", slog.Any("error", err))
			}
			continue
		}

		w.logger.InfoContext(ctx, "orphaned asset deleted",
			slog.String("asset_id", task.AssetID),
			slog.String("shoe_id", task.ShoeID),
		)
	}
}
