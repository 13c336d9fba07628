package reconcile_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thalha-dev/vouge-vista/internal/imagestore"
	"github.com/thalha-dev/vouge-vista/internal/reconcile"
	"github.com/thalha-dev/vouge-vista/internal/reconcile/memory"
)

// flakyStore fails Delete a fixed number of times before succeeding.
type flakyStore struct {
	mu       sync.Mutex
	failures int
	deleted  []string
}

func (s *flakyStore) Upload(context.Context, *imagestore.UploadInput) (*imagestore.UploadResult, error) {
	return nil, errors.New("not implemented")
}

func (s *flakyStore) Delete(_ context.Context, assetID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failures > 0 {
		s.failures--
		return errors.New("store unavailable")
	}
	s.deleted = append(s.deleted, assetID)
	return nil
}

func (s *flakyStore) deletedAssets() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.deleted...)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestWorker_DeletesQueuedAssets(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	queue := memory.NewQueue()
	store := &flakyStore{}
	require.NoError(t, queue.Enqueue(ctx, &reconcile.Task{AssetID: "asset-1", ShoeID: "shoe-1"}))
	require.NoError(t, queue.Enqueue(ctx, &reconcile.Task{AssetID: "asset-2", ShoeID: "shoe-1"}))

	worker := reconcile.NewWorker(queue, store, testLogger(), 10*time.Millisecond)
	go worker.Run(ctx)

	assert.Eventually(t, func() bool {
		return len(store.deletedAssets()) == 2
	}, time.Second, 10*time.Millisecond)

	n, err := queue.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestWorker_RequeuesOnFailure(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	queue := memory.NewQueue()
	store := &flakyStore{failures: 2}
	require.NoError(t, queue.Enqueue(ctx, &reconcile.Task{AssetID: "asset-1", ShoeID: "shoe-1"}))

	worker := reconcile.NewWorker(queue, store, testLogger(), 10*time.Millisecond)
	go worker.Run(ctx)

	// The task survives two failed attempts and lands on the third.
	assert.Eventually(t, func() bool {
		deleted := store.deletedAssets()
		return len(deleted) == 1 && deleted[0] == "asset-1"
	}, time.Second, 10*time.Millisecond)
}

func TestWorker_StopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	queue := memory.NewQueue()
	worker := reconcile.NewWorker(queue, &flakyStore{}, testLogger(), time.Millisecond)

	done := make(chan struct{})
	go func() {
		worker.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop after context cancel")
	}
}
