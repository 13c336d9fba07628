package catalog

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thalha-dev/vouge-vista/client/auth"
)

// stubRefresher hands out sequential tokens and counts calls.
type stubRefresher struct {
	calls atomic.Int32
	err   error
}

func (r *stubRefresher) Refresh(context.Context) (*auth.Session, error) {
	r.calls.Add(1)
	if r.err != nil {
		return nil, r.err
	}
	return &auth.Session{AccessToken: "fresh-token", UserID: "user-1"}, nil
}

func newTestClient(serverURL string, refresher auth.Refresher) (*Client, *auth.Store) {
	store := auth.NewStore(&auth.Session{AccessToken: "stale-token", UserID: "user-1"})
	return New(serverURL, store, refresher), store
}

func TestDo_ForbiddenTriggersOneRefreshAndReplay(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		switch r.Header.Get("Authorization") {
		case "Bearer stale-token":
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"error":{"code":"FORBIDDEN","message":"access token expired"}}`))
		case "Bearer fresh-token":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"data":{"shoes":[]}}`))
		default:
			w.WriteHeader(http.StatusUnauthorized)
		}
	}))
	defer server.Close()

	refresher := &stubRefresher{}
	client, store := newTestClient(server.URL, refresher)

	shoes, err := client.ListShoes(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, shoes)
	assert.Equal(t, int32(2), calls.Load(), "original call plus exactly one replay")
	assert.Equal(t, int32(1), refresher.calls.Load())
	assert.Equal(t, "fresh-token", store.Current().AccessToken, "session replaced wholesale")
}

func TestDo_SecondForbiddenIsTerminal(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"code":"FORBIDDEN","message":"access token expired"}}`))
	}))
	defer server.Close()

	refresher := &stubRefresher{}
	client, _ := newTestClient(server.URL, refresher)

	_, err := client.ListShoes(context.Background())

	require.Error(t, err)
	assert.Equal(t, int32(2), calls.Load(), "never more than one replay per logical call")
	assert.Equal(t, int32(1), refresher.calls.Load(), "never more than one refresh per logical call")
	assert.Contains(t, err.Error(), "access token expired")
}

func TestDo_RefreshFailurePropagates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"code":"FORBIDDEN","message":"access token expired"}}`))
	}))
	defer server.Close()

	refresher := &stubRefresher{err: errors.New("refresh token revoked")}
	client, store := newTestClient(server.URL, refresher)

	_, err := client.ListShoes(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "session refresh failed")
	assert.Equal(t, "stale-token", store.Current().AccessToken, "failed refresh leaves the session alone")
}

func TestDo_NonForbiddenErrorsNeverRefresh(t *testing.T) {
	for _, status := range []int{http.StatusBadRequest, http.StatusUnauthorized, http.StatusNotFound, http.StatusInternalServerError} {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			calls.Add(1)
			w.WriteHeader(status)
			_, _ = w.Write([]byte(`{"error":{"code":"X","message":"nope"}}`))
		}))

		refresher := &stubRefresher{}
		client, _ := newTestClient(server.URL, refresher)

		_, err := client.ListShoes(context.Background())

		require.Error(t, err, "status %d", status)
		assert.Equal(t, int32(0), refresher.calls.Load(), "status %d must not trigger a refresh", status)
		assert.Equal(t, int32(1), calls.Load(), "status %d must not be replayed", status)
		server.Close()
	}
}

func TestDo_ErrorSurfacesEmbeddedServerMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":"INVALID_INPUT","message":"shoe brand is required"}}`))
	}))
	defer server.Close()

	client, _ := newTestClient(server.URL, &stubRefresher{})

	_, err := client.ListShoes(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "shoe brand is required",
		"the server's embedded message is what callers surface")
}

func TestDo_ReplayResendsBody(t *testing.T) {
	var bodies []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		bodies = append(bodies, string(raw))
		if r.Header.Get("Authorization") == "Bearer stale-token" {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"error":{"code":"FORBIDDEN","message":"access token expired"}}`))
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client, _ := newTestClient(server.URL, &stubRefresher{})

	err := client.DeleteShoe(context.Background(), "7b4a1f2e-9c3d-4e5f-8a6b-1c2d3e4f5a6b")

	require.NoError(t, err)
	require.Len(t, bodies, 2)
	assert.Contains(t, bodies[0], "7b4a1f2e")
	assert.Equal(t, bodies[0], bodies[1], "the replay carries the identical body")
}
