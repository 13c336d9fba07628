package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_ReplaceIsWholesale(t *testing.T) {
	store := NewStore(&Session{AccessToken: "old", UserID: "user-1"})

	old := store.Current()
	store.Replace(&Session{AccessToken: "new", UserID: "user-1"})

	assert.Equal(t, "old", old.AccessToken, "the old session value is never mutated")
	assert.Equal(t, "new", store.Current().AccessToken)
}

func TestStore_ConcurrentAccess(t *testing.T) {
	store := NewStore(nil)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			store.Replace(&Session{AccessToken: "t", UserID: "u"})
		}()
		go func() {
			defer wg.Done()
			_ = store.Current()
		}()
	}
	wg.Wait()

	require.NotNil(t, store.Current())
}

func TestHTTPRefresher_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer refresh-token", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"access_token":"fresh","user_id":"user-1"}}`))
	}))
	defer server.Close()

	refresher := NewHTTPRefresher(server.URL, "refresh-token")
	session, err := refresher.Refresh(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "fresh", session.AccessToken)
	assert.Equal(t, "user-1", session.UserID)
}

func TestHTTPRefresher_Failure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"code":"UNAUTHORIZED","message":"refresh token revoked"}}`))
	}))
	defer server.Close()

	refresher := NewHTTPRefresher(server.URL, "refresh-token")
	session, err := refresher.Refresh(context.Background())

	require.Error(t, err)
	assert.Nil(t, session)
	assert.Contains(t, err.Error(), "refresh token revoked")
}

// blockingRefresher counts calls and holds every caller until released.
type blockingRefresher struct {
	calls   atomic.Int32
	release chan struct{}
}

func (r *blockingRefresher) Refresh(context.Context) (*Session, error) {
	r.calls.Add(1)
	<-r.release
	return &Session{AccessToken: "shared", UserID: "user-1"}, nil
}

func TestSingleFlight_CollapsesConcurrentRefreshes(t *testing.T) {
	inner := &blockingRefresher{release: make(chan struct{})}
	sf := SingleFlight(inner)

	const waiters = 8
	results := make(chan *Session, waiters)
	for i := 0; i < waiters; i++ {
		go func() {
			s, err := sf.Refresh(context.Background())
			require.NoError(t, err)
			results <- s
		}()
	}

	// Give every goroutine time to join the in-flight refresh, then release.
	time.Sleep(50 * time.Millisecond)
	close(inner.release)

	for i := 0; i < waiters; i++ {
		s := <-results
		assert.Equal(t, "shared", s.AccessToken)
	}
	assert.Equal(t, int32(1), inner.calls.Load(), "all waiters share one upstream refresh")
}
