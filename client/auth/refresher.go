package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/sync/singleflight"

	"github.com/thalha-dev/vouge-vista/pkg/httpclient"
)

// HTTPRefresher obtains a new session from the identity provider's refresh
// endpoint. The browser-style refresh cookie travels via the client's cookie
// jar or the RefreshToken field, depending on deployment.
type HTTPRefresher struct {
	endpoint     string
	refreshToken string
	client       *httpclient.Client
}

// NewHTTPRefresher creates a refresher posting to the given endpoint.
func NewHTTPRefresher(endpoint, refreshToken string) *HTTPRefresher {
	return &HTTPRefresher{
		endpoint:     endpoint,
		refreshToken: refreshToken,
		client:       httpclient.New(httpclient.NoRetryConfig()),
	}
}

// refreshResponse is the identity provider's refresh reply.
type refreshResponse struct {
	Data struct {
		AccessToken string `json:"access_token"`
		UserID      string `json:"user_id"`
	} `json:"data"`
}

// Refresh posts to the refresh endpoint and returns the new session.
func (r *HTTPRefresher) Refresh(ctx context.Context) (*Session, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create refresh request: %w", err)
	}
	if r.refreshToken != "" {
		req.Header.Set("Authorization", "Bearer "+r.refreshToken)
	}

	resp, err := r.client.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("refresh request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, httpclient.ParseResponseError(resp, "identity provider")
	}

	var body refreshResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode refresh response: %w", err)
	}
	if body.Data.AccessToken == "" {
		return nil, fmt.Errorf("refresh response carried no access token")
	}

	return &Session{
		AccessToken: body.Data.AccessToken,
		UserID:      body.Data.UserID,
	}, nil
}

// SingleFlightRefresher collapses concurrent refreshes into one upstream
// call; every waiter receives the same new session. Optional hardening over
// the default per-call refresh.
type SingleFlightRefresher struct {
	inner Refresher
	group singleflight.Group
}

// SingleFlight wraps a refresher with a shared-refresh guard.
func SingleFlight(inner Refresher) *SingleFlightRefresher {
	return &SingleFlightRefresher{inner: inner}
}

// Refresh runs at most one inner refresh at a time and shares its result.
func (r *SingleFlightRefresher) Refresh(ctx context.Context) (*Session, error) {
	v, err, _ := r.group.Do("refresh", func() (any, error) {
		return r.inner.Refresh(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.(*Session), nil
}
