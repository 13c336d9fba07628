package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/thalha-dev/vouge-vista/client/auth"
	"github.com/thalha-dev/vouge-vista/pkg/httpclient"
)

// Client is the authenticated API client for the catalog service. Transport
// retries are disabled; the only replay it ever performs is the single
// refresh-and-retry cycle on a 403.
type Client struct {
	baseURL   string
	http      *httpclient.Client
	sessions  *auth.Store
	refresher auth.Refresher
}

// New creates a catalog API client.
func New(baseURL string, sessions *auth.Store, refresher auth.Refresher) *Client {
	return &Client{
		baseURL:   baseURL,
		http:      httpclient.New(httpclient.NoRetryConfig()),
		sessions:  sessions,
		refresher: refresher,
	}
}

// do performs one authenticated call. On a 403 (and only a 403) it runs
// exactly one refresh cycle and replays the request once with the new token;
// a failed refresh or a second rejection propagates terminally. Any other
// non-2xx surfaces the server's embedded error message. The body is held as
// bytes so the replay can resend it.
func (c *Client) do(ctx context.Context, method, path, contentType string, body []byte) (*http.Response, error) {
	resp, err := c.send(ctx, method, path, contentType, body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusForbidden {
		_ = resp.Body.Close()

		session, err := c.refresher.Refresh(ctx)
		if err != nil {
			return nil, fmt.Errorf("session refresh failed: %w", err)
		}
		c.sessions.Replace(session)

		resp, err = c.send(ctx, method, path, contentType, body)
		if err != nil {
			return nil, err
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, httpclient.ParseResponseError(resp, "catalog service")
	}

	return resp, nil
}

// send builds and executes one request carrying the current bearer token.
func (c *Client) send(ctx context.Context, method, path, contentType string, body []byte) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("create %s %s request: %w", method, path, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if session := c.sessions.Current(); session != nil {
		req.Header.Set("Authorization", "Bearer "+session.AccessToken)
	}

	return c.http.Do(ctx, req)
}

// doJSON performs an authenticated call and decodes the data half of the
// response envelope into out.
func (c *Client) doJSON(ctx context.Context, method, path, contentType string, body []byte, out any) error {
	resp, err := c.do(ctx, method, path, contentType, body)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("decode response envelope: %w", err)
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("decode response data: %w", err)
	}

	return nil
}
