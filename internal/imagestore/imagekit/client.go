package imagekit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/thalha-dev/vouge-vista/internal/imagestore"
	apperrors "github.com/thalha-dev/vouge-vista/pkg/errors"
	"github.com/thalha-dev/vouge-vista/pkg/httpclient"
)

// Config holds the ImageKit connection settings.
type Config struct {
	// UploadEndpoint is the base URL of the upload API
	// (e.g. https://upload.imagekit.io).
	UploadEndpoint string
	// APIEndpoint is the base URL of the management API
	// (e.g. https://api.imagekit.io).
	APIEndpoint string
	// PrivateKey authenticates requests via HTTP basic auth.
	PrivateKey string
}

// Client implements imagestore.Store against the ImageKit HTTP API.
// Requests are never retried at the transport level; a failed upload
// surfaces immediately so the caller can abort the batch, and the circuit
// breaker sheds load when the store is down.
type Client struct {
	cfg    Config
	http   *httpclient.CircuitBreakerClient
	logger *slog.Logger
}

// New creates an ImageKit-backed image store client.
func New(cfg Config, logger *slog.Logger) *Client {
	base := httpclient.New(httpclient.NoRetryConfig())
	cb := httpclient.NewCircuitBreakerClient(base, httpclient.DefaultCircuitBreakerConfig("imagekit"), logger)

	return &Client{
		cfg:    cfg,
		http:   cb,
		logger: logger,
	}
}

// uploadResponse is the subset of the ImageKit upload reply we consume.
type uploadResponse struct {
	FileID   string `json:"fileId"`
	URL      string `json:"url"`
	FilePath string `json:"filePath"`
}

// errorResponse is ImageKit's error body shape.
type errorResponse struct {
	Message string `json:"message"`
}

// Upload sends one file to the store and returns its asset ID and URL.
func (c *Client) Upload(ctx context.Context, input *imagestore.UploadInput) (*imagestore.UploadResult, error) {
	body := &strings.Builder{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", input.FileName)
	if err != nil {
		return nil, fmt.Errorf("create multipart part: %w", err)
	}
	if _, err := io.Copy(part, input.Data); err != nil {
		return nil, fmt.Errorf("copy file data: %w", err)
	}

	if err := writer.WriteField("fileName", input.FileName); err != nil {
		return nil, fmt.Errorf("write fileName field: %w", err)
	}
	if err := writer.WriteField("folder", input.Folder); err != nil {
		return nil, fmt.Errorf("write folder field: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("finalize multipart body: %w", err)
	}

	url := c.cfg.UploadEndpoint + "/api/v1/files/upload"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(body.String()))
	if err != nil {
		return nil, fmt.Errorf("create upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.SetBasicAuth(c.cfg.PrivateKey, "")

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return nil, apperrors.AssetUpload(input.FileName, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.AssetUpload(input.FileName, c.remoteError(resp))
	}

	var uploaded uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&uploaded); err != nil {
		return nil, apperrors.AssetUpload(input.FileName, fmt.Errorf("decode upload response: %w", err))
	}

	c.logger.DebugContext(ctx, "image uploaded",
		slog.String("file_name", input.FileName),
		slog.String("asset_id", uploaded.FileID),
	)

	return &imagestore.UploadResult{
		AssetID: uploaded.FileID,
		URL:     uploaded.URL,
	}, nil
}

// Delete removes a file from the store by its asset ID.
func (c *Client) Delete(ctx context.Context, assetID string) error {
	url := c.cfg.APIEndpoint + "/v1/files/" + assetID
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return fmt.Errorf("create delete request: %w", err)
	}
	req.SetBasicAuth(c.cfg.PrivateKey, "")

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return apperrors.AssetDelete(assetID, err)
	}
	defer func() { _ = resp.Body.Close() }()

	// 404 counts as success: the asset is already gone.
	if resp.StatusCode == http.StatusNoContent || resp.StatusCode == http.StatusNotFound {
		return nil
	}

	return apperrors.AssetDelete(assetID, c.remoteError(resp))
}

// remoteError reads an ImageKit error body into a plain error.
func (c *Client) remoteError(resp *http.Response) error {
	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("imagekit returned status %d", resp.StatusCode)
	}

	var remote errorResponse
	if json.Unmarshal(bodyBytes, &remote) == nil && remote.Message != "" {
		return fmt.Errorf("imagekit returned status %d: %s", resp.StatusCode, remote.Message)
	}

	return fmt.Errorf("imagekit returned status %d: %s", resp.StatusCode, string(bodyBytes))
}
