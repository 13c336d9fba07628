package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors shared across the catalog service and its clients.
var (
	ErrNotFound       = errors.New("resource not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrInternal       = errors.New("internal error")
	ErrAssetUpload    = errors.New("asset upload failed")
	ErrAssetDelete    = errors.New("asset delete failed")
	ErrServiceUnavail = errors.New("service unavailable")
)

// AppError is a structured application error carrying an HTTP status mapping.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NotFound creates a 404 error for a missing resource.
func NotFound(resource, id string) *AppError {
	return &AppError{
		Code:    "NOT_FOUND",
		Message: fmt.Sprintf("%s with id %s not found", resource, id),
		Status:  http.StatusNotFound,
		Err:     ErrNotFound,
	}
}

// NotFoundWithStatus is NotFound with an explicit status code. Update and
// delete report a missing shoe as 400 rather than 404, matching the public
// API contract.
func NotFoundWithStatus(resource, id string, status int) *AppError {
	e := NotFound(resource, id)
	e.Status = status
	return e
}

// InvalidInput creates a 400 error for user-correctable input problems.
func InvalidInput(message string) *AppError {
	return &AppError{
		Code:    "INVALID_INPUT",
		Message: message,
		Status:  http.StatusBadRequest,
		Err:     ErrInvalidInput,
	}
}

// Unauthorized creates a 401 error.
func Unauthorized(message string) *AppError {
	return &AppError{
		Code:    "UNAUTHORIZED",
		Message: message,
		Status:  http.StatusUnauthorized,
		Err:     ErrUnauthorized,
	}
}

// Forbidden creates a 403 error. The auth middleware reports expired access
// tokens with this error; it is the sole refresh trigger for API clients.
func Forbidden(message string) *AppError {
	return &AppError{
		Code:    "FORBIDDEN",
		Message: message,
		Status:  http.StatusForbidden,
		Err:     ErrForbidden,
	}
}

// Internal creates a 500 error wrapping the underlying cause.
func Internal(err error) *AppError {
	return &AppError{
		Code:    "INTERNAL_ERROR",
		Message: "an internal error occurred",
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

// AssetUpload creates a 502 error for an image store upload failure.
// Assets uploaded earlier in the same batch are not rolled back.
func AssetUpload(fileName string, err error) *AppError {
	return &AppError{
		Code:    "ASSET_UPLOAD_FAILED",
		Message: fmt.Sprintf("failed to upload image %q", fileName),
		Status:  http.StatusBadGateway,
		Err:     fmt.Errorf("%w: %w", ErrAssetUpload, err),
	}
}

// AssetDelete creates an error for an image store delete failure. Deletions
// are best-effort; callers either discard this error or hand it to the
// reconciliation queue.
func AssetDelete(assetID string, err error) *AppError {
	return &AppError{
		Code:    "ASSET_DELETE_FAILED",
		Message: fmt.Sprintf("failed to delete asset %s", assetID),
		Status:  http.StatusBadGateway,
		Err:     fmt.Errorf("%w: %w", ErrAssetDelete, err),
	}
}

// Wrap adds context to an error, preserving the chain.
func Wrap(err error, message string) error {
	return fmt.Errorf("%s: %w", message, err)
}

// HTTPStatus returns the HTTP status code for the given error.
func HTTPStatus(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status
	}

	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrAssetUpload), errors.Is(err, ErrAssetDelete):
		return http.StatusBadGateway
	case errors.Is(err, ErrServiceUnavail):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
