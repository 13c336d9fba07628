package http

import (
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/thalha-dev/vouge-vista/internal/service"
	apperrors "github.com/thalha-dev/vouge-vista/pkg/errors"
	"github.com/thalha-dev/vouge-vista/pkg/httputil"
	"github.com/thalha-dev/vouge-vista/pkg/validator"
)

// maxUploadSize caps a whole multipart request, files included.
const maxUploadSize int64 = 32 << 20 // 32 MB

// ShoeHandler handles HTTP requests for catalog endpoints.
type ShoeHandler struct {
	service *service.CatalogService
	logger  *slog.Logger
}

// NewShoeHandler creates a new catalog HTTP handler.
func NewShoeHandler(svc *service.CatalogService, logger *slog.Logger) *ShoeHandler {
	return &ShoeHandler{
		service: svc,
		logger:  logger,
	}
}

// --- Request DTOs ---

// DeleteShoeRequest is the JSON request body for deleting a shoe.
type DeleteShoeRequest struct {
	ID string `json:"id" validate:"required,uuid"`
}

// --- Handlers ---

// CreateShoe handles POST /api/v1/shoes (multipart/form-data).
func (h *ShoeHandler) CreateShoe(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "failed to parse multipart form: " + err.Error()},
		})
		return
	}

	input := &service.CreateShoeInput{
		Name:  r.FormValue("name"),
		Brand: r.FormValue("brand"),
		Color: r.FormValue("color"),
	}

	var err error
	if input.Price, err = formFloat(r, "price"); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	if input.Size, err = formFloat(r, "size"); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	if input.Rating, err = formFloat(r, "rating"); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	if input.AvailableCount, err = formInt(r, "available_count"); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	files, closeFiles, err := openImageFiles(r)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	defer closeFiles()
	input.Images = files

	shoe, err := h.service.CreateShoe(r.Context(), input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: shoe})
}

// ListShoes handles GET /api/v1/shoes.
func (h *ShoeHandler) ListShoes(w http.ResponseWriter, r *http.Request) {
	shoes, err := h.service.ListShoes(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{
		Data: map[string]any{"shoes": shoes},
	})
}

// GetShoe handles GET /api/v1/shoes/{id}.
func (h *ShoeHandler) GetShoe(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "shoe id must be a valid uuid"},
		})
		return
	}

	shoe, err := h.service.GetShoe(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: shoe})
}

// UpdateShoe handles PUT /api/v1/shoes (multipart/form-data, id in the body).
func (h *ShoeHandler) UpdateShoe(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "failed to parse multipart form: " + err.Error()},
		})
		return
	}

	id := r.FormValue("id")
	if _, err := uuid.Parse(id); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "shoe id must be a valid uuid"},
		})
		return
	}

	input := &service.UpdateShoeInput{
		ID:    id,
		Name:  r.FormValue("name"),
		Brand: r.FormValue("brand"),
		Color: r.FormValue("color"),
	}

	var err error
	if input.Price, err = formFloat(r, "price"); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	if input.Size, err = formFloat(r, "size"); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	if input.Rating, err = formFloat(r, "rating"); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	if input.AvailableCount, err = formInt(r, "available_count"); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	files, closeFiles, err := openImageFiles(r)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	defer closeFiles()
	input.Images = files

	shoe, err := h.service.UpdateShoe(r.Context(), input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: shoe})
}

// DeleteShoe handles DELETE /api/v1/shoes (id in the JSON body).
func (h *ShoeHandler) DeleteShoe(w http.ResponseWriter, r *http.Request) {
	var req DeleteShoeRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	if err := h.service.DeleteShoe(r.Context(), req.ID); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// --- Form helpers ---

// openImageFiles collects every "images" part. The returned closer releases
// all opened files.
func openImageFiles(r *http.Request) ([]service.ImageUpload, func(), error) {
	if r.MultipartForm == nil {
		return nil, func() {}, nil
	}

	headers := r.MultipartForm.File["images"]
	uploads := make([]service.ImageUpload, 0, len(headers))
	opened := make([]multipart.File, 0, len(headers))

	closeAll := func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}

	for _, header := range headers {
		file, err := header.Open()
		if err != nil {
			closeAll()
			return nil, func() {}, apperrors.InvalidInput("failed to read image file " + header.Filename)
		}
		opened = append(opened, file)

		contentType := header.Header.Get("Content-Type")
		if contentType == "" {
			contentType = "application/octet-stream"
		}

		uploads = append(uploads, service.ImageUpload{
			FileName:    header.Filename,
			ContentType: contentType,
			Size:        header.Size,
			Data:        file,
		})
	}

	return uploads, closeAll, nil
}

// formFloat parses a numeric form field. Absence parses as zero: on create
// the service reports the missing field, on update zero means
// leave-unchanged.
func formFloat(r *http.Request, field string) (float64, error) {
	raw := r.FormValue(field)
	if raw == "" {
		return 0, nil
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, apperrors.InvalidInput(field + " must be a number")
	}
	return v, nil
}

func formInt(r *http.Request, field string) (int, error) {
	raw := r.FormValue(field)
	if raw == "" {
		return 0, nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.InvalidInput(field + " must be an integer")
	}
	return v, nil
}
