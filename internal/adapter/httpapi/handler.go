package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/alanya-estates/property-service/internal/platform/logger"
	"github.com/alanya-estates/property-service/internal/property/domain"
	"github.com/alanya-estates/property-service/internal/property/usecase"
	"github.com/go-chi/chi/v5"
)

const (
	maxMultipartMemory = 32 << 20 // 32 MiB
	maxGalleryFiles    = 10

	fieldData          = "data"
	fieldMainImage     = "mainImage"
	fieldGalleryImages = "galleryImages"
)

// PropertyHandler translates HTTP requests into usecase calls; it holds no
// business logic of its own.
type PropertyHandler struct {
	usecase *usecase.PropertyUsecase
	logger  *logger.Logger
}

func NewPropertyHandler(uc *usecase.PropertyUsecase, log *logger.Logger) *PropertyHandler {
	return &PropertyHandler{usecase: uc, logger: log}
}

func (h *PropertyHandler) HandleListProperties(w http.ResponseWriter, r *http.Request) {
	var filter domain.Filter
	if v := r.URL.Query().Get("isFeatured"); v != "" {
		if featured, err := strconv.ParseBool(v); err == nil {
			filter.Featured = &featured
		}
	}

	properties, err := h.usecase.ListProperties(r.Context(), filter)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, toPropertyResponses(properties))
}

func (h *PropertyHandler) HandleGetProperty(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	property, err := h.usecase.GetProperty(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, toPropertyResponse(property))
}

func (h *PropertyHandler) HandleCreateProperty(w http.ResponseWriter, r *http.Request) {
	in, mainImage, gallery, err := h.parseMultipartRequest(r)
	if err != nil {
		h.respondMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.usecase.CreateProperty(r.Context(), in, mainImage, gallery)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, toPropertyResponse(created))
}

func (h *PropertyHandler) HandleUpdateProperty(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	in, mainImage, gallery, err := h.parseMultipartRequest(r)
	if err != nil {
		h.respondMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.usecase.UpdateProperty(r.Context(), id, in, mainImage, gallery)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, toPropertyResponse(updated))
}

func (h *PropertyHandler) HandleDeleteProperty(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.usecase.DeleteProperty(r.Context(), id); err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondMessage(w, http.StatusOK, "property deleted successfully")
}

// parseMultipartRequest decodes the `data` JSON field plus the mainImage and
// galleryImages file fields of a create/update request.
func (h *PropertyHandler) parseMultipartRequest(r *http.Request) (usecase.PropertyInput, *usecase.FileUpload, []usecase.FileUpload, error) {
	var in usecase.PropertyInput

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		return in, nil, nil, fmt.Errorf("invalid multipart request: %v", err)
	}

	raw := r.FormValue(fieldData)
	if raw == "" {
		return in, nil, nil, errors.New("data field is required")
	}
	if err := json.Unmarshal([]byte(raw), &in); err != nil {
		return in, nil, nil, fmt.Errorf("invalid data payload: %v", err)
	}

	var mainImage *usecase.FileUpload
	if headers := r.MultipartForm.File[fieldMainImage]; len(headers) > 0 {
		upload, err := readUpload(headers[0])
		if err != nil {
			return in, nil, nil, err
		}
		mainImage = &upload
	}

	headers := r.MultipartForm.File[fieldGalleryImages]
	if len(headers) > maxGalleryFiles {
		return in, nil, nil, fmt.Errorf("at most %d gallery images may be uploaded at once", maxGalleryFiles)
	}
	var gallery []usecase.FileUpload
	for _, header := range headers {
		upload, err := readUpload(header)
		if err != nil {
			return in, nil, nil, err
		}
		gallery = append(gallery, upload)
	}

	return in, mainImage, gallery, nil
}

func readUpload(header *multipart.FileHeader) (usecase.FileUpload, error) {
	file, err := header.Open()
	if err != nil {
		return usecase.FileUpload{}, fmt.Errorf("failed to read uploaded file %q: %v", header.Filename, err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return usecase.FileUpload{}, fmt.Errorf("failed to read uploaded file %q: %v", header.Filename, err)
	}
	return usecase.FileUpload{Filename: header.Filename, Data: data}, nil
}

// respondError maps usecase errors onto status codes; anything unexpected is
// a 500 with a generic message so store internals never leak to clients.
func (h *PropertyHandler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, usecase.ErrPropertyNotFound):
		h.respondMessage(w, http.StatusNotFound, "property not found")
	case errors.Is(err, usecase.ErrInvalidInput):
		h.respondMessage(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err.Error())
		h.respondMessage(w, http.StatusInternalServerError, "internal server error")
	}
}

func (h *PropertyHandler) respondMessage(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, messageResponse{Message: message})
}

func (h *PropertyHandler) respondJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("failed to encode response", "error", err.Error())
	}
}
