package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/abhishek8094/storefront/internal/domain"
	"github.com/abhishek8094/storefront/internal/service"
	"github.com/abhishek8094/storefront/pkg/httputil"
	"github.com/abhishek8094/storefront/pkg/validator"
)

// CollectionHandler handles HTTP requests for storefront image collections.
type CollectionHandler struct {
	service *service.CollectionService
	logger  *slog.Logger
}

// NewCollectionHandler creates a new collection HTTP handler.
func NewCollectionHandler(svc *service.CollectionService, logger *slog.Logger) *CollectionHandler {
	return &CollectionHandler{
		service: svc,
		logger:  logger,
	}
}

// CreateCollectionRequest is the JSON request body for creating a collection.
type CreateCollectionRequest struct {
	Title     string   `json:"title" validate:"required"`
	Position  string   `json:"position" validate:"required"`
	Images    []string `json:"images"`
	SortOrder int      `json:"sort_order"`
	IsActive  *bool    `json:"is_active"`
}

// UpdateCollectionRequest is the JSON request body for updating a collection.
type UpdateCollectionRequest struct {
	Title     *string  `json:"title"`
	Position  *string  `json:"position"`
	Images    []string `json:"images"`
	SortOrder *int     `json:"sort_order"`
	IsActive  *bool    `json:"is_active"`
}

// CreateCollection handles POST /api/v1/collections
func (h *CollectionHandler) CreateCollection(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req CreateCollectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	collection, err := h.service.CreateCollection(r.Context(), service.CreateCollectionInput{
		Title:     req.Title,
		Position:  req.Position,
		ImageURLs: req.Images,
		SortOrder: req.SortOrder,
		IsActive:  req.IsActive,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: collection})
}

// Browse handles GET /api/v1/collections/{collection}. A position keyword
// (carousel, trending, explore) lists the active collections at that
// storefront slot; any other value is treated as a collection id.
func (h *CollectionHandler) Browse(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "collection")

	if domain.IsValidCollectionPosition(key) {
		collections, err := h.service.ListByPosition(r.Context(), key)
		if err != nil {
			httputil.WriteError(w, r, err, h.logger)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: collections})
		return
	}

	id, ok := httputil.ParseUUID(w, key)
	if !ok {
		return
	}

	collection, err := h.service.GetCollection(r.Context(), id.String())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: collection})
}

// UpdateCollection handles PUT /api/v1/collections/{collection}
func (h *CollectionHandler) UpdateCollection(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "collection"))
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req UpdateCollectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	collection, err := h.service.UpdateCollection(r.Context(), id.String(), service.UpdateCollectionInput{
		Title:     req.Title,
		Position:  req.Position,
		ImageURLs: req.Images,
		SortOrder: req.SortOrder,
		IsActive:  req.IsActive,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: collection})
}

// DeleteCollection handles DELETE /api/v1/collections/{collection}
func (h *CollectionHandler) DeleteCollection(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "collection"))
	if !ok {
		return
	}

	if err := h.service.DeleteCollection(r.Context(), id.String()); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteImage handles DELETE /api/v1/collections/{collection}/images/{imageID}
func (h *CollectionHandler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "collection"))
	if !ok {
		return
	}
	imageID, ok := httputil.ParseUUID(w, chi.URLParam(r, "imageID"))
	if !ok {
		return
	}

	collection, err := h.service.DeleteImage(r.Context(), id.String(), imageID.String())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: collection})
}
