package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/forgemycode/forgemycode/internal/apperror"
	"github.com/forgemycode/forgemycode/internal/model"
	"github.com/forgemycode/forgemycode/internal/service"
)

// ResourceHandler serves the learning-resource catalog.
type ResourceHandler struct {
	resources *service.ResourceService
	validate  *validator.Validate
	logger    *slog.Logger
}

func NewResourceHandler(resources *service.ResourceService, logger *slog.Logger) *ResourceHandler {
	return &ResourceHandler{
		resources: resources,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
		logger:    logger,
	}
}

type createResourceRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl" validate:"omitempty,url"`
	Link        string `json:"link" validate:"required,url"`
	Category    string `json:"category" validate:"required"`
}

// HandleList returns learning resources, optionally filtered by category.
//
// HTTP: GET /api/resources?category=git
func (h *ResourceHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	resources, err := h.resources.List(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resources)
}

// HandleCreate adds a resource to the catalog.
//
// HTTP: POST /api/resources
func (h *ResourceHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createResourceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.ValidationFailed("body", "invalid JSON body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, validationError(err))
		return
	}

	resource := &model.Resource{
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Link:        req.Link,
		Category:    req.Category,
	}
	if err := h.resources.Create(r.Context(), resource); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, resource)
}
