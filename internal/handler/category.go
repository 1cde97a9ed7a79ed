package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/game-store/internal/service"
)

// CategoryRequest is the body of POST, PUT and DELETE /categories.
// POST uses Name, DELETE uses ID, PUT uses both.
type CategoryRequest struct {
	ID   int64  `json:"id,omitempty" example:"1"`
	Name string `json:"name,omitempty" example:"RPG"`
}

// IDRequest is the body of the DELETE endpoints: the id travels in the JSON
// body, not in the path.
type IDRequest struct {
	ID int64 `json:"id" example:"1"`
}

// CategoryHandler serves /categories.
type CategoryHandler struct {
	service *service.CategoryService
	logger  *slog.Logger
}

func NewCategoryHandler(svc *service.CategoryService, logger *slog.Logger) *CategoryHandler {
	return &CategoryHandler{service: svc, logger: logger}
}

// HandleCreate godoc
// @Summary Create a category
// @Description Adds a new game category.
// @Tags categories
// @Accept json
// @Produce json
// @Param request body CategoryRequest true "Category name"
// @Success 201 {object} model.Category
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /categories [post]
func (h *CategoryHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	category, err := h.service.Create(r.Context(), req.Name)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, category)
}

// HandleList godoc
// @Summary List categories
// @Description Returns every category.
// @Tags categories
// @Produce json
// @Success 200 {array} model.Category
// @Failure 500 {object} ErrorResponse
// @Router /categories [get]
func (h *CategoryHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, categories)
}

// HandleUpdate godoc
// @Summary Rename a category
// @Description Updates the name of an existing category.
// @Tags categories
// @Accept json
// @Produce json
// @Param request body CategoryRequest true "Category id and new name"
// @Success 200 {object} model.Category
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /categories [put]
func (h *CategoryHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	category, err := h.service.Update(r.Context(), req.ID, req.Name)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, category)
}

// HandleDelete godoc
// @Summary Delete a category
// @Description Deletes a category. A category still linked to a game cannot be deleted.
// @Tags categories
// @Accept json
// @Produce json
// @Param request body IDRequest true "Category id"
// @Success 200 {object} model.Category
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /categories [delete]
func (h *CategoryHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	var req IDRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	category, err := h.service.Delete(r.Context(), req.ID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, category)
}
