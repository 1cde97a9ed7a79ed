package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/game-store/internal/service"
)

type CreateDeveloperRequest struct {
	Name string `json:"name" example:"FromSoftware"`
}

// DeveloperHandler serves /developers.
type DeveloperHandler struct {
	service *service.DeveloperService
	logger  *slog.Logger
}

func NewDeveloperHandler(svc *service.DeveloperService, logger *slog.Logger) *DeveloperHandler {
	return &DeveloperHandler{service: svc, logger: logger}
}

// HandleList godoc
// @Summary List developers
// @Description Returns every developer; use their ids as developerId when creating games.
// @Tags developers
// @Produce json
// @Success 200 {array} model.Developer
// @Failure 500 {object} ErrorResponse
// @Router /developers [get]
func (h *DeveloperHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	developers, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, developers)
}

// HandleCreate godoc
// @Summary Create a developer
// @Tags developers
// @Accept json
// @Produce json
// @Param request body CreateDeveloperRequest true "Developer name"
// @Success 201 {object} model.Developer
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /developers [post]
func (h *DeveloperHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateDeveloperRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	developer, err := h.service.Create(r.Context(), req.Name)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, developer)
}
