package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/game-store/internal/service"
)

// CreateUserRequest is the body of POST /users. The password is hashed
// before storage and never returned.
type CreateUserRequest struct {
	Name     string `json:"name"     example:"João Silva"`
	Email    string `json:"email"    example:"joao@email.com"`
	Password string `json:"password" example:"senha123"`
}

// UpdateUserRequest is the body of PUT /users. Omitted fields are unchanged.
type UpdateUserRequest struct {
	ID       int64   `json:"id"                 example:"1"`
	Name     *string `json:"name,omitempty"     example:"João Atualizado"`
	Email    *string `json:"email,omitempty"    example:"joao.atualizado@email.com"`
	Password *string `json:"password,omitempty" example:"novaSenha123"`
}

// UserHandler serves /users.
type UserHandler struct {
	service *service.UserService
	logger  *slog.Logger
}

func NewUserHandler(svc *service.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{service: svc, logger: logger}
}

// HandleCreate godoc
// @Summary Create a user
// @Description Registers a customer. The email must be unique.
// @Tags users
// @Accept json
// @Produce json
// @Param request body CreateUserRequest true "User"
// @Success 201 {object} model.User
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /users [post]
func (h *UserHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	user, err := h.service.Create(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// HandleList godoc
// @Summary List users
// @Description Returns every customer. Password hashes are never included.
// @Tags users
// @Produce json
// @Success 200 {array} model.User
// @Failure 500 {object} ErrorResponse
// @Router /users [get]
func (h *UserHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, users)
}

// HandleUpdate godoc
// @Summary Update a user
// @Description Updates the given fields of a customer.
// @Tags users
// @Accept json
// @Produce json
// @Param request body UpdateUserRequest true "User id and fields to change"
// @Success 200 {object} model.User
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /users [put]
func (h *UserHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req UpdateUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	user, err := h.service.Update(r.Context(), req.ID, req.Name, req.Email, req.Password)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// HandleDelete godoc
// @Summary Delete a user
// @Description Deletes a customer. A customer with purchases cannot be deleted.
// @Tags users
// @Accept json
// @Produce json
// @Param request body IDRequest true "User id"
// @Success 200 {object} model.User
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /users [delete]
func (h *UserHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	var req IDRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	user, err := h.service.Delete(r.Context(), req.ID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}
