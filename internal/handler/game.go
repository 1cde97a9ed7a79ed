package handler

import (
	"log/slog"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/sakif/game-store/internal/model"
	"github.com/sakif/game-store/internal/service"
)

// CreateGameRequest is the body of POST /games. Price accepts a JSON
// string ("249.99") or number.
type CreateGameRequest struct {
	Title       string          `json:"title"       example:"Elden Ring"`
	Description string          `json:"description" example:"Um novo mundo de fantasia"`
	Price       decimal.Decimal `json:"price"       swaggertype:"string" example:"249.99"`
	ReleaseDate *model.Date     `json:"releaseDate" swaggertype:"string" example:"2022-02-25"`
	DeveloperID *int64          `json:"developerId" example:"3"`
	CategoryIDs []int64         `json:"categoryIds"`
}

// UpdateGameRequest is the body of PUT /games. Every field but id is
// optional.
//
// CategoryIDs is a pointer to a slice so the three cases stay distinct:
//
//	absent           → links untouched
//	"categoryIds":[] → every link removed
//	"categoryIds":[2,3] → links replaced by exactly 2 and 3
type UpdateGameRequest struct {
	ID          int64            `json:"id"                    example:"1"`
	Title       *string          `json:"title,omitempty"       example:"Elden Ring"`
	Description *string          `json:"description,omitempty" example:"Uma aventura épica atualizada"`
	Price       *decimal.Decimal `json:"price,omitempty"       swaggertype:"string" example:"299.99"`
	CategoryIDs *[]int64         `json:"categoryIds,omitempty"`
}

// GameHandler serves /games.
type GameHandler struct {
	service *service.GameService
	logger  *slog.Logger
}

func NewGameHandler(svc *service.GameService, logger *slog.Logger) *GameHandler {
	return &GameHandler{service: svc, logger: logger}
}

// HandleList godoc
// @Summary List games
// @Description Returns every game with the ids of its categories.
// @Tags games
// @Produce json
// @Success 200 {array} model.Game
// @Failure 500 {object} ErrorResponse
// @Router /games [get]
func (h *GameHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	games, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, games)
}

// HandleCreate godoc
// @Summary Create a game
// @Description Adds a game and links it to the given categories in one transaction.
// @Tags games
// @Accept json
// @Produce json
// @Param request body CreateGameRequest true "Game"
// @Success 201 {object} model.Game
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /games [post]
func (h *GameHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateGameRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	game, err := h.service.Create(r.Context(), model.Game{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		ReleaseDate: req.ReleaseDate,
		DeveloperID: req.DeveloperID,
		CategoryIDs: req.CategoryIDs,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, game)
}

// HandleUpdate godoc
// @Summary Update a game
// @Description Updates the given fields of a game. When categoryIds is present the game's
// @Description category links are replaced in the same transaction; if any link fails the
// @Description whole update is rolled back.
// @Tags games
// @Accept json
// @Produce json
// @Param request body UpdateGameRequest true "Game id and fields to change"
// @Success 200 {object} model.Game
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /games [put]
func (h *GameHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req UpdateGameRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	update := model.GameUpdate{
		ID:          req.ID,
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
	}
	if req.CategoryIDs != nil {
		update.ReplaceCategories = true
		update.CategoryIDs = *req.CategoryIDs
	}

	game, err := h.service.Update(r.Context(), update)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, game)
}

// HandleDelete godoc
// @Summary Delete a game
// @Description Deletes a game and its category links. A purchased game cannot be deleted.
// @Tags games
// @Accept json
// @Produce json
// @Param request body IDRequest true "Game id"
// @Success 200 {object} model.Game
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /games [delete]
func (h *GameHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	var req IDRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	game, err := h.service.Delete(r.Context(), req.ID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, game)
}
