package handler

import (
	"log/slog"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/sakif/game-store/internal/apperror"
	"github.com/sakif/game-store/internal/model"
	"github.com/sakif/game-store/internal/service"
)

// CreatePurchaseRequest is the body of POST /purchases. The purchase date is
// set by the server.
type CreatePurchaseRequest struct {
	UserID int64            `json:"userId" example:"1"`
	GameID int64            `json:"gameId" example:"2"`
	Total  *decimal.Decimal `json:"total"  swaggertype:"string" example:"199.99"`
}

// UpdatePurchaseRequest is the body of PUT /purchases. Only the total can
// change.
type UpdatePurchaseRequest struct {
	ID    int64            `json:"id"    example:"1"`
	Total *decimal.Decimal `json:"total" swaggertype:"string" example:"179.99"`
}

// PurchaseHandler serves /purchases.
type PurchaseHandler struct {
	service *service.PurchaseService
	logger  *slog.Logger
}

func NewPurchaseHandler(svc *service.PurchaseService, logger *slog.Logger) *PurchaseHandler {
	return &PurchaseHandler{service: svc, logger: logger}
}

// HandleCreate godoc
// @Summary Create a purchase
// @Description Records a user buying a game. Unknown user or game ids are rejected.
// @Tags purchases
// @Accept json
// @Produce json
// @Param request body CreatePurchaseRequest true "Purchase"
// @Success 201 {object} model.Purchase
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /purchases [post]
func (h *PurchaseHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreatePurchaseRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	if req.Total == nil {
		writeError(w, r, h.logger, apperror.ValidationFailed("total", "total is required"))
		return
	}

	purchase, err := h.service.Create(r.Context(), model.Purchase{
		UserID: req.UserID,
		GameID: req.GameID,
		Total:  *req.Total,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, purchase)
}

// HandleList godoc
// @Summary List purchases
// @Description Returns every purchase with its user and game included.
// @Tags purchases
// @Produce json
// @Success 200 {array} model.Purchase
// @Failure 500 {object} ErrorResponse
// @Router /purchases [get]
func (h *PurchaseHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	purchases, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, purchases)
}

// HandleUpdate godoc
// @Summary Update a purchase
// @Description Changes the total of a purchase.
// @Tags purchases
// @Accept json
// @Produce json
// @Param request body UpdatePurchaseRequest true "Purchase id and new total"
// @Success 200 {object} model.Purchase
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /purchases [put]
func (h *PurchaseHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req UpdatePurchaseRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	if req.Total == nil {
		writeError(w, r, h.logger, apperror.ValidationFailed("total", "total is required"))
		return
	}

	purchase, err := h.service.UpdateTotal(r.Context(), req.ID, *req.Total)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, purchase)
}

// HandleDelete godoc
// @Summary Delete a purchase
// @Description Deletes a purchase record.
// @Tags purchases
// @Accept json
// @Produce json
// @Param request body IDRequest true "Purchase id"
// @Success 200 {object} model.Purchase
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /purchases [delete]
func (h *PurchaseHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	var req IDRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	purchase, err := h.service.Delete(r.Context(), req.ID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, purchase)
}
