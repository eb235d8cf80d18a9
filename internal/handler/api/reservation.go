package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"pousada-pms/internal/domain/pricing"
	"pousada-pms/internal/domain/reservation"
	reqdto "pousada-pms/internal/handler/dto/request"
	resdto "pousada-pms/internal/handler/dto/response"
	"pousada-pms/internal/handler/httperr"
	"pousada-pms/internal/usecase/commands"
	"pousada-pms/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReservationHandler struct {
	reservationCommands commands.ReservationCommands
	minibarCommands     commands.MinibarCommands
	reservationQueries  queries.ReservationQueries
	cancellationQueries queries.CancellationQueries
}

func NewReservationHandler(
	reservationCommands commands.ReservationCommands,
	minibarCommands commands.MinibarCommands,
	reservationQueries queries.ReservationQueries,
	cancellationQueries queries.CancellationQueries,
) *ReservationHandler {
	return &ReservationHandler{
		reservationCommands: reservationCommands,
		minibarCommands:     minibarCommands,
		reservationQueries:  reservationQueries,
		cancellationQueries: cancellationQueries,
	}
}

func (h *ReservationHandler) Create(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var req reqdto.CreateReservationRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, bindErr, "Missing or invalid reservation fields", nil)
		return
	}

	in, err := req.ToInput()
	if err != nil {
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Invalid reservation dates", nil)
		return
	}

	id, err := h.reservationCommands.Create(c.Request.Context(), actor, in)
	if err != nil {
		h.abortCommandError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.CreatedResponse{ID: id})
}

func (h *ReservationHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	view, err := h.reservationQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, queries.ErrReservationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Reservation not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *ReservationHandler) List(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	filter, limit, err := parseListFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	items, err := h.reservationQueries.ListByProperty(c.Request.Context(), actor.PropertyID, filter, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	if items == nil {
		items = []*queries.ReservationListItem{}
	}

	c.JSON(http.StatusOK, items)
}

func (h *ReservationHandler) Update(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req reqdto.UpdateReservationRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, bindErr, "Missing or invalid reservation fields", nil)
		return
	}

	in, err := req.ToInput()
	if err != nil {
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Invalid reservation dates", nil)
		return
	}

	if err := h.reservationCommands.Rebook(c.Request.Context(), actor, id, in); err != nil {
		h.abortCommandError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

func (h *ReservationHandler) Confirm(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req reqdto.ConfirmReservationRequest
	_ = c.ShouldBindJSON(&req)

	if err := h.reservationCommands.Confirm(c.Request.Context(), actor, id, req.GuaranteeType); err != nil {
		h.abortCommandError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

func (h *ReservationHandler) CheckIn(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.reservationCommands.CheckIn(c.Request.Context(), actor, id); err != nil {
		h.abortCommandError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

func (h *ReservationHandler) CheckOut(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req reqdto.CheckOutRequest
	_ = c.ShouldBindJSON(&req)

	err := h.reservationCommands.CheckOut(c.Request.Context(), actor, id, commands.CheckOutInput{PaidAmount: req.PaidAmount})
	if err != nil {
		if errors.Is(err, reservation.ErrOutstandingBalance) {
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err,
				"Checkout bloqueado: existem valores pendentes", nil)
			return
		}
		h.abortCommandError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

func (h *ReservationHandler) Cancel(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req reqdto.CancelReservationRequest
	_ = c.ShouldBindJSON(&req)

	result, err := h.reservationCommands.Cancel(c.Request.Context(), actor, id, req.Reason)
	if err != nil {
		h.abortCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromCancelResult(result))
}

func (h *ReservationHandler) PreviewCancellation(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	view, err := h.cancellationQueries.PreviewRefund(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, queries.ErrReservationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Reservation not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *ReservationHandler) MarkNoShow(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.reservationCommands.MarkNoShow(c.Request.Context(), actor, id); err != nil {
		h.abortCommandError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

func (h *ReservationHandler) OverridePrice(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req reqdto.OverridePriceRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, bindErr, "Override value must be positive", nil)
		return
	}

	if err := h.reservationCommands.OverridePrice(c.Request.Context(), actor, id, req.Value); err != nil {
		h.abortCommandError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

func (h *ReservationHandler) ListConsumptions(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	views, err := h.reservationQueries.ListConsumptions(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	if views == nil {
		views = []*queries.ConsumptionView{}
	}

	c.JSON(http.StatusOK, views)
}

func (h *ReservationHandler) RegisterConsumption(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req reqdto.RegisterConsumptionRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, bindErr, "Missing or invalid consumption fields", nil)
		return
	}

	consumptionID, err := h.minibarCommands.RegisterConsumption(c.Request.Context(), actor, commands.RegisterConsumptionInput{
		ReservationID: id,
		ProductID:     req.ProductID,
		Quantity:      req.Quantity,
	})
	if err != nil {
		h.abortCommandError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.CreatedResponse{ID: consumptionID})
}

// abortCommandError maps usecase sentinels onto HTTP statuses. Conflicts
// surface as a 422 field error on room_id so the booking form can highlight
// the offending input.
func (h *ReservationHandler) abortCommandError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrReservationNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Reservation not found",
		})
	case errors.Is(err, commands.ErrRoomNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Room not found",
		})
	case errors.Is(err, commands.ErrPropertyNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Property not found",
		})
	case errors.Is(err, commands.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Product not found",
		})
	case errors.Is(err, commands.ErrRoomUnavailable):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err,
			"Room is not available for the requested dates",
			gin.H{"room_id": "conflicts with an existing reservation or block"})
	case errors.Is(err, pricing.ErrCapacityExceeded):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Party exceeds room capacity", nil)
	case errors.Is(err, commands.ErrInvalidStayRange):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Invalid stay range", nil)
	case errors.Is(err, commands.ErrConsumptionInvalid):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Consumption rejected", nil)
	case errors.Is(err, commands.ErrDomainValidation):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Domain validation failed", nil)
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}

func parseListFilter(c *gin.Context) (queries.ReservationFilter, int, error) {
	var filter queries.ReservationFilter

	if roomIDStr := c.Query("room_id"); roomIDStr != "" {
		roomID, err := uuid.Parse(roomIDStr)
		if err != nil {
			return filter, 0, errors.New("invalid room_id")
		}
		filter.RoomID = &roomID
	}
	if status := c.Query("status"); status != "" {
		filter.Status = &status
	}
	if fromStr := c.Query("from"); fromStr != "" {
		from, err := time.Parse(time.DateOnly, fromStr)
		if err != nil {
			return filter, 0, errors.New("invalid from date, expected YYYY-MM-DD")
		}
		filter.From = &from
	}
	if toStr := c.Query("to"); toStr != "" {
		to, err := time.Parse(time.DateOnly, toStr)
		if err != nil {
			return filter, 0, errors.New("invalid to date, expected YYYY-MM-DD")
		}
		filter.To = &to
	}

	limit := 0
	if limitStr := c.Query("limit"); limitStr != "" {
		n, err := strconv.Atoi(limitStr)
		if err != nil || n < 0 {
			return filter, 0, errors.New("invalid limit")
		}
		limit = n
	}
	return filter, limit, nil
}
