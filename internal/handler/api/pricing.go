package api

import (
	"errors"
	"net/http"

	"pousada-pms/internal/domain/pricing"
	"pousada-pms/internal/pkg/timespan"

	reqdto "pousada-pms/internal/handler/dto/request"
	"pousada-pms/internal/handler/httperr"
	"pousada-pms/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type PricingHandler struct {
	pricingQueries queries.PricingQueries
}

func NewPricingHandler(pricingQueries queries.PricingQueries) *PricingHandler {
	return &PricingHandler{
		pricingQueries: pricingQueries,
	}
}

func (h *PricingHandler) Calculate(c *gin.Context) {
	h.calculate(c, false)
}

func (h *PricingHandler) CalculateDetailed(c *gin.Context) {
	h.calculate(c, true)
}

func (h *PricingHandler) calculate(c *gin.Context, detailed bool) {
	var req reqdto.CalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Missing or invalid pricing fields", nil)
		return
	}

	stay, party, err := req.ToStay()
	if err != nil {
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Invalid stay range", nil)
		return
	}

	var view *queries.QuoteView
	if detailed {
		view, err = h.pricingQueries.CalculateDetailed(c.Request.Context(), req.RoomID, stay, party)
	} else {
		view, err = h.pricingQueries.Calculate(c.Request.Context(), req.RoomID, stay, party)
	}
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrRoomNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Room not found",
			})
		case errors.Is(err, queries.ErrPropertyNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Property not found",
			})
		case errors.Is(err, pricing.ErrCapacityExceeded):
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Party exceeds room capacity", nil)
		case errors.Is(err, pricing.ErrNoBaseRate), errors.Is(err, timespan.ErrEmptyRange):
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "No rate covers the requested stay", nil)
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, view)
}
