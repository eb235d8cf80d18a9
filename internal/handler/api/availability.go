package api

import (
	"errors"
	"net/http"

	"pousada-pms/internal/domain/pricing"
	reqdto "pousada-pms/internal/handler/dto/request"
	"pousada-pms/internal/handler/httperr"
	"pousada-pms/internal/handler/middleware"
	"pousada-pms/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type AvailabilityHandler struct {
	availabilityQueries queries.AvailabilityQueries
}

func NewAvailabilityHandler(availabilityQueries queries.AvailabilityQueries) *AvailabilityHandler {
	return &AvailabilityHandler{
		availabilityQueries: availabilityQueries,
	}
}

func (h *AvailabilityHandler) Search(c *gin.Context) {
	propertyID, ok := middleware.GetPropertyID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	var req reqdto.AvailabilitySearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Missing or invalid search fields", nil)
		return
	}

	stay, party, err := req.ToStay()
	if err != nil {
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Invalid stay range", nil)
		return
	}

	views, err := h.availabilityQueries.Search(c.Request.Context(), propertyID, stay, party)
	if err != nil {
		switch {
		case errors.Is(err, pricing.ErrNoAdults), errors.Is(err, queries.ErrInvalidSearch):
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Invalid search parameters", nil)
		case errors.Is(err, queries.ErrPropertyNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Property not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, views)
}
