package api

import (
	"errors"
	"net/http"

	reqdto "pousada-pms/internal/handler/dto/request"
	resdto "pousada-pms/internal/handler/dto/response"
	"pousada-pms/internal/handler/httperr"
	"pousada-pms/internal/usecase/commands"
	"pousada-pms/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PolicyHandler struct {
	policyCommands      commands.PolicyCommands
	cancellationQueries queries.CancellationQueries
}

func NewPolicyHandler(policyCommands commands.PolicyCommands, cancellationQueries queries.CancellationQueries) *PolicyHandler {
	return &PolicyHandler{
		policyCommands:      policyCommands,
		cancellationQueries: cancellationQueries,
	}
}

// GetActive returns the policy currently governing refunds for the property.
func (h *PolicyHandler) GetActive(c *gin.Context) {
	propertyID, ok := h.propertyFromPath(c)
	if !ok {
		return
	}

	view, err := h.cancellationQueries.GetActivePolicy(c.Request.Context(), propertyID)
	if err != nil {
		if errors.Is(err, queries.ErrPolicyNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "No active cancellation policy",
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

func (h *PolicyHandler) List(c *gin.Context) {
	propertyID, ok := h.propertyFromPath(c)
	if !ok {
		return
	}

	views, err := h.cancellationQueries.ListPolicies(c.Request.Context(), propertyID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	if views == nil {
		views = []queries.PolicyView{}
	}

	c.JSON(http.StatusOK, views)
}

func (h *PolicyHandler) Upsert(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	propertyID, ok := h.propertyFromPath(c)
	if !ok {
		return
	}
	if propertyID != actor.PropertyID {
		c.JSON(http.StatusForbidden, gin.H{
			"error": "Policy belongs to another property",
		})
		return
	}

	var req reqdto.UpsertPolicyRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, bindErr, "Missing or invalid policy fields", nil)
		return
	}

	id, err := h.policyCommands.Upsert(c.Request.Context(), actor, req.ToInput())
	if err != nil {
		if errors.Is(err, commands.ErrInvalidPolicy) {
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Invalid cancellation policy", nil)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.CreatedResponse{ID: id})
}

func (h *PolicyHandler) propertyFromPath(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid property ID format",
		})
		return uuid.Nil, false
	}
	return id, true
}
