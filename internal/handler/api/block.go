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

type BlockHandler struct {
	blockCommands commands.BlockCommands
	blockQueries  queries.BlockQueries
}

func NewBlockHandler(blockCommands commands.BlockCommands, blockQueries queries.BlockQueries) *BlockHandler {
	return &BlockHandler{
		blockCommands: blockCommands,
		blockQueries:  blockQueries,
	}
}

func (h *BlockHandler) Create(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var req reqdto.CreateBlockRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, bindErr, "Missing or invalid block fields", nil)
		return
	}

	in, err := req.ToInput()
	if err != nil {
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Invalid block dates", nil)
		return
	}

	id, err := h.blockCommands.Create(c.Request.Context(), actor, in)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrRoomNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Room not found",
			})
		case errors.Is(err, commands.ErrBlockConflict):
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err,
				"Block overlaps an existing block", nil)
		case errors.Is(err, commands.ErrInvalidStayRange), errors.Is(err, commands.ErrDomainValidation):
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Invalid block", nil)
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.CreatedResponse{ID: id})
}

func (h *BlockHandler) Delete(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.blockCommands.Delete(c.Request.Context(), actor, id); err != nil {
		if errors.Is(err, commands.ErrBlockNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Block not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *BlockHandler) ListByRoom(c *gin.Context) {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid room ID format",
		})
		return
	}

	views, err := h.blockQueries.ListByRoom(c.Request.Context(), roomID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	if views == nil {
		views = []queries.BlockView{}
	}

	c.JSON(http.StatusOK, views)
}
