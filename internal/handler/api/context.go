package api

import (
	"net/http"

	"pousada-pms/internal/handler/middleware"
	"pousada-pms/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// currentActor pulls the operator identity set by the auth middleware.
// Aborts with 401 when the route is miswired without RequireAuth.
func currentActor(c *gin.Context) (commands.Actor, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return commands.Actor{}, false
	}
	propertyID, ok := middleware.GetPropertyID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return commands.Actor{}, false
	}
	return commands.Actor{ID: userID, PropertyID: propertyID}, true
}

func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid ID format",
		})
		return uuid.Nil, false
	}
	return id, true
}
