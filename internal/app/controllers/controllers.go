package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/minsu/dormisphere/internal/app/models"
	"github.com/minsu/dormisphere/internal/app/services"
	"github.com/minsu/dormisphere/internal/middleware"
)

// currentUserID returns the authenticated user's id from the request context
func currentUserID(c *gin.Context) int64 {
	id, _ := c.Get(middleware.ContextUserID)
	userID, _ := id.(int64)
	return userID
}

// currentCaller builds the service-layer caller identity from the claims
// stored by the auth middleware.
func currentCaller(c *gin.Context) services.Caller {
	role, _ := c.Get(middleware.ContextRole)
	roleStr, _ := role.(string)
	return services.Caller{
		UserID: currentUserID(c),
		Staff:  roleStr == string(models.RoleTeacher),
	}
}

// parseIDParam parses the :id path parameter
func parseIDParam(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}
