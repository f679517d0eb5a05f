package handler

import (
	"errors"
	"net/http"

	"vendordocs/internal/permission"
	"vendordocs/internal/service"

	"github.com/gin-gonic/gin"

	"vendordocs/pkg/response"
)

// writeServiceError maps service-layer sentinels onto HTTP responses so
// every handler reports denials, conflicts and missing rows the same way.
func writeServiceError(c *gin.Context, err error) {
	switch {
	case permission.IsDenial(err):
		c.JSON(http.StatusForbidden, response.Error(http.StatusForbidden, err.Error()))
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
	case errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrConcurrentModification),
		errors.Is(err, service.ErrDuplicatePendingApproval),
		errors.Is(err, service.ErrAlreadyDecided):
		c.JSON(http.StatusConflict, response.Error(http.StatusConflict, err.Error()))
	case errors.Is(err, service.ErrApprovalExpired):
		c.JSON(http.StatusGone, response.Error(http.StatusGone, err.Error()))
	case errors.Is(err, service.ErrStorageUnavailable):
		c.JSON(http.StatusServiceUnavailable, response.Error(http.StatusServiceUnavailable, "Storage temporarily unavailable"))
	default:
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
	}
}

// actorID pulls the authenticated user's ID out of the gin context.
func actorID(c *gin.Context) (string, bool) {
	v, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "User ID not found in context"))
		return "", false
	}
	id, ok := v.(string)
	if !ok || id == "" {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Invalid User ID format"))
		return "", false
	}
	return id, true
}
