package httpHandler

import (
	"errors"
	"net/http"

	"sage-portal/auth"
	"sage-portal/entities"
	"sage-portal/logger"
	"sage-portal/usecases"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError maps use case and auth errors to a status code and the
// {"error": ...} body shared by every endpoint.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecases.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, usecases.ErrInvalid):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, usecases.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": auth.TranslateError(auth.ErrUnauthorized.Error())})
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrNotConfirmed),
		errors.Is(err, auth.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": auth.Message(err)})
	case errors.Is(err, auth.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"error": auth.Message(err)})
	case errors.Is(err, auth.ErrPasswordTooShort), errors.Is(err, auth.ErrEmailInvalid):
		c.JSON(http.StatusBadRequest, gin.H{"error": auth.Message(err)})
	default:
		logger.L().Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func bindJSON(c *gin.Context, v interface{}) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return false
	}
	return true
}

func respondList[T any](c *gin.Context, items []T) {
	if items == nil {
		items = []T{}
	}
	c.JSON(http.StatusOK, gin.H{
		"data":  items,
		"count": len(items),
	})
}

// isAdmin reports whether the authenticated caller is an administrator.
func isAdmin(c *gin.Context) bool {
	claims, ok := auth.ClaimsFrom(c)
	return ok && claims.Role == entities.RoleAdmin
}
