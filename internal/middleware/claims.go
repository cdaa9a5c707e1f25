package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/eladkar/semester-planner-api/internal/models"
)

// CurrentClaims returns the JWT claims attached by the JWT middleware, or
// nil when the request is unauthenticated.
func CurrentClaims(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok {
		return nil
	}
	return claims
}

// CurrentUserID returns the authenticated user's id, or an empty string.
func CurrentUserID(c *gin.Context) string {
	claims := CurrentClaims(c)
	if claims == nil {
		return ""
	}
	return claims.UserID
}
