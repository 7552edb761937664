package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/care-record-api/internal/models"
	appErrors "github.com/noah-isme/care-record-api/pkg/errors"
	"github.com/noah-isme/care-record-api/pkg/response"
)

// RequireRoles only lets through users holding one of the given roles.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	allowed := make(map[models.UserRole]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *gin.Context) {
		value, exists := c.Get(ContextUserKey)
		claims, ok := value.(*models.JWTClaims)
		if !exists || !ok {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		if _, permitted := allowed[claims.Role]; !permitted {
			response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "role not permitted"))
			c.Abort()
			return
		}

		c.Next()
	}
}
