package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/care-record-api/internal/middleware"
	"github.com/noah-isme/care-record-api/internal/models"
	"github.com/noah-isme/care-record-api/internal/service"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok {
		return nil
	}
	return claims
}

func actorFromContext(c *gin.Context) service.Actor {
	actor := service.Actor{IPAddress: c.ClientIP(), UserAgent: c.Request.UserAgent()}
	if claims := claimsFromContext(c); claims != nil {
		actor.UserID = claims.UserID
	}
	return actor
}

// pageFromQuery reads the page and limit query parameters. Invalid values fall back to defaults.
func pageFromQuery(c *gin.Context) (page, size int) {
	page, size = 1, models.DefaultPageSize
	if v, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		page = v
	}
	if v, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(models.DefaultPageSize))); err == nil {
		size = v
	}
	return page, size
}
