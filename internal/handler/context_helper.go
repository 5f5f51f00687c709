package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/mesa-admin/resto-bo-api/internal/middleware"
	"github.com/mesa-admin/resto-bo-api/internal/models"
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

// restaurantScope resolves the restaurant a request operates on. Managers and
// staff are pinned to the restaurant on their token; owners pick one via the
// restaurant_id query parameter.
func restaurantScope(c *gin.Context) string {
	claims := claimsFromContext(c)
	if claims != nil && claims.RestaurantID != nil && *claims.RestaurantID != "" {
		return *claims.RestaurantID
	}
	return c.Query("restaurant_id")
}
