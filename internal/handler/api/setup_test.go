//go:build unit

package api_test

import (
	"net/http"

	reqdto "rx-exchange/internal/handler/dto/request"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const testToken = "bearer-token"

// newTestEngine returns an engine whose auth stub resolves any bearer token to hospitalID.
func newTestEngine(hospitalID uuid.UUID) (*gin.Engine, gin.HandlerFunc) {
	gin.SetMode(gin.TestMode)
	if err := reqdto.RegisterValidators(); err != nil {
		panic(err)
	}
	auth := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
			return
		}
		c.Set("hospital_id", hospitalID)
		c.Next()
	}
	return gin.New(), auth
}
