package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"dineflow/utils"
)

// JWTAuthConversationMiddleware requires a bearer token issued by the
// start-conversation endpoint and puts the conversation ID into the request
// context under "conversationID".
func JWTAuthConversationMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or malformed authorization header"})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		conversationID, err := utils.ExtractConversationID(tokenString)
		if err != nil {
			zap.L().Warn("rejected conversation token", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set("conversationID", conversationID)
		c.Next()
	}
}
