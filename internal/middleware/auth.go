package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"accountd/internal/result"
	"accountd/internal/security"
)

// ContextUserID is the gin context key the auth middleware sets for handlers.
const ContextUserID = "user_id"

// AuthMiddleware guards routes behind a bearer access token. Missing header
// and invalid token answer the same envelope, without detail.
func AuthMiddleware(issuer *security.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if authHeader == "" {
			abortUnauthorized(c)
			return
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abortUnauthorized(c)
			return
		}
		tokenStr := strings.TrimSpace(parts[1])
		if tokenStr == "" {
			abortUnauthorized(c)
			return
		}

		subjectID, err := issuer.Verify(tokenStr)
		if err != nil {
			abortUnauthorized(c)
			return
		}

		c.Set(ContextUserID, subjectID)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		result.Fail[any](http.StatusUnauthorized, result.NoAuthorizationToken))
}

func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
