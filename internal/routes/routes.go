package routes

import (
	"github.com/gin-gonic/gin"

	"accountd/internal/handlers"
	"accountd/internal/middleware"
	"accountd/internal/security"
)

func SetupRoutes(
	r *gin.Engine,
	issuer *security.TokenIssuer,
	limiter *middleware.RateLimiter,
	authHandler *handlers.AuthHandler,
	verificationHandler *handlers.VerificationHandler,
	userHandler *handlers.UserHandler,
) *gin.Engine {
	api := r.Group("/api")

	// ---- public
	auth := api.Group("/auth")
	{
		auth.POST("/signup", authHandler.SignUp)
		auth.POST("/signin", authHandler.SignIn)
		auth.POST("/token/renew", authHandler.RenewAccessToken)
		auth.POST("/password/reset-request",
			limiter.Limit("reset-request"), authHandler.RequestResetPassword)
		auth.POST("/password/reset", authHandler.ResetPassword)
	}

	verification := api.Group("/verification")
	{
		verification.POST("/request",
			limiter.Limit("verification-request"), verificationHandler.RequestEmailVerification)
		verification.POST("/verify", verificationHandler.VerifyEmail)
	}

	// ---- protected
	users := api.Group("/users")
	users.Use(middleware.AuthMiddleware(issuer))
	{
		users.GET("/me", userHandler.Me)
	}

	return r
}
