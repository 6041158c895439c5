package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"accountd/internal/middleware"
	"accountd/internal/result"
	"accountd/internal/services"
)

type UserHandler struct {
	users services.UserService
}

func NewUserHandler(users services.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// Me returns the profile of the authenticated user.
func (h *UserHandler) Me(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, result.Fail[any](http.StatusUnauthorized, result.NoAuthorizationToken))
		return
	}
	respond(c, h.users.GetUserDetails(c.Request.Context(), userID))
}
