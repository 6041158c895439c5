package handlers

import (
	"github.com/gin-gonic/gin"

	"accountd/internal/models"
	"accountd/internal/services"
)

type AuthHandler struct {
	auth services.AuthService
}

func NewAuthHandler(auth services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

func (h *AuthHandler) SignUp(c *gin.Context) {
	var req models.SignUpRequest
	if !bindJSON(c, &req) {
		return
	}
	respond(c, h.auth.SignUp(c.Request.Context(), req))
}

func (h *AuthHandler) SignIn(c *gin.Context) {
	var req models.SignInRequest
	if !bindJSON(c, &req) {
		return
	}
	respond(c, h.auth.SignIn(c.Request.Context(), req))
}

func (h *AuthHandler) RenewAccessToken(c *gin.Context) {
	var req models.RenewTokenRequest
	if !bindJSON(c, &req) {
		return
	}
	respond(c, h.auth.RenewAccessToken(c.Request.Context(), req.RefreshToken))
}

func (h *AuthHandler) RequestResetPassword(c *gin.Context) {
	var req models.RequestResetPasswordRequest
	if !bindJSON(c, &req) {
		return
	}
	respond(c, h.auth.RequestResetPassword(c.Request.Context(), req.Email, clientIP(c)))
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req models.ResetPasswordRequest
	if !bindJSON(c, &req) {
		return
	}
	respond(c, h.auth.ResetPassword(c.Request.Context(), req))
}
