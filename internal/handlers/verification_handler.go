package handlers

import (
	"github.com/gin-gonic/gin"

	"accountd/internal/models"
	"accountd/internal/services"
)

type VerificationHandler struct {
	verification services.VerificationService
}

func NewVerificationHandler(verification services.VerificationService) *VerificationHandler {
	return &VerificationHandler{verification: verification}
}

func (h *VerificationHandler) RequestEmailVerification(c *gin.Context) {
	var req models.RequestEmailVerificationRequest
	if !bindJSON(c, &req) {
		return
	}
	respond(c, h.verification.RequestEmailVerification(c.Request.Context(), req.Email, clientIP(c)))
}

func (h *VerificationHandler) VerifyEmail(c *gin.Context) {
	var req models.VerifyEmailRequest
	if !bindJSON(c, &req) {
		return
	}
	respond(c, h.verification.VerifyEmail(c.Request.Context(), nil, req.Email, req.Otp))
}
