package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"accountd/internal/result"
)

// respond serializes a service envelope as-is; the envelope already carries
// the HTTP status.
func respond[T any](c *gin.Context, res result.Result[T]) {
	c.JSON(res.HTTPStatusCode, res)
}

// bindJSON binds the request body and, on failure, writes a ValidationError
// envelope with field-level detail. Returns false when binding failed.
func bindJSON(c *gin.Context, req any) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}

	serviceErr := result.ValidationError
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		for _, fe := range validationErrs {
			serviceErr.ValidationErrors = append(serviceErr.ValidationErrors, result.FieldError{
				Field:   fe.Field(),
				Message: fe.Tag(),
			})
		}
	}

	c.JSON(http.StatusBadRequest, result.Fail[any](http.StatusBadRequest, serviceErr))
	return false
}

// clientIP returns the caller address as a nullable string for the ledgers.
func clientIP(c *gin.Context) *string {
	ip := c.ClientIP()
	if ip == "" {
		return nil
	}
	return &ip
}
