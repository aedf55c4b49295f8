package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/muneezaZaki85/galvan-ai-auth-system/internal/domain"
)

type MessageResponse struct {
	Message string `json:"message"`
}

func Message(c echo.Context, status int, message string) error {
	return c.JSON(status, MessageResponse{Message: message})
}

// Fail renders a domain error with its mapped status and message. Errors
// outside the taxonomy become a 500 with the operation's fallback prefix so a
// raw fault never reaches the client verbatim.
func Fail(c echo.Context, err error, fallback string) error {
	if status, message, ok := classify(err); ok {
		return Message(c, status, message)
	}
	return Message(c, http.StatusInternalServerError, fmt.Sprintf("%s: %v", fallback, err))
}

func classify(err error) (int, string, bool) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, err.Error(), true
	case errors.Is(err, domain.ErrDuplicateEmail):
		return http.StatusBadRequest, "Email already exists", true
	case errors.Is(err, domain.ErrAlreadyVerified):
		return http.StatusBadRequest, "User already verified", true
	case errors.Is(err, domain.ErrInvalidOTP):
		return http.StatusBadRequest, "Invalid OTP", true
	case errors.Is(err, domain.ErrOTPExpired):
		return http.StatusBadRequest, "OTP expired", true
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid email or password", true
	case errors.Is(err, domain.ErrEmailNotVerified):
		return http.StatusUnauthorized, "Email not verified", true
	case errors.Is(err, domain.ErrTokenMissing):
		return http.StatusUnauthorized, "Authorization token is required", true
	case errors.Is(err, domain.ErrTokenExpired):
		return http.StatusUnauthorized, "Token has expired", true
	case errors.Is(err, domain.ErrTokenInvalid):
		return http.StatusUnauthorized, "Invalid token", true
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "Super admin access required", true
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "User not found", true
	}
	return 0, "", false
}
