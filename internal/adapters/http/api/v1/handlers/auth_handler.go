package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	authmw "github.com/muneezaZaki85/galvan-ai-auth-system/internal/adapters/http/middleware"
	"github.com/muneezaZaki85/galvan-ai-auth-system/internal/domain"
	"github.com/muneezaZaki85/galvan-ai-auth-system/internal/usecase"
	res "github.com/muneezaZaki85/galvan-ai-auth-system/pkg/http"
)

type AuthHandler struct {
	service usecase.AuthService
}

func NewAuthHandler(s usecase.AuthService) *AuthHandler { return &AuthHandler{service: s} }

type registerRequest struct {
	FirstName      string  `json:"first_name"`
	LastName       string  `json:"last_name"`
	Email          string  `json:"email"`
	Password       string  `json:"password"`
	MobileNumber   string  `json:"mobile_number"`
	ProfilePicture *string `json:"profile_picture"`
}

type verifyOTPRequest struct {
	Email   string `json:"email"`
	OTPCode string `json:"otp_code"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Message      string       `json:"message"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int64        `json:"expires_in"`
	User         *domain.User `json:"user"`
}

func (h *AuthHandler) Register(c echo.Context) error {
	req := new(registerRequest)
	if err := c.Bind(req); err != nil {
		return res.Message(c, http.StatusBadRequest, "Invalid request payload")
	}
	_, emailSent, err := h.service.Register(c.Request().Context(), requestIDFromCtx(c), usecase.RegisterInput{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Password:       req.Password,
		MobileNumber:   req.MobileNumber,
		ProfilePicture: req.ProfilePicture,
	})
	if err != nil {
		return res.Fail(c, err, "Registration failed")
	}
	if !emailSent {
		return res.Message(c, http.StatusCreated, "Registration successful but email sending failed")
	}
	return res.Message(c, http.StatusCreated, "Registration successful. OTP sent to email.")
}

func (h *AuthHandler) VerifyOTP(c echo.Context) error {
	req := new(verifyOTPRequest)
	if err := c.Bind(req); err != nil {
		return res.Message(c, http.StatusBadRequest, "Invalid request payload")
	}
	if err := h.service.VerifyOTP(c.Request().Context(), requestIDFromCtx(c), req.Email, req.OTPCode); err != nil {
		return res.Fail(c, err, "OTP verification failed")
	}
	return res.Message(c, http.StatusOK, "Email verified successfully")
}

func (h *AuthHandler) Login(c echo.Context) error {
	req := new(loginRequest)
	if err := c.Bind(req); err != nil {
		return res.Message(c, http.StatusBadRequest, "Invalid request payload")
	}
	user, tokens, err := h.service.Login(c.Request().Context(), requestIDFromCtx(c), req.Email, req.Password)
	if err != nil {
		return res.Fail(c, err, "Login failed")
	}
	return c.JSON(http.StatusOK, loginResponse{
		Message:      "Login successful",
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresIn:    tokens.ExpiresIn,
		User:         user,
	})
}

// Refresh runs behind the refresh-token guard; the subject comes from the
// verified token, not the body.
func (h *AuthHandler) Refresh(c echo.Context) error {
	email, _ := c.Get(authmw.CtxEmail).(string)
	access, err := h.service.Refresh(c.Request().Context(), requestIDFromCtx(c), email)
	if err != nil {
		return res.Fail(c, err, "Token refresh failed")
	}
	return c.JSON(http.StatusOK, map[string]string{"access_token": access})
}

func (h *AuthHandler) Logout(c echo.Context) error {
	email, _ := c.Get(authmw.CtxEmail).(string)
	h.service.Logout(c.Request().Context(), requestIDFromCtx(c), email)
	return res.Message(c, http.StatusOK, "Logout successful")
}

func (h *AuthHandler) Profile(c echo.Context) error {
	email, _ := c.Get(authmw.CtxEmail).(string)
	user, err := h.service.Profile(c.Request().Context(), email)
	if err != nil {
		return res.Fail(c, err, "Failed to fetch profile")
	}
	return c.JSON(http.StatusOK, map[string]*domain.User{"user": user})
}

func requestIDFromCtx(c echo.Context) string {
	if reqID := c.Response().Header().Get(echo.HeaderXRequestID); reqID != "" {
		return reqID
	}
	return c.Request().Header.Get(echo.HeaderXRequestID)
}
