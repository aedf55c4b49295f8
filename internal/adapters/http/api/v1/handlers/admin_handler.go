package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	authmw "github.com/muneezaZaki85/galvan-ai-auth-system/internal/adapters/http/middleware"
	"github.com/muneezaZaki85/galvan-ai-auth-system/internal/domain"
	"github.com/muneezaZaki85/galvan-ai-auth-system/internal/usecase"
	res "github.com/muneezaZaki85/galvan-ai-auth-system/pkg/http"
)

type AdminHandler struct {
	service usecase.AdminService
}

func NewAdminHandler(s usecase.AdminService) *AdminHandler { return &AdminHandler{service: s} }

// updateUserRequest mirrors usecase.UserPatch: only these fields are
// patchable, and unknown JSON keys are silently dropped by the decoder.
type updateUserRequest struct {
	FirstName      *string `json:"first_name"`
	LastName       *string `json:"last_name"`
	Email          *string `json:"email"`
	MobileNumber   *string `json:"mobile_number"`
	ProfilePicture *string `json:"profile_picture"`
}

type listUsersResponse struct {
	Users []domain.User `json:"users"`
	Total int           `json:"total"`
}

type userResponse struct {
	Message string       `json:"message,omitempty"`
	User    *domain.User `json:"user"`
}

func (h *AdminHandler) List(c echo.Context) error {
	caller, _ := c.Get(authmw.CtxEmail).(string)
	users, err := h.service.ListUsers(c.Request().Context(), requestIDFromCtx(c), caller)
	if err != nil {
		return res.Fail(c, err, "Failed to fetch users")
	}
	return c.JSON(http.StatusOK, listUsersResponse{Users: users, Total: len(users)})
}

func (h *AdminHandler) Create(c echo.Context) error {
	caller, _ := c.Get(authmw.CtxEmail).(string)
	req := new(registerRequest)
	if err := c.Bind(req); err != nil {
		return res.Message(c, http.StatusBadRequest, "Invalid request payload")
	}
	user, err := h.service.CreateUser(c.Request().Context(), requestIDFromCtx(c), caller, usecase.RegisterInput{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Password:       req.Password,
		MobileNumber:   req.MobileNumber,
		ProfilePicture: req.ProfilePicture,
	})
	if err != nil {
		return res.Fail(c, err, "User creation failed")
	}
	return c.JSON(http.StatusCreated, userResponse{Message: "User created successfully", User: user})
}

func (h *AdminHandler) Get(c echo.Context) error {
	caller, _ := c.Get(authmw.CtxEmail).(string)
	user, err := h.service.GetUser(c.Request().Context(), requestIDFromCtx(c), caller, c.Param("id"))
	if err != nil {
		return res.Fail(c, err, "Failed to fetch user")
	}
	return c.JSON(http.StatusOK, userResponse{User: user})
}

func (h *AdminHandler) Update(c echo.Context) error {
	caller, _ := c.Get(authmw.CtxEmail).(string)
	req := new(updateUserRequest)
	if err := c.Bind(req); err != nil {
		return res.Message(c, http.StatusBadRequest, "Invalid request payload")
	}
	user, err := h.service.UpdateUser(c.Request().Context(), requestIDFromCtx(c), caller, c.Param("id"), usecase.UserPatch{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		MobileNumber:   req.MobileNumber,
		ProfilePicture: req.ProfilePicture,
	})
	if err != nil {
		return res.Fail(c, err, "User update failed")
	}
	return c.JSON(http.StatusOK, userResponse{Message: "User updated successfully", User: user})
}

func (h *AdminHandler) Delete(c echo.Context) error {
	caller, _ := c.Get(authmw.CtxEmail).(string)
	if err := h.service.DeleteUser(c.Request().Context(), requestIDFromCtx(c), caller, c.Param("id")); err != nil {
		return res.Fail(c, err, "User deletion failed")
	}
	return res.Message(c, http.StatusOK, "User deleted successfully")
}
