package v1

import (
	"github.com/labstack/echo/v4"

	"github.com/muneezaZaki85/galvan-ai-auth-system/internal/adapters/http/api/v1/handlers"
	authmw "github.com/muneezaZaki85/galvan-ai-auth-system/internal/adapters/http/middleware"
)

type Router struct {
	auth  *handlers.AuthHandler
	admin *handlers.AdminHandler
	mw    *authmw.AuthMiddleware
}

func NewRouter(auth *handlers.AuthHandler, admin *handlers.AdminHandler, mw *authmw.AuthMiddleware) *Router {
	return &Router{auth: auth, admin: admin, mw: mw}
}

func (r *Router) Register(g *echo.Group) {
	auth := g.Group("/auth")
	auth.POST("/register", r.auth.Register)
	auth.POST("/verify-otp", r.auth.VerifyOTP)
	auth.POST("/login", r.auth.Login)
	auth.POST("/refresh", r.auth.Refresh, r.mw.RequireRefresh)
	auth.POST("/logout", r.auth.Logout, r.mw.RequireAccess)
	auth.GET("/profile", r.auth.Profile, r.mw.RequireAccess)

	admin := g.Group("/admin", r.mw.RequireAccess)
	admin.GET("/users", r.admin.List)
	admin.POST("/users", r.admin.Create)
	admin.GET("/users/:id", r.admin.Get)
	admin.PUT("/users/:id", r.admin.Update)
	admin.DELETE("/users/:id", r.admin.Delete)
}
