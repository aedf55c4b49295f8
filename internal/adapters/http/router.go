package http

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/muneezaZaki85/galvan-ai-auth-system/config"
	v1 "github.com/muneezaZaki85/galvan-ai-auth-system/internal/adapters/http/api/v1"
	internalhttp "github.com/muneezaZaki85/galvan-ai-auth-system/internal/adapters/http/internal"
)

type Router struct {
	cfg       *config.Config
	apiRouter *v1.Router
}

func NewRouter(cfg *config.Config, apiRouter *v1.Router) *Router {
	return &Router{cfg: cfg, apiRouter: apiRouter}
}

func (r *Router) Setup(e *echo.Echo) {
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger())
	e.Use(middleware.CORS())

	apiGroup := e.Group(r.cfg.HTTPBasePath)
	internalhttp.Register(apiGroup)
	r.apiRouter.Register(apiGroup)
}
