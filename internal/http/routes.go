package http

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	middleware "todaygenda.com/todaygenda/internal/http/middlewares"
)

type RouteOptions struct {
	Limiter        middleware.Limiter
	AllowedOrigins []string
}

func Register(e *echo.Echo, h *Handler, opts RouteOptions) {
	e.HTTPErrorHandler = ErrorHandler(h.logger)

	e.Use(echomw.Recover())
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middleware.ZapLogger(h.logger))
	if len(opts.AllowedOrigins) > 0 {
		e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
			AllowOrigins:     opts.AllowedOrigins,
			AllowHeaders:     []string{echo.HeaderAuthorization, echo.HeaderContentType},
			AllowCredentials: true,
		}))
	}
	if opts.Limiter != nil {
		e.Use(middleware.RateLimiter(opts.Limiter, h.logger))
	}

	auth := middleware.Authenticate(h.userService)

	e.GET("/", h.Root)
	e.GET("/today", h.Today, auth)
	e.GET("/agenda", h.Agenda, auth)

	e.POST("/task", h.CreateTask, auth)
	e.POST("/task/bulk/do", h.CompleteTasks, auth)
	e.POST("/task/:id/do", h.CompleteTask, auth)
	e.POST("/task/:id/undo", h.UncompleteTask, auth)

	e.GET("/user", h.CurrentUser, auth)
	e.POST("/user", h.Signup)
	e.POST("/user/register", h.RegisterGuest, auth)
	e.POST("/user/token", h.Token)
}
