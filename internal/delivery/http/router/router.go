// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"vendorbridge/internal/delivery/http/middleware"
	"vendorbridge/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	IdentityHandler *handler.IdentityHandler
	AuthMiddleware  *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	identityHandler *handler.IdentityHandler
	authMiddleware  *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		identityHandler: params.IdentityHandler,
		authMiddleware:  params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api")

	// Health check endpoint
	api.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/signup", r.identityHandler.Signup)
		authGroup.POST("/signin", r.identityHandler.Signin)
		authGroup.GET("/users", r.identityHandler.ListUsers)
		authGroup.GET("/me", r.identityHandler.Me, r.authMiddleware.Authenticate)
	}
}
