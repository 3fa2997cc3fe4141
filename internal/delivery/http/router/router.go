// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"sapa/internal/delivery/http/middleware"
	"sapa/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	HealthHandler  *handler.HealthHandler
	AuthHandler    *handler.AuthHandler
	ProductHandler *handler.ProductHandler
	CatalogHandler *handler.CatalogHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	healthHandler  *handler.HealthHandler
	authHandler    *handler.AuthHandler
	productHandler *handler.ProductHandler
	catalogHandler *handler.CatalogHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		healthHandler:  params.HealthHandler,
		authHandler:    params.AuthHandler,
		productHandler: params.ProductHandler,
		catalogHandler: params.CatalogHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", r.healthHandler.Check)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.authHandler.Register)
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.POST("/logout", r.authHandler.Logout)
	}

	// Profile routes that require authentication
	profileGroup := e.Group("/profile")
	profileGroup.Use(r.authMiddleware.Authenticate)
	{
		profileGroup.GET("", r.authHandler.GetProfile)
		profileGroup.PUT("", r.authHandler.UpdateProfile)
	}

	// Product submission routes
	productGroup := e.Group("/products")
	{
		productGroup.GET("", r.productHandler.List)
		productGroup.GET("/mine", r.productHandler.ListMine, r.authMiddleware.Authenticate)
		productGroup.POST("", r.productHandler.Submit, r.authMiddleware.Authenticate)
		productGroup.DELETE("", r.productHandler.ClearAll, r.authMiddleware.Authenticate)
	}

	// Curated catalog routes, public
	catalogGroup := e.Group("/catalog")
	{
		catalogGroup.GET("", r.catalogHandler.List)
		catalogGroup.GET("/:slug", r.catalogHandler.Detail)
		catalogGroup.GET("/:slug/qr", r.catalogHandler.ShareQR)
	}
}
