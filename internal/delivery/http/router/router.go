// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"larder/internal/delivery/http/middleware"
	"larder/internal/delivery/http/router/handler"
	"larder/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	UserHandler         *handler.UserHandler
	InventoryHandler    *handler.InventoryHandler
	NotificationHandler *handler.NotificationHandler
	HistoryHandler      *handler.HistoryHandler
	StatsHandler        *handler.StatsHandler
	SeedHandler         *handler.SeedHandler
	AuthMiddleware      *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler         *handler.UserHandler
	inventoryHandler    *handler.InventoryHandler
	notificationHandler *handler.NotificationHandler
	historyHandler      *handler.HistoryHandler
	statsHandler        *handler.StatsHandler
	seedHandler         *handler.SeedHandler
	authMiddleware      *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:         params.UserHandler,
		inventoryHandler:    params.InventoryHandler,
		notificationHandler: params.NotificationHandler,
		historyHandler:      params.HistoryHandler,
		statsHandler:        params.StatsHandler,
		seedHandler:         params.SeedHandler,
		authMiddleware:      params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/login", r.userHandler.Login)
	}

	// Routes that require authentication
	apiGroup := e.Group("/api")
	apiGroup.Use(r.authMiddleware.Authenticate) // Apply JWT authentication middleware
	{
		apiGroup.POST("/password", r.userHandler.ChangePassword)

		apiGroup.GET("/units", r.inventoryHandler.ListUnits)
		apiGroup.GET("/units/:name", r.inventoryHandler.GetUnit)
		apiGroup.POST("/units/:name/items", r.inventoryHandler.AddItem)
		apiGroup.POST("/units/:name/items/:item/remove", r.inventoryHandler.RemoveItem)

		apiGroup.GET("/notifications", r.notificationHandler.GetConfig)
		apiGroup.PUT("/notifications", r.notificationHandler.Configure)
		apiGroup.PATCH("/notifications/preferences", r.notificationHandler.UpdatePreferences)
		apiGroup.POST("/notifications/send-now", r.notificationHandler.SendNow)

		apiGroup.GET("/history", r.historyHandler.List)

		apiGroup.GET("/stats/activity", r.statsHandler.Activity)
		apiGroup.GET("/stats/outlook", r.statsHandler.Outlook)
	}

	// Routes that require authentication and the "admin" role
	adminGroup := e.Group("/admin")
	adminGroup.Use(r.authMiddleware.Authenticate)                          // First, check if logged in
	adminGroup.Use(r.authMiddleware.RequireRole(entity.RoleAdmin.String())) // Then, check for the role
	{
		adminGroup.POST("/users", r.userHandler.Register)
		adminGroup.GET("/users", r.userHandler.ListUsers)
		adminGroup.DELETE("/users/:username", r.userHandler.DeleteUser)

		adminGroup.POST("/units", r.inventoryHandler.CreateUnit)
		adminGroup.DELETE("/units/:name", r.inventoryHandler.DeleteUnit)

		adminGroup.POST("/notifications/reset-last-sent", r.notificationHandler.ResetLastSent)
		adminGroup.POST("/notifications/clear-reminders", r.notificationHandler.ClearReminders)

		adminGroup.DELETE("/history", r.historyHandler.Clear)

		adminGroup.POST("/seed", r.seedHandler.Seed)
		adminGroup.DELETE("/seed", r.seedHandler.ClearExample)
		adminGroup.POST("/purge", r.seedHandler.Purge)
	}
}
