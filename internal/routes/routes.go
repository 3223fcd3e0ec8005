package routes

import (
	"net/http"

	"github.com/michealohagwam/dta-backend-clean/internal/handlers"
	"github.com/michealohagwam/dta-backend-clean/internal/middleware"
	"github.com/michealohagwam/dta-backend-clean/ws"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the HTTP API and the WebSocket endpoint.
//
// Public:        /api/auth/*
// Authenticated: /api/users/*
// Admin:         /api/admin/*
// Realtime:      /ws
func RegisterRoutes(router *gin.Engine, appHandlers *handlers.AppHandlers, wsHandler *ws.Handler) {
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		appHandlers.AuthHandler.RegisterRoutes(api)

		users := api.Group("/users")
		users.Use(middleware.AuthMiddleware())
		{
			appHandlers.UserHandler.RegisterRoutes(users)
			appHandlers.TaskHandler.RegisterRoutes(users)
			appHandlers.WithdrawalHandler.RegisterRoutes(users)
			appHandlers.UpgradeHandler.RegisterRoutes(users)
			appHandlers.ReferralHandler.RegisterRoutes(users)
			appHandlers.NotificationHandler.RegisterRoutes(users)
		}

		admin := api.Group("/admin")
		admin.Use(middleware.AuthMiddleware())
		admin.Use(middleware.AdminMiddleware())
		{
			appHandlers.AdminHandler.RegisterRoutes(admin)
		}
	}

	wsGroup := router.Group("/ws")
	wsGroup.Use(middleware.AuthMiddleware())
	{
		wsGroup.GET("", wsHandler.ServeWS)
	}
}
