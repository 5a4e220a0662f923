package router

import (
	"github.com/labstack/echo/v4"

	"iecnexus/internal/adapter/api/handler"
	"iecnexus/internal/adapter/api/middleware"
)

func SetupUserRouter(e *echo.Echo, userHandler *handler.UserHandler, authMiddleware *middleware.AuthMiddleware) {
	// Search stays outside the authenticated group.
	e.GET("/v1/users/search", userHandler.Search)

	users := e.Group("/v1/users")
	users.Use(authMiddleware.Authenticate)

	users.GET("/me", userHandler.GetMe)
	users.PATCH("/me", userHandler.UpdateMe)
	users.POST("/me/device-token", userHandler.RegisterDeviceToken)

	users.GET("/:id", userHandler.GetProfile)
	users.POST("/:id/follow", userHandler.ToggleFollow)
	users.PUT("/:id/ban", userHandler.SetBanned)
}
