package router

import (
	"github.com/labstack/echo/v4"

	"iecnexus/internal/adapter/api/handler"
	"iecnexus/internal/adapter/api/middleware"
)

func SetupGroupRouter(e *echo.Echo, groupHandler *handler.GroupHandler, authMiddleware *middleware.AuthMiddleware) {
	groups := e.Group("/v1/groups")
	groups.Use(authMiddleware.Authenticate)

	groups.GET("", groupHandler.ListGroups)
	groups.POST("", groupHandler.CreateGroup)
	groups.POST("/join", groupHandler.JoinGroup)

	groups.GET("/:id", groupHandler.GetGroup)
	groups.PATCH("/:id", groupHandler.UpdateGroup)
	groups.DELETE("/:id", groupHandler.DeleteGroup)
	groups.POST("/:id/leave", groupHandler.LeaveGroup)
	groups.PUT("/:id/members/role", groupHandler.UpdateMemberRole)

	groups.GET("/:id/messages", groupHandler.GetMessages)
	groups.POST("/:id/messages", groupHandler.SendMessage)
	groups.POST("/:id/messages/:messageId/reactions", groupHandler.ToggleReaction)

	groups.GET("/:id/announcements", groupHandler.GetAnnouncements)
	groups.POST("/:id/announcements", groupHandler.PostAnnouncement)
}
