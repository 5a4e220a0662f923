package router

import (
	"github.com/labstack/echo/v4"

	"iecnexus/internal/adapter/api/handler"
	"iecnexus/internal/adapter/api/middleware"
)

func SetupConversationRouter(e *echo.Echo, conversationHandler *handler.ConversationHandler, authMiddleware *middleware.AuthMiddleware) {
	conversations := e.Group("/v1/conversations")
	conversations.Use(authMiddleware.Authenticate)

	conversations.GET("", conversationHandler.ListConversations)
	conversations.POST("", conversationHandler.StartConversation)
	conversations.DELETE("/:id", conversationHandler.DeleteConversation)

	conversations.GET("/:id/messages", conversationHandler.GetMessages)
	conversations.POST("/:id/messages", conversationHandler.SendMessage)
	conversations.PATCH("/:id/messages/:messageId", conversationHandler.EditMessage)
	conversations.DELETE("/:id/messages/:messageId", conversationHandler.DeleteMessage)
	conversations.POST("/:id/messages/:messageId/reactions", conversationHandler.ToggleReaction)
}
