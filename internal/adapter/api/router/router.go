package router

import (
	"github.com/labstack/echo/v4"

	"iecnexus/internal/adapter/api/handler"
	"iecnexus/internal/adapter/api/middleware"
)

// Handlers bundles every handler the routers mount.
type Handlers struct {
	User         *handler.UserHandler
	Conversation *handler.ConversationHandler
	Group        *handler.GroupHandler
	Post         *handler.PostHandler
	Leaderboard  *handler.LeaderboardHandler
	Cron         *handler.CronHandler
	WebSocket    *handler.WebSocketHandler
}

func Setup(e *echo.Echo, h Handlers, authMiddleware *middleware.AuthMiddleware, cronSecret string) {
	SetupUserRouter(e, h.User, authMiddleware)
	SetupConversationRouter(e, h.Conversation, authMiddleware)
	SetupGroupRouter(e, h.Group, authMiddleware)
	SetupPostRouter(e, h.Post, authMiddleware)
	SetupLeaderboardRouter(e, h.Leaderboard, authMiddleware)
	SetupCronRouter(e, h.Cron, cronSecret)
	SetupWebSocketRouter(e, h.WebSocket)
	SetupHealthRouter(e)
}
