package router

import (
	"github.com/labstack/echo/v4"

	"iecnexus/internal/adapter/api/handler"
	"iecnexus/internal/adapter/api/middleware"
)

func SetupLeaderboardRouter(e *echo.Echo, leaderboardHandler *handler.LeaderboardHandler, authMiddleware *middleware.AuthMiddleware) {
	// The board itself is public so the landing page can render it.
	e.GET("/v1/leaderboard", leaderboardHandler.Top)

	scores := e.Group("/v1/leaderboard")
	scores.Use(authMiddleware.Authenticate)
	scores.POST("/score", leaderboardHandler.AddScore)
}

func SetupCronRouter(e *echo.Echo, cronHandler *handler.CronHandler, cronSecret string) {
	cron := e.Group("/v1/cron")
	cron.Use(middleware.RequireCronSecret(cronSecret))
	cron.POST("/reset-leaderboard", cronHandler.ResetLeaderboard)
}
