package handler

import (
	"github.com/labstack/echo/v4"

	"iecnexus/internal/usecase"
	"iecnexus/pkg/response"
)

type CronHandler struct {
	leaderboardUseCase *usecase.LeaderboardUseCase
}

func NewCronHandler(leaderboardUseCase *usecase.LeaderboardUseCase) *CronHandler {
	return &CronHandler{
		leaderboardUseCase: leaderboardUseCase,
	}
}

// ResetLeaderboard is hit by the weekly scheduler. It zeroes all scores and
// broadcasts the outgoing winner to every token-holding user.
func (h *CronHandler) ResetLeaderboard(c echo.Context) error {
	winner, err := h.leaderboardUseCase.ResetWeekly(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{"winner": winner})
}
