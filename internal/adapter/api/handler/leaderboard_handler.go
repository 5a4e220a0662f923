package handler

import (
	"github.com/labstack/echo/v4"

	"iecnexus/internal/usecase"
	"iecnexus/pkg/response"
)

type LeaderboardHandler struct {
	leaderboardUseCase *usecase.LeaderboardUseCase
}

func NewLeaderboardHandler(leaderboardUseCase *usecase.LeaderboardUseCase) *LeaderboardHandler {
	return &LeaderboardHandler{
		leaderboardUseCase: leaderboardUseCase,
	}
}

type addScoreRequest struct {
	Points int `json:"points" validate:"required,min=1,max=100"`
}

// Top is public; no credential required.
func (h *LeaderboardHandler) Top(c echo.Context) error {
	entries, err := h.leaderboardUseCase.Top(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, entries)
}

// AddScore credits the caller for an accepted daily-challenge solution. The
// judging itself happens in the client against the generative-AI service;
// the server only records the points.
func (h *LeaderboardHandler) AddScore(c echo.Context) error {
	var req addScoreRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	if err := h.leaderboardUseCase.AddScore(c.Request().Context(), userID, req.Points); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{"points": req.Points})
}
