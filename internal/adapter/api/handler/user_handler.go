package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"iecnexus/internal/usecase"
	"iecnexus/pkg/response"
)

type UserHandler struct {
	userUseCase *usecase.UserUseCase
}

func NewUserHandler(userUseCase *usecase.UserUseCase) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
	}
}

type updateProfileRequest struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar" validate:"omitempty,url"`
}

type deviceTokenRequest struct {
	Token string `json:"token" validate:"required"`
}

type banRequest struct {
	Banned bool `json:"banned"`
}

// GetMe returns the caller's own profile; the auth middleware has already
// provisioned the document for a fresh signup.
func (h *UserHandler) GetMe(c echo.Context) error {
	userID := c.Get("uid").(string)

	user, err := h.userUseCase.GetMe(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}

func (h *UserHandler) UpdateMe(c echo.Context) error {
	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	user, err := h.userUseCase.UpdateProfile(c.Request().Context(), userID, req.Name, req.Avatar)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}

func (h *UserHandler) GetProfile(c echo.Context) error {
	userID := c.Get("uid").(string)

	profile, err := h.userUseCase.GetProfile(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, profile)
}

func (h *UserHandler) ToggleFollow(c echo.Context) error {
	userID := c.Get("uid").(string)

	result, err := h.userUseCase.ToggleFollow(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, result)
}

func (h *UserHandler) RegisterDeviceToken(c echo.Context) error {
	var req deviceTokenRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	if err := h.userUseCase.RegisterDeviceToken(c.Request().Context(), userID, req.Token); err != nil {
		return response.Error(c, err)
	}

	return c.NoContent(http.StatusOK)
}

func (h *UserHandler) SetBanned(c echo.Context) error {
	var req banRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	if err := h.userUseCase.SetBanned(c.Request().Context(), userID, c.Param("id"), req.Banned); err != nil {
		return response.Error(c, err)
	}

	return c.NoContent(http.StatusOK)
}

// Search is public: it backs the people-finder on the landing page.
func (h *UserHandler) Search(c echo.Context) error {
	profiles, err := h.userUseCase.Search(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, profiles)
}
