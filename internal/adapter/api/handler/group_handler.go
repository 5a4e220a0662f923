package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"iecnexus/internal/usecase"
	"iecnexus/pkg/response"
	"iecnexus/pkg/utils"
)

type GroupHandler struct {
	groupUseCase *usecase.GroupUseCase
}

func NewGroupHandler(groupUseCase *usecase.GroupUseCase) *GroupHandler {
	return &GroupHandler{
		groupUseCase: groupUseCase,
	}
}

type createGroupRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	CoverImage  string `json:"cover_image" validate:"omitempty,url"`
}

type updateGroupRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	CoverImage  string `json:"cover_image" validate:"omitempty,url"`
}

type joinGroupRequest struct {
	Code string `json:"code" validate:"required"`
}

type memberRoleRequest struct {
	UserID string `json:"user_id" validate:"required"`
	Role   string `json:"role" validate:"required,oneof=moderator member"`
}

type announcementRequest struct {
	Content string `json:"content" validate:"required"`
}

func (h *GroupHandler) ListGroups(c echo.Context) error {
	userID := c.Get("uid").(string)

	groups, err := h.groupUseCase.ListGroups(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, groups)
}

func (h *GroupHandler) CreateGroup(c echo.Context) error {
	var req createGroupRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	group, err := h.groupUseCase.CreateGroup(c.Request().Context(), userID, usecase.CreateGroupInput{
		Name:        req.Name,
		Description: req.Description,
		CoverImage:  req.CoverImage,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, group)
}

func (h *GroupHandler) GetGroup(c echo.Context) error {
	userID := c.Get("uid").(string)

	group, err := h.groupUseCase.GetGroup(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, group)
}

func (h *GroupHandler) UpdateGroup(c echo.Context) error {
	var req updateGroupRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	group, err := h.groupUseCase.UpdateGroup(c.Request().Context(), userID, c.Param("id"), usecase.UpdateGroupInput{
		Name:        req.Name,
		Description: req.Description,
		CoverImage:  req.CoverImage,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, group)
}

func (h *GroupHandler) DeleteGroup(c echo.Context) error {
	userID := c.Get("uid").(string)

	if err := h.groupUseCase.DeleteGroup(c.Request().Context(), userID, c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// JoinGroup accepts an invite code, falling back to a raw group id.
func (h *GroupHandler) JoinGroup(c echo.Context) error {
	var req joinGroupRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	result, err := h.groupUseCase.Join(c.Request().Context(), userID, req.Code)
	if err != nil {
		return response.Error(c, err)
	}

	if result.AlreadyMember {
		return response.Success(c, result)
	}
	return response.Created(c, result)
}

func (h *GroupHandler) LeaveGroup(c echo.Context) error {
	userID := c.Get("uid").(string)

	if err := h.groupUseCase.Leave(c.Request().Context(), userID, c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return c.NoContent(http.StatusOK)
}

func (h *GroupHandler) UpdateMemberRole(c echo.Context) error {
	var req memberRoleRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	err := h.groupUseCase.UpdateMemberRole(c.Request().Context(), userID, c.Param("id"), req.UserID, req.Role)
	if err != nil {
		return response.Error(c, err)
	}

	return c.NoContent(http.StatusOK)
}

func (h *GroupHandler) GetMessages(c echo.Context) error {
	userID := c.Get("uid").(string)

	page, err := h.groupUseCase.ListGroupMessages(c.Request().Context(), userID, c.Param("id"), utils.CursorParam(c))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Cursor(c, page.Items, page.NextCursor)
}

func (h *GroupHandler) SendMessage(c echo.Context) error {
	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	message, err := h.groupUseCase.SendGroupMessage(c.Request().Context(), userID, c.Param("id"), usecase.SendMessageInput{
		Content:  req.Content,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, message)
}

func (h *GroupHandler) ToggleReaction(c echo.Context) error {
	var req reactionRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	reactions, err := h.groupUseCase.ToggleReaction(c.Request().Context(), userID, c.Param("id"), c.Param("messageId"), req.Emoji)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{"reactions": reactions})
}

func (h *GroupHandler) GetAnnouncements(c echo.Context) error {
	userID := c.Get("uid").(string)

	announcements, err := h.groupUseCase.ListAnnouncements(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, announcements)
}

func (h *GroupHandler) PostAnnouncement(c echo.Context) error {
	var req announcementRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	announcement, err := h.groupUseCase.PostAnnouncement(c.Request().Context(), userID, c.Param("id"), req.Content)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, announcement)
}
