package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"iecnexus/internal/usecase"
	"iecnexus/pkg/response"
	"iecnexus/pkg/utils"
)

type ConversationHandler struct {
	conversationUseCase *usecase.ConversationUseCase
}

func NewConversationHandler(conversationUseCase *usecase.ConversationUseCase) *ConversationHandler {
	return &ConversationHandler{
		conversationUseCase: conversationUseCase,
	}
}

type startConversationRequest struct {
	RecipientID string `json:"recipient_id" validate:"required"`
}

type sendMessageRequest struct {
	Content  string `json:"content"`
	ImageURL string `json:"image_url" validate:"omitempty,url"`
}

type editMessageRequest struct {
	Content string `json:"content" validate:"required"`
}

type reactionRequest struct {
	Emoji string `json:"emoji" validate:"required"`
}

// ListConversations returns the caller's inbox, most recent activity first.
func (h *ConversationHandler) ListConversations(c echo.Context) error {
	userID := c.Get("uid").(string)

	conversations, err := h.conversationUseCase.ListConversations(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, conversations)
}

func (h *ConversationHandler) StartConversation(c echo.Context) error {
	var req startConversationRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	conversation, err := h.conversationUseCase.StartConversation(c.Request().Context(), userID, req.RecipientID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, conversation)
}

func (h *ConversationHandler) DeleteConversation(c echo.Context) error {
	userID := c.Get("uid").(string)
	conversationID := c.Param("id")

	if err := h.conversationUseCase.DeleteConversation(c.Request().Context(), userID, conversationID); err != nil {
		return response.Error(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// GetMessages serves one page of chat history. Without a cursor it also
// marks the whole conversation read for the caller.
func (h *ConversationHandler) GetMessages(c echo.Context) error {
	userID := c.Get("uid").(string)
	conversationID := c.Param("id")
	cursor := utils.CursorParam(c)

	page, err := h.conversationUseCase.ListMessages(c.Request().Context(), userID, conversationID, cursor)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Cursor(c, page.Items, page.NextCursor)
}

func (h *ConversationHandler) SendMessage(c echo.Context) error {
	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)
	conversationID := c.Param("id")

	message, err := h.conversationUseCase.SendMessage(c.Request().Context(), userID, conversationID, usecase.SendMessageInput{
		Content:  req.Content,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, message)
}

func (h *ConversationHandler) EditMessage(c echo.Context) error {
	var req editMessageRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	message, err := h.conversationUseCase.EditMessage(c.Request().Context(), userID, c.Param("id"), c.Param("messageId"), req.Content)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, message)
}

func (h *ConversationHandler) DeleteMessage(c echo.Context) error {
	userID := c.Get("uid").(string)

	err := h.conversationUseCase.DeleteMessage(c.Request().Context(), userID, c.Param("id"), c.Param("messageId"))
	if err != nil {
		return response.Error(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *ConversationHandler) ToggleReaction(c echo.Context) error {
	var req reactionRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	reactions, err := h.conversationUseCase.ToggleReaction(c.Request().Context(), userID, c.Param("id"), c.Param("messageId"), req.Emoji)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{"reactions": reactions})
}
