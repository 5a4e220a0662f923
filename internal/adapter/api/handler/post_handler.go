package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"iecnexus/internal/usecase"
	"iecnexus/pkg/response"
	"iecnexus/pkg/utils"
)

type PostHandler struct {
	postUseCase *usecase.PostUseCase
}

func NewPostHandler(postUseCase *usecase.PostUseCase) *PostHandler {
	return &PostHandler{
		postUseCase: postUseCase,
	}
}

type createPostRequest struct {
	Content      string `json:"content" validate:"required"`
	ResourceLink string `json:"resource_link" validate:"omitempty,url"`
}

type commentRequest struct {
	Content string `json:"content" validate:"required"`
}

func (h *PostHandler) ListPosts(c echo.Context) error {
	userID := c.Get("uid").(string)

	page, err := h.postUseCase.ListPosts(c.Request().Context(), userID, utils.CursorParam(c))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Cursor(c, page.Items, page.NextCursor)
}

func (h *PostHandler) CreatePost(c echo.Context) error {
	var req createPostRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	post, err := h.postUseCase.CreatePost(c.Request().Context(), userID, req.Content, req.ResourceLink)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, post)
}

func (h *PostHandler) DeletePost(c echo.Context) error {
	userID := c.Get("uid").(string)

	if err := h.postUseCase.DeletePost(c.Request().Context(), userID, c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *PostHandler) ToggleLike(c echo.Context) error {
	userID := c.Get("uid").(string)

	result, err := h.postUseCase.ToggleLike(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, result)
}

func (h *PostHandler) ListComments(c echo.Context) error {
	comments, err := h.postUseCase.ListComments(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, comments)
}

func (h *PostHandler) AddComment(c echo.Context) error {
	var req commentRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	comment, err := h.postUseCase.AddComment(c.Request().Context(), userID, c.Param("id"), req.Content)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, comment)
}
