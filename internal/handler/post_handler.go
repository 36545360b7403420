package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/archonitDev/reformly-server/internal/service"
	"github.com/labstack/echo/v4"
)

type PostHandler struct {
	svc service.PostService
}

func NewPostHandler(svc service.PostService) *PostHandler {
	return &PostHandler{svc: svc}
}

type PostResponse struct {
	ID         uint64       `json:"id"`
	Content    string       `json:"content"`
	ImageURL   *string      `json:"imageUrl,omitempty"`
	IsPinned   bool         `json:"isPinned"`
	LikesCount int64        `json:"likesCount"`
	IsLiked    bool         `json:"isLikedByCurrentUser"`
	Author     *UserSummary `json:"author,omitempty"`
	CreatedAt  string       `json:"createdAt"`
	UpdatedAt  string       `json:"updatedAt"`
}

type PostListResponse struct {
	Posts []PostResponse `json:"posts"`
	Pagination
}

type CreatePostRequest struct {
	Content  string  `json:"content"`
	ImageURL *string `json:"imageUrl"`
}

type UpdatePostRequest struct {
	Content  *string `json:"content"`
	ImageURL *string `json:"imageUrl"`
}

func (h *PostHandler) Create(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	var req CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	view, err := h.svc.Create(c.Request().Context(), uid, req.Content, req.ImageURL)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
	}
	return c.JSON(http.StatusCreated, toPostResponse(view))
}

func (h *PostHandler) Get(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid id"))
	}
	view, err := h.svc.Get(c.Request().Context(), id, uid)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "post not found"))
		}
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch post"))
	}
	return c.JSON(http.StatusOK, toPostResponse(view))
}

func (h *PostHandler) List(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit <= 0 {
		limit = 20
	}
	author := c.QueryParam("userId")
	views, total, err := h.svc.List(c.Request().Context(), uid, author, page, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch posts"))
	}
	resp := PostListResponse{
		Posts:      make([]PostResponse, 0, len(views)),
		Pagination: NewPagination(total, page, limit),
	}
	for i := range views {
		resp.Posts = append(resp.Posts, toPostResponse(&views[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *PostHandler) Update(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid id"))
	}
	var req UpdatePostRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	view, err := h.svc.Update(c.Request().Context(), id, uid, req.Content, req.ImageURL)
	if err != nil {
		return h.mutationError(c, err)
	}
	return c.JSON(http.StatusOK, toPostResponse(view))
}

func (h *PostHandler) Delete(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid id"))
	}
	if err := h.svc.Delete(c.Request().Context(), id, uid); err != nil {
		return h.mutationError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *PostHandler) TogglePin(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid id"))
	}
	view, err := h.svc.TogglePin(c.Request().Context(), id, uid)
	if err != nil {
		return h.mutationError(c, err)
	}
	return c.JSON(http.StatusOK, toPostResponse(view))
}

func (h *PostHandler) mutationError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "post not found"))
	case errors.Is(err, service.ErrForbidden):
		return c.JSON(http.StatusForbidden, NewErrorResponse("forbidden", "you can only modify your own posts"))
	default:
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
	}
}

func toPostResponse(v *service.PostView) PostResponse {
	return PostResponse{
		ID:         v.Post.ID,
		Content:    v.Post.Content,
		ImageURL:   v.Post.ImageURL,
		IsPinned:   v.Post.IsPinned,
		LikesCount: v.LikesCount,
		IsLiked:    v.IsLiked,
		Author:     toUserSummary(v.Author),
		CreatedAt:  v.Post.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  v.Post.UpdatedAt.Format(time.RFC3339),
	}
}
