package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/archonitDev/reformly-server/internal/service"
	"github.com/labstack/echo/v4"
)

type CommentHandler struct {
	svc service.CommentService
}

func NewCommentHandler(svc service.CommentService) *CommentHandler {
	return &CommentHandler{svc: svc}
}

type CommentResponse struct {
	ID         uint64       `json:"id"`
	PostID     uint64       `json:"postId"`
	ParentID   *uint64      `json:"parentId,omitempty"`
	Content    string       `json:"content"`
	LikesCount int64        `json:"likesCount"`
	IsLiked    bool         `json:"isLikedByCurrentUser"`
	Author     *UserSummary `json:"author,omitempty"`
	CreatedAt  string       `json:"createdAt"`
	UpdatedAt  string       `json:"updatedAt"`
}

type CommentListResponse struct {
	Comments []CommentResponse `json:"comments"`
	Pagination
}

type CreateCommentRequest struct {
	Content  string  `json:"content"`
	ParentID *uint64 `json:"parentId"`
}

type UpdateCommentRequest struct {
	Content string `json:"content"`
}

func (h *CommentHandler) Create(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	postID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid post id"))
	}
	var req CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	view, err := h.svc.Create(c.Request().Context(), postID, uid, req.Content, req.ParentID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "post not found"))
		}
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
	}
	return c.JSON(http.StatusCreated, toCommentResponse(view))
}

func (h *CommentHandler) ListByPost(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	postID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid post id"))
	}
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit <= 0 {
		limit = 50
	}
	views, total, err := h.svc.ListByPost(c.Request().Context(), postID, uid, page, limit)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "post not found"))
		}
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch comments"))
	}
	resp := CommentListResponse{
		Comments:   make([]CommentResponse, 0, len(views)),
		Pagination: NewPagination(total, page, limit),
	}
	for i := range views {
		resp.Comments = append(resp.Comments, toCommentResponse(&views[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *CommentHandler) Update(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid id"))
	}
	var req UpdateCommentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	view, err := h.svc.Update(c.Request().Context(), id, uid, req.Content)
	if err != nil {
		return h.mutationError(c, err)
	}
	return c.JSON(http.StatusOK, toCommentResponse(view))
}

func (h *CommentHandler) Delete(c echo.Context) error {
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

func (h *CommentHandler) mutationError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "comment not found"))
	case errors.Is(err, service.ErrForbidden):
		return c.JSON(http.StatusForbidden, NewErrorResponse("forbidden", "you can only modify your own comments"))
	default:
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
	}
}

func toCommentResponse(v *service.CommentView) CommentResponse {
	return CommentResponse{
		ID:         v.Comment.ID,
		PostID:     v.Comment.PostID,
		ParentID:   v.Comment.ParentID,
		Content:    v.Comment.Content,
		LikesCount: v.LikesCount,
		IsLiked:    v.IsLiked,
		Author:     toUserSummary(v.Author),
		CreatedAt:  v.Comment.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  v.Comment.UpdatedAt.Format(time.RFC3339),
	}
}
