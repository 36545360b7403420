package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/archonitDev/reformly-server/internal/service"
	"github.com/labstack/echo/v4"
)

type LikeHandler struct {
	svc service.LikeService
}

func NewLikeHandler(svc service.LikeService) *LikeHandler {
	return &LikeHandler{svc: svc}
}

type ToggleLikeResponse struct {
	Liked      bool  `json:"liked"`
	LikesCount int64 `json:"likesCount"`
}

type LikeResponse struct {
	ID        uint64 `json:"id"`
	UserUID   string `json:"userUid"`
	CreatedAt string `json:"createdAt"`
}

type LikeListResponse struct {
	Likes []LikeResponse `json:"likes"`
	Pagination
}

func (h *LikeHandler) TogglePostLike(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	postID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid post id"))
	}
	liked, count, err := h.svc.TogglePostLike(c.Request().Context(), postID, uid)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "post not found"))
		}
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to toggle like"))
	}
	return c.JSON(http.StatusOK, ToggleLikeResponse{Liked: liked, LikesCount: count})
}

func (h *LikeHandler) ToggleCommentLike(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	commentID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid comment id"))
	}
	liked, count, err := h.svc.ToggleCommentLike(c.Request().Context(), commentID, uid)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "comment not found"))
		}
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to toggle like"))
	}
	return c.JSON(http.StatusOK, ToggleLikeResponse{Liked: liked, LikesCount: count})
}

func (h *LikeHandler) ListPostLikes(c echo.Context) error {
	postID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid post id"))
	}
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit <= 0 {
		limit = 50
	}
	likes, total, err := h.svc.ListPostLikes(c.Request().Context(), postID, page, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch likes"))
	}
	resp := LikeListResponse{
		Likes:      make([]LikeResponse, 0, len(likes)),
		Pagination: NewPagination(total, page, limit),
	}
	for _, l := range likes {
		resp.Likes = append(resp.Likes, LikeResponse{
			ID:        l.ID,
			UserUID:   l.UserUID,
			CreatedAt: l.CreatedAt.Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *LikeHandler) ListCommentLikes(c echo.Context) error {
	commentID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid comment id"))
	}
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit <= 0 {
		limit = 50
	}
	likes, total, err := h.svc.ListCommentLikes(c.Request().Context(), commentID, page, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch likes"))
	}
	resp := LikeListResponse{
		Likes:      make([]LikeResponse, 0, len(likes)),
		Pagination: NewPagination(total, page, limit),
	}
	for _, l := range likes {
		resp.Likes = append(resp.Likes, LikeResponse{
			ID:        l.ID,
			UserUID:   l.UserUID,
			CreatedAt: l.CreatedAt.Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusOK, resp)
}
