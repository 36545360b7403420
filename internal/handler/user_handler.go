package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/archonitDev/reformly-server/internal/service"
	"github.com/labstack/echo/v4"
)

type UserHandler struct {
	svc service.UserService
}

func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

type UserResponse struct {
	UID               string  `json:"uid"`
	Email             string  `json:"email"`
	Name              string  `json:"name"`
	LastName          string  `json:"lastName"`
	ProfilePictureURL *string `json:"profilePictureUrl,omitempty"`
	TotalPoints       int64   `json:"totalPoints"`
	CreatedAt         string  `json:"createdAt"`
}

type UpdateUserRequest struct {
	Name     *string `json:"name"`
	LastName *string `json:"lastName"`
}

type UploadURLRequest struct {
	ContentType string `json:"contentType"`
}

type UploadURLResponse struct {
	UploadURL string `json:"uploadUrl"`
	PublicURL string `json:"publicUrl"`
}

func (h *UserHandler) GetMe(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	user, err := h.svc.Get(c.Request().Context(), uid)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "user not found"))
		}
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch user"))
	}
	return c.JSON(http.StatusOK, UserResponse{
		UID:               user.UID,
		Email:             user.Email,
		Name:              user.Name,
		LastName:          user.LastName,
		ProfilePictureURL: user.ProfilePictureURL,
		TotalPoints:       user.TotalPoints,
		CreatedAt:         user.CreatedAt.Format(time.RFC3339),
	})
}

func (h *UserHandler) UpdateMe(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	var req UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	user, err := h.svc.UpdateProfile(c.Request().Context(), uid, req.Name, req.LastName)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "user not found"))
		}
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
	}
	return c.JSON(http.StatusOK, UserResponse{
		UID:               user.UID,
		Email:             user.Email,
		Name:              user.Name,
		LastName:          user.LastName,
		ProfilePictureURL: user.ProfilePictureURL,
		TotalPoints:       user.TotalPoints,
		CreatedAt:         user.CreatedAt.Format(time.RFC3339),
	})
}

func (h *UserHandler) ProfilePictureUploadURL(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	var req UploadURLRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	upload, err := h.svc.ProfilePictureUploadURL(c.Request().Context(), uid, req.ContentType)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "user not found"))
		case errors.Is(err, service.ErrStorageUnavailable):
			return c.JSON(http.StatusServiceUnavailable, NewErrorResponse("storage_unavailable", "object storage not configured"))
		default:
			return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
		}
	}
	return c.JSON(http.StatusOK, UploadURLResponse{
		UploadURL: upload.UploadURL,
		PublicURL: upload.PublicURL,
	})
}
