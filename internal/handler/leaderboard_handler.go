package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/archonitDev/reformly-server/internal/service"
	"github.com/labstack/echo/v4"
)

type LeaderboardHandler struct {
	svc service.LeaderboardService
}

func NewLeaderboardHandler(svc service.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{svc: svc}
}

type LeaderboardUserResponse struct {
	Rank              int     `json:"rank"`
	UserUID           string  `json:"userId"`
	Name              string  `json:"name"`
	LastName          string  `json:"lastName"`
	ProfilePictureURL *string `json:"profilePictureUrl"`
	Level             int     `json:"level"`
	TotalPoints       int64   `json:"totalPoints"`
	PeriodPoints      int64   `json:"periodPoints"`
}

type LeaderboardResponse struct {
	Period string                    `json:"period"`
	Users  []LeaderboardUserResponse `json:"users"`
}

type UserOverviewResponse struct {
	User              *UserSummary        `json:"user"`
	TotalPoints       int64               `json:"totalPoints"`
	Level             int                 `json:"level"`
	CurrentLevelMin   int64               `json:"currentLevelMin"`
	NextLevelMin      *int64              `json:"nextLevelMin"`
	PointsToNextLevel *int64              `json:"pointsToNextLevel"`
	Levels            []service.LevelInfo `json:"levels"`
}

func (h *LeaderboardHandler) GetLeaderboard(c echo.Context) error {
	period := service.LeaderboardPeriod(c.QueryParam("period"))
	switch period {
	case "", service.PeriodLast30Days, service.PeriodAllTime:
	default:
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "period must be last_30_days or all_time"))
	}
	if period == "" {
		period = service.PeriodLast30Days
	}

	limit := 20
	if lStr := c.QueryParam("limit"); lStr != "" {
		parsed, err := strconv.Atoi(lStr)
		if err != nil || parsed <= 0 || parsed > 100 {
			return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "limit must be between 1 and 100"))
		}
		limit = parsed
	}

	rows, err := h.svc.GetLeaderboard(c.Request().Context(), period, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch leaderboard"))
	}
	resp := LeaderboardResponse{
		Period: string(period),
		Users:  make([]LeaderboardUserResponse, 0, len(rows)),
	}
	for _, r := range rows {
		resp.Users = append(resp.Users, LeaderboardUserResponse{
			Rank:              r.Rank,
			UserUID:           r.UserUID,
			Name:              r.Name,
			LastName:          r.LastName,
			ProfilePictureURL: r.ProfilePictureURL,
			Level:             r.Level,
			TotalPoints:       r.TotalPoints,
			PeriodPoints:      r.PeriodPoints,
		})
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *LeaderboardHandler) GetMyOverview(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	overview, err := h.svc.GetUserOverview(c.Request().Context(), uid)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "user not found"))
		}
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch overview"))
	}
	return c.JSON(http.StatusOK, UserOverviewResponse{
		User:              toUserSummary(overview.User),
		TotalPoints:       overview.TotalPoints,
		Level:             overview.Level,
		CurrentLevelMin:   overview.CurrentLevelMin,
		NextLevelMin:      overview.NextLevelMin,
		PointsToNextLevel: overview.PointsToNextLevel,
		Levels:            overview.Levels,
	})
}
