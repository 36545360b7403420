package service

import (
	"context"
	"errors"
	"time"

	"github.com/archonitDev/reformly-server/internal/model"
	"github.com/archonitDev/reformly-server/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type LeaderboardPeriod string

const (
	PeriodLast30Days LeaderboardPeriod = "last_30_days"
	PeriodAllTime    LeaderboardPeriod = "all_time"
)

const leaderboardWindow = 30 * 24 * time.Hour

type LeaderboardRow struct {
	Rank              int
	UserUID           string
	Name              string
	LastName          string
	ProfilePictureURL *string
	Level             int
	TotalPoints       int64
	PeriodPoints      int64
}

type UserOverview struct {
	User              *model.User
	TotalPoints       int64
	Level             int
	CurrentLevelMin   int64
	NextLevelMin      *int64
	PointsToNextLevel *int64
	Levels            []LevelInfo
}

type LeaderboardService interface {
	// RecordPoints appends to the ledger and moves the user's cached
	// total in one atomic unit. A zero delta does nothing. Returns
	// ErrNotFound when the user does not exist.
	RecordPoints(ctx context.Context, userUID string, delta int64, source model.PointSource) error
	GetLeaderboard(ctx context.Context, period LeaderboardPeriod, limit int) ([]LeaderboardRow, error)
	GetUserOverview(ctx context.Context, userUID string) (*UserOverview, error)
}

type leaderboardService struct {
	points repository.PointRepository
	users  repository.UserRepository
	log    *zap.Logger
}

func NewLeaderboardService(points repository.PointRepository, users repository.UserRepository, log *zap.Logger) LeaderboardService {
	return &leaderboardService{points: points, users: users, log: log}
}

func (s *leaderboardService) RecordPoints(ctx context.Context, userUID string, delta int64, source model.PointSource) error {
	if delta == 0 {
		return nil
	}
	clamped, err := s.points.Record(ctx, userUID, delta, source)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if clamped {
		// The ledger keeps the raw negative history, so a clamped
		// total can no longer be reconstructed by summing deltas.
		s.log.Info("point balance clamped at zero",
			zap.String("user", userUID),
			zap.Int64("delta", delta),
			zap.String("source", string(source)))
	}
	return nil
}

func (s *leaderboardService) GetLeaderboard(ctx context.Context, period LeaderboardPeriod, limit int) ([]LeaderboardRow, error) {
	if period == "" {
		period = PeriodLast30Days
	}
	if limit <= 0 {
		limit = 20
	}

	var from *time.Time
	if period == PeriodLast30Days {
		t := time.Now().Add(-leaderboardWindow)
		from = &t
	}

	grouped, err := s.points.GroupSums(ctx, from, limit)
	if err != nil {
		return nil, err
	}
	if len(grouped) == 0 {
		return []LeaderboardRow{}, nil
	}

	uids := make([]string, 0, len(grouped))
	for _, g := range grouped {
		uids = append(uids, g.UserUID)
	}
	users, err := s.users.FindByUIDs(ctx, uids)
	if err != nil {
		return nil, err
	}
	byUID := make(map[string]*model.User, len(users))
	for i := range users {
		byUID[users[i].UID] = &users[i]
	}

	// Users whose profile no longer resolves are dropped and the ranks
	// of everyone below them move up.
	rows := make([]LeaderboardRow, 0, len(grouped))
	for _, g := range grouped {
		u, ok := byUID[g.UserUID]
		if !ok {
			continue
		}
		level, _, _ := levelFor(u.TotalPoints)
		rows = append(rows, LeaderboardRow{
			Rank:              len(rows) + 1,
			UserUID:           u.UID,
			Name:              u.Name,
			LastName:          u.LastName,
			ProfilePictureURL: u.ProfilePictureURL,
			Level:             level,
			TotalPoints:       u.TotalPoints,
			PeriodPoints:      g.Points,
		})
	}
	return rows, nil
}

func (s *leaderboardService) GetUserOverview(ctx context.Context, userUID string) (*UserOverview, error) {
	user, err := s.users.FindByUID(ctx, userUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	level, currentMin, nextMin := levelFor(user.TotalPoints)
	overview := &UserOverview{
		User:            user,
		TotalPoints:     user.TotalPoints,
		Level:           level,
		CurrentLevelMin: currentMin,
		NextLevelMin:    nextMin,
		Levels:          levelsOverview(user.TotalPoints),
	}
	if nextMin != nil {
		remaining := *nextMin - user.TotalPoints
		if remaining < 0 {
			remaining = 0
		}
		overview.PointsToNextLevel = &remaining
	}
	return overview, nil
}
