package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archonitDev/reformly-server/internal/model"
)

func TestRecordPointsUnknownUser(t *testing.T) {
	env := newTestEnv(t)
	err := env.leaderboard.RecordPoints(context.Background(), "ghost", 1, model.PointSourcePostLiked)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetLeaderboardEmpty(t *testing.T) {
	env := newTestEnv(t)
	rows, err := env.leaderboard.GetLeaderboard(context.Background(), PeriodAllTime, 20)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestGetLeaderboardOrderingAndWindow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedUser(t, "ana", "Ana", "Petrova")
	env.seedUser(t, "ben", "Ben", "Meyer")

	// Ana has the bigger all-time total but all of it is old; Ben's
	// points are fresh.
	old := time.Now().Add(-45 * 24 * time.Hour)
	for i := 0; i < 10; i++ {
		require.NoError(t, env.db.Create(&model.PointEntry{
			UserUID: "ana", Delta: 1, Source: model.PointSourcePostLiked, CreatedAt: old,
		}).Error)
	}
	require.NoError(t, env.db.Model(&model.User{}).Where("uid = ?", "ana").
		UpdateColumn("total_points", 10).Error)

	require.NoError(t, env.leaderboard.RecordPoints(ctx, "ben", 3, model.PointSourceCommentOnPost))

	recent, err := env.leaderboard.GetLeaderboard(ctx, PeriodLast30Days, 20)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "ben", recent[0].UserUID)
	assert.Equal(t, 1, recent[0].Rank)
	assert.Equal(t, int64(3), recent[0].PeriodPoints)
	assert.Equal(t, int64(3), recent[0].TotalPoints)

	allTime, err := env.leaderboard.GetLeaderboard(ctx, PeriodAllTime, 20)
	require.NoError(t, err)
	require.Len(t, allTime, 2)
	assert.Equal(t, "ana", allTime[0].UserUID)
	assert.Equal(t, int64(10), allTime[0].PeriodPoints)
	assert.Equal(t, "ben", allTime[1].UserUID)
	assert.Equal(t, 2, allTime[1].Rank)
}

func TestGetLeaderboardCompactsMissingUsers(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedUser(t, "keep", "Keep", "Er")
	env.seedUser(t, "gone", "Go", "Ne")

	require.NoError(t, env.leaderboard.RecordPoints(ctx, "gone", 5, model.PointSourcePostLiked))
	require.NoError(t, env.leaderboard.RecordPoints(ctx, "keep", 2, model.PointSourcePostLiked))

	// The departed user's ledger rows stay behind but the profile is gone.
	require.NoError(t, env.db.Where("uid = ?", "gone").Delete(&model.User{}).Error)

	rows, err := env.leaderboard.GetLeaderboard(ctx, PeriodAllTime, 20)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "keep", rows[0].UserUID)
	assert.Equal(t, 1, rows[0].Rank, "ranks close up over dropped users")
}

func TestGetLeaderboardLevels(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedUser(t, "u1", "U", "One")

	require.NoError(t, env.leaderboard.RecordPoints(ctx, "u1", 25, model.PointSourcePostLiked))

	rows, err := env.leaderboard.GetLeaderboard(ctx, PeriodAllTime, 20)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 3, rows[0].Level) // 25 points sits in the [20, 70) band
}

func TestGetUserOverview(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedUser(t, "u1", "U", "One")

	require.NoError(t, env.leaderboard.RecordPoints(ctx, "u1", 100, model.PointSourcePostLiked))

	overview, err := env.leaderboard.GetUserOverview(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(100), overview.TotalPoints)
	assert.Equal(t, 5, overview.Level)
	assert.Equal(t, int64(70), overview.CurrentLevelMin)
	require.NotNil(t, overview.NextLevelMin)
	assert.Equal(t, int64(150), *overview.NextLevelMin)
	require.NotNil(t, overview.PointsToNextLevel)
	assert.Equal(t, int64(50), *overview.PointsToNextLevel)
	require.Len(t, overview.Levels, 10)
	assert.True(t, overview.Levels[4].Unlocked)
	assert.False(t, overview.Levels[5].Unlocked)
}

func TestGetUserOverviewNotFound(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.leaderboard.GetUserOverview(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetUserOverviewTopLevel(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedUser(t, "u1", "U", "One")
	require.NoError(t, env.leaderboard.RecordPoints(ctx, "u1", 60000, model.PointSourcePostLiked))

	overview, err := env.leaderboard.GetUserOverview(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 10, overview.Level)
	assert.Nil(t, overview.NextLevelMin)
	assert.Nil(t, overview.PointsToNextLevel)
}
