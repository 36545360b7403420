package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/archonitDev/reformly-server/internal/model"
	"github.com/archonitDev/reformly-server/internal/testutil"
)

func seedPointUser(t *testing.T, db *gorm.DB, uid string) {
	t.Helper()
	require.NoError(t, db.Create(&model.User{UID: uid, Email: uid + "@example.com"}).Error)
}

func userTotal(t *testing.T, db *gorm.DB, uid string) int64 {
	t.Helper()
	var u model.User
	require.NoError(t, db.Where("uid = ?", uid).First(&u).Error)
	return u.TotalPoints
}

func TestRecordAccumulates(t *testing.T) {
	db := testutil.OpenTestDB(t)
	repo := NewPointRepository(db)
	ctx := context.Background()
	seedPointUser(t, db, "u1")

	for i := 0; i < 100; i++ {
		clamped, err := repo.Record(ctx, "u1", 1, model.PointSourcePostLiked)
		require.NoError(t, err)
		assert.False(t, clamped)
	}

	assert.Equal(t, int64(100), userTotal(t, db, "u1"))

	// The cached total always equals the ledger sum while no clamp has
	// fired.
	var sum int64
	require.NoError(t, db.Model(&model.PointEntry{}).
		Where("user_uid = ?", "u1").
		Select("COALESCE(SUM(delta), 0)").Scan(&sum).Error)
	assert.Equal(t, int64(100), sum)
}

func TestRecordZeroDeltaIsNoop(t *testing.T) {
	db := testutil.OpenTestDB(t)
	repo := NewPointRepository(db)
	ctx := context.Background()
	seedPointUser(t, db, "u1")

	clamped, err := repo.Record(ctx, "u1", 0, model.PointSourcePostLiked)
	require.NoError(t, err)
	assert.False(t, clamped)

	var count int64
	require.NoError(t, db.Model(&model.PointEntry{}).Count(&count).Error)
	assert.Zero(t, count)
	assert.Zero(t, userTotal(t, db, "u1"))
}

func TestRecordUnknownUserCommitsNothing(t *testing.T) {
	db := testutil.OpenTestDB(t)
	repo := NewPointRepository(db)
	ctx := context.Background()

	_, err := repo.Record(ctx, "ghost", 1, model.PointSourcePostLiked)
	require.Error(t, err)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	// The ledger entry from the aborted transaction must not survive.
	var count int64
	require.NoError(t, db.Model(&model.PointEntry{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestRecordReversalRoundTrip(t *testing.T) {
	db := testutil.OpenTestDB(t)
	repo := NewPointRepository(db)
	ctx := context.Background()
	seedPointUser(t, db, "u1")

	_, err := repo.Record(ctx, "u1", 1, model.PointSourcePostLiked)
	require.NoError(t, err)
	_, err = repo.Record(ctx, "u1", -1, model.PointSourcePostLiked)
	require.NoError(t, err)

	assert.Zero(t, userTotal(t, db, "u1"))

	// A reversal appends a second entry rather than removing the first.
	var count int64
	require.NoError(t, db.Model(&model.PointEntry{}).Where("user_uid = ?", "u1").Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestRecordClampsAtZero(t *testing.T) {
	db := testutil.OpenTestDB(t)
	repo := NewPointRepository(db)
	ctx := context.Background()
	seedPointUser(t, db, "u1")

	clamped, err := repo.Record(ctx, "u1", -5, model.PointSourcePostLiked)
	require.NoError(t, err)
	assert.True(t, clamped)
	assert.Zero(t, userTotal(t, db, "u1"))

	// The raw ledger keeps the negative history.
	var sum int64
	require.NoError(t, db.Model(&model.PointEntry{}).
		Where("user_uid = ?", "u1").
		Select("COALESCE(SUM(delta), 0)").Scan(&sum).Error)
	assert.Equal(t, int64(-5), sum)
}

func TestGroupSumsWindowAndOrder(t *testing.T) {
	db := testutil.OpenTestDB(t)
	repo := NewPointRepository(db)
	ctx := context.Background()
	seedPointUser(t, db, "recent")
	seedPointUser(t, db, "stale")

	now := time.Now()
	entries := []model.PointEntry{
		{UserUID: "recent", Delta: 3, Source: model.PointSourcePostLiked, CreatedAt: now.Add(-time.Hour)},
		{UserUID: "recent", Delta: 2, Source: model.PointSourceCommentOnPost, CreatedAt: now.Add(-2 * time.Hour)},
		{UserUID: "stale", Delta: 50, Source: model.PointSourcePostLiked, CreatedAt: now.Add(-40 * 24 * time.Hour)},
		{UserUID: "stale", Delta: 1, Source: model.PointSourcePostLiked, CreatedAt: now.Add(-time.Hour)},
	}
	for i := range entries {
		require.NoError(t, db.Create(&entries[i]).Error)
	}

	from := now.Add(-30 * 24 * time.Hour)
	sums, err := repo.GroupSums(ctx, &from, 20)
	require.NoError(t, err)
	require.Len(t, sums, 2)

	// Only in-window deltas count, highest sum first.
	assert.Equal(t, "recent", sums[0].UserUID)
	assert.Equal(t, int64(5), sums[0].Points)
	assert.Equal(t, "stale", sums[1].UserUID)
	assert.Equal(t, int64(1), sums[1].Points)

	// Without a bound the stale user's big entry dominates.
	all, err := repo.GroupSums(ctx, nil, 20)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "stale", all[0].UserUID)
	assert.Equal(t, int64(51), all[0].Points)
}

func TestGroupSumsLimit(t *testing.T) {
	db := testutil.OpenTestDB(t)
	repo := NewPointRepository(db)
	ctx := context.Background()

	for _, uid := range []string{"a", "b", "c"} {
		seedPointUser(t, db, uid)
		require.NoError(t, db.Create(&model.PointEntry{UserUID: uid, Delta: 1, Source: model.PointSourcePostLiked}).Error)
	}

	sums, err := repo.GroupSums(ctx, nil, 2)
	require.NoError(t, err)
	assert.Len(t, sums, 2)
}
