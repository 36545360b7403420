package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archonitDev/reformly-server/internal/model"
)

func TestTogglePostLikeRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedUser(t, "author", "Post", "Author")
	env.seedUser(t, "fan", "Fan", "One")
	post := env.seedPost(t, "author", "group ride saturday?")

	liked, count, err := env.likeSvc.TogglePostLike(ctx, post.ID, "fan")
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, int64(1), count)
	assert.Equal(t, int64(1), env.totalPoints(t, "author"))

	list, _, _, err := env.notifications.List(ctx, "author", false, 1, 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, model.NotificationPostLiked, list[0].Type)

	// Unlike reverses the point without a second notification.
	liked, count, err = env.likeSvc.TogglePostLike(ctx, post.ID, "fan")
	require.NoError(t, err)
	assert.False(t, liked)
	assert.Zero(t, count)
	assert.Zero(t, env.totalPoints(t, "author"))

	list, _, _, err = env.notifications.List(ctx, "author", false, 1, 10)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	// The ledger keeps both movements.
	var entries int64
	require.NoError(t, env.db.Model(&model.PointEntry{}).Where("user_uid = ?", "author").Count(&entries).Error)
	assert.Equal(t, int64(2), entries)
}

func TestSelfLikeMovesNoPoints(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedUser(t, "author", "Post", "Author")
	post := env.seedPost(t, "author", "self five")

	liked, count, err := env.likeSvc.TogglePostLike(ctx, post.ID, "author")
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, int64(1), count)
	assert.Zero(t, env.totalPoints(t, "author"))

	_, _, unread, err := env.notifications.List(ctx, "author", false, 1, 10)
	require.NoError(t, err)
	assert.Zero(t, unread)
}

func TestToggleCommentLike(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedUser(t, "author", "Post", "Author")
	env.seedUser(t, "commenter", "Com", "Menter")
	env.seedUser(t, "fan", "Fan", "One")
	post := env.seedPost(t, "author", "hello")

	view, err := env.commentSvc.Create(ctx, post.ID, "commenter", "hi there", nil)
	require.NoError(t, err)
	commenterBase := env.totalPoints(t, "commenter")

	liked, count, err := env.likeSvc.ToggleCommentLike(ctx, view.Comment.ID, "fan")
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, int64(1), count)
	assert.Equal(t, commenterBase+1, env.totalPoints(t, "commenter"))

	liked, count, err = env.likeSvc.ToggleCommentLike(ctx, view.Comment.ID, "fan")
	require.NoError(t, err)
	assert.False(t, liked)
	assert.Zero(t, count)
	assert.Equal(t, commenterBase, env.totalPoints(t, "commenter"))
}

func TestToggleLikeUnknownTargets(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedUser(t, "fan", "Fan", "One")

	_, _, err := env.likeSvc.TogglePostLike(ctx, 9999, "fan")
	assert.ErrorIs(t, err, ErrNotFound)
	_, _, err = env.likeSvc.ToggleCommentLike(ctx, 9999, "fan")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListPostLikes(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedUser(t, "author", "Post", "Author")
	env.seedUser(t, "fan1", "Fan", "One")
	env.seedUser(t, "fan2", "Fan", "Two")
	post := env.seedPost(t, "author", "hello")

	for _, uid := range []string{"fan1", "fan2"} {
		_, _, err := env.likeSvc.TogglePostLike(ctx, post.ID, uid)
		require.NoError(t, err)
	}

	likes, total, err := env.likeSvc.ListPostLikes(ctx, post.ID, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, likes, 2)
}
