package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostLifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedUser(t, "author", "Post", "Author")

	view, err := env.postSvc.Create(ctx, "author", "  first post  ", nil)
	require.NoError(t, err)
	assert.Equal(t, "first post", view.Post.Content)
	require.NotNil(t, view.Author)
	assert.Equal(t, "Post", view.Author.Name)

	got, err := env.postSvc.Get(ctx, view.Post.ID, "author")
	require.NoError(t, err)
	assert.Equal(t, view.Post.ID, got.Post.ID)

	newContent := "edited"
	updated, err := env.postSvc.Update(ctx, view.Post.ID, "author", &newContent, nil)
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Post.Content)

	require.NoError(t, env.postSvc.Delete(ctx, view.Post.ID, "author"))
	_, err = env.postSvc.Get(ctx, view.Post.ID, "author")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPostValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedUser(t, "author", "Post", "Author")

	_, err := env.postSvc.Create(ctx, "author", "   ", nil)
	require.Error(t, err)

	dataURI := "data:image/png;base64,AAAA"
	_, err = env.postSvc.Create(ctx, "author", "hello", &dataURI)
	require.Error(t, err)
}

func TestPostOwnership(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedUser(t, "author", "Post", "Author")
	env.seedUser(t, "other", "Ot", "Her")
	post := env.seedPost(t, "author", "mine")

	content := "hijack"
	_, err := env.postSvc.Update(ctx, post.ID, "other", &content, nil)
	assert.ErrorIs(t, err, ErrForbidden)
	err = env.postSvc.Delete(ctx, post.ID, "other")
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = env.postSvc.TogglePin(ctx, post.ID, "other")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestPostListPinnedFirst(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedUser(t, "author", "Post", "Author")

	first := env.seedPost(t, "author", "first")
	env.seedPost(t, "author", "second")

	pinned, err := env.postSvc.TogglePin(ctx, first.ID, "author")
	require.NoError(t, err)
	assert.True(t, pinned.Post.IsPinned)

	views, total, err := env.postSvc.List(ctx, "author", "", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, views, 2)
	assert.Equal(t, first.ID, views[0].Post.ID, "pinned posts list first")
}

func TestPostListFilterByAuthor(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedUser(t, "a", "A", "One")
	env.seedUser(t, "b", "B", "Two")
	env.seedPost(t, "a", "from a")
	env.seedPost(t, "b", "from b")

	views, total, err := env.postSvc.List(ctx, "a", "b", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, views, 1)
	assert.Equal(t, "b", views[0].Post.AuthorUID)
}
