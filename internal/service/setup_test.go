package service

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/archonitDev/reformly-server/internal/model"
	"github.com/archonitDev/reformly-server/internal/repository"
	"github.com/archonitDev/reformly-server/internal/testutil"
)

type testEnv struct {
	db            *gorm.DB
	users         repository.UserRepository
	points        repository.PointRepository
	posts         repository.PostRepository
	comments      repository.CommentRepository
	likes         repository.LikeRepository
	leaderboard   LeaderboardService
	notifications NotificationService
	commentSvc    CommentService
	likeSvc       LikeService
	postSvc       PostService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.OpenTestDB(t)
	log := zap.NewNop()

	users := repository.NewUserRepository(db)
	points := repository.NewPointRepository(db)
	posts := repository.NewPostRepository(db)
	comments := repository.NewCommentRepository(db)
	likes := repository.NewLikeRepository(db)
	notifications := NewNotificationService(repository.NewNotificationRepository(db), users)
	leaderboard := NewLeaderboardService(points, users, log)

	return &testEnv{
		db:            db,
		users:         users,
		points:        points,
		posts:         posts,
		comments:      comments,
		likes:         likes,
		leaderboard:   leaderboard,
		notifications: notifications,
		commentSvc:    NewCommentService(comments, posts, likes, users, leaderboard, notifications, log),
		likeSvc:       NewLikeService(likes, posts, comments, leaderboard, notifications, log),
		postSvc:       NewPostService(posts, likes, users),
	}
}

func (e *testEnv) seedUser(t *testing.T, uid, name, lastName string) {
	t.Helper()
	if err := e.users.EnsureExists(context.Background(), uid, uid+"@example.com", name, lastName); err != nil {
		t.Fatalf("seed user %s: %v", uid, err)
	}
}

func (e *testEnv) seedPost(t *testing.T, authorUID, content string) *model.Post {
	t.Helper()
	post := &model.Post{AuthorUID: authorUID, Content: content}
	if err := e.posts.Create(context.Background(), post); err != nil {
		t.Fatalf("seed post: %v", err)
	}
	return post
}

func (e *testEnv) totalPoints(t *testing.T, uid string) int64 {
	t.Helper()
	u, err := e.users.FindByUID(context.Background(), uid)
	if err != nil {
		t.Fatalf("find user %s: %v", uid, err)
	}
	return u.TotalPoints
}
