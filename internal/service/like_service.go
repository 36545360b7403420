package service

import (
	"context"
	"errors"

	"github.com/archonitDev/reformly-server/internal/model"
	"github.com/archonitDev/reformly-server/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type LikeService interface {
	// TogglePostLike likes the post if the user has not liked it, and
	// removes the like otherwise. A like awards the post author one
	// point and a notification; an unlike reverses the point without
	// notifying. Self-likes move no points.
	TogglePostLike(ctx context.Context, postID uint64, userUID string) (liked bool, likesCount int64, err error)
	ToggleCommentLike(ctx context.Context, commentID uint64, userUID string) (liked bool, likesCount int64, err error)
	ListPostLikes(ctx context.Context, postID uint64, page, limit int) ([]model.PostLike, int64, error)
	ListCommentLikes(ctx context.Context, commentID uint64, page, limit int) ([]model.CommentLike, int64, error)
}

type likeService struct {
	likes         repository.LikeRepository
	posts         repository.PostRepository
	comments      repository.CommentRepository
	leaderboard   LeaderboardService
	notifications NotificationService
	log           *zap.Logger
}

func NewLikeService(
	likes repository.LikeRepository,
	posts repository.PostRepository,
	comments repository.CommentRepository,
	leaderboard LeaderboardService,
	notifications NotificationService,
	log *zap.Logger,
) LikeService {
	return &likeService{
		likes:         likes,
		posts:         posts,
		comments:      comments,
		leaderboard:   leaderboard,
		notifications: notifications,
		log:           log,
	}
}

func (s *likeService) TogglePostLike(ctx context.Context, postID uint64, userUID string) (bool, int64, error) {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, 0, ErrNotFound
		}
		return false, 0, err
	}

	exists, err := s.likes.PostLikeExists(ctx, postID, userUID)
	if err != nil {
		return false, 0, err
	}

	if exists {
		if err := s.likes.DeletePostLike(ctx, postID, userUID); err != nil {
			return false, 0, err
		}
		count, err := s.likes.CountPostLikes(ctx, postID)
		if err != nil {
			return false, 0, err
		}
		if post.AuthorUID != userUID {
			runSideEffects(ctx, s.log, sideEffect{name: "points.post_unliked", fn: func(ctx context.Context) error {
				return s.leaderboard.RecordPoints(ctx, post.AuthorUID, -1, model.PointSourcePostLiked)
			}})
		}
		return false, count, nil
	}

	if err := s.likes.CreatePostLike(ctx, postID, userUID); err != nil {
		return false, 0, err
	}
	count, err := s.likes.CountPostLikes(ctx, postID)
	if err != nil {
		return false, 0, err
	}
	if post.AuthorUID != userUID {
		runSideEffects(ctx, s.log,
			sideEffect{name: "points.post_liked", fn: func(ctx context.Context) error {
				return s.leaderboard.RecordPoints(ctx, post.AuthorUID, 1, model.PointSourcePostLiked)
			}},
			sideEffect{name: "notify.post_liked", fn: func(ctx context.Context) error {
				return s.notifications.NotifyPostLiked(ctx, post.AuthorUID, userUID, postID)
			}},
		)
	}
	return true, count, nil
}

func (s *likeService) ToggleCommentLike(ctx context.Context, commentID uint64, userUID string) (bool, int64, error) {
	comment, err := s.comments.FindByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, 0, ErrNotFound
		}
		return false, 0, err
	}

	exists, err := s.likes.CommentLikeExists(ctx, commentID, userUID)
	if err != nil {
		return false, 0, err
	}

	if exists {
		if err := s.likes.DeleteCommentLike(ctx, commentID, userUID); err != nil {
			return false, 0, err
		}
		count, err := s.likes.CountCommentLikes(ctx, commentID)
		if err != nil {
			return false, 0, err
		}
		if comment.AuthorUID != userUID {
			runSideEffects(ctx, s.log, sideEffect{name: "points.comment_unliked", fn: func(ctx context.Context) error {
				return s.leaderboard.RecordPoints(ctx, comment.AuthorUID, -1, model.PointSourceCommentLiked)
			}})
		}
		return false, count, nil
	}

	if err := s.likes.CreateCommentLike(ctx, commentID, userUID); err != nil {
		return false, 0, err
	}
	count, err := s.likes.CountCommentLikes(ctx, commentID)
	if err != nil {
		return false, 0, err
	}
	if comment.AuthorUID != userUID {
		runSideEffects(ctx, s.log,
			sideEffect{name: "points.comment_liked", fn: func(ctx context.Context) error {
				return s.leaderboard.RecordPoints(ctx, comment.AuthorUID, 1, model.PointSourceCommentLiked)
			}},
			sideEffect{name: "notify.comment_liked", fn: func(ctx context.Context) error {
				return s.notifications.NotifyCommentLiked(ctx, comment.AuthorUID, userUID, comment.PostID, commentID)
			}},
		)
	}
	return true, count, nil
}

func (s *likeService) ListPostLikes(ctx context.Context, postID uint64, page, limit int) ([]model.PostLike, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	total, err := s.likes.CountPostLikes(ctx, postID)
	if err != nil {
		return nil, 0, err
	}
	likes, err := s.likes.ListPostLikes(ctx, postID, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}
	return likes, total, nil
}

func (s *likeService) ListCommentLikes(ctx context.Context, commentID uint64, page, limit int) ([]model.CommentLike, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	total, err := s.likes.CountCommentLikes(ctx, commentID)
	if err != nil {
		return nil, 0, err
	}
	likes, err := s.likes.ListCommentLikes(ctx, commentID, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}
	return likes, total, nil
}
