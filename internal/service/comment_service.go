package service

import (
	"context"
	"errors"
	"strings"

	"github.com/archonitDev/reformly-server/internal/model"
	"github.com/archonitDev/reformly-server/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CommentView is a comment joined with its engagement state for one
// viewer.
type CommentView struct {
	Comment    model.Comment
	Author     *model.User
	LikesCount int64
	IsLiked    bool
}

type CommentService interface {
	// Create stores the comment, then awards points and notifies the
	// post author (and the parent comment author for replies) as
	// best-effort concurrent side effects.
	Create(ctx context.Context, postID uint64, authorUID, content string, parentID *uint64) (*CommentView, error)
	ListByPost(ctx context.Context, postID uint64, viewerUID string, page, limit int) ([]CommentView, int64, error)
	Update(ctx context.Context, id uint64, uid, content string) (*CommentView, error)
	Delete(ctx context.Context, id uint64, uid string) error
}

type commentService struct {
	comments      repository.CommentRepository
	posts         repository.PostRepository
	likes         repository.LikeRepository
	users         repository.UserRepository
	leaderboard   LeaderboardService
	notifications NotificationService
	log           *zap.Logger
}

func NewCommentService(
	comments repository.CommentRepository,
	posts repository.PostRepository,
	likes repository.LikeRepository,
	users repository.UserRepository,
	leaderboard LeaderboardService,
	notifications NotificationService,
	log *zap.Logger,
) CommentService {
	return &commentService{
		comments:      comments,
		posts:         posts,
		likes:         likes,
		users:         users,
		leaderboard:   leaderboard,
		notifications: notifications,
		log:           log,
	}
}

func (s *commentService) Create(ctx context.Context, postID uint64, authorUID, content string, parentID *uint64) (*CommentView, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, errors.New("content is required")
	}
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var parent *model.Comment
	if parentID != nil {
		parent, err = s.comments.FindByID(ctx, *parentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		if parent.PostID != postID {
			return nil, errors.New("parent comment belongs to another post")
		}
	}

	comment := &model.Comment{
		PostID:    postID,
		AuthorUID: authorUID,
		ParentID:  parentID,
		Content:   content,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}

	// Points and notifications are independent side effects; neither
	// can fail the comment that was already created.
	var effects []sideEffect
	if post.AuthorUID != authorUID {
		effects = append(effects,
			sideEffect{name: "points.comment_on_post", fn: func(ctx context.Context) error {
				return s.leaderboard.RecordPoints(ctx, post.AuthorUID, 1, model.PointSourceCommentOnPost)
			}},
			sideEffect{name: "notify.post_commented", fn: func(ctx context.Context) error {
				return s.notifications.NotifyPostCommented(ctx, post.AuthorUID, authorUID, postID, comment.ID)
			}},
		)
	}
	if parent != nil && parent.AuthorUID != authorUID {
		parentAuthor := parent.AuthorUID
		effects = append(effects,
			sideEffect{name: "points.comment_reply", fn: func(ctx context.Context) error {
				return s.leaderboard.RecordPoints(ctx, parentAuthor, 1, model.PointSourceCommentReply)
			}},
			sideEffect{name: "notify.comment_replied", fn: func(ctx context.Context) error {
				return s.notifications.NotifyCommentReplied(ctx, parentAuthor, authorUID, postID, comment.ID)
			}},
		)
	}
	runSideEffects(ctx, s.log, effects...)

	return s.view(ctx, comment, authorUID)
}

func (s *commentService) ListByPost(ctx context.Context, postID uint64, viewerUID string, page, limit int) ([]CommentView, int64, error) {
	if _, err := s.posts.FindByID(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrNotFound
		}
		return nil, 0, err
	}
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	comments, total, err := s.comments.ListByPost(ctx, postID, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}
	views := make([]CommentView, 0, len(comments))
	for i := range comments {
		v, err := s.view(ctx, &comments[i], viewerUID)
		if err != nil {
			return nil, 0, err
		}
		views = append(views, *v)
	}
	return views, total, nil
}

func (s *commentService) Update(ctx context.Context, id uint64, uid, content string) (*CommentView, error) {
	comment, err := s.findComment(ctx, id)
	if err != nil {
		return nil, err
	}
	if comment.AuthorUID != uid {
		return nil, ErrForbidden
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, errors.New("content is required")
	}
	comment.Content = content
	if err := s.comments.Update(ctx, comment); err != nil {
		return nil, err
	}
	return s.view(ctx, comment, uid)
}

func (s *commentService) Delete(ctx context.Context, id uint64, uid string) error {
	comment, err := s.findComment(ctx, id)
	if err != nil {
		return err
	}
	if comment.AuthorUID != uid {
		return ErrForbidden
	}
	return s.comments.Delete(ctx, id)
}

func (s *commentService) findComment(ctx context.Context, id uint64) (*model.Comment, error) {
	comment, err := s.comments.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return comment, nil
}

func (s *commentService) view(ctx context.Context, comment *model.Comment, viewerUID string) (*CommentView, error) {
	count, err := s.likes.CountCommentLikes(ctx, comment.ID)
	if err != nil {
		return nil, err
	}
	liked := false
	if viewerUID != "" {
		liked, err = s.likes.CommentLikeExists(ctx, comment.ID, viewerUID)
		if err != nil {
			return nil, err
		}
	}
	author, err := s.users.FindByUID(ctx, comment.AuthorUID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return &CommentView{
		Comment:    *comment,
		Author:     author,
		LikesCount: count,
		IsLiked:    liked,
	}, nil
}
