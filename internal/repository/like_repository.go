package repository

import (
	"context"
	"errors"

	"github.com/archonitDev/reformly-server/internal/model"
	"gorm.io/gorm"
)

type LikeRepository interface {
	PostLikeExists(ctx context.Context, postID uint64, userUID string) (bool, error)
	CreatePostLike(ctx context.Context, postID uint64, userUID string) error
	DeletePostLike(ctx context.Context, postID uint64, userUID string) error
	CountPostLikes(ctx context.Context, postID uint64) (int64, error)
	ListPostLikes(ctx context.Context, postID uint64, limit, offset int) ([]model.PostLike, error)

	CommentLikeExists(ctx context.Context, commentID uint64, userUID string) (bool, error)
	CreateCommentLike(ctx context.Context, commentID uint64, userUID string) error
	DeleteCommentLike(ctx context.Context, commentID uint64, userUID string) error
	CountCommentLikes(ctx context.Context, commentID uint64) (int64, error)
	ListCommentLikes(ctx context.Context, commentID uint64, limit, offset int) ([]model.CommentLike, error)
}

type likeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) PostLikeExists(ctx context.Context, postID uint64, userUID string) (bool, error) {
	var like model.PostLike
	err := r.db.WithContext(ctx).
		Where("post_id = ? AND user_uid = ?", postID, userUID).
		First(&like).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *likeRepository) CreatePostLike(ctx context.Context, postID uint64, userUID string) error {
	return r.db.WithContext(ctx).Create(&model.PostLike{PostID: postID, UserUID: userUID}).Error
}

func (r *likeRepository) DeletePostLike(ctx context.Context, postID uint64, userUID string) error {
	return r.db.WithContext(ctx).
		Where("post_id = ? AND user_uid = ?", postID, userUID).
		Delete(&model.PostLike{}).Error
}

func (r *likeRepository) CountPostLikes(ctx context.Context, postID uint64) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&model.PostLike{}).
		Where("post_id = ?", postID).
		Count(&cnt).Error
	return cnt, err
}

func (r *likeRepository) ListPostLikes(ctx context.Context, postID uint64, limit, offset int) ([]model.PostLike, error) {
	var likes []model.PostLike
	err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&likes).Error
	return likes, err
}

func (r *likeRepository) CommentLikeExists(ctx context.Context, commentID uint64, userUID string) (bool, error) {
	var like model.CommentLike
	err := r.db.WithContext(ctx).
		Where("comment_id = ? AND user_uid = ?", commentID, userUID).
		First(&like).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *likeRepository) CreateCommentLike(ctx context.Context, commentID uint64, userUID string) error {
	return r.db.WithContext(ctx).Create(&model.CommentLike{CommentID: commentID, UserUID: userUID}).Error
}

func (r *likeRepository) DeleteCommentLike(ctx context.Context, commentID uint64, userUID string) error {
	return r.db.WithContext(ctx).
		Where("comment_id = ? AND user_uid = ?", commentID, userUID).
		Delete(&model.CommentLike{}).Error
}

func (r *likeRepository) CountCommentLikes(ctx context.Context, commentID uint64) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&model.CommentLike{}).
		Where("comment_id = ?", commentID).
		Count(&cnt).Error
	return cnt, err
}

func (r *likeRepository) ListCommentLikes(ctx context.Context, commentID uint64, limit, offset int) ([]model.CommentLike, error) {
	var likes []model.CommentLike
	err := r.db.WithContext(ctx).
		Where("comment_id = ?", commentID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&likes).Error
	return likes, err
}
