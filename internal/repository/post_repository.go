package repository

import (
	"context"

	"github.com/archonitDev/reformly-server/internal/model"
	"gorm.io/gorm"
)

type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	FindByID(ctx context.Context, id uint64) (*model.Post, error)
	// List returns posts newest first with pinned posts on top,
	// optionally filtered to a single author.
	List(ctx context.Context, authorUID string, limit, offset int) ([]model.Post, int64, error)
	Update(ctx context.Context, post *model.Post) error
	Delete(ctx context.Context, id uint64) error
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) FindByID(ctx context.Context, id uint64) (*model.Post, error) {
	var post model.Post
	if err := r.db.WithContext(ctx).First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context, authorUID string, limit, offset int) ([]model.Post, int64, error) {
	var (
		posts []model.Post
		total int64
	)
	countQ := r.db.WithContext(ctx).Model(&model.Post{})
	listQ := r.db.WithContext(ctx)
	if authorUID != "" {
		countQ = countQ.Where("author_uid = ?", authorUID)
		listQ = listQ.Where("author_uid = ?", authorUID)
	}
	if err := countQ.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := listQ.
		Order("is_pinned DESC").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error; err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (r *postRepository) Update(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Save(post).Error
}

func (r *postRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Delete(&model.Post{}, id).Error
}
