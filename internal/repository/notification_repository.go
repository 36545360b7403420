package repository

import (
	"context"

	"github.com/archonitDev/reformly-server/internal/model"
	"gorm.io/gorm"
)

type NotificationRepository interface {
	Create(ctx context.Context, n *model.Notification) error
	FindByID(ctx context.Context, id uint64) (*model.Notification, error)
	ListByUser(ctx context.Context, userUID string, unreadOnly bool, limit, offset int) ([]model.Notification, int64, error)
	CountUnread(ctx context.Context, userUID string) (int64, error)
	MarkRead(ctx context.Context, id uint64) error
	MarkAllRead(ctx context.Context, userUID string) (int64, error)
	Delete(ctx context.Context, id uint64) error
	DeleteAllByUser(ctx context.Context, userUID string) (int64, error)
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, n *model.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *notificationRepository) FindByID(ctx context.Context, id uint64) (*model.Notification, error) {
	var n model.Notification
	if err := r.db.WithContext(ctx).First(&n, id).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *notificationRepository) ListByUser(ctx context.Context, userUID string, unreadOnly bool, limit, offset int) ([]model.Notification, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	var total int64
	countQ := r.db.WithContext(ctx).Model(&model.Notification{}).Where("user_uid = ?", userUID)
	listQ := r.db.WithContext(ctx).Where("user_uid = ?", userUID)
	if unreadOnly {
		countQ = countQ.Where("read_at IS NULL")
		listQ = listQ.Where("read_at IS NULL")
	}
	if err := countQ.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []model.Notification
	if err := listQ.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&list).Error; err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *notificationRepository) CountUnread(ctx context.Context, userUID string) (int64, error) {
	var cnt int64
	if err := r.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("user_uid = ? AND read_at IS NULL", userUID).
		Count(&cnt).Error; err != nil {
		return 0, err
	}
	return cnt, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, id uint64) error {
	now := r.db.NowFunc()
	return r.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("id = ?", id).
		Update("read_at", now).Error
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, userUID string) (int64, error) {
	now := r.db.NowFunc()
	res := r.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("user_uid = ? AND read_at IS NULL", userUID).
		Update("read_at", now)
	return res.RowsAffected, res.Error
}

func (r *notificationRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Delete(&model.Notification{}, id).Error
}

func (r *notificationRepository) DeleteAllByUser(ctx context.Context, userUID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("user_uid = ?", userUID).
		Delete(&model.Notification{})
	return res.RowsAffected, res.Error
}
