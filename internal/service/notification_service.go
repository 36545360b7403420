package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/archonitDev/reformly-server/internal/model"
	"github.com/archonitDev/reformly-server/internal/repository"
	"gorm.io/gorm"
)

type NotificationService interface {
	NotifyPostLiked(ctx context.Context, recipientUID, senderUID string, postID uint64) error
	NotifyPostCommented(ctx context.Context, recipientUID, senderUID string, postID, commentID uint64) error
	NotifyCommentLiked(ctx context.Context, recipientUID, senderUID string, postID, commentID uint64) error
	NotifyCommentReplied(ctx context.Context, recipientUID, senderUID string, postID, commentID uint64) error

	List(ctx context.Context, userUID string, unreadOnly bool, page, limit int) ([]model.Notification, int64, int64, error)
	MarkRead(ctx context.Context, id uint64, userUID string) (*model.Notification, error)
	MarkAllRead(ctx context.Context, userUID string) (int64, error)
	Delete(ctx context.Context, id uint64, userUID string) error
	DeleteAll(ctx context.Context, userUID string) (int64, error)
}

type notificationService struct {
	repo  repository.NotificationRepository
	users repository.UserRepository
}

func NewNotificationService(repo repository.NotificationRepository, users repository.UserRepository) NotificationService {
	return &notificationService{repo: repo, users: users}
}

func (s *notificationService) NotifyPostLiked(ctx context.Context, recipientUID, senderUID string, postID uint64) error {
	return s.create(ctx, recipientUID, senderUID, model.NotificationPostLiked, "liked your post", &postID, nil)
}

func (s *notificationService) NotifyPostCommented(ctx context.Context, recipientUID, senderUID string, postID, commentID uint64) error {
	return s.create(ctx, recipientUID, senderUID, model.NotificationPostCommented, "commented on your post", &postID, &commentID)
}

func (s *notificationService) NotifyCommentLiked(ctx context.Context, recipientUID, senderUID string, postID, commentID uint64) error {
	return s.create(ctx, recipientUID, senderUID, model.NotificationCommentLiked, "liked your comment", &postID, &commentID)
}

func (s *notificationService) NotifyCommentReplied(ctx context.Context, recipientUID, senderUID string, postID, commentID uint64) error {
	return s.create(ctx, recipientUID, senderUID, model.NotificationCommentReplied, "replied to your comment", &postID, &commentID)
}

func (s *notificationService) create(ctx context.Context, recipientUID, senderUID string, typ model.NotificationType, action string, postID, commentID *uint64) error {
	if recipientUID == "" || recipientUID == senderUID {
		return nil
	}
	message := action
	if sender, err := s.users.FindByUID(ctx, senderUID); err == nil {
		name := strings.TrimSpace(sender.Name + " " + sender.LastName)
		if name != "" {
			message = fmt.Sprintf("%s %s", name, action)
		}
	}
	return s.repo.Create(ctx, &model.Notification{
		UserUID:   recipientUID,
		SenderUID: senderUID,
		Type:      typ,
		Message:   message,
		PostID:    postID,
		CommentID: commentID,
	})
}

func (s *notificationService) List(ctx context.Context, userUID string, unreadOnly bool, page, limit int) ([]model.Notification, int64, int64, error) {
	if page <= 0 {
		page = 1
	}
	list, total, err := s.repo.ListByUser(ctx, userUID, unreadOnly, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, 0, err
	}
	unread, err := s.repo.CountUnread(ctx, userUID)
	if err != nil {
		return nil, 0, 0, err
	}
	return list, total, unread, nil
}

func (s *notificationService) MarkRead(ctx context.Context, id uint64, userUID string) (*model.Notification, error) {
	n, err := s.find(ctx, id, userUID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.MarkRead(ctx, id); err != nil {
		return nil, err
	}
	now := time.Now()
	n.ReadAt = &now
	return n, nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, userUID string) (int64, error) {
	return s.repo.MarkAllRead(ctx, userUID)
}

func (s *notificationService) Delete(ctx context.Context, id uint64, userUID string) error {
	if _, err := s.find(ctx, id, userUID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *notificationService) DeleteAll(ctx context.Context, userUID string) (int64, error) {
	return s.repo.DeleteAllByUser(ctx, userUID)
}

// find resolves a notification, hiding other users' rows behind
// ErrNotFound rather than ErrForbidden.
func (s *notificationService) find(ctx context.Context, id uint64, userUID string) (*model.Notification, error) {
	n, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if n.UserUID != userUID {
		return nil, ErrNotFound
	}
	return n, nil
}
