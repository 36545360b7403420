package model

import "time"

type NotificationType string

const (
	NotificationPostLiked      NotificationType = "post_liked"
	NotificationPostCommented  NotificationType = "post_commented"
	NotificationCommentLiked   NotificationType = "comment_liked"
	NotificationCommentReplied NotificationType = "comment_replied"
)

type Notification struct {
	ID        uint64           `gorm:"primaryKey;autoIncrement"`
	UserUID   string           `gorm:"column:user_uid;size:128;index;not null"`
	SenderUID string           `gorm:"column:sender_uid;size:128;index"`
	Type      NotificationType `gorm:"column:type;size:64;not null"`
	Message   string           `gorm:"column:message;type:text"`
	PostID    *uint64          `gorm:"column:post_id;index"`
	CommentID *uint64          `gorm:"column:comment_id;index"`
	ReadAt    *time.Time       `gorm:"column:read_at"`
	CreatedAt time.Time        `gorm:"autoCreateTime"`
}

func (Notification) TableName() string {
	return "notifications"
}
