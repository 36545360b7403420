package model

import "time"

type PostLike struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	PostID    uint64    `gorm:"column:post_id;index:idx_post_user,unique;not null"`
	UserUID   string    `gorm:"column:user_uid;size:128;index:idx_post_user,unique;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (PostLike) TableName() string {
	return "post_likes"
}

type CommentLike struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	CommentID uint64    `gorm:"column:comment_id;index:idx_comment_user,unique;not null"`
	UserUID   string    `gorm:"column:user_uid;size:128;index:idx_comment_user,unique;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (CommentLike) TableName() string {
	return "comment_likes"
}
