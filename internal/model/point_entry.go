package model

import "time"

// PointSource is the closed set of engagement events that change points.
type PointSource string

const (
	PointSourceCommentOnPost PointSource = "comment_on_post"
	PointSourcePostLiked     PointSource = "post_liked"
	PointSourceCommentLiked  PointSource = "comment_liked"
	PointSourceCommentReply  PointSource = "comment_reply"
)

// PointEntry is an append-only ledger row. Rows are never updated or
// deleted; the windowed leaderboard aggregates them by created_at.
type PointEntry struct {
	ID        uint64      `gorm:"primaryKey;autoIncrement"`
	UserUID   string      `gorm:"column:user_uid;size:128;index;not null"`
	Delta     int64       `gorm:"column:delta;not null"`
	Source    PointSource `gorm:"column:source;size:32;not null"`
	CreatedAt time.Time   `gorm:"column:created_at;autoCreateTime;index"`
}

func (PointEntry) TableName() string {
	return "user_points"
}
