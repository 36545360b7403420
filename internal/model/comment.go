package model

import "time"

// Comment belongs to a post; ParentID is set when the comment is a reply
// to another comment on the same post.
type Comment struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	PostID    uint64    `gorm:"column:post_id;index;not null"`
	AuthorUID string    `gorm:"column:author_uid;size:128;index;not null"`
	ParentID  *uint64   `gorm:"column:parent_id;index"`
	Content   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Comment) TableName() string {
	return "comments"
}
