package model

import "time"

type Post struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	AuthorUID string    `gorm:"column:author_uid;size:128;index;not null"`
	Content   string    `gorm:"type:text;not null"`
	ImageURL  *string   `gorm:"column:image_url;size:512"`
	IsPinned  bool      `gorm:"column:is_pinned;not null;default:false"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Post) TableName() string {
	return "posts"
}
