package model

import "time"

// User is keyed by the Firebase auth UID. TotalPoints is a denormalized
// cache of the point ledger sum, maintained transactionally by the point
// repository and floored at zero.
type User struct {
	UID               string    `gorm:"column:uid;primaryKey;size:128"`
	Email             string    `gorm:"column:email;size:255;index"`
	Name              string    `gorm:"column:name;size:120"`
	LastName          string    `gorm:"column:last_name;size:120"`
	ProfilePictureURL *string   `gorm:"column:profile_picture_url;size:512"`
	TotalPoints       int64     `gorm:"column:total_points;not null;default:0"`
	CreatedAt         time.Time `gorm:"autoCreateTime"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}
