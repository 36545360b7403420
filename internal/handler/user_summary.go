package handler

import "github.com/archonitDev/reformly-server/internal/model"

// UserSummary is the compact author/sender shape embedded in posts,
// comments and likes.
type UserSummary struct {
	UID               string  `json:"uid"`
	Name              string  `json:"name"`
	LastName          string  `json:"lastName"`
	ProfilePictureURL *string `json:"profilePictureUrl,omitempty"`
}

func toUserSummary(u *model.User) *UserSummary {
	if u == nil {
		return nil
	}
	return &UserSummary{
		UID:               u.UID,
		Name:              u.Name,
		LastName:          u.LastName,
		ProfilePictureURL: u.ProfilePictureURL,
	}
}
