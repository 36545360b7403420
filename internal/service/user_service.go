package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/archonitDev/reformly-server/internal/model"
	"github.com/archonitDev/reformly-server/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ObjectStorage issues pre-signed upload URLs and resolves the public
// URL an uploaded object will be served from.
type ObjectStorage interface {
	SignedUploadURL(object, contentType string, ttl time.Duration) (string, error)
	PublicURL(object string) string
}

var ErrStorageUnavailable = errors.New("object storage not configured")

type ProfilePictureUpload struct {
	UploadURL string
	PublicURL string
}

type UserService interface {
	// EnsureUser provisions the user row on first authenticated
	// contact; repeated calls are cheap no-ops.
	EnsureUser(ctx context.Context, uid, email, name, lastName string) error
	Get(ctx context.Context, uid string) (*model.User, error)
	UpdateProfile(ctx context.Context, uid string, name, lastName *string) (*model.User, error)
	// ProfilePictureUploadURL returns a short-lived signed PUT URL and
	// records the resulting public URL on the profile.
	ProfilePictureUploadURL(ctx context.Context, uid, contentType string) (*ProfilePictureUpload, error)
}

type userService struct {
	users   repository.UserRepository
	storage ObjectStorage
}

func NewUserService(users repository.UserRepository, storage ObjectStorage) UserService {
	return &userService{users: users, storage: storage}
}

func (s *userService) EnsureUser(ctx context.Context, uid, email, name, lastName string) error {
	if uid == "" {
		return errors.New("uid is required")
	}
	return s.users.EnsureExists(ctx, uid, email, name, lastName)
}

func (s *userService) Get(ctx context.Context, uid string) (*model.User, error) {
	user, err := s.users.FindByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, uid string, name, lastName *string) (*model.User, error) {
	updates := map[string]interface{}{}
	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return nil, errors.New("name must not be empty")
		}
		updates["name"] = trimmed
	}
	if lastName != nil {
		updates["last_name"] = strings.TrimSpace(*lastName)
	}
	if err := s.users.UpdateProfile(ctx, uid, updates); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.Get(ctx, uid)
}

func (s *userService) ProfilePictureUploadURL(ctx context.Context, uid, contentType string) (*ProfilePictureUpload, error) {
	if s.storage == nil {
		return nil, ErrStorageUnavailable
	}
	if _, err := s.Get(ctx, uid); err != nil {
		return nil, err
	}
	ext := ""
	switch contentType {
	case "image/png":
		ext = ".png"
	case "image/jpeg":
		ext = ".jpg"
	case "image/webp":
		ext = ".webp"
	default:
		return nil, fmt.Errorf("unsupported content type %q", contentType)
	}

	object := path.Join("profile-pictures", uid, uuid.NewString()+ext)
	uploadURL, err := s.storage.SignedUploadURL(object, contentType, 15*time.Minute)
	if err != nil {
		return nil, err
	}
	publicURL := s.storage.PublicURL(object)
	if err := s.users.UpdateProfile(ctx, uid, map[string]interface{}{
		"profile_picture_url": publicURL,
	}); err != nil {
		return nil, err
	}
	return &ProfilePictureUpload{UploadURL: uploadURL, PublicURL: publicURL}, nil
}
