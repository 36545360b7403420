package repository

import (
	"context"

	"github.com/archonitDev/reformly-server/internal/model"
	"gorm.io/gorm"
)

type UserRepository interface {
	FindByUID(ctx context.Context, uid string) (*model.User, error)
	FindByUIDs(ctx context.Context, uids []string) ([]model.User, error)
	// EnsureExists creates the user row on first sight of an
	// authenticated UID; existing rows are left untouched.
	EnsureExists(ctx context.Context, uid, email, name, lastName string) error
	UpdateProfile(ctx context.Context, uid string, updates map[string]interface{}) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) FindByUID(ctx context.Context, uid string) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).Where("uid = ?", uid).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) FindByUIDs(ctx context.Context, uids []string) ([]model.User, error) {
	if len(uids) == 0 {
		return nil, nil
	}
	var users []model.User
	if err := r.db.WithContext(ctx).Where("uid IN ?", uids).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) EnsureExists(ctx context.Context, uid, email, name, lastName string) error {
	var u model.User
	return r.db.WithContext(ctx).
		Where("uid = ?", uid).
		Attrs(model.User{
			UID:      uid,
			Email:    email,
			Name:     name,
			LastName: lastName,
		}).
		FirstOrCreate(&u).Error
}

func (r *userRepository) UpdateProfile(ctx context.Context, uid string, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	res := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("uid = ?", uid).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
