package repository

import (
	"context"

	"gorm.io/gorm"

	"worklink/internal/model"
)

// UserRepository defines user and profile persistence operations.
// Reads always preload the profile so role gates see the stored role.
type UserRepository interface {
	CreateWithProfile(ctx context.Context, user *model.User, profile *model.Profile) error
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
	UpdateProfile(ctx context.Context, profile *model.Profile) error
	ListExecutors(ctx context.Context) ([]model.User, error)
	ListProfiles(ctx context.Context) ([]model.Profile, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// CreateWithProfile creates the user and its profile in one transaction so a
// user can never exist without a role.
func (r *userRepository) CreateWithProfile(ctx context.Context, user *model.User, profile *model.Profile) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		profile.UserID = user.ID
		return tx.Create(profile).Error
	})
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Preload("Profile").First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Preload("Profile").
		Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepository) UpdateProfile(ctx context.Context, profile *model.Profile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}

// ListExecutors lists users whose profile role is executor.
func (r *userRepository) ListExecutors(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).Preload("Profile").
		Joins("JOIN profiles ON profiles.user_id = users.id").
		Where("profiles.role = ?", model.RoleExecutor).
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// ListProfiles lists all profiles with their users, for reporting.
func (r *userRepository) ListProfiles(ctx context.Context) ([]model.Profile, error) {
	var profiles []model.Profile
	if err := r.db.WithContext(ctx).Preload("User").
		Order("id").Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}
