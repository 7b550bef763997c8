package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"worklink/internal/cache"
	"worklink/internal/errors"
	"worklink/internal/model"
	"worklink/internal/repository"
)

const profileCacheTTL = 5 * time.Minute

// ProfileInput carries the user-editable identity and profile fields.
// Role and rating are not editable through this path.
type ProfileInput struct {
	FirstName      string
	LastName       string
	Email          string
	Specialization string
	Portfolio      string
}

// ProfileService exposes the caller's own profile.
type ProfileService interface {
	Get(ctx context.Context, userID uint) (*model.User, error)
	Update(ctx context.Context, userID uint, input ProfileInput) (*model.User, error)
}

type profileService struct {
	userRepo repository.UserRepository
	cache    *cache.Client
}

// NewProfileService builds a ProfileService with repository and cache.
func NewProfileService(userRepo repository.UserRepository, cache *cache.Client) ProfileService {
	return &profileService{userRepo: userRepo, cache: cache}
}

func profileCacheKey(userID uint) string {
	return fmt.Sprintf("user:%d", userID)
}

func (s *profileService) Get(ctx context.Context, userID uint) (*model.User, error) {
	if data, _ := s.cache.Get(ctx, profileCacheKey(userID)); data != nil {
		var cached model.User
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, err
	}

	if payload, err := json.Marshal(user); err == nil {
		_ = s.cache.Set(ctx, profileCacheKey(userID), payload, profileCacheTTL)
	}
	return user, nil
}

// Update edits the caller's names, email and profile free-text fields.
func (s *profileService) Update(ctx context.Context, userID uint, input ProfileInput) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, err
	}

	user.FirstName = input.FirstName
	user.LastName = input.LastName
	if input.Email != "" {
		user.Email = input.Email
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	if user.Profile != nil {
		user.Profile.Specialization = input.Specialization
		user.Profile.Portfolio = input.Portfolio
		if err := s.userRepo.UpdateProfile(ctx, user.Profile); err != nil {
			return nil, fmt.Errorf("update profile: %w", err)
		}
	}

	_ = s.cache.Delete(ctx, profileCacheKey(userID))
	return user, nil
}
