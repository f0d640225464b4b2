package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/minsu/dormisphere/internal/app/models"
	"github.com/minsu/dormisphere/internal/app/repositories"
	"github.com/minsu/dormisphere/internal/pkg/apperrors"
)

type userRepo interface {
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	ListStudents(ctx context.Context, search string, limit int) ([]*models.User, error)
}

// UserService defines the interface for user profile operations
type UserService interface {
	GetProfile(ctx context.Context, userID int64) (*models.User, error)
	ListStudents(ctx context.Context, search string, limit int) ([]*models.User, error)
}

// userServiceImpl implements the UserService interface
type userServiceImpl struct {
	userRepo userRepo
}

// NewUserService creates a new user service instance
func NewUserService(userRepo userRepo) UserService {
	return &userServiceImpl{userRepo: userRepo}
}

// GetProfile returns the profile of the given user
func (s *userServiceImpl) GetProfile(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}
	return user, nil
}

// ListStudents lists student accounts, optionally filtered by a name or
// student-number search term.
func (s *userServiceImpl) ListStudents(ctx context.Context, search string, limit int) ([]*models.User, error) {
	students, err := s.userRepo.ListStudents(ctx, search, limit)
	if err != nil {
		return nil, fmt.Errorf("error retrieving students: %w", err)
	}
	return students, nil
}
