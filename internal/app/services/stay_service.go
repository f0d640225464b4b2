package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/minsu/dormisphere/internal/app/models"
	"github.com/minsu/dormisphere/internal/app/repositories"
	"github.com/minsu/dormisphere/internal/pkg/apperrors"
)

const dateLayout = "2006-01-02"

// stayRepo is the stay status persistence dependency
type stayRepo interface {
	UpsertStay(ctx context.Context, stay *models.StayStatus) error
	GetStay(ctx context.Context, userID int64, date string) (*models.StayStatus, error)
	ListStaysByDate(ctx context.Context, date string, limit int) ([]*models.StayStatus, error)
}

// StayService defines the interface for stay status operations
type StayService interface {
	SubmitStay(ctx context.Context, userID int64, date string, status models.StayStatusValue) (*models.StayStatus, error)
	GetStay(ctx context.Context, caller Caller, targetUserID *int64, date string) (*models.StayStatus, error)
	ListStaysByDate(ctx context.Context, date string, limit int) ([]*models.StayStatus, error)
}

// stayServiceImpl implements the StayService interface
type stayServiceImpl struct {
	stayRepo stayRepo
}

// NewStayService creates a new stay service instance
func NewStayService(stayRepo stayRepo) StayService {
	return &stayServiceImpl{stayRepo: stayRepo}
}

func validateDate(date string) error {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return apperrors.NewBadRequestError("date must be formatted as YYYY-MM-DD")
	}
	return nil
}

// SubmitStay records the caller's OUT/STAY declaration for a date.
// Upsert semantics make repeated submissions idempotent.
func (s *stayServiceImpl) SubmitStay(ctx context.Context, userID int64, date string, status models.StayStatusValue) (*models.StayStatus, error) {
	if err := validateDate(date); err != nil {
		return nil, err
	}

	stay := &models.StayStatus{
		UserID:   userID,
		StayDate: date,
		Status:   status,
	}

	if err := s.stayRepo.UpsertStay(ctx, stay); err != nil {
		return nil, fmt.Errorf("error submitting stay status: %w", err)
	}

	return stay, nil
}

// GetStay retrieves a stay row. Non-staff callers may only read their
// own; staff may pass a target user.
func (s *stayServiceImpl) GetStay(ctx context.Context, caller Caller, targetUserID *int64, date string) (*models.StayStatus, error) {
	if err := validateDate(date); err != nil {
		return nil, err
	}

	userID := caller.UserID
	if targetUserID != nil {
		if !caller.Staff && *targetUserID != caller.UserID {
			return nil, apperrors.NewForbiddenError("cannot read another user's stay status")
		}
		userID = *targetUserID
	}

	stay, err := s.stayRepo.GetStay(ctx, userID, date)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("no stay status for that date")
		}
		return nil, fmt.Errorf("error retrieving stay status: %w", err)
	}

	return stay, nil
}

// ListStaysByDate lists all stay rows for a date, for staff review
func (s *stayServiceImpl) ListStaysByDate(ctx context.Context, date string, limit int) ([]*models.StayStatus, error) {
	if err := validateDate(date); err != nil {
		return nil, err
	}

	stays, err := s.stayRepo.ListStaysByDate(ctx, date, limit)
	if err != nil {
		return nil, fmt.Errorf("error retrieving stay statuses: %w", err)
	}
	return stays, nil
}
