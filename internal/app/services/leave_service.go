package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/minsu/dormisphere/internal/app/models"
	"github.com/minsu/dormisphere/internal/app/repositories"
	"github.com/minsu/dormisphere/internal/pkg/apperrors"
)

// leaveRepo is the leave request persistence dependency
type leaveRepo interface {
	CreateLeave(ctx context.Context, leave *models.LeaveRequest) (int64, error)
	GetLeaveByID(ctx context.Context, id int64) (*models.LeaveRequest, error)
	ListLeaves(ctx context.Context, userID *int64, status string, limit int) ([]*models.LeaveRequest, error)
	DecideLeave(ctx context.Context, id int64, status models.LeaveStatus, decidedBy int64) error
	DeleteLeave(ctx context.Context, id int64) error
}

// LeaveService defines the interface for leave request operations
type LeaveService interface {
	CreateLeave(ctx context.Context, userID int64, date, reason string) (*models.LeaveRequest, error)
	ListLeaves(ctx context.Context, caller Caller, status string, limit int) ([]*models.LeaveRequest, error)
	WithdrawLeave(ctx context.Context, caller Caller, id int64) error
	DecideLeave(ctx context.Context, staffID, id int64, status models.LeaveStatus) error
}

// leaveServiceImpl implements the LeaveService interface
type leaveServiceImpl struct {
	leaveRepo leaveRepo
}

// NewLeaveService creates a new leave service instance
func NewLeaveService(leaveRepo leaveRepo) LeaveService {
	return &leaveServiceImpl{leaveRepo: leaveRepo}
}

// CreateLeave files a pending leave request
func (s *leaveServiceImpl) CreateLeave(ctx context.Context, userID int64, date, reason string) (*models.LeaveRequest, error) {
	if err := validateDate(date); err != nil {
		return nil, err
	}

	leave := &models.LeaveRequest{
		UserID:    userID,
		LeaveDate: date,
		Reason:    reason,
		Status:    models.LeavePending,
	}

	id, err := s.leaveRepo.CreateLeave(ctx, leave)
	if err != nil {
		return nil, fmt.Errorf("error creating leave request: %w", err)
	}
	leave.ID = id

	return leave, nil
}

// ListLeaves lists leave requests. Non-staff callers are narrowed to
// their own rows.
func (s *leaveServiceImpl) ListLeaves(ctx context.Context, caller Caller, status string, limit int) ([]*models.LeaveRequest, error) {
	var userID *int64
	if !caller.Staff {
		userID = &caller.UserID
	}

	leaves, err := s.leaveRepo.ListLeaves(ctx, userID, status, limit)
	if err != nil {
		return nil, fmt.Errorf("error retrieving leave requests: %w", err)
	}
	return leaves, nil
}

// WithdrawLeave deletes the caller's own pending leave request
func (s *leaveServiceImpl) WithdrawLeave(ctx context.Context, caller Caller, id int64) error {
	leave, err := s.leaveRepo.GetLeaveByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.NewNotFoundError("leave request not found")
		}
		return fmt.Errorf("error retrieving leave request: %w", err)
	}

	if leave.UserID != caller.UserID {
		return apperrors.NewForbiddenError("only the requester can withdraw this leave request")
	}

	if err := s.leaveRepo.DeleteLeave(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotPending) {
			return apperrors.ErrLeaveAlreadyDecided
		}
		return fmt.Errorf("error withdrawing leave request: %w", err)
	}
	return nil
}

// DecideLeave transitions a pending request to approved or rejected.
// Decided requests never transition again.
func (s *leaveServiceImpl) DecideLeave(ctx context.Context, staffID, id int64, status models.LeaveStatus) error {
	if status != models.LeaveApproved && status != models.LeaveRejected {
		return apperrors.NewBadRequestError("status must be approved or rejected")
	}

	if _, err := s.leaveRepo.GetLeaveByID(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.NewNotFoundError("leave request not found")
		}
		return fmt.Errorf("error retrieving leave request: %w", err)
	}

	if err := s.leaveRepo.DecideLeave(ctx, id, status, staffID); err != nil {
		if errors.Is(err, repositories.ErrNotPending) {
			return apperrors.ErrLeaveAlreadyDecided
		}
		return fmt.Errorf("error deciding leave request: %w", err)
	}
	return nil
}
