package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/minsu/dormisphere/internal/app/models"
	"github.com/minsu/dormisphere/internal/pkg/apperrors"
	"github.com/minsu/dormisphere/internal/pkg/qr"
	"github.com/minsu/dormisphere/internal/pkg/schedule"
)

// checkInRepo is the room check-in persistence dependency
type checkInRepo interface {
	InsertCheckIn(ctx context.Context, checkIn *models.RoomCheckIn) (int64, error)
	ListCheckIns(ctx context.Context, date string, userID *int64, limit int) ([]*models.RoomCheckIn, error)
}

// CheckInService defines the interface for room check-in operations
type CheckInService interface {
	GenerateCode(ctx context.Context) (string, error)
	Scan(ctx context.Context, userID int64, code string) (*models.RoomCheckIn, error)
	ListCheckIns(ctx context.Context, caller Caller, targetUserID *int64, date string, limit int) ([]*models.RoomCheckIn, error)
}

// checkInServiceImpl implements the CheckInService interface
type checkInServiceImpl struct {
	checkInRepo checkInRepo
	codec       *qr.Codec
	now         func() time.Time
}

// NewCheckInService creates a new check-in service instance
func NewCheckInService(checkInRepo checkInRepo, codec *qr.Codec) CheckInService {
	return &checkInServiceImpl{
		checkInRepo: checkInRepo,
		codec:       codec,
		now:         time.Now,
	}
}

// GenerateCode encrypts a check-in token bound to today
func (s *checkInServiceImpl) GenerateCode(ctx context.Context) (string, error) {
	code, err := s.codec.Generate(s.now())
	if err != nil {
		return "", fmt.Errorf("error generating check-in code: %w", err)
	}
	return code, nil
}

// Scan validates a scanned code and appends the check-in row. A code from
// another day is rejected before anything is written.
func (s *checkInServiceImpl) Scan(ctx context.Context, userID int64, code string) (*models.RoomCheckIn, error) {
	payload, err := s.codec.Decrypt(code)
	if err != nil {
		if errors.Is(err, qr.ErrMalformedCode) {
			return nil, apperrors.ErrCheckInCodeMalformed
		}
		return nil, fmt.Errorf("error decoding check-in code: %w", err)
	}

	now := s.now()
	if err := s.codec.Validate(payload, now); err != nil {
		if errors.Is(err, qr.ErrExpiredCode) {
			return nil, apperrors.ErrCheckInCodeExpired
		}
		return nil, apperrors.ErrCheckInCodeMalformed
	}

	checkIn := &models.RoomCheckIn{
		UserID:      userID,
		CheckInDate: now.Format(dateLayout),
		CheckInAt:   now,
		Category:    string(schedule.Classify(now)),
	}

	id, err := s.checkInRepo.InsertCheckIn(ctx, checkIn)
	if err != nil {
		return nil, fmt.Errorf("error recording check-in: %w", err)
	}
	checkIn.ID = id

	return checkIn, nil
}

// ListCheckIns lists check-ins for a date. Non-staff callers are narrowed
// to their own rows.
func (s *checkInServiceImpl) ListCheckIns(ctx context.Context, caller Caller, targetUserID *int64, date string, limit int) ([]*models.RoomCheckIn, error) {
	if err := validateDate(date); err != nil {
		return nil, err
	}

	userID := targetUserID
	if !caller.Staff {
		if targetUserID != nil && *targetUserID != caller.UserID {
			return nil, apperrors.NewForbiddenError("cannot read another user's check-ins")
		}
		userID = &caller.UserID
	}

	checkIns, err := s.checkInRepo.ListCheckIns(ctx, date, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("error retrieving check-ins: %w", err)
	}
	return checkIns, nil
}
