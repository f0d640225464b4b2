package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/minsu/dormisphere/internal/app/models"
	"github.com/minsu/dormisphere/internal/app/repositories"
	"github.com/minsu/dormisphere/internal/db"
	"github.com/minsu/dormisphere/internal/pkg/apperrors"
)

// txRunner runs a function inside a database transaction
type txRunner interface {
	WithTransaction(ctx context.Context, fn db.TransactionFn) error
}

// meritRepo is the merit log persistence dependency
type meritRepo interface {
	InsertMeritTx(ctx context.Context, tx pgx.Tx, merit *models.MeritLog) (int64, error)
	ListMerits(ctx context.Context, userID int64, limit int) ([]*models.MeritLog, error)
}

// meritUserRepo exposes the user-side operations merit awarding needs
type meritUserRepo interface {
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	ApplyMeritDeltaTx(ctx context.Context, tx pgx.Tx, userID int64, score int) error
}

// MeritService defines the interface for merit and demerit operations
type MeritService interface {
	Award(ctx context.Context, issuerID int64, req *models.MeritLog) (*models.MeritLog, error)
	ListMerits(ctx context.Context, caller Caller, targetUserID int64, limit int) ([]*models.MeritLog, error)
	Summary(ctx context.Context, caller Caller, targetUserID int64) (*models.User, error)
}

// meritServiceImpl implements the MeritService interface
type meritServiceImpl struct {
	meritRepo meritRepo
	userRepo  meritUserRepo
	tx        txRunner
}

// NewMeritService creates a new merit service instance
func NewMeritService(meritRepo meritRepo, userRepo meritUserRepo, tx txRunner) MeritService {
	return &meritServiceImpl{
		meritRepo: meritRepo,
		userRepo:  userRepo,
		tx:        tx,
	}
}

// Award records a merit log entry and moves the student's aggregate counter
// in the same transaction, so the log and the total never drift apart.
func (s *meritServiceImpl) Award(ctx context.Context, issuerID int64, merit *models.MeritLog) (*models.MeritLog, error) {
	target, err := s.userRepo.GetUserByID(ctx, merit.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("user not found")
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}
	if target.IsTeacher() {
		return nil, apperrors.NewBadRequestError("points can only be awarded to students")
	}

	merit.IssuedBy = issuerID

	err = s.tx.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		id, err := s.meritRepo.InsertMeritTx(ctx, tx, merit)
		if err != nil {
			return fmt.Errorf("error inserting merit log: %w", err)
		}
		merit.ID = id

		if err := s.userRepo.ApplyMeritDeltaTx(ctx, tx, merit.UserID, merit.Score); err != nil {
			return fmt.Errorf("error updating merit totals: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return merit, nil
}

// ListMerits lists a student's merit log. Non-staff callers can only read
// their own entries.
func (s *meritServiceImpl) ListMerits(ctx context.Context, caller Caller, targetUserID int64, limit int) ([]*models.MeritLog, error) {
	if !caller.Staff && targetUserID != caller.UserID {
		return nil, apperrors.NewForbiddenError("cannot read another user's points")
	}

	merits, err := s.meritRepo.ListMerits(ctx, targetUserID, limit)
	if err != nil {
		return nil, fmt.Errorf("error retrieving merit log: %w", err)
	}
	return merits, nil
}

// Summary returns the aggregated plus and minus totals for a student.
func (s *meritServiceImpl) Summary(ctx context.Context, caller Caller, targetUserID int64) (*models.User, error) {
	if !caller.Staff && targetUserID != caller.UserID {
		return nil, apperrors.NewForbiddenError("cannot read another user's points")
	}

	user, err := s.userRepo.GetUserByID(ctx, targetUserID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("user not found")
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}
	return user, nil
}
