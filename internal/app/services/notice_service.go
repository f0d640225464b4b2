package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/minsu/dormisphere/internal/app/models"
	"github.com/minsu/dormisphere/internal/app/repositories"
	"github.com/minsu/dormisphere/internal/pkg/apperrors"
)

// noticeRepo is the notice persistence dependency
type noticeRepo interface {
	CreateNotice(ctx context.Context, notice *models.Notice) (int64, error)
	GetNoticeByID(ctx context.Context, id int64) (*models.Notice, error)
	ListNotices(ctx context.Context, target string, limit int) ([]*models.Notice, error)
	UpdateNotice(ctx context.Context, notice *models.Notice) error
	DeleteNotice(ctx context.Context, id int64) error
}

// NoticeService defines the interface for notice operations
type NoticeService interface {
	CreateNotice(ctx context.Context, notice *models.Notice) (int64, error)
	GetNoticeByID(ctx context.Context, id int64) (*models.Notice, error)
	ListNotices(ctx context.Context, target string, limit int) ([]*models.Notice, error)
	UpdateNotice(ctx context.Context, notice *models.Notice) error
	DeleteNotice(ctx context.Context, id int64) error
}

// noticeServiceImpl implements the NoticeService interface
type noticeServiceImpl struct {
	noticeRepo noticeRepo
}

// NewNoticeService creates a new notice service instance
func NewNoticeService(noticeRepo noticeRepo) NoticeService {
	return &noticeServiceImpl{noticeRepo: noticeRepo}
}

// CreateNotice creates a staff notice
func (s *noticeServiceImpl) CreateNotice(ctx context.Context, notice *models.Notice) (int64, error) {
	id, err := s.noticeRepo.CreateNotice(ctx, notice)
	if err != nil {
		return 0, fmt.Errorf("error creating notice: %w", err)
	}
	return id, nil
}

// GetNoticeByID retrieves a notice by ID
func (s *noticeServiceImpl) GetNoticeByID(ctx context.Context, id int64) (*models.Notice, error) {
	notice, err := s.noticeRepo.GetNoticeByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("notice not found")
		}
		return nil, fmt.Errorf("error retrieving notice: %w", err)
	}
	return notice, nil
}

// ListNotices lists notices, optionally filtered by audience tag
func (s *noticeServiceImpl) ListNotices(ctx context.Context, target string, limit int) ([]*models.Notice, error) {
	notices, err := s.noticeRepo.ListNotices(ctx, target, limit)
	if err != nil {
		return nil, fmt.Errorf("error retrieving notices: %w", err)
	}
	return notices, nil
}

// UpdateNotice updates an existing notice
func (s *noticeServiceImpl) UpdateNotice(ctx context.Context, notice *models.Notice) error {
	err := s.noticeRepo.UpdateNotice(ctx, notice)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.NewNotFoundError("notice not found")
		}
		return fmt.Errorf("error updating notice: %w", err)
	}
	return nil
}

// DeleteNotice deletes a notice by ID
func (s *noticeServiceImpl) DeleteNotice(ctx context.Context, id int64) error {
	err := s.noticeRepo.DeleteNotice(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.NewNotFoundError("notice not found")
		}
		return fmt.Errorf("error deleting notice: %w", err)
	}
	return nil
}
