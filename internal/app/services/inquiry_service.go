package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/minsu/dormisphere/internal/app/models"
	"github.com/minsu/dormisphere/internal/app/repositories"
	"github.com/minsu/dormisphere/internal/pkg/apperrors"
)

// inquiryRepo is the inquiry persistence dependency
type inquiryRepo interface {
	CreateInquiry(ctx context.Context, inquiry *models.Inquiry) (int64, error)
	GetInquiryByID(ctx context.Context, id int64) (*models.Inquiry, error)
	ListInquiries(ctx context.Context, authorID *int64, limit int) ([]*models.Inquiry, error)
	UpdateInquiry(ctx context.Context, inquiry *models.Inquiry) error
	SetReply(ctx context.Context, id int64, reply string) error
	DeleteInquiry(ctx context.Context, id int64) error
}

// InquiryService defines the interface for inquiry operations
type InquiryService interface {
	CreateInquiry(ctx context.Context, inquiry *models.Inquiry) (int64, error)
	GetInquiryByID(ctx context.Context, caller Caller, id int64) (*models.Inquiry, error)
	ListInquiries(ctx context.Context, caller Caller, limit int) ([]*models.Inquiry, error)
	UpdateInquiry(ctx context.Context, caller Caller, inquiry *models.Inquiry) error
	ReplyInquiry(ctx context.Context, id int64, reply string) error
	DeleteInquiry(ctx context.Context, caller Caller, id int64) error
}

// inquiryServiceImpl implements the InquiryService interface
type inquiryServiceImpl struct {
	inquiryRepo inquiryRepo
}

// NewInquiryService creates a new inquiry service instance
func NewInquiryService(inquiryRepo inquiryRepo) InquiryService {
	return &inquiryServiceImpl{inquiryRepo: inquiryRepo}
}

// CreateInquiry files a new inquiry
func (s *inquiryServiceImpl) CreateInquiry(ctx context.Context, inquiry *models.Inquiry) (int64, error) {
	id, err := s.inquiryRepo.CreateInquiry(ctx, inquiry)
	if err != nil {
		return 0, fmt.Errorf("error creating inquiry: %w", err)
	}
	return id, nil
}

// GetInquiryByID retrieves an inquiry; owner or staff only
func (s *inquiryServiceImpl) GetInquiryByID(ctx context.Context, caller Caller, id int64) (*models.Inquiry, error) {
	inquiry, err := s.inquiryRepo.GetInquiryByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("inquiry not found")
		}
		return nil, fmt.Errorf("error retrieving inquiry: %w", err)
	}

	if inquiry.AuthorID != caller.UserID && !caller.Staff {
		return nil, apperrors.NewForbiddenError("inquiry belongs to another user")
	}

	return inquiry, nil
}

// ListInquiries lists inquiries. Non-staff callers are narrowed to their
// own rows by an equality filter on their id.
func (s *inquiryServiceImpl) ListInquiries(ctx context.Context, caller Caller, limit int) ([]*models.Inquiry, error) {
	var authorID *int64
	if !caller.Staff {
		authorID = &caller.UserID
	}

	inquiries, err := s.inquiryRepo.ListInquiries(ctx, authorID, limit)
	if err != nil {
		return nil, fmt.Errorf("error retrieving inquiries: %w", err)
	}
	return inquiries, nil
}

// UpdateInquiry updates an inquiry; owner only, staff included
func (s *inquiryServiceImpl) UpdateInquiry(ctx context.Context, caller Caller, inquiry *models.Inquiry) error {
	existing, err := s.inquiryRepo.GetInquiryByID(ctx, inquiry.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.NewNotFoundError("inquiry not found")
		}
		return fmt.Errorf("error retrieving inquiry: %w", err)
	}

	if existing.AuthorID != caller.UserID {
		return apperrors.NewForbiddenError("only the author can edit this inquiry")
	}

	if err := s.inquiryRepo.UpdateInquiry(ctx, inquiry); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.NewNotFoundError("inquiry not found")
		}
		return fmt.Errorf("error updating inquiry: %w", err)
	}
	return nil
}

// ReplyInquiry writes the staff reply; the role gate runs at the route
func (s *inquiryServiceImpl) ReplyInquiry(ctx context.Context, id int64, reply string) error {
	if err := s.inquiryRepo.SetReply(ctx, id, reply); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.NewNotFoundError("inquiry not found")
		}
		return fmt.Errorf("error replying to inquiry: %w", err)
	}
	return nil
}

// DeleteInquiry deletes an inquiry; owner only
func (s *inquiryServiceImpl) DeleteInquiry(ctx context.Context, caller Caller, id int64) error {
	existing, err := s.inquiryRepo.GetInquiryByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.NewNotFoundError("inquiry not found")
		}
		return fmt.Errorf("error retrieving inquiry: %w", err)
	}

	if existing.AuthorID != caller.UserID {
		return apperrors.NewForbiddenError("only the author can delete this inquiry")
	}

	if err := s.inquiryRepo.DeleteInquiry(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.NewNotFoundError("inquiry not found")
		}
		return fmt.Errorf("error deleting inquiry: %w", err)
	}
	return nil
}
