package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/minsu/dormisphere/internal/app/models"
	"github.com/minsu/dormisphere/internal/app/repositories"
	"github.com/minsu/dormisphere/internal/pkg/apperrors"
)

type mockLeaveRepo struct {
	leaves map[int64]*models.LeaveRequest
	nextID int64
}

func (m *mockLeaveRepo) CreateLeave(ctx context.Context, leave *models.LeaveRequest) (int64, error) {
	if m.leaves == nil {
		m.leaves = map[int64]*models.LeaveRequest{}
	}
	m.nextID++
	stored := *leave
	stored.ID = m.nextID
	m.leaves[m.nextID] = &stored
	return m.nextID, nil
}

func (m *mockLeaveRepo) GetLeaveByID(ctx context.Context, id int64) (*models.LeaveRequest, error) {
	leave, ok := m.leaves[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return leave, nil
}

func (m *mockLeaveRepo) ListLeaves(ctx context.Context, userID *int64, status string, limit int) ([]*models.LeaveRequest, error) {
	var out []*models.LeaveRequest
	for _, leave := range m.leaves {
		if userID != nil && leave.UserID != *userID {
			continue
		}
		if status != "" && string(leave.Status) != status {
			continue
		}
		out = append(out, leave)
	}
	return out, nil
}

func (m *mockLeaveRepo) DecideLeave(ctx context.Context, id int64, status models.LeaveStatus, decidedBy int64) error {
	leave, ok := m.leaves[id]
	if !ok || leave.Status != models.LeavePending {
		return repositories.ErrNotPending
	}
	now := time.Now()
	leave.Status = status
	leave.DecidedAt = &now
	leave.DecidedBy = &decidedBy
	return nil
}

func (m *mockLeaveRepo) DeleteLeave(ctx context.Context, id int64) error {
	leave, ok := m.leaves[id]
	if !ok || leave.Status != models.LeavePending {
		return repositories.ErrNotPending
	}
	delete(m.leaves, id)
	return nil
}

func TestCreateLeaveStartsPending(t *testing.T) {
	svc := NewLeaveService(&mockLeaveRepo{})

	leave, err := svc.CreateLeave(context.Background(), 1, "2026-09-12", "family visit")
	if err != nil {
		t.Fatalf("CreateLeave returned error: %v", err)
	}
	if leave.Status != models.LeavePending {
		t.Errorf("expected pending status, got %s", leave.Status)
	}
	if leave.ID == 0 {
		t.Error("expected assigned id")
	}
}

func TestCreateLeaveRejectsBadDate(t *testing.T) {
	svc := NewLeaveService(&mockLeaveRepo{})

	if _, err := svc.CreateLeave(context.Background(), 1, "next friday", "reason"); !errors.Is(err, apperrors.ErrBadRequest) {
		t.Errorf("expected bad request, got %v", err)
	}
}

func TestDecideLeaveOneShot(t *testing.T) {
	repo := &mockLeaveRepo{}
	svc := NewLeaveService(repo)
	ctx := context.Background()

	leave, err := svc.CreateLeave(ctx, 1, "2026-09-12", "family visit")
	if err != nil {
		t.Fatalf("CreateLeave returned error: %v", err)
	}

	if err := svc.DecideLeave(ctx, 99, leave.ID, models.LeaveApproved); err != nil {
		t.Fatalf("DecideLeave returned error: %v", err)
	}

	stored := repo.leaves[leave.ID]
	if stored.Status != models.LeaveApproved {
		t.Errorf("expected approved, got %s", stored.Status)
	}
	if stored.DecidedBy == nil || *stored.DecidedBy != 99 {
		t.Error("expected decided_by to record the staff id")
	}

	err = svc.DecideLeave(ctx, 99, leave.ID, models.LeaveRejected)
	if !errors.Is(err, apperrors.ErrLeaveAlreadyDecided) {
		t.Errorf("expected ErrLeaveAlreadyDecided on second decision, got %v", err)
	}
	if repo.leaves[leave.ID].Status != models.LeaveApproved {
		t.Error("expected first decision to stand")
	}
}

func TestDecideLeaveValidatesStatus(t *testing.T) {
	svc := NewLeaveService(&mockLeaveRepo{})

	if err := svc.DecideLeave(context.Background(), 99, 1, "maybe"); !errors.Is(err, apperrors.ErrBadRequest) {
		t.Errorf("expected bad request for unknown status, got %v", err)
	}
}

func TestDecideLeaveMissing(t *testing.T) {
	svc := NewLeaveService(&mockLeaveRepo{})

	if err := svc.DecideLeave(context.Background(), 99, 7, models.LeaveApproved); !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestWithdrawLeaveOwnerOnly(t *testing.T) {
	repo := &mockLeaveRepo{}
	svc := NewLeaveService(repo)
	ctx := context.Background()

	leave, err := svc.CreateLeave(ctx, 1, "2026-09-12", "family visit")
	if err != nil {
		t.Fatalf("CreateLeave returned error: %v", err)
	}

	if err := svc.WithdrawLeave(ctx, Caller{UserID: 2}, leave.ID); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Errorf("expected forbidden for non-owner withdraw, got %v", err)
	}
	if err := svc.WithdrawLeave(ctx, Caller{UserID: 1}, leave.ID); err != nil {
		t.Errorf("expected owner withdraw to pass, got %v", err)
	}
}

func TestWithdrawLeaveAfterDecision(t *testing.T) {
	repo := &mockLeaveRepo{}
	svc := NewLeaveService(repo)
	ctx := context.Background()

	leave, err := svc.CreateLeave(ctx, 1, "2026-09-12", "family visit")
	if err != nil {
		t.Fatalf("CreateLeave returned error: %v", err)
	}
	if err := svc.DecideLeave(ctx, 99, leave.ID, models.LeaveRejected); err != nil {
		t.Fatalf("DecideLeave returned error: %v", err)
	}

	if err := svc.WithdrawLeave(ctx, Caller{UserID: 1}, leave.ID); !errors.Is(err, apperrors.ErrLeaveAlreadyDecided) {
		t.Errorf("expected ErrLeaveAlreadyDecided, got %v", err)
	}
}

func TestListLeavesNarrowsNonStaff(t *testing.T) {
	repo := &mockLeaveRepo{}
	svc := NewLeaveService(repo)
	ctx := context.Background()

	if _, err := svc.CreateLeave(ctx, 1, "2026-09-12", "a"); err != nil {
		t.Fatalf("CreateLeave returned error: %v", err)
	}
	if _, err := svc.CreateLeave(ctx, 2, "2026-09-12", "b"); err != nil {
		t.Fatalf("CreateLeave returned error: %v", err)
	}

	own, err := svc.ListLeaves(ctx, Caller{UserID: 1}, "", 20)
	if err != nil {
		t.Fatalf("ListLeaves returned error: %v", err)
	}
	if len(own) != 1 || own[0].UserID != 1 {
		t.Errorf("expected only caller's rows, got %d rows", len(own))
	}

	all, err := svc.ListLeaves(ctx, Caller{UserID: 9, Staff: true}, "", 20)
	if err != nil {
		t.Fatalf("ListLeaves returned error: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected staff to see all rows, got %d", len(all))
	}
}
