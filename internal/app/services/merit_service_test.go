package services

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"

	"github.com/minsu/dormisphere/internal/app/models"
	"github.com/minsu/dormisphere/internal/app/repositories"
	"github.com/minsu/dormisphere/internal/db"
	"github.com/minsu/dormisphere/internal/pkg/apperrors"
)

// passthroughTx runs the transaction body directly; the nil tx is fine
// because the mocks below ignore it.
type passthroughTx struct {
	calls int
}

func (p *passthroughTx) WithTransaction(ctx context.Context, fn db.TransactionFn) error {
	p.calls++
	return fn(ctx, nil)
}

type mockMeritRepo struct {
	inserted []*models.MeritLog
}

func (m *mockMeritRepo) InsertMeritTx(ctx context.Context, tx pgx.Tx, merit *models.MeritLog) (int64, error) {
	stored := *merit
	m.inserted = append(m.inserted, &stored)
	return int64(len(m.inserted)), nil
}

func (m *mockMeritRepo) ListMerits(ctx context.Context, userID int64, limit int) ([]*models.MeritLog, error) {
	var out []*models.MeritLog
	for _, merit := range m.inserted {
		if merit.UserID == userID {
			out = append(out, merit)
		}
	}
	return out, nil
}

type mockMeritUserRepo struct {
	users  map[int64]*models.User
	deltas []int
}

func (m *mockMeritUserRepo) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return user, nil
}

func (m *mockMeritUserRepo) ApplyMeritDeltaTx(ctx context.Context, tx pgx.Tx, userID int64, score int) error {
	user, ok := m.users[userID]
	if !ok {
		return repositories.ErrNotFound
	}
	if score >= 0 {
		user.MeritPlus += score
	} else {
		user.MeritMinus += -score
	}
	m.deltas = append(m.deltas, score)
	return nil
}

func newMeritFixture() (*mockMeritRepo, *mockMeritUserRepo, *passthroughTx, MeritService) {
	meritRepo := &mockMeritRepo{}
	userRepo := &mockMeritUserRepo{
		users: map[int64]*models.User{
			1: {ID: 1, RoleType: models.RoleStudent},
			9: {ID: 9, RoleType: models.RoleTeacher},
		},
	}
	tx := &passthroughTx{}
	return meritRepo, userRepo, tx, NewMeritService(meritRepo, userRepo, tx)
}

func TestAwardMeritUpdatesTotalsInTransaction(t *testing.T) {
	meritRepo, userRepo, tx, svc := newMeritFixture()
	ctx := context.Background()

	awarded, err := svc.Award(ctx, 9, &models.MeritLog{UserID: 1, Reason: "cleaning duty", Score: 3, Category: "life"})
	if err != nil {
		t.Fatalf("Award returned error: %v", err)
	}

	if awarded.ID == 0 {
		t.Error("expected assigned id")
	}
	if awarded.IssuedBy != 9 {
		t.Errorf("expected issuer 9, got %d", awarded.IssuedBy)
	}
	if tx.calls != 1 {
		t.Errorf("expected one transaction, got %d", tx.calls)
	}
	if len(meritRepo.inserted) != 1 {
		t.Fatalf("expected one log row, got %d", len(meritRepo.inserted))
	}
	if userRepo.users[1].MeritPlus != 3 {
		t.Errorf("expected merit_plus 3, got %d", userRepo.users[1].MeritPlus)
	}
}

func TestAwardDemeritUsesMinusColumn(t *testing.T) {
	_, userRepo, _, svc := newMeritFixture()

	if _, err := svc.Award(context.Background(), 9, &models.MeritLog{UserID: 1, Reason: "curfew", Score: -2, Category: "discipline"}); err != nil {
		t.Fatalf("Award returned error: %v", err)
	}
	if userRepo.users[1].MeritMinus != 2 {
		t.Errorf("expected merit_minus 2, got %d", userRepo.users[1].MeritMinus)
	}
	if userRepo.users[1].MeritPlus != 0 {
		t.Errorf("expected merit_plus untouched, got %d", userRepo.users[1].MeritPlus)
	}
}

func TestAwardRejectsNonStudent(t *testing.T) {
	meritRepo, _, _, svc := newMeritFixture()

	_, err := svc.Award(context.Background(), 9, &models.MeritLog{UserID: 9, Reason: "x", Score: 1, Category: "life"})
	if !errors.Is(err, apperrors.ErrBadRequest) {
		t.Errorf("expected bad request for teacher target, got %v", err)
	}
	if len(meritRepo.inserted) != 0 {
		t.Error("expected no log row for rejected award")
	}
}

func TestAwardMissingUser(t *testing.T) {
	_, _, _, svc := newMeritFixture()

	if _, err := svc.Award(context.Background(), 9, &models.MeritLog{UserID: 404, Reason: "x", Score: 1, Category: "life"}); !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestListMeritsOwnershipGate(t *testing.T) {
	_, _, _, svc := newMeritFixture()
	ctx := context.Background()

	if _, err := svc.Award(ctx, 9, &models.MeritLog{UserID: 1, Reason: "x", Score: 1, Category: "life"}); err != nil {
		t.Fatalf("Award returned error: %v", err)
	}

	if _, err := svc.ListMerits(ctx, Caller{UserID: 2}, 1, 20); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Errorf("expected forbidden for another user's log, got %v", err)
	}

	own, err := svc.ListMerits(ctx, Caller{UserID: 1}, 1, 20)
	if err != nil {
		t.Fatalf("ListMerits returned error: %v", err)
	}
	if len(own) != 1 {
		t.Errorf("expected one entry, got %d", len(own))
	}

	if _, err := svc.ListMerits(ctx, Caller{UserID: 9, Staff: true}, 1, 20); err != nil {
		t.Errorf("expected staff to read any log, got %v", err)
	}
}

func TestSummaryReturnsTotals(t *testing.T) {
	_, userRepo, _, svc := newMeritFixture()
	userRepo.users[1].MeritPlus = 5
	userRepo.users[1].MeritMinus = 2

	user, err := svc.Summary(context.Background(), Caller{UserID: 1}, 1)
	if err != nil {
		t.Fatalf("Summary returned error: %v", err)
	}
	if user.MeritPlus != 5 || user.MeritMinus != 2 {
		t.Errorf("expected totals 5/2, got %d/%d", user.MeritPlus, user.MeritMinus)
	}

	if _, err := svc.Summary(context.Background(), Caller{UserID: 2}, 1); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Errorf("expected forbidden for another user's summary, got %v", err)
	}
}
