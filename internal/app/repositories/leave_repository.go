package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/minsu/dormisphere/internal/app/models"
	"github.com/minsu/dormisphere/internal/pkg/logger"
)

// ErrNotPending is returned when a decision or withdrawal targets a leave
// request that is no longer pending.
var ErrNotPending = errors.New("leave request is not pending")

// LeaveRepository handles leave request database operations
type LeaveRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewLeaveRepository creates a new LeaveRepository
func NewLeaveRepository(db *pgxpool.Pool) *LeaveRepository {
	return &LeaveRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var leaveColumns = []string{
	"id", "user_id", "leave_date", "reason", "status", "decided_at",
	"decided_by", "created_at",
}

func scanLeave(row pgx.Row) (*models.LeaveRequest, error) {
	leave := &models.LeaveRequest{}
	var leaveDate pgtype.Date
	err := row.Scan(
		&leave.ID, &leave.UserID, &leaveDate, &leave.Reason,
		&leave.Status, &leave.DecidedAt, &leave.DecidedBy, &leave.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	leave.LeaveDate = formatDate(leaveDate)
	return leave, nil
}

// CreateLeave inserts a pending leave request and returns its ID
func (r *LeaveRepository) CreateLeave(ctx context.Context, leave *models.LeaveRequest) (int64, error) {
	sql, args, err := r.sb.Insert("leave_requests").
		Columns("user_id", "leave_date", "reason", "status").
		Values(leave.UserID, leave.LeaveDate, leave.Reason, models.LeavePending).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building create leave SQL")
		return 0, fmt.Errorf("failed to build create leave query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Msg("Error executing create leave query")
		return 0, fmt.Errorf("error creating leave request: %w", err)
	}

	return id, nil
}

// GetLeaveByID retrieves a leave request by ID
func (r *LeaveRepository) GetLeaveByID(ctx context.Context, id int64) (*models.LeaveRequest, error) {
	sql, args, err := r.sb.Select(leaveColumns...).
		From("leave_requests").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get leave SQL")
		return nil, fmt.Errorf("failed to build get leave query: %w", err)
	}

	leave, err := scanLeave(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Int64("leaveID", id).Msg("Error scanning leave row")
		return nil, fmt.Errorf("error getting leave request by ID: %w", err)
	}

	return leave, nil
}

// ListLeaves retrieves leave requests newest first. A non-nil userID
// narrows to one student's rows; a non-empty status filters by state.
func (r *LeaveRepository) ListLeaves(ctx context.Context, userID *int64, status string, limit int) ([]*models.LeaveRequest, error) {
	builder := r.sb.Select(leaveColumns...).
		From("leave_requests").
		OrderBy("created_at DESC").
		Limit(uint64(limit))

	if userID != nil {
		builder = builder.Where(squirrel.Eq{"user_id": *userID})
	}
	if status != "" {
		builder = builder.Where(squirrel.Eq{"status": status})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list leaves SQL")
		return nil, fmt.Errorf("failed to build list leaves query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list leaves query")
		return nil, fmt.Errorf("error querying leave requests: %w", err)
	}
	defer rows.Close()

	leaves := []*models.LeaveRequest{}
	for rows.Next() {
		leave, err := scanLeave(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning leave row")
			return nil, fmt.Errorf("error scanning leave row: %w", err)
		}
		leaves = append(leaves, leave)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating leave rows")
		return nil, fmt.Errorf("error iterating leave rows: %w", err)
	}

	return leaves, nil
}

// DecideLeave transitions a pending request to approved or rejected.
// The status guard in the WHERE clause makes the transition one-shot:
// a request decided by a concurrent call reports ErrNotPending.
func (r *LeaveRepository) DecideLeave(ctx context.Context, id int64, status models.LeaveStatus, decidedBy int64) error {
	sql, args, err := r.sb.Update("leave_requests").
		SetMap(map[string]interface{}{
			"status":     status,
			"decided_at": squirrel.Expr("now()"),
			"decided_by": decidedBy,
		}).
		Where(squirrel.Eq{"id": id, "status": models.LeavePending}).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building decide leave SQL")
		return fmt.Errorf("failed to build decide leave query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("leaveID", id).Msg("Error executing decide leave query")
		return fmt.Errorf("error deciding leave request: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrNotPending
	}

	return nil
}

// DeleteLeave deletes a pending leave request. The status guard keeps
// decided requests on record.
func (r *LeaveRepository) DeleteLeave(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("leave_requests").
		Where(squirrel.Eq{"id": id, "status": models.LeavePending}).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building delete leave SQL")
		return fmt.Errorf("failed to build delete leave query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("leaveID", id).Msg("Error executing delete leave query")
		return fmt.Errorf("error deleting leave request: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrNotPending
	}

	return nil
}
