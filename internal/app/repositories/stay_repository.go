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

// StayRepository handles stay status database operations
type StayRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewStayRepository creates a new StayRepository
func NewStayRepository(db *pgxpool.Pool) *StayRepository {
	return &StayRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var stayColumns = []string{"user_id", "stay_date", "status", "updated_at"}

func scanStay(row pgx.Row) (*models.StayStatus, error) {
	stay := &models.StayStatus{}
	var stayDate pgtype.Date
	err := row.Scan(&stay.UserID, &stayDate, &stay.Status, &stay.UpdatedAt)
	if err != nil {
		return nil, err
	}
	stay.StayDate = formatDate(stayDate)
	return stay, nil
}

// UpsertStay inserts the (user, date) row or updates its status when the
// row already exists. Repeated identical submissions never duplicate.
func (r *StayRepository) UpsertStay(ctx context.Context, stay *models.StayStatus) error {
	sql, args, err := r.sb.Insert("stay_statuses").
		Columns("user_id", "stay_date", "status").
		Values(stay.UserID, stay.StayDate, stay.Status).
		Suffix("ON CONFLICT (user_id, stay_date) DO UPDATE SET status = EXCLUDED.status, updated_at = now()").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building upsert stay SQL")
		return fmt.Errorf("failed to build upsert stay query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Int64("userID", stay.UserID).Msg("Error executing upsert stay query")
		return fmt.Errorf("error upserting stay status: %w", err)
	}

	return nil
}

// GetStay retrieves one user's stay status for a date
func (r *StayRepository) GetStay(ctx context.Context, userID int64, date string) (*models.StayStatus, error) {
	sql, args, err := r.sb.Select(stayColumns...).
		From("stay_statuses").
		Where(squirrel.Eq{"user_id": userID, "stay_date": date}).
		Limit(1).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get stay SQL")
		return nil, fmt.Errorf("failed to build get stay query: %w", err)
	}

	stay, err := scanStay(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Int64("userID", userID).Msg("Error scanning stay row")
		return nil, fmt.Errorf("error getting stay status: %w", err)
	}

	return stay, nil
}

// ListStaysByDate retrieves all stay rows for a date, for staff review
func (r *StayRepository) ListStaysByDate(ctx context.Context, date string, limit int) ([]*models.StayStatus, error) {
	sql, args, err := r.sb.Select(stayColumns...).
		From("stay_statuses").
		Where(squirrel.Eq{"stay_date": date}).
		OrderBy("user_id ASC").
		Limit(uint64(limit)).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building list stays SQL")
		return nil, fmt.Errorf("failed to build list stays query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list stays query")
		return nil, fmt.Errorf("error querying stay statuses: %w", err)
	}
	defer rows.Close()

	stays := []*models.StayStatus{}
	for rows.Next() {
		stay, err := scanStay(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning stay row")
			return nil, fmt.Errorf("error scanning stay row: %w", err)
		}
		stays = append(stays, stay)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating stay rows")
		return nil, fmt.Errorf("error iterating stay rows: %w", err)
	}

	return stays, nil
}
