package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/minsu/dormisphere/internal/app/models"
	"github.com/minsu/dormisphere/internal/pkg/logger"
)

// CheckInRepository handles room check-in database operations
type CheckInRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCheckInRepository creates a new CheckInRepository
func NewCheckInRepository(db *pgxpool.Pool) *CheckInRepository {
	return &CheckInRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var checkInColumns = []string{
	"id", "user_id", "checkin_date", "checkin_at", "category", "created_at",
}

func scanCheckIn(row pgx.Row) (*models.RoomCheckIn, error) {
	checkIn := &models.RoomCheckIn{}
	var checkInDate pgtype.Date
	err := row.Scan(
		&checkIn.ID, &checkIn.UserID, &checkInDate,
		&checkIn.CheckInAt, &checkIn.Category, &checkIn.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	checkIn.CheckInDate = formatDate(checkInDate)
	return checkIn, nil
}

// InsertCheckIn appends a room check-in row and returns its ID
func (r *CheckInRepository) InsertCheckIn(ctx context.Context, checkIn *models.RoomCheckIn) (int64, error) {
	sql, args, err := r.sb.Insert("room_checkins").
		Columns("user_id", "checkin_date", "checkin_at", "category").
		Values(checkIn.UserID, checkIn.CheckInDate, checkIn.CheckInAt, checkIn.Category).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building insert check-in SQL")
		return 0, fmt.Errorf("failed to build insert check-in query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Int64("userID", checkIn.UserID).Msg("Error executing insert check-in query")
		return 0, fmt.Errorf("error inserting check-in: %w", err)
	}

	return id, nil
}

// ListCheckIns retrieves check-ins for a date, oldest first. A non-nil
// userID narrows to one student's rows.
func (r *CheckInRepository) ListCheckIns(ctx context.Context, date string, userID *int64, limit int) ([]*models.RoomCheckIn, error) {
	builder := r.sb.Select(checkInColumns...).
		From("room_checkins").
		Where(squirrel.Eq{"checkin_date": date}).
		OrderBy("checkin_at ASC").
		Limit(uint64(limit))

	if userID != nil {
		builder = builder.Where(squirrel.Eq{"user_id": *userID})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list check-ins SQL")
		return nil, fmt.Errorf("failed to build list check-ins query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list check-ins query")
		return nil, fmt.Errorf("error querying check-ins: %w", err)
	}
	defer rows.Close()

	checkIns := []*models.RoomCheckIn{}
	for rows.Next() {
		checkIn, err := scanCheckIn(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning check-in row")
			return nil, fmt.Errorf("error scanning check-in row: %w", err)
		}
		checkIns = append(checkIns, checkIn)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating check-in rows")
		return nil, fmt.Errorf("error iterating check-in rows: %w", err)
	}

	return checkIns, nil
}
