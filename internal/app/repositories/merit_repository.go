package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/minsu/dormisphere/internal/app/models"
	"github.com/minsu/dormisphere/internal/pkg/logger"
)

// MeritRepository handles merit log database operations
type MeritRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewMeritRepository creates a new MeritRepository
func NewMeritRepository(db *pgxpool.Pool) *MeritRepository {
	return &MeritRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var meritColumns = []string{
	"id", "user_id", "reason", "score", "category", "issued_by", "created_at",
}

func scanMerit(row pgx.Row) (*models.MeritLog, error) {
	merit := &models.MeritLog{}
	err := row.Scan(
		&merit.ID, &merit.UserID, &merit.Reason, &merit.Score,
		&merit.Category, &merit.IssuedBy, &merit.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return merit, nil
}

// InsertMeritTx appends a merit log row inside the caller's transaction.
// The award flow pairs this with the profile total increment so both
// writes commit or neither does.
func (r *MeritRepository) InsertMeritTx(ctx context.Context, tx pgx.Tx, merit *models.MeritLog) (int64, error) {
	sql, args, err := r.sb.Insert("merit_logs").
		Columns("user_id", "reason", "score", "category", "issued_by").
		Values(merit.UserID, merit.Reason, merit.Score, merit.Category, merit.IssuedBy).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building insert merit SQL")
		return 0, fmt.Errorf("failed to build insert merit query: %w", err)
	}

	var id int64
	if err := tx.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Int64("userID", merit.UserID).Msg("Error executing insert merit query")
		return 0, fmt.Errorf("error inserting merit log: %w", err)
	}

	return id, nil
}

// ListMerits retrieves one user's merit logs newest first
func (r *MeritRepository) ListMerits(ctx context.Context, userID int64, limit int) ([]*models.MeritLog, error) {
	sql, args, err := r.sb.Select(meritColumns...).
		From("merit_logs").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building list merits SQL")
		return nil, fmt.Errorf("failed to build list merits query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list merits query")
		return nil, fmt.Errorf("error querying merit logs: %w", err)
	}
	defer rows.Close()

	merits := []*models.MeritLog{}
	for rows.Next() {
		merit, err := scanMerit(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning merit row")
			return nil, fmt.Errorf("error scanning merit row: %w", err)
		}
		merits = append(merits, merit)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating merit rows")
		return nil, fmt.Errorf("error iterating merit rows: %w", err)
	}

	return merits, nil
}
