package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/minsu/dormisphere/internal/app/models"
	"github.com/minsu/dormisphere/internal/pkg/logger"
)

// NoticeRepository handles notice database operations
type NoticeRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewNoticeRepository creates a new NoticeRepository
func NewNoticeRepository(db *pgxpool.Pool) *NoticeRepository {
	return &NoticeRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var noticeColumns = []string{"id", "title", "content", "target", "author_id", "created_at", "updated_at"}

func scanNotice(row pgx.Row) (*models.Notice, error) {
	notice := &models.Notice{}
	err := row.Scan(
		&notice.ID, &notice.Title, &notice.Content, &notice.Target,
		&notice.AuthorID, &notice.CreatedAt, &notice.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return notice, nil
}

// CreateNotice inserts a notice and returns its ID
func (r *NoticeRepository) CreateNotice(ctx context.Context, notice *models.Notice) (int64, error) {
	sql, args, err := r.sb.Insert("notices").
		Columns("title", "content", "target", "author_id").
		Values(notice.Title, notice.Content, notice.Target, notice.AuthorID).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building create notice SQL")
		return 0, fmt.Errorf("failed to build create notice query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Msg("Error executing create notice query")
		return 0, fmt.Errorf("error creating notice: %w", err)
	}

	return id, nil
}

// GetNoticeByID retrieves a notice by ID
func (r *NoticeRepository) GetNoticeByID(ctx context.Context, id int64) (*models.Notice, error) {
	sql, args, err := r.sb.Select(noticeColumns...).
		From("notices").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get notice SQL")
		return nil, fmt.Errorf("failed to build get notice query: %w", err)
	}

	notice, err := scanNotice(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Int64("noticeID", id).Msg("Error scanning notice row")
		return nil, fmt.Errorf("error getting notice by ID: %w", err)
	}

	return notice, nil
}

// ListNotices retrieves notices newest first, optionally filtered by an
// audience tag
func (r *NoticeRepository) ListNotices(ctx context.Context, target string, limit int) ([]*models.Notice, error) {
	builder := r.sb.Select(noticeColumns...).
		From("notices").
		OrderBy("created_at DESC").
		Limit(uint64(limit))

	if target != "" {
		builder = builder.Where(squirrel.Expr("? = ANY(target)", target))
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list notices SQL")
		return nil, fmt.Errorf("failed to build list notices query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list notices query")
		return nil, fmt.Errorf("error querying notices: %w", err)
	}
	defer rows.Close()

	notices := []*models.Notice{}
	for rows.Next() {
		notice, err := scanNotice(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning notice row")
			return nil, fmt.Errorf("error scanning notice row: %w", err)
		}
		notices = append(notices, notice)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating notice rows")
		return nil, fmt.Errorf("error iterating notice rows: %w", err)
	}

	return notices, nil
}

// UpdateNotice updates an existing notice
func (r *NoticeRepository) UpdateNotice(ctx context.Context, notice *models.Notice) error {
	sql, args, err := r.sb.Update("notices").
		SetMap(map[string]interface{}{
			"title":      notice.Title,
			"content":    notice.Content,
			"target":     notice.Target,
			"updated_at": squirrel.Expr("now()"),
		}).
		Where(squirrel.Eq{"id": notice.ID}).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building update notice SQL")
		return fmt.Errorf("failed to build update notice query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("noticeID", notice.ID).Msg("Error executing update notice query")
		return fmt.Errorf("error updating notice: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// DeleteNotice deletes a notice by ID
func (r *NoticeRepository) DeleteNotice(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("notices").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building delete notice SQL")
		return fmt.Errorf("failed to build delete notice query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("noticeID", id).Msg("Error executing delete notice query")
		return fmt.Errorf("error deleting notice: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
