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

// InquiryRepository handles inquiry database operations
type InquiryRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewInquiryRepository creates a new InquiryRepository
func NewInquiryRepository(db *pgxpool.Pool) *InquiryRepository {
	return &InquiryRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var inquiryColumns = []string{
	"id", "title", "content", "author_id", "reply", "replied_at",
	"created_at", "updated_at",
}

func scanInquiry(row pgx.Row) (*models.Inquiry, error) {
	inquiry := &models.Inquiry{}
	err := row.Scan(
		&inquiry.ID, &inquiry.Title, &inquiry.Content, &inquiry.AuthorID,
		&inquiry.Reply, &inquiry.RepliedAt, &inquiry.CreatedAt,
		&inquiry.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return inquiry, nil
}

// CreateInquiry inserts an inquiry and returns its ID
func (r *InquiryRepository) CreateInquiry(ctx context.Context, inquiry *models.Inquiry) (int64, error) {
	sql, args, err := r.sb.Insert("inquiries").
		Columns("title", "content", "author_id").
		Values(inquiry.Title, inquiry.Content, inquiry.AuthorID).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building create inquiry SQL")
		return 0, fmt.Errorf("failed to build create inquiry query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Msg("Error executing create inquiry query")
		return 0, fmt.Errorf("error creating inquiry: %w", err)
	}

	return id, nil
}

// GetInquiryByID retrieves an inquiry by ID
func (r *InquiryRepository) GetInquiryByID(ctx context.Context, id int64) (*models.Inquiry, error) {
	sql, args, err := r.sb.Select(inquiryColumns...).
		From("inquiries").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get inquiry SQL")
		return nil, fmt.Errorf("failed to build get inquiry query: %w", err)
	}

	inquiry, err := scanInquiry(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Int64("inquiryID", id).Msg("Error scanning inquiry row")
		return nil, fmt.Errorf("error getting inquiry by ID: %w", err)
	}

	return inquiry, nil
}

// ListInquiries retrieves inquiries newest first. A non-nil authorID
// narrows the result to that caller's own rows.
func (r *InquiryRepository) ListInquiries(ctx context.Context, authorID *int64, limit int) ([]*models.Inquiry, error) {
	builder := r.sb.Select(inquiryColumns...).
		From("inquiries").
		OrderBy("created_at DESC").
		Limit(uint64(limit))

	if authorID != nil {
		builder = builder.Where(squirrel.Eq{"author_id": *authorID})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list inquiries SQL")
		return nil, fmt.Errorf("failed to build list inquiries query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list inquiries query")
		return nil, fmt.Errorf("error querying inquiries: %w", err)
	}
	defer rows.Close()

	inquiries := []*models.Inquiry{}
	for rows.Next() {
		inquiry, err := scanInquiry(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning inquiry row")
			return nil, fmt.Errorf("error scanning inquiry row: %w", err)
		}
		inquiries = append(inquiries, inquiry)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating inquiry rows")
		return nil, fmt.Errorf("error iterating inquiry rows: %w", err)
	}

	return inquiries, nil
}

// UpdateInquiry updates the title and content of an inquiry
func (r *InquiryRepository) UpdateInquiry(ctx context.Context, inquiry *models.Inquiry) error {
	sql, args, err := r.sb.Update("inquiries").
		SetMap(map[string]interface{}{
			"title":      inquiry.Title,
			"content":    inquiry.Content,
			"updated_at": squirrel.Expr("now()"),
		}).
		Where(squirrel.Eq{"id": inquiry.ID}).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building update inquiry SQL")
		return fmt.Errorf("failed to build update inquiry query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("inquiryID", inquiry.ID).Msg("Error executing update inquiry query")
		return fmt.Errorf("error updating inquiry: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// SetReply writes the staff reply on an inquiry
func (r *InquiryRepository) SetReply(ctx context.Context, id int64, reply string) error {
	sql, args, err := r.sb.Update("inquiries").
		SetMap(map[string]interface{}{
			"reply":      reply,
			"replied_at": squirrel.Expr("now()"),
			"updated_at": squirrel.Expr("now()"),
		}).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building reply inquiry SQL")
		return fmt.Errorf("failed to build reply inquiry query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("inquiryID", id).Msg("Error executing reply inquiry query")
		return fmt.Errorf("error replying to inquiry: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// DeleteInquiry deletes an inquiry by ID
func (r *InquiryRepository) DeleteInquiry(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("inquiries").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building delete inquiry SQL")
		return fmt.Errorf("failed to build delete inquiry query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("inquiryID", id).Msg("Error executing delete inquiry query")
		return fmt.Errorf("error deleting inquiry: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
