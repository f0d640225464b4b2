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

// PostRepository handles board post database operations
type PostRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewPostRepository creates a new PostRepository
func NewPostRepository(db *pgxpool.Pool) *PostRepository {
	return &PostRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var postColumns = []string{"id", "title", "content", "author_id", "visible", "created_at", "updated_at"}

func scanPost(row pgx.Row) (*models.Post, error) {
	post := &models.Post{}
	err := row.Scan(
		&post.ID, &post.Title, &post.Content, &post.AuthorID, &post.Visible,
		&post.CreatedAt, &post.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return post, nil
}

// CreatePost inserts a post and returns its ID
func (r *PostRepository) CreatePost(ctx context.Context, post *models.Post) (int64, error) {
	sql, args, err := r.sb.Insert("posts").
		Columns("title", "content", "author_id", "visible").
		Values(post.Title, post.Content, post.AuthorID, post.Visible).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building create post SQL")
		return 0, fmt.Errorf("failed to build create post query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Msg("Error executing create post query")
		return 0, fmt.Errorf("error creating post: %w", err)
	}

	return id, nil
}

// GetPostByID retrieves a post by ID
func (r *PostRepository) GetPostByID(ctx context.Context, id int64) (*models.Post, error) {
	sql, args, err := r.sb.Select(postColumns...).
		From("posts").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get post SQL")
		return nil, fmt.Errorf("failed to build get post query: %w", err)
	}

	post, err := scanPost(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Int64("postID", id).Msg("Error scanning post row")
		return nil, fmt.Errorf("error getting post by ID: %w", err)
	}

	return post, nil
}

// ListPosts retrieves posts newest first. Non-staff viewers see visible
// posts plus their own hidden ones; staff see everything.
func (r *PostRepository) ListPosts(ctx context.Context, viewerID int64, staff bool, limit int) ([]*models.Post, error) {
	builder := r.sb.Select(postColumns...).
		From("posts").
		OrderBy("created_at DESC").
		Limit(uint64(limit))

	if !staff {
		builder = builder.Where(squirrel.Or{
			squirrel.Eq{"visible": true},
			squirrel.Eq{"author_id": viewerID},
		})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list posts SQL")
		return nil, fmt.Errorf("failed to build list posts query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list posts query")
		return nil, fmt.Errorf("error querying posts: %w", err)
	}
	defer rows.Close()

	posts := []*models.Post{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning post row")
			return nil, fmt.Errorf("error scanning post row: %w", err)
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating post rows")
		return nil, fmt.Errorf("error iterating post rows: %w", err)
	}

	return posts, nil
}

// UpdatePost updates an existing post
func (r *PostRepository) UpdatePost(ctx context.Context, post *models.Post) error {
	sql, args, err := r.sb.Update("posts").
		SetMap(map[string]interface{}{
			"title":      post.Title,
			"content":    post.Content,
			"visible":    post.Visible,
			"updated_at": squirrel.Expr("now()"),
		}).
		Where(squirrel.Eq{"id": post.ID}).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building update post SQL")
		return fmt.Errorf("failed to build update post query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("postID", post.ID).Msg("Error executing update post query")
		return fmt.Errorf("error updating post: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// DeletePost deletes a post by ID
func (r *PostRepository) DeletePost(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("posts").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building delete post SQL")
		return fmt.Errorf("failed to build delete post query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("postID", id).Msg("Error executing delete post query")
		return fmt.Errorf("error deleting post: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
