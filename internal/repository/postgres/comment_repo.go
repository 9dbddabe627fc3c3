package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/notewall/notewall-backend/internal/domain"
)

// commentSelect returns every column scanComment expects. $1 is the viewer id.
const commentSelect = `
	SELECT c.id, c.note_id, c.author_id, COALESCE(s.anonymous, false), c.content, c.background_color,
		c.note_style, c.selected_font, c.tilt, c.created_at,
		(SELECT count(*) FROM likes l WHERE l.target_id = c.id AND l.target_type = 'comment'),
		EXISTS (SELECT 1 FROM likes l WHERE l.target_id = c.id AND l.target_type = 'comment' AND l.user_id = $1)
	FROM comments c
	LEFT JOIN user_settings s ON s.user_id = c.author_id`

// CommentRepository implements domain.CommentRepository using PostgreSQL
type CommentRepository struct {
	pool *pgxpool.Pool
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(pool *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{pool: pool}
}

// Create inserts a comment. A missing parent note yields domain.ErrNoteNotFound.
func (r *CommentRepository) Create(ctx context.Context, comment *domain.Comment) (*domain.Comment, error) {
	noteID, ok := parseID(comment.NoteID)
	if !ok {
		return nil, domain.ErrNoteNotFound
	}
	tilt, err := decimalToPgNumeric(comment.Tilt)
	if err != nil {
		return nil, fmt.Errorf("convert tilt: %w", err)
	}

	id := uuid.New()
	created := *comment
	err = r.pool.QueryRow(ctx, `
		INSERT INTO comments (id, note_id, author_id, content, background_color, note_style, selected_font, tilt)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at`,
		pgtype.UUID{Bytes: id, Valid: true}, noteID, comment.AuthorID, comment.Content,
		comment.BackgroundColor, string(comment.NoteStyle), comment.SelectedFont, tilt,
	).Scan(&created.CreatedAt)
	if err != nil {
		if isPgForeignKeyViolation(err) {
			return nil, domain.ErrNoteNotFound
		}
		return nil, fmt.Errorf("insert comment: %w", err)
	}

	created.ID = id.String()
	return &created, nil
}

// GetByID retrieves a comment with its like counter
func (r *CommentRepository) GetByID(ctx context.Context, id string, viewerID string) (*domain.Comment, error) {
	commentID, ok := parseID(id)
	if !ok {
		return nil, domain.ErrCommentNotFound
	}

	comment, err := scanComment(r.pool.QueryRow(ctx, commentSelect+` WHERE c.id = $2`, viewerID, commentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCommentNotFound
		}
		return nil, fmt.Errorf("get comment: %w", err)
	}
	return comment, nil
}

// ListByNote returns a page of a note's comments, oldest first
func (r *CommentRepository) ListByNote(ctx context.Context, noteID string, viewerID string, page, limit int) (*domain.PaginatedComments, error) {
	id, ok := parseID(noteID)
	if !ok {
		return nil, domain.ErrNoteNotFound
	}
	offset := domain.PageOffset(page, limit)

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM comments WHERE note_id = $1`, id).Scan(&total); err != nil {
		return nil, fmt.Errorf("count comments: %w", err)
	}

	rows, err := r.pool.Query(ctx,
		commentSelect+` WHERE c.note_id = $2 ORDER BY c.created_at ASC, c.id LIMIT $3 OFFSET $4`,
		viewerID, id, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	items := make([]*domain.Comment, 0, limit)
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		items = append(items, comment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}

	return &domain.PaginatedComments{Items: items, Page: page, Limit: limit, Total: total}, nil
}

// Delete removes a comment with its likes and reports
func (r *CommentRepository) Delete(ctx context.Context, id string) error {
	commentID, ok := parseID(id)
	if !ok {
		return domain.ErrCommentNotFound
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin delete comment: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM likes WHERE target_type = 'comment' AND target_id = $1`, commentID); err != nil {
		return fmt.Errorf("delete comment likes: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM reports WHERE target_type = 'comment' AND target_id = $1`, commentID); err != nil {
		return fmt.Errorf("delete comment reports: %w", err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM comments WHERE id = $1`, commentID)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCommentNotFound
	}

	return tx.Commit(ctx)
}

func scanComment(row pgx.Row) (*domain.Comment, error) {
	var (
		c      domain.Comment
		id     pgtype.UUID
		noteID pgtype.UUID
		style  string
		tilt   pgtype.Numeric
	)
	err := row.Scan(
		&id, &noteID, &c.AuthorID, &c.AuthorAnonymous, &c.Content, &c.BackgroundColor,
		&style, &c.SelectedFont, &tilt, &c.CreatedAt, &c.LikeCount, &c.LikedByMe,
	)
	if err != nil {
		return nil, err
	}

	c.ID = uuidToString(id)
	c.NoteID = uuidToString(noteID)
	c.NoteStyle = domain.NoteStyle(style)
	c.Tilt = pgNumericToDecimal(tilt)
	return &c, nil
}
