package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/notewall/notewall-backend/internal/domain"
)

// ViewRepository implements domain.ViewRepository using PostgreSQL
type ViewRepository struct {
	pool *pgxpool.Pool
}

// NewViewRepository creates a new ViewRepository
func NewViewRepository(pool *pgxpool.Pool) *ViewRepository {
	return &ViewRepository{pool: pool}
}

// Record inserts the (user, note) view. The primary key makes concurrent
// duplicates collapse into a single row; losers get ErrViewAlreadyRecorded.
func (r *ViewRepository) Record(ctx context.Context, userID, noteID string) (*domain.View, error) {
	id, ok := parseID(noteID)
	if !ok {
		return nil, domain.ErrNoteNotFound
	}

	view := &domain.View{UserID: userID, NoteID: noteID}
	err := r.pool.QueryRow(ctx, `
		INSERT INTO note_views (user_id, note_id) VALUES ($1, $2)
		ON CONFLICT (user_id, note_id) DO NOTHING
		RETURNING created_at`,
		userID, id,
	).Scan(&view.CreatedAt)
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows), isPgUniqueViolation(err):
			return nil, domain.ErrViewAlreadyRecorded
		case isPgForeignKeyViolation(err):
			return nil, domain.ErrNoteNotFound
		}
		return nil, fmt.Errorf("record view: %w", err)
	}
	return view, nil
}

// CountByNote returns the number of distinct viewers of a note
func (r *ViewRepository) CountByNote(ctx context.Context, noteID string) (int64, error) {
	id, ok := parseID(noteID)
	if !ok {
		return 0, domain.ErrNoteNotFound
	}
	var count int64
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM note_views WHERE note_id = $1`, id).Scan(&count); err != nil {
		return 0, fmt.Errorf("count views: %w", err)
	}
	return count, nil
}
