package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/notewall/notewall-backend/internal/domain"
)

// noteSelect returns every column scanNote expects. $1 is the viewer id.
const noteSelect = `
	SELECT n.id, n.author_id, COALESCE(s.anonymous, false), n.content, n.background_color,
		n.note_style, n.clip_type, n.tilt, n.selected_font, n.created_at, n.updated_at,
		(SELECT count(*) FROM likes l WHERE l.target_id = n.id AND l.target_type = 'note') AS like_count,
		(SELECT count(*) FROM comments c WHERE c.note_id = n.id) AS comment_count,
		(SELECT count(*) FROM note_views v WHERE v.note_id = n.id) AS view_count,
		EXISTS (SELECT 1 FROM likes l WHERE l.target_id = n.id AND l.target_type = 'note' AND l.user_id = $1) AS liked_by_me
	FROM notes n
	LEFT JOIN user_settings s ON s.user_id = n.author_id`

// noteOrders maps each sort to its ORDER BY clause over the noteSelect columns
var noteOrders = map[domain.NoteSort]string{
	domain.NoteSortRecent:  `q.created_at DESC, q.id`,
	domain.NoteSortPopular: `q.like_count DESC, q.created_at DESC, q.id`,
	// engagement decayed by age in hours
	domain.NoteSortTrending: `(q.like_count + 2 * q.comment_count + q.view_count / 10.0)
		/ power(EXTRACT(EPOCH FROM (now() - q.created_at)) / 3600 + 2, 1.5) DESC, q.created_at DESC, q.id`,
}

// NoteRepository implements domain.NoteRepository using PostgreSQL
type NoteRepository struct {
	pool *pgxpool.Pool
}

// NewNoteRepository creates a new NoteRepository
func NewNoteRepository(pool *pgxpool.Pool) *NoteRepository {
	return &NoteRepository{pool: pool}
}

// Create inserts a new note
func (r *NoteRepository) Create(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	tilt, err := decimalToPgNumeric(note.Tilt)
	if err != nil {
		return nil, fmt.Errorf("convert tilt: %w", err)
	}

	id := uuid.New()
	var createdAt, updatedAt time.Time
	err = r.pool.QueryRow(ctx, `
		INSERT INTO notes (id, author_id, content, background_color, note_style, clip_type, tilt, selected_font)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`,
		pgtype.UUID{Bytes: id, Valid: true}, note.AuthorID, note.Content, note.BackgroundColor,
		string(note.NoteStyle), note.ClipType, tilt, note.SelectedFont,
	).Scan(&createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert note: %w", err)
	}

	created := *note
	created.ID = id.String()
	created.CreatedAt = createdAt
	created.UpdatedAt = updatedAt
	return &created, nil
}

// GetByID retrieves a note with its counters
func (r *NoteRepository) GetByID(ctx context.Context, id string, viewerID string) (*domain.Note, error) {
	noteID, ok := parseID(id)
	if !ok {
		return nil, domain.ErrNoteNotFound
	}

	row := r.pool.QueryRow(ctx, noteSelect+` WHERE n.id = $2`, viewerID, noteID)
	note, err := scanNote(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNoteNotFound
		}
		return nil, fmt.Errorf("get note: %w", err)
	}
	return note, nil
}

// List returns one page of the wall in the requested order
func (r *NoteRepository) List(ctx context.Context, filters *domain.NoteFilters) (*domain.PaginatedNotes, error) {
	order, ok := noteOrders[filters.Sort]
	if !ok {
		order = noteOrders[domain.NoteSortRecent]
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM notes`).Scan(&total); err != nil {
		return nil, fmt.Errorf("count notes: %w", err)
	}

	query := `SELECT * FROM (` + noteSelect + `) q ORDER BY ` + order + ` LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(ctx, query, filters.ViewerID, filters.Limit, filters.Offset())
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	items := make([]*domain.Note, 0, filters.Limit)
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		items = append(items, note)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}

	return &domain.PaginatedNotes{
		Items: items,
		Page:  filters.Page,
		Limit: filters.Limit,
		Total: total,
	}, nil
}

// Update applies the non-nil fields of data
func (r *NoteRepository) Update(ctx context.Context, id string, data *domain.UpdateNoteData) (*domain.Note, error) {
	noteID, ok := parseID(id)
	if !ok {
		return nil, domain.ErrNoteNotFound
	}

	tilt, err := decimalPtrToPgNumeric(data.Tilt)
	if err != nil {
		return nil, fmt.Errorf("convert tilt: %w", err)
	}

	var style *string
	if data.NoteStyle != nil {
		s := string(*data.NoteStyle)
		style = &s
	}

	tag, err := r.pool.Exec(ctx, `
		UPDATE notes SET
			content          = COALESCE($2, content),
			background_color = COALESCE($3, background_color),
			note_style       = COALESCE($4, note_style),
			clip_type        = COALESCE($5, clip_type),
			tilt             = COALESCE($6, tilt),
			selected_font    = COALESCE($7, selected_font),
			updated_at       = now()
		WHERE id = $1`,
		noteID, data.Content, data.BackgroundColor, style, data.ClipType, tilt, data.SelectedFont,
	)
	if err != nil {
		return nil, fmt.Errorf("update note: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrNoteNotFound
	}

	return r.GetByID(ctx, id, "")
}

// Delete removes the note and everything attached to it in one transaction
func (r *NoteRepository) Delete(ctx context.Context, id string) error {
	noteID, ok := parseID(id)
	if !ok {
		return domain.ErrNoteNotFound
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin delete note: %w", err)
	}
	defer tx.Rollback(ctx)

	// likes and reports on the note or any of its comments
	for _, table := range []string{"likes", "reports"} {
		_, err := tx.Exec(ctx, `
			DELETE FROM `+table+`
			WHERE (target_type = 'note' AND target_id = $1)
			   OR (target_type = 'comment' AND target_id IN (SELECT id FROM comments WHERE note_id = $1))`,
			noteID,
		)
		if err != nil {
			return fmt.Errorf("delete note %s: %w", table, err)
		}
	}

	// comments and views cascade
	tag, err := tx.Exec(ctx, `DELETE FROM notes WHERE id = $1`, noteID)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNoteNotFound
	}

	return tx.Commit(ctx)
}

func scanNote(row pgx.Row) (*domain.Note, error) {
	var (
		note  domain.Note
		id    pgtype.UUID
		style string
		tilt  pgtype.Numeric
	)
	err := row.Scan(
		&id, &note.AuthorID, &note.AuthorAnonymous, &note.Content, &note.BackgroundColor,
		&style, &note.ClipType, &tilt, &note.SelectedFont, &note.CreatedAt, &note.UpdatedAt,
		&note.LikeCount, &note.CommentCount, &note.ViewCount, &note.LikedByMe,
	)
	if err != nil {
		return nil, err
	}

	note.ID = uuidToString(id)
	note.NoteStyle = domain.NoteStyle(style)
	note.Tilt = pgNumericToDecimal(tilt)
	return &note, nil
}
