package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// schema is applied at startup. Every statement is idempotent.
//
// Views and comments reference notes with ON DELETE CASCADE. Likes and
// reports point at either a note or a comment, so NoteRepository.Delete and
// CommentRepository.Delete remove them explicitly in the same transaction.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS notes (
		id               UUID PRIMARY KEY,
		author_id        TEXT NOT NULL,
		content          TEXT NOT NULL CHECK (char_length(content) BETWEEN 1 AND 500),
		background_color CHAR(7) NOT NULL,
		note_style       TEXT NOT NULL,
		clip_type        TEXT NOT NULL,
		tilt             NUMERIC NOT NULL CHECK (tilt BETWEEN -4 AND 4),
		selected_font    TEXT NOT NULL,
		created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at       TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_notes_created_at ON notes (created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_notes_author ON notes (author_id)`,

	`CREATE TABLE IF NOT EXISTS comments (
		id               UUID PRIMARY KEY,
		note_id          UUID NOT NULL REFERENCES notes (id) ON DELETE CASCADE,
		author_id        TEXT NOT NULL,
		content          TEXT NOT NULL CHECK (char_length(content) BETWEEN 1 AND 300),
		background_color CHAR(7) NOT NULL,
		note_style       TEXT NOT NULL,
		selected_font    TEXT NOT NULL,
		tilt             NUMERIC NOT NULL CHECK (tilt BETWEEN -4 AND 4),
		created_at       TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_comments_note ON comments (note_id, created_at)`,

	`CREATE TABLE IF NOT EXISTS likes (
		user_id     TEXT NOT NULL,
		target_id   UUID NOT NULL,
		target_type TEXT NOT NULL CHECK (target_type IN ('note', 'comment')),
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (user_id, target_id, target_type)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_likes_target ON likes (target_id, target_type)`,

	// One view per (user, note): the primary key is the uniqueness constraint
	`CREATE TABLE IF NOT EXISTS note_views (
		user_id    TEXT NOT NULL,
		note_id    UUID NOT NULL REFERENCES notes (id) ON DELETE CASCADE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (user_id, note_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_note_views_note ON note_views (note_id)`,

	`CREATE TABLE IF NOT EXISTS reports (
		id          UUID PRIMARY KEY,
		reporter_id TEXT NOT NULL,
		target_id   UUID NOT NULL,
		target_type TEXT NOT NULL CHECK (target_type IN ('note', 'comment')),
		reason      TEXT CHECK (reason IS NULL OR char_length(reason) <= 200),
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_reports_target ON reports (target_id, target_type)`,

	`CREATE TABLE IF NOT EXISTS user_settings (
		user_id        TEXT PRIMARY KEY,
		anonymous      BOOLEAN NOT NULL DEFAULT false,
		allow_comments BOOLEAN NOT NULL DEFAULT true,
		updated_at     TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
}

// Migrate applies the schema. It is safe to run on every start.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for i, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema statement %d: %w", i, err)
		}
	}
	log.Info().Int("statements", len(schema)).Msg("Database schema applied")
	return nil
}
