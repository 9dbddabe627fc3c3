package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/notewall/notewall-backend/internal/domain"
)

// SettingsRepository implements domain.SettingsRepository using PostgreSQL
type SettingsRepository struct {
	pool *pgxpool.Pool
}

// NewSettingsRepository creates a new SettingsRepository
func NewSettingsRepository(pool *pgxpool.Pool) *SettingsRepository {
	return &SettingsRepository{pool: pool}
}

// Get returns the user's settings, or the defaults if none were saved
func (r *SettingsRepository) Get(ctx context.Context, userID string) (*domain.UserSettings, error) {
	s := domain.UserSettings{UserID: userID}
	err := r.pool.QueryRow(ctx,
		`SELECT anonymous, allow_comments, updated_at FROM user_settings WHERE user_id = $1`,
		userID,
	).Scan(&s.Anonymous, &s.AllowComments, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.DefaultUserSettings(userID), nil
		}
		return nil, fmt.Errorf("get settings: %w", err)
	}
	return &s, nil
}

// Upsert applies the non-nil fields, creating the row from defaults when needed
func (r *SettingsRepository) Upsert(ctx context.Context, userID string, data *domain.UpdateSettingsData) (*domain.UserSettings, error) {
	defaults := domain.DefaultUserSettings(userID)
	s := domain.UserSettings{UserID: userID}
	err := r.pool.QueryRow(ctx, `
		INSERT INTO user_settings (user_id, anonymous, allow_comments)
		VALUES ($1, COALESCE($2::boolean, $4::boolean), COALESCE($3::boolean, $5::boolean))
		ON CONFLICT (user_id) DO UPDATE SET
			anonymous      = COALESCE($2::boolean, user_settings.anonymous),
			allow_comments = COALESCE($3::boolean, user_settings.allow_comments),
			updated_at     = now()
		RETURNING anonymous, allow_comments, updated_at`,
		userID, data.Anonymous, data.AllowComments, defaults.Anonymous, defaults.AllowComments,
	).Scan(&s.Anonymous, &s.AllowComments, &s.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("upsert settings: %w", err)
	}
	return &s, nil
}
