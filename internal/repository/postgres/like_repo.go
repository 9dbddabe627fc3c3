package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/notewall/notewall-backend/internal/domain"
)

// LikeRepository implements domain.LikeRepository using PostgreSQL
type LikeRepository struct {
	pool *pgxpool.Pool
}

// NewLikeRepository creates a new LikeRepository
func NewLikeRepository(pool *pgxpool.Pool) *LikeRepository {
	return &LikeRepository{pool: pool}
}

// Toggle flips the user's like on the target and returns the new count.
// The delete and insert run in one transaction so the count matches the state.
func (r *LikeRepository) Toggle(ctx context.Context, userID, targetID string, targetType domain.TargetType) (*domain.LikeResult, error) {
	id, ok := parseID(targetID)
	if !ok {
		return nil, domain.ErrTargetNotFound
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin toggle like: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`DELETE FROM likes WHERE user_id = $1 AND target_id = $2 AND target_type = $3`,
		userID, id, string(targetType),
	)
	if err != nil {
		return nil, fmt.Errorf("remove like: %w", err)
	}

	liked := false
	if tag.RowsAffected() == 0 {
		_, err = tx.Exec(ctx, `
			INSERT INTO likes (user_id, target_id, target_type) VALUES ($1, $2, $3)
			ON CONFLICT DO NOTHING`,
			userID, id, string(targetType),
		)
		if err != nil {
			return nil, fmt.Errorf("add like: %w", err)
		}
		liked = true
	}

	var count int64
	err = tx.QueryRow(ctx,
		`SELECT count(*) FROM likes WHERE target_id = $1 AND target_type = $2`,
		id, string(targetType),
	).Scan(&count)
	if err != nil {
		return nil, fmt.Errorf("count likes: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit toggle like: %w", err)
	}

	return &domain.LikeResult{
		TargetID:   targetID,
		TargetType: targetType,
		Liked:      liked,
		LikeCount:  count,
	}, nil
}
