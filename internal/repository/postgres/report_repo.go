package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/notewall/notewall-backend/internal/domain"
)

// ReportRepository implements domain.ReportRepository using PostgreSQL
type ReportRepository struct {
	pool *pgxpool.Pool
}

// NewReportRepository creates a new ReportRepository
func NewReportRepository(pool *pgxpool.Pool) *ReportRepository {
	return &ReportRepository{pool: pool}
}

// Create stores a report. Reports are append only.
func (r *ReportRepository) Create(ctx context.Context, report *domain.Report) (*domain.Report, error) {
	targetID, ok := parseID(report.TargetID)
	if !ok {
		return nil, domain.ErrTargetNotFound
	}

	id := uuid.New()
	created := *report
	err := r.pool.QueryRow(ctx, `
		INSERT INTO reports (id, reporter_id, target_id, target_type, reason)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`,
		pgtype.UUID{Bytes: id, Valid: true}, report.ReporterID, targetID, string(report.TargetType), report.Reason,
	).Scan(&created.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert report: %w", err)
	}

	created.ID = id.String()
	return &created, nil
}
