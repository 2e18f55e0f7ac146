package repository

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/diagnosis-service/internal/domain"
)

// ReportRepository stores diagnosis reports scoped to their owner.
// Report ids are a per-user sequence starting at 1; two concurrent
// creates for the same user must never be assigned the same id.
type ReportRepository interface {
	Create(ctx context.Context, userID string, payload map[string]any) (*domain.Report, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Report, error)
}

type reportRepository struct {
	pool *pgxpool.Pool
}

// NewReportRepository returns a Postgres-backed implementation.
func NewReportRepository(pool *pgxpool.Pool) ReportRepository {
	return &reportRepository{pool: pool}
}

func (r *reportRepository) Create(ctx context.Context, userID string, payload map[string]any) (*domain.Report, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	// Serialize sequence assignment per user without blocking other
	// users' inserts. The advisory lock is released at commit.
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, userID); err != nil {
		return nil, err
	}

	report := &domain.Report{UserID: userID, Payload: payload}
	var seq int
	const query = `
        INSERT INTO reports (user_id, seq, payload)
        VALUES ($1, (SELECT COALESCE(MAX(seq), 0) + 1 FROM reports WHERE user_id = $1), $2)
        RETURNING seq, created_at`
	if err := tx.QueryRow(ctx, query, userID, data).Scan(&seq, &report.CreatedAt); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	report.ID = strconv.Itoa(seq)
	return report, nil
}

func (r *reportRepository) ListByUser(ctx context.Context, userID string) ([]domain.Report, error) {
	const query = `
        SELECT seq, payload, created_at
        FROM reports WHERE user_id = $1
        ORDER BY seq ASC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reports := []domain.Report{}
	for rows.Next() {
		var (
			seq  int
			data []byte
		)
		report := domain.Report{UserID: userID}
		if err := rows.Scan(&seq, &data, &report.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(data, &report.Payload); err != nil {
			return nil, err
		}
		report.ID = strconv.Itoa(seq)
		reports = append(reports, report)
	}
	return reports, rows.Err()
}
