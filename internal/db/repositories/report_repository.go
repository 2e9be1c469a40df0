package repositories

import (
	"context"
	"fmt"

	"placement-experiment/praxis/internal/constants"
	"placement-experiment/praxis/internal/models/dtos"

	"github.com/jmoiron/sqlx"
)

// ReportRepository runs the raw aggregation SQL behind the dashboards.
// These stay on sqlx because they are read-only GROUP BY queries with
// no entity mapping.
type ReportRepository struct {
	db *sqlx.DB
}

func NewReportRepository(db *sqlx.DB) *ReportRepository {
	return &ReportRepository{db}
}

type statusCount struct {
	Status string `db:"status"`
	Total  int64  `db:"total"`
}

type roleCount struct {
	Role  string `db:"role"`
	Total int64  `db:"total"`
}

func (r *ReportRepository) CountUsersByRole(ctx context.Context) (map[string]int64, error) {
	var rows []roleCount
	if err := r.db.SelectContext(ctx, &rows, constants.CountUsersByRole); err != nil {
		return nil, fmt.Errorf("failed to count users by role: %w", err)
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Role] = row.Total
	}
	return counts, nil
}

func (r *ReportRepository) countByStatus(ctx context.Context, query string) (map[string]int64, error) {
	var rows []statusCount
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to count by status: %w", err)
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Total
	}
	return counts, nil
}

func (r *ReportRepository) CountActivitiesByStatus(ctx context.Context) (map[string]int64, error) {
	return r.countByStatus(ctx, constants.CountActivitiesByStatus)
}

func (r *ReportRepository) CountSessionsByStatus(ctx context.Context) (map[string]int64, error) {
	return r.countByStatus(ctx, constants.CountSessionsByStatus)
}

func (r *ReportRepository) CountQualificationsByStatus(ctx context.Context) (map[string]int64, error) {
	return r.countByStatus(ctx, constants.CountQualificationsByStatus)
}

func (r *ReportRepository) CountVerificationsByStatus(ctx context.Context) (map[string]int64, error) {
	return r.countByStatus(ctx, constants.CountVerificationsByStatus)
}

func (r *ReportRepository) CountUnreadMessages(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, constants.CountUnreadMessages); err != nil {
		return 0, fmt.Errorf("failed to count unread messages: %w", err)
	}
	return count, nil
}

func (r *ReportRepository) CountActiveAssignments(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, constants.CountActiveAssignments); err != nil {
		return 0, fmt.Errorf("failed to count assignments: %w", err)
	}
	return count, nil
}

// StudentItemTallies returns per-student activity status counts for a
// mentor's roster
func (r *ReportRepository) StudentItemTallies(ctx context.Context, mentorID string) ([]dtos.StudentItemTally, error) {
	var tallies []dtos.StudentItemTally
	if err := r.db.SelectContext(ctx, &tallies, constants.MentorStudentItemTallies, mentorID); err != nil {
		return nil, fmt.Errorf("failed to load student tallies: %w", err)
	}
	return tallies, nil
}
