package repositories

import (
	"context"
	"fmt"

	"placement-experiment/praxis/internal/constants"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// SkillRow is one parsed line of a bulk import file
type SkillRow struct {
	Name     string
	Category string
}

// SkillImportRepository performs the bulk skill import as a single
// BEGIN/COMMIT block. Duplicate names are skipped via ON CONFLICT.
type SkillImportRepository struct {
	db *sqlx.DB
}

func NewSkillImportRepository(db *sqlx.DB) *SkillImportRepository {
	return &SkillImportRepository{db}
}

// BulkInsert inserts all rows in one transaction and reports how many
// were actually written
func (r *SkillImportRepository) BulkInsert(ctx context.Context, rows []SkillRow) (int, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin import transaction: %w", err)
	}
	defer tx.Rollback()

	inserted := 0
	for _, row := range rows {
		res, err := tx.ExecContext(ctx, constants.InsertSkillIgnoreDuplicate,
			uuid.NewString(), row.Name, row.Category)
		if err != nil {
			return 0, fmt.Errorf("failed to insert skill %q: %w", row.Name, err)
		}
		if affected, err := res.RowsAffected(); err == nil && affected > 0 {
			inserted++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit import transaction: %w", err)
	}

	return inserted, nil
}
