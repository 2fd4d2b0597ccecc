package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/courseplanner/internal/pkg/dberrors"
)

const blacklistPrimaryKey = "curriculum_blacklist_pkey"

// BlacklistRepository handles database operations for curriculum blacklists
type BlacklistRepository struct {
	db *pgxpool.Pool
}

// NewBlacklistRepository creates a new blacklist repository
func NewBlacklistRepository(db *pgxpool.Pool) *BlacklistRepository {
	return &BlacklistRepository{
		db: db,
	}
}

// ListBlacklist returns the blacklisted codes for a curriculum/department pair
func (r *BlacklistRepository) ListBlacklist(ctx context.Context, curriculumID, departmentID int64) ([]string, error) {
	rows, err := r.db.Query(ctx, `
		SELECT code FROM curriculum_blacklist
		WHERE curriculum_id = $1 AND department_id = $2
		ORDER BY code`,
		curriculumID, departmentID)
	if err != nil {
		return nil, fmt.Errorf("error listing blacklist: %w", err)
	}
	defer rows.Close()

	codes := []string{}
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, err
		}
		codes = append(codes, code)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return codes, nil
}

// AddToBlacklist blacklists a code. Adding an existing code is a no-op.
func (r *BlacklistRepository) AddToBlacklist(ctx context.Context, curriculumID, departmentID int64, code string) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO curriculum_blacklist (curriculum_id, department_id, code)
		VALUES ($1, $2, $3)`,
		curriculumID, departmentID, code)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, blacklistPrimaryKey) {
			return nil
		}
		return fmt.Errorf("error adding %s to blacklist: %w", code, err)
	}
	return nil
}
