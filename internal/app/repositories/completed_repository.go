package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/courseplanner/internal/app/models"
)

// CompletedRepository handles database operations for student course history
type CompletedRepository struct {
	db *pgxpool.Pool
}

// NewCompletedRepository creates a new completed-course repository
func NewCompletedRepository(db *pgxpool.Pool) *CompletedRepository {
	return &CompletedRepository{
		db: db,
	}
}

// GetCompleted returns the student's history. A student with no rows gets an empty record.
func (r *CompletedRepository) GetCompleted(ctx context.Context, studentID string) (models.CompletedRecord, error) {
	rows, err := r.db.Query(ctx, `
		SELECT code, status, grade FROM student_courses WHERE student_id = $1`,
		studentID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving completed courses: %w", err)
	}
	defer rows.Close()

	record := models.CompletedRecord{}
	for rows.Next() {
		var (
			code   string
			status string
			grade  string
		)
		if err := rows.Scan(&code, &status, &grade); err != nil {
			return nil, err
		}
		record[code] = models.CompletionEntry{
			Status: models.CompletionStatus(status),
			Grade:  grade,
		}
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return record, nil
}

// RecordCompletion stores or replaces one history entry
func (r *CompletedRepository) RecordCompletion(ctx context.Context, studentID, code string, entry models.CompletionEntry) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO student_courses (student_id, code, status, grade)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (student_id, code) DO UPDATE SET
			status = EXCLUDED.status,
			grade = EXCLUDED.grade`,
		studentID, code, string(entry.Status), entry.Grade)
	if err != nil {
		return fmt.Errorf("error recording completion of %s: %w", code, err)
	}
	return nil
}
