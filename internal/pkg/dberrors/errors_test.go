package dberrors

import (
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsDuplicateConstraintError(t *testing.T) {
	err := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: "courses_curriculum_code_key"})

	assert.True(t, IsDuplicateConstraintError(err, "courses_curriculum_code_key"))
	assert.False(t, IsDuplicateConstraintError(err, "other"))
	assert.False(t, IsDuplicateConstraintError(&pgconn.PgError{Code: "23503"}, ""))
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(fmt.Errorf("query: %w", pgx.ErrNoRows)))
	assert.False(t, IsNotFound(fmt.Errorf("boom")))
}
