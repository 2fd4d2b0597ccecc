package apperrors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCustomError_UnwrapAndDetails(t *testing.T) {
	err := NewCustomError(ErrCourseNotAddable, "CS999 cannot be added").
		WithDetails([]string{"CS999 is blacklisted for this curriculum"})
	wrapped := fmt.Errorf("adding course: %w", err)

	assert.True(t, Is(wrapped, ErrCourseNotAddable))
	assert.True(t, Is(wrapped, ErrConflict, ErrValidationFailed, ErrCourseNotAddable))
	assert.False(t, Is(wrapped, ErrConflict))
	assert.Equal(t, "CS999 cannot be added", err.Error())
	assert.Equal(t, []string{"CS999 is blacklisted for this curriculum"}, DetailsOf(wrapped))
	assert.Nil(t, DetailsOf(ErrConflict))
}

func TestCustomError_MessageFallback(t *testing.T) {
	assert.Equal(t, "conflict", (&CustomError{Err: ErrConflict}).Error())
	assert.Equal(t, "unknown error", (&CustomError{}).Error())
}

func TestNewf(t *testing.T) {
	err := Newf(ErrResourceNotFound, "no catalog for curriculum %d", 7)

	assert.Equal(t, "no catalog for curriculum 7", err.Error())
	assert.True(t, Is(err, ErrResourceNotFound))
	assert.False(t, Is(err))
	assert.Nil(t, DetailsOf(err))
}
