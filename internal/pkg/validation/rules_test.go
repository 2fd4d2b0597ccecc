package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Code   string `validate:"required,coursecode"`
	Status string `validate:"omitempty,oneof=planning will-take considering"`
	Count  int    `validate:"min=0"`
}

func TestCourseCodePattern(t *testing.T) {
	for _, ok := range []string{"CS101", "MATH 2010", "EE-301L", "cs101"} {
		assert.True(t, CourseCodePattern.MatchString(ok), ok)
	}
	for _, bad := range []string{"", "101", "C1", "COMPUTER101", "CS101LL"} {
		assert.False(t, CourseCodePattern.MatchString(bad), bad)
	}
}

func TestStructAndMessages(t *testing.T) {
	assert.NoError(t, Struct(sample{Code: "CS101", Status: "planning"}))

	err := Struct(sample{Code: "nope", Status: "done", Count: -1})
	msgs := Messages(err)

	assert.Len(t, msgs, 3)
	assert.Contains(t, msgs, "sample.Code must be a course code like CS101")
	assert.Contains(t, msgs, "sample.Status must be one of: planning will-take considering")
	assert.Contains(t, msgs, "sample.Count must be at least 0")
}

func TestMessages_NonValidatorError(t *testing.T) {
	assert.Equal(t, []string{"boom"}, Messages(errors.New("boom")))
	assert.Nil(t, Messages(nil))
}
