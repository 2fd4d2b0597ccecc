package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorCodeStatus(t *testing.T) {
	assert.Equal(t, http.StatusUnprocessableEntity, ErrorCodeCourseNotAddable.Status())
	assert.Equal(t, http.StatusConflict, ErrorCodeRemovalNeedsApproval.Status())
	assert.Equal(t, http.StatusUnauthorized, ErrorCodeExpiredToken.Status())
	assert.Equal(t, http.StatusInternalServerError, ErrorCodeInternalServer.Status())
	assert.Equal(t, http.StatusInternalServerError, ErrorCode("NOPE").Status())
}

func TestFail(t *testing.T) {
	resp := Fail(ErrorCodeForbidden, "denied", map[string]string{"student": "s1"})

	assert.False(t, resp.Success)
	assert.Equal(t, ErrorCodeForbidden, resp.Error.Code)
	assert.Equal(t, "denied", resp.Error.Message)
	assert.NotNil(t, resp.Error.Details)
	assert.False(t, resp.Timestamp.IsZero())
}
