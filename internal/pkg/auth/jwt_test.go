package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/courseplanner/internal/pkg/apperrors"
)

func testService(exp time.Duration) *JWTService {
	return NewJWTService(JWTConfig{SecretKey: "test-secret", AccessTokenExp: exp, TokenIssuer: "courseplanner.test"})
}

func TestJWTService_RoundTrip(t *testing.T) {
	svc := testService(time.Hour)

	token, err := svc.GenerateAccessToken("s-100", RoleStudent)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "s-100", claims.StudentID)
	assert.Equal(t, RoleStudent, claims.Role)
	assert.Equal(t, "s-100", claims.Subject)
}

func TestJWTService_Rejections(t *testing.T) {
	expired, err := testService(-time.Minute).GenerateAccessToken("s-1", RoleStudent)
	require.NoError(t, err)
	_, err = testService(time.Hour).ValidateToken(expired)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)

	other := NewJWTService(JWTConfig{SecretKey: "other", AccessTokenExp: time.Hour, TokenIssuer: "courseplanner.test"})
	forged, err := other.GenerateAccessToken("s-1", RoleStudent)
	require.NoError(t, err)
	_, err = testService(time.Hour).ValidateToken(forged)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)

	_, err = testService(time.Hour).ValidateToken("")
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		header  string
		want    string
		wantErr bool
	}{
		{"Bearer abc.def.ghi", "abc.def.ghi", false},
		{"abc.def.ghi", "abc.def.ghi", false},
		{"Bearer ", "", true},
		{"Basic xyz", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			got, err := ExtractBearerToken(tt.header)
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrInvalidFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
