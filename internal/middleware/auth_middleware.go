package middleware

import (
	"errors"
	"slices"

	"github.com/gin-gonic/gin"
	"github.com/yigit/courseplanner/internal/app/models/dto"
	"github.com/yigit/courseplanner/internal/pkg/apperrors"
	"github.com/yigit/courseplanner/internal/pkg/auth"
)

// Context keys set by JWTAuth
const (
	ContextStudentID = "studentID"
	ContextRole      = "role"
)

// AuthMiddleware authenticates bearer tokens and gates routes by role.
type AuthMiddleware struct {
	jwtService *auth.JWTService
}

func NewAuthMiddleware(jwtService *auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{jwtService: jwtService}
}

func abort(c *gin.Context, code dto.ErrorCode, message, reason string) {
	c.AbortWithStatusJSON(code.Status(), dto.Fail(code, message, reason))
}

// JWTAuth validates the bearer token and stores the student ID and role on
// the request context.
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abort(c, dto.ErrorCodeUnauthorized, "Authentication required", "Authorization header missing")
			return
		}

		raw, err := auth.ExtractBearerToken(header)
		if err != nil {
			abort(c, dto.ErrorCodeUnauthorized, "Authentication required", "Invalid token format")
			return
		}

		claims, err := m.jwtService.ValidateToken(raw)
		switch {
		case errors.Is(err, apperrors.ErrTokenExpired):
			abort(c, dto.ErrorCodeExpiredToken, "Authentication failed", "Token has expired")
			return
		case err != nil:
			abort(c, dto.ErrorCodeInvalidToken, "Authentication failed", "Invalid token")
			return
		}

		c.Set(ContextStudentID, claims.StudentID)
		c.Set(ContextRole, claims.Role)
		c.Next()
	}
}

// RoleRequired lets the request through only for the listed roles.
// It must run after JWTAuth.
func (m *AuthMiddleware) RoleRequired(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextRole)
		if role == "" {
			abort(c, dto.ErrorCodeUnauthorized, "Authentication required", "User role not found")
			return
		}
		if !slices.Contains(roles, role) {
			abort(c, dto.ErrorCodeForbidden, "Access denied", "Role "+role+" cannot perform this operation")
			return
		}
		c.Next()
	}
}
