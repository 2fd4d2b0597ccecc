package auth

import (
	"github.com/yigit/courseplanner/internal/pkg/apperrors"
	pkgAuth "github.com/yigit/courseplanner/internal/pkg/auth"
)

// AuthorizationService decides whose plan an authenticated caller may act on
type AuthorizationService struct{}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService() *AuthorizationService {
	return &AuthorizationService{}
}

// ResolvePlanOwner returns the student whose plan the request targets.
// Students only reach their own plan; advisors may name any student.
func (s *AuthorizationService) ResolvePlanOwner(actorID, role, requested string) (string, error) {
	if actorID == "" {
		return "", apperrors.ErrTokenInvalid
	}
	if requested == "" || requested == actorID {
		return actorID, nil
	}
	if role == pkgAuth.RoleAdvisor {
		return requested, nil
	}
	return "", apperrors.NewCustomError(apperrors.ErrPermissionDenied, "students can only access their own plan")
}
