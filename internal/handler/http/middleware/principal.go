package middleware

import (
	"context"

	"github.com/gestipay/paie-backend-go/internal/domain/auth"
	"github.com/gestipay/paie-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
)

// PrincipalFromContext rebuilds the authenticated principal from the JWT
// claims AuthRequired already verified.
func PrincipalFromContext(ctx context.Context) (user.Principal, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return user.Principal{}, auth.ErrInvalidToken
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return user.Principal{}, auth.ErrInvalidToken
	}

	roleStr, ok := claims["role"].(string)
	if !ok {
		return user.Principal{}, auth.ErrInvalidToken
	}
	role := user.Role(roleStr)
	if !role.IsValid() {
		return user.Principal{}, user.ErrForbidden
	}

	principal := user.Principal{UserID: userID, Role: role}
	if entrepriseID, ok := claims["entreprise_id"].(string); ok && entrepriseID != "" {
		principal.EntrepriseID = &entrepriseID
	}

	return principal, nil
}
