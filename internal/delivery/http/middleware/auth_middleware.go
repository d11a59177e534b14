package middleware

import (
	"context"
	"errors"
	"strings"

	"itapp/internal/domain/user"
	ucauth "itapp/internal/usecase/auth"

	"github.com/gofiber/fiber/v3"
)

const ctxPrincipalKey = "principal"

// Authenticator resolves a bearer token to the caller's current record.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (user.Principal, error)
}

type AuthMiddleware struct {
	auth Authenticator
}

func NewAuthMiddleware(auth Authenticator) *AuthMiddleware {
	return &AuthMiddleware{auth: auth}
}

func (m *AuthMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		token, ok := bearerTokenFromHeader(c.Get("Authorization"))
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
		}

		p, err := m.auth.Authenticate(c.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, ucauth.ErrTokenExpired):
				return NewAppError(fiber.StatusUnauthorized, "Token expired", nil, err)
			case errors.Is(err, ucauth.ErrUnauthorized):
				return NewAppError(fiber.StatusUnauthorized, "Invalid token", nil, err)
			default:
				return NewAppError(fiber.StatusInternalServerError, "", nil, err)
			}
		}

		c.Locals(ctxPrincipalKey, p)
		return c.Next()
	}
}

// RequireRole must run after Middleware.
func RequireRole(roles ...user.Role) fiber.Handler {
	return func(c fiber.Ctx) error {
		p, ok := PrincipalFrom(c)
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
		}
		if !p.Is(roles...) {
			return NewAppError(fiber.StatusForbidden, "You are not allowed to access this resource", nil, nil)
		}
		return c.Next()
	}
}

func PrincipalFrom(c fiber.Ctx) (user.Principal, bool) {
	p, ok := c.Locals(ctxPrincipalKey).(user.Principal)
	return p, ok
}

func bearerTokenFromHeader(authHeader string) (string, bool) {
	parts := strings.SplitN(strings.TrimSpace(authHeader), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}
