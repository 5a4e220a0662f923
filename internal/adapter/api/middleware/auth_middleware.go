package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"iecnexus/internal/domain/entity"
	"iecnexus/internal/infrastructure/firebase"
	"iecnexus/pkg/response"
)

// TokenVerifier checks a bearer ID token and returns the verified identity.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (*firebase.Identity, error)
}

// UserProvisioner upserts the profile document for a verified identity, so
// the first authenticated request of a fresh signup creates its user row no
// matter which endpoint it hits.
type UserProvisioner interface {
	EnsureUser(ctx context.Context, identity *firebase.Identity) (*entity.User, error)
}

type AuthMiddleware struct {
	verifier TokenVerifier
	users    UserProvisioner
}

func NewAuthMiddleware(verifier TokenVerifier, users UserProvisioner) *AuthMiddleware {
	return &AuthMiddleware{
		verifier: verifier,
		users:    users,
	}
}

// Authenticate verifies the bearer ID token, provisions the user document,
// and stores the verified identity on the request context under "uid" and
// "identity".
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "Authorization header is required")
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid authorization format")
		}

		identity, err := m.verifier.VerifyToken(c.Request().Context(), parts[1])
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
		}

		if _, err := m.users.EnsureUser(c.Request().Context(), identity); err != nil {
			return response.Error(c, err)
		}

		c.Set("uid", identity.UID)
		c.Set("identity", identity)

		return next(c)
	}
}
