package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/alumnihub/alumni-network/internal/api/metrics"
	"github.com/alumnihub/alumni-network/internal/core/domain"
	"github.com/alumnihub/alumni-network/internal/core/ports"
)

const identityKey = "identity"

// Auth validates the bearer token and injects the caller identity into context.
// Rejections never reach next:
//   - no Authorization header: 401
//   - header without a bearer token: 401
//   - bad signature, malformed or expired token: 403
func Auth(verifier ports.TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				metrics.GateRejectionsTotal.WithLabelValues("missing_header").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "authorization header missing")
			}

			raw, ok := bearerToken(authHeader)
			if !ok {
				metrics.GateRejectionsTotal.WithLabelValues("missing_token").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "token missing")
			}

			id, err := verifier.Verify(raw)
			if err != nil {
				metrics.GateRejectionsTotal.WithLabelValues("invalid_token").Inc()
				return echo.NewHTTPError(http.StatusForbidden, "invalid or expired token")
			}

			SetIdentity(c, id)
			return next(c)
		}
	}
}

// bearerToken extracts the credential of a "Bearer <token>" header.
func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	tok := strings.TrimSpace(parts[1])
	return tok, tok != ""
}

// SetIdentity attaches a verified identity to the request context.
func SetIdentity(c echo.Context, id domain.Identity) {
	c.Set(identityKey, id)
}

// IdentityFrom returns the identity set by Auth.
func IdentityFrom(c echo.Context) (domain.Identity, bool) {
	id, ok := c.Get(identityKey).(domain.Identity)
	if !ok || id.SubjectID == "" {
		return domain.Identity{}, false
	}
	return id, true
}
