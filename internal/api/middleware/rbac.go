package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/alumnihub/alumni-network/internal/api/metrics"
	"github.com/alumnihub/alumni-network/internal/core/domain"
	"github.com/alumnihub/alumni-network/internal/core/ports"
)

func roleSet(roles []string) map[string]struct{} {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return allowed
}

func forbidden(c echo.Context) error {
	metrics.GateRejectionsTotal.WithLabelValues("forbidden_role").Inc()
	return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
}

// RBAC enforces role-based access control using the role carried by the token.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := roleSet(allowedRoles)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, _ := IdentityFrom(c)
			if _, ok := allowed[id.Role]; !ok {
				return forbidden(c)
			}
			return next(c)
		}
	}
}

// FreshRole is RBAC against the role currently stored for the caller, so a
// demotion takes effect before the token expires. Downstream handlers see the
// stored role.
func FreshRole(lookup ports.RoleLookup, allowedRoles ...string) echo.MiddlewareFunc {
	allowed := roleSet(allowedRoles)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := IdentityFrom(c)
			if !ok {
				return forbidden(c)
			}

			role, err := lookup.CurrentRole(c.Request().Context(), id.SubjectID)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					return forbidden(c)
				}
				return fmt.Errorf("fresh role lookup: %w", err)
			}
			if _, ok := allowed[role]; !ok {
				return forbidden(c)
			}

			id.Role = role
			SetIdentity(c, id)
			return next(c)
		}
	}
}
