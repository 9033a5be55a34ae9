package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/alumnihub/alumni-network/internal/api/middleware"
	"github.com/alumnihub/alumni-network/internal/core/domain"
)

// ctxIdentity returns the caller identity injected by the Auth middleware.
// A missing identity means the route was mounted without the gate.
func ctxIdentity(c echo.Context) (domain.Identity, error) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		return domain.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return id, nil
}
