package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/devillage/teamproject/backend/internal/middleware"
	"github.com/devillage/teamproject/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// getUserIDFromContext returns the authenticated caller, or 0 when absent.
func getUserIDFromContext(c echo.Context) uint {
	id, _ := c.Get(middleware.UserIDKey).(uint)
	return id
}

func requireUserID(c echo.Context) (uint, error) {
	id := getUserIDFromContext(c)
	if id == 0 {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	return id, nil
}

// parseIDParam reads a positive numeric path parameter.
func parseIDParam(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid "+name)
	}
	return uint(id), nil
}

func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	return c.Validate(req)
}

// toHTTPError maps service errors onto HTTP status codes.
func toHTTPError(err error) error {
	var nf *services.NotFoundError
	switch {
	case errors.As(err, &nf):
		return echo.NewHTTPError(http.StatusNotFound, notFoundMessage(nf.Kind))
	case errors.Is(err, services.ErrAlreadyReported):
		return echo.NewHTTPError(http.StatusConflict, "Post already reported by this user")
	case errors.Is(err, services.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, "You are not the author of this resource")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error").SetInternal(err)
	}
}

func notFoundMessage(kind services.EntityKind) string {
	switch kind {
	case services.KindUser:
		return "User not found"
	case services.KindPost:
		return "Post not found"
	case services.KindComment:
		return "Comment not found"
	case services.KindReComment:
		return "Re-comment not found"
	}
	return "Not found"
}
