package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/anonto42/skillshare/backend/internal/apperrors"
	"github.com/anonto42/skillshare/backend/internal/middleware"
)

// getUserIDFromContext returns the authenticated user id set by the auth middleware
func getUserIDFromContext(c echo.Context) string {
	userID, _ := c.Get(middleware.UserIDKey).(string)
	return userID
}

func requireUser(c echo.Context) (string, error) {
	userID := getUserIDFromContext(c)
	if userID == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	return userID, nil
}

func success(c echo.Context, status int, data any) error {
	return c.JSON(status, echo.Map{"success": true, "data": data})
}

// bindAndValidate decodes the body into req and runs the registered validator.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(req); err != nil {
		return err
	}
	return nil
}

// toHTTPError maps a service error onto a status code.
func toHTTPError(err error) error {
	switch {
	case apperrors.IsNotFound(err):
		return echo.NewHTTPError(http.StatusNotFound, apperrors.Message(err))
	case apperrors.IsAlreadyExists(err), apperrors.IsConflict(err):
		return echo.NewHTTPError(http.StatusConflict, apperrors.Message(err))
	case apperrors.IsInvalidOperation(err):
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.Message(err))
	case apperrors.IsUpstreamUnavailable(err):
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Service temporarily unavailable").SetInternal(err)
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error").SetInternal(err)
	}
}
