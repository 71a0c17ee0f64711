// Package handler exposes the services over HTTP.
package handler

import (
	"errors"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"gigboard/internal/auth"
	apperr "gigboard/internal/errors"
)

// ContextKeyUser is where echo-jwt stores the parsed *jwt.Token.
const ContextKeyUser = "user"

var errUnauthorized = echo.NewHTTPError(http.StatusUnauthorized, apperr.ErrorResponse{
	Error: "missing or invalid token",
	Code:  "UNAUTHORIZED",
})

// claimsFrom returns the access token claims of the authenticated request.
func claimsFrom(c echo.Context) (*auth.Claims, error) {
	token, ok := c.Get(ContextKeyUser).(*jwt.Token)
	if !ok {
		return nil, errUnauthorized
	}
	claims, ok := token.Claims.(*auth.Claims)
	if !ok || claims.Kind != auth.KindAccess {
		return nil, errUnauthorized
	}
	return claims, nil
}

// currentUserID returns the id of the authenticated user.
func currentUserID(c echo.Context) (uuid.UUID, error) {
	claims, err := claimsFrom(c)
	if err != nil {
		return uuid.Nil, err
	}
	id, err := claims.UserID()
	if err != nil {
		return uuid.Nil, errUnauthorized
	}
	return id, nil
}

func pathID(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, apperr.ErrorResponse{
			Error: "invalid " + name,
			Code:  "INVALID_UUID",
		})
	}
	return id, nil
}

func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperr.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperr.ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_ERROR",
		})
	}
	return nil
}

// fail converts a service error into an HTTP error. Backend failures are logged.
func fail(c echo.Context, err error) error {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he
	}
	mapped := apperr.MapErrorToHTTP(err)
	if mapped.StatusCode >= http.StatusInternalServerError {
		log.Error().Err(err).
			Str("method", c.Request().Method).
			Str("path", c.Path()).
			Msg("request failed")
	}
	if apperr.Retryable(err) {
		c.Response().Header().Set("Retry-After", "1")
	}
	return echo.NewHTTPError(mapped.StatusCode, mapped.ToErrorResponse())
}
