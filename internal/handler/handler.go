package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"metrictracker/internal/auth"
	apperrors "metrictracker/internal/errors"
)

// UserContextKey is where the gate stores the validated *auth.Claims.
const UserContextKey = "user"

// MessageResponse is the body of acknowledgement responses.
type MessageResponse struct {
	Msg string `json:"msg"`
}

// fail converts a service error into the echo error the error handler renders.
func fail(err error) error {
	httpErr := apperrors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse()).SetInternal(err)
}

// bind decodes the JSON body and runs struct validation.
func bind(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return fail(apperrors.Validation("invalid request body"))
	}
	if err := c.Validate(req); err != nil {
		return fail(validationError(err))
	}
	return nil
}

// pathID parses a positive numeric path parameter. Anything else cannot name a
// resource, so it is reported as notFound.
func pathID(c echo.Context, name string, notFound error) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, fail(notFound)
	}
	return uint(id), nil
}

func currentClaims(c echo.Context) (*auth.Claims, error) {
	claims, ok := c.Get(UserContextKey).(*auth.Claims)
	if !ok || claims == nil {
		return nil, fail(apperrors.ErrInvalidToken)
	}
	return claims, nil
}

// currentUserID returns the id of the authenticated caller.
func currentUserID(c echo.Context) (uint, error) {
	claims, err := currentClaims(c)
	if err != nil {
		return 0, err
	}
	id, err := claims.UserID()
	if err != nil {
		return 0, fail(apperrors.ErrInvalidToken)
	}
	return id, nil
}

func ok(c echo.Context, msg string) error {
	return c.JSON(http.StatusOK, MessageResponse{Msg: msg})
}
