package router

import (
	"errors"
	"net/http"
	"strings"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"metrictracker/internal/auth"
	apperrors "metrictracker/internal/errors"
	"metrictracker/internal/handler"
)

const bearerPrefix = "Bearer "

var (
	errMissingAuthorization = echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
		Msg:  "missing authorization header",
		Code: "UNAUTHORIZED",
	})
	errInvalidToken = echo.NewHTTPError(http.StatusUnprocessableEntity, apperrors.ErrorResponse{
		Msg:  "invalid token",
		Code: "INVALID_TOKEN",
	})
	errTokenRevoked = errors.New("token revoked")
)

// JWTMiddleware authenticates bearer tokens and stores the *auth.Claims under
// handler.UserContextKey. An absent or non-bearer credential is a 401; any
// bearer token that fails validation or was revoked is a 422.
func JWTMiddleware(jwtService *auth.JWTService, tokenStore auth.TokenStoreInterface) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  handler.UserContextKey,
		TokenLookup: "header:" + echo.HeaderAuthorization + ":" + bearerPrefix,
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			claims, err := jwtService.ValidateToken(token)
			if err != nil {
				return nil, err
			}
			revoked, err := tokenStore.IsAccessTokenBlacklisted(c.Request().Context(), claims.ID)
			if err != nil {
				return nil, err
			}
			if revoked {
				return nil, errTokenRevoked
			}
			return claims, nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			if !hasBearer(c.Request().Header.Get(echo.HeaderAuthorization)) {
				return errMissingAuthorization
			}
			return errInvalidToken
		},
	})
}

func hasBearer(header string) bool {
	return len(header) > len(bearerPrefix) && strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix)
}
