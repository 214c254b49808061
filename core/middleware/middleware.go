package middleware

import (
	"net/http"
	"strings"

	"venue-api/core/controller"
	"venue-api/core/errors"
	"venue-api/core/utils"

	"github.com/labstack/echo/v4"
)

const (
	ContextKeyToken = "token_data"

	CapabilityAdmin   = "admin"
	CapabilityMembers = "members"
)

type Middleware struct{}

func NewMiddleware() *Middleware {
	return &Middleware{}
}

// AuthMiddleware rejects requests without a valid bearer token.
func (m *Middleware) AuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenData, err := parseBearer(c)
			if err != nil {
				return c.JSON(http.StatusUnauthorized,
					controller.NewErrorResponse(http.StatusUnauthorized, errors.ErrUnauthorized, "invalid or missing token"))
			}
			c.Set(ContextKeyToken, tokenData)
			return next(c)
		}
	}
}

// RequireCapability rejects authenticated requests lacking the capability.
func (m *Middleware) RequireCapability(name string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenData := TokenFromContext(c)
			if !tokenData.HasCapability(name) {
				return c.JSON(http.StatusForbidden,
					controller.NewErrorResponse(http.StatusForbidden, errors.ErrForbidden, "missing capability: "+name))
			}
			return next(c)
		}
	}
}

// OptionalAuth parses a bearer token when present but never rejects.
// Public schedule routes use it to upgrade viewer capabilities.
func (m *Middleware) OptionalAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if tokenData, err := parseBearer(c); err == nil {
				c.Set(ContextKeyToken, tokenData)
			}
			return next(c)
		}
	}
}

// TokenFromContext returns the decoded token, or nil for anonymous requests.
func TokenFromContext(c echo.Context) *utils.TokenData {
	if v, ok := c.Get(ContextKeyToken).(*utils.TokenData); ok {
		return v
	}
	return nil
}

func parseBearer(c echo.Context) (*utils.TokenData, error) {
	header := c.Request().Header.Get("Authorization")
	if header == "" {
		return nil, errors.NewAppError(errors.ErrMissingAuthorizationHeader, "no token provided", nil)
	}
	token := strings.TrimPrefix(header, "Bearer ")
	return utils.ValidateAndParseToken(token)
}
