package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"

	apperrors "todaygenda.com/todaygenda/internal/errors"
	model "todaygenda.com/todaygenda/internal/models"
)

const userContextKey = "user"

// TokenResolver turns a bearer token into the user it was issued to.
type TokenResolver interface {
	UserFromToken(ctx context.Context, token string) (*model.User, error)
}

// Authenticate requires a valid "Authorization: Bearer <token>" header and
// stores the resolved user on the context.
func Authenticate(resolver TokenResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				return apperrors.ErrUnauthorized
			}

			user, err := resolver.UserFromToken(c.Request().Context(), token)
			if err != nil {
				return err
			}

			c.Set(userContextKey, user)
			return next(c)
		}
	}
}

// CurrentUser returns the user stored by Authenticate.
func CurrentUser(c echo.Context) *model.User {
	user, _ := c.Get(userContextKey).(*model.User)
	return user
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}

	token = strings.TrimSpace(token)
	return token, token != ""
}
