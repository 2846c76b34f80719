package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"todaygenda.com/todaygenda/internal/auth"
	dto "todaygenda.com/todaygenda/internal/data_models"
	apperrors "todaygenda.com/todaygenda/internal/errors"
	middleware "todaygenda.com/todaygenda/internal/http/middlewares"
	"todaygenda.com/todaygenda/internal/http/validators"
	model "todaygenda.com/todaygenda/internal/models"
)

// guestUsername on the token endpoint asks for a new guest user, with the
// guest key as password.
const guestUsername = "anonymous"

func (h *Handler) CurrentUser(c echo.Context) error {
	return c.JSON(http.StatusOK, dto.NewUserResponse(middleware.CurrentUser(c)))
}

func (h *Handler) Signup(c echo.Context) error {
	creds, err := bindCredentials(c)
	if err != nil {
		return err
	}

	user, err := h.userService.Register(c.Request().Context(), creds.Username, creds.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, dto.NewUserResponse(user))
}

// RegisterGuest turns the calling guest into a registered user.
func (h *Handler) RegisterGuest(c echo.Context) error {
	creds, err := bindCredentials(c)
	if err != nil {
		return err
	}

	user, err := h.userService.PopulateGuest(
		c.Request().Context(),
		middleware.CurrentUser(c),
		creds.Username,
		creds.Password,
	)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

func (h *Handler) Token(c echo.Context) error {
	creds, err := bindCredentials(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()

	var user *model.User
	if creds.Username == guestUsername {
		user, err = h.userService.CreateGuest(ctx, creds.Password)
	} else {
		user, err = h.userService.Authenticate(ctx, creds.Username, creds.Password)
	}
	if err != nil {
		return err
	}

	token, err := h.userService.IssueToken(user)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.TokenResponse{AccessToken: token, TokenType: auth.TokenType})
}

func bindCredentials(c echo.Context) (*dto.Credentials, error) {
	var creds dto.Credentials
	if err := c.Bind(&creds); err != nil {
		return nil, apperrors.ErrInvalidJSON
	}
	if err := validators.ValidateCredentials(&creds); err != nil {
		return nil, err
	}
	return &creds, nil
}
