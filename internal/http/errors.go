package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	dto "todaygenda.com/todaygenda/internal/data_models"
	apperrors "todaygenda.com/todaygenda/internal/errors"
)

// ErrorHandler renders every error as {"detail":[{"msg":...,"type":...}]}.
func ErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := render(err)
		if status >= http.StatusInternalServerError {
			logger.Error("request failed", zap.Error(err), zap.String("path", c.Path()))
		}
		if status == http.StatusUnauthorized {
			c.Response().Header().Set("WWW-Authenticate", "Bearer")
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, body)
		}
		if err != nil {
			logger.Warn("failed to write error response", zap.Error(err))
		}
	}
}

func render(err error) (int, dto.ErrorResponse) {
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code, dto.NewErrorResponse(fmt.Sprint(httpErr.Message), "http_error")
	}

	status := apperrors.StatusCode(err)
	kind := apperrors.Type(err)

	var notFoundErr *apperrors.NotFoundError
	if errors.As(err, &notFoundErr) && notFoundErr.Resource == "task" && len(notFoundErr.IDs) > 0 {
		msg := fmt.Sprintf("Tasks not found in today's list: %v", notFoundErr.IDs)
		return status, dto.NewErrorResponse(msg, kind)
	}

	if status >= http.StatusInternalServerError {
		return status, dto.NewErrorResponse("internal server error", kind)
	}
	return status, dto.NewErrorResponse(err.Error(), kind)
}
