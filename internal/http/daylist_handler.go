package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	dto "todaygenda.com/todaygenda/internal/data_models"
	middleware "todaygenda.com/todaygenda/internal/http/middlewares"
	"todaygenda.com/todaygenda/internal/http/validators"
	model "todaygenda.com/todaygenda/internal/models"
	"todaygenda.com/todaygenda/internal/services"
)

func (h *Handler) Root(c echo.Context) error {
	return c.JSON(http.StatusOK, "API server is running!")
}

// Today returns the caller's current daylist, starting a new one when needed.
func (h *Handler) Today(c echo.Context) error {
	created, list, err := h.today(c)
	if err != nil {
		return err
	}

	return c.JSON(createdStatus(created), dto.NewDaylistResponse(list))
}

func (h *Handler) Agenda(c echo.Context) error {
	created, list, err := h.today(c)
	if err != nil {
		return err
	}

	agenda := services.BuildAgenda(list, h.now())
	return c.JSON(createdStatus(created), dto.NewAgendaResponse(agenda))
}

func (h *Handler) today(c echo.Context) (bool, *model.Daylist, error) {
	custom, err := validators.ParseExpire(c.QueryParam("expire"))
	if err != nil {
		return false, nil, err
	}

	user := middleware.CurrentUser(c)
	return h.daylistService.GetOrCreate(c.Request().Context(), user.ID, h.now(), custom)
}

func createdStatus(created bool) int {
	if created {
		return http.StatusCreated
	}
	return http.StatusOK
}
