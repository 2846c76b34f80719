package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	dto "todaygenda.com/todaygenda/internal/data_models"
	apperrors "todaygenda.com/todaygenda/internal/errors"
	middleware "todaygenda.com/todaygenda/internal/http/middlewares"
	"todaygenda.com/todaygenda/internal/http/validators"
)

func (h *Handler) CreateTask(c echo.Context) error {
	var req dto.CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ErrInvalidJSON
	}
	estimate, err := validators.ValidateCreateTaskRequest(&req)
	if err != nil {
		return err
	}

	user := middleware.CurrentUser(c)
	task, err := h.taskService.AddTask(c.Request().Context(), user.ID, req.Title, estimate, h.now())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, dto.NewTaskItem(task))
}

// CompleteTasks takes a JSON array of task ids.
func (h *Handler) CompleteTasks(c echo.Context) error {
	var ids []uint
	if err := (&echo.DefaultBinder{}).BindBody(c, &ids); err != nil || ids == nil {
		return apperrors.ErrInvalidJSON
	}
	if err := validators.ValidateTaskIDs(ids); err != nil {
		return err
	}

	user := middleware.CurrentUser(c)
	success, err := h.taskService.CompleteTasks(c.Request().Context(), user.ID, ids, h.now())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.NewActionResult(success))
}

func (h *Handler) CompleteTask(c echo.Context) error {
	id, err := validators.ParseTaskID(c.Param("id"))
	if err != nil {
		return err
	}

	user := middleware.CurrentUser(c)
	success, err := h.taskService.CompleteTasks(c.Request().Context(), user.ID, []uint{id}, h.now())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.NewActionResult(success))
}

func (h *Handler) UncompleteTask(c echo.Context) error {
	id, err := validators.ParseTaskID(c.Param("id"))
	if err != nil {
		return err
	}

	user := middleware.CurrentUser(c)
	success, err := h.taskService.UncompleteTasks(c.Request().Context(), user.ID, []uint{id}, h.now())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.NewActionResult(success))
}
