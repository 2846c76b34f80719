package http

import (
	"time"

	"go.uber.org/zap"

	"todaygenda.com/todaygenda/internal/services"
)

type Handler struct {
	daylistService *services.DaylistService
	taskService    *services.TaskService
	userService    *services.UserService
	logger         *zap.Logger
	now            func() time.Time
}

func NewHandler(
	daylistService *services.DaylistService,
	taskService *services.TaskService,
	userService *services.UserService,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		daylistService: daylistService,
		taskService:    taskService,
		userService:    userService,
		logger:         logger,
		now:            time.Now,
	}
}
