package dto

import (
	"time"

	model "todaygenda.com/todaygenda/internal/models"
	"todaygenda.com/todaygenda/pkg/duration"
)

// CreateTaskRequest carries an ISO-8601 estimate such as "PT1H15M". A
// compact "1h15m" is accepted too.
type CreateTaskRequest struct {
	Title    string `json:"title"`
	Estimate string `json:"estimate"`
}

type TaskItem struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Estimate  string    `json:"estimate"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ActionResult struct {
	Success []uint `json:"success"`
}

func NewTaskItem(task *model.Task) TaskItem {
	return TaskItem{
		ID:        task.ID,
		Title:     task.Title,
		Estimate:  duration.FormatISO(task.Estimate),
		Status:    string(task.Status),
		CreatedAt: task.CreatedAt,
		UpdatedAt: task.UpdatedAt,
	}
}

func NewTaskItems(tasks []*model.Task) []TaskItem {
	items := make([]TaskItem, 0, len(tasks))
	for _, task := range tasks {
		items = append(items, NewTaskItem(task))
	}
	return items
}

func NewActionResult(ids []uint) ActionResult {
	if ids == nil {
		ids = []uint{}
	}
	return ActionResult{Success: ids}
}
