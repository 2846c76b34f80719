package repository

import (
	"context"

	"gorm.io/gorm"

	model "todaygenda.com/todaygenda/internal/models"
)

// TaskRepository persists tasks. Every write that changes a task's status
// moves it to the end of the daylist's position sequence, which keeps the
// pending queue and the done history ordered without renumbering.
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	position, err := r.nextPosition(ctx, task.DaylistID)
	if err != nil {
		return err
	}
	task.Position = position

	return r.db.WithContext(ctx).Create(task).Error
}

func (r *TaskRepository) FindByID(ctx context.Context, id uint) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).First(&task, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &task, nil
}

func (r *TaskRepository) ListPending(ctx context.Context, daylistID uint) ([]*model.Task, error) {
	return r.listByStatus(ctx, daylistID, model.StatusPending)
}

func (r *TaskRepository) ListDone(ctx context.Context, daylistID uint) ([]*model.Task, error) {
	return r.listByStatus(ctx, daylistID, model.StatusDone)
}

// UpdateStatus writes the task's current status and moves it to the back of
// the list.
func (r *TaskRepository) UpdateStatus(ctx context.Context, task *model.Task) error {
	position, err := r.nextPosition(ctx, task.DaylistID)
	if err != nil {
		return err
	}

	res := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ?", task.ID).
		Updates(map[string]interface{}{
			"status":     task.Status,
			"position":   position,
			"updated_at": task.UpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}

	task.Position = position
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.Task{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *TaskRepository) listByStatus(ctx context.Context, daylistID uint, status model.TaskStatus) ([]*model.Task, error) {
	var tasks []*model.Task
	err := r.db.WithContext(ctx).
		Where("daylist_id = ? AND status = ?", daylistID, status).
		Order("position asc, id asc").
		Find(&tasks).Error
	return tasks, err
}

func (r *TaskRepository) nextPosition(ctx context.Context, daylistID uint) (int64, error) {
	var current int64
	err := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("daylist_id = ?", daylistID).
		Select("COALESCE(MAX(position), 0)").
		Scan(&current).Error
	if err != nil {
		return 0, err
	}
	return current + 1, nil
}
