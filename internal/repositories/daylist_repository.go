package repository

import (
	"context"

	"gorm.io/gorm"

	model "todaygenda.com/todaygenda/internal/models"
)

type DaylistRepository struct {
	db *gorm.DB
}

func NewDaylistRepository(db *gorm.DB) *DaylistRepository {
	return &DaylistRepository{db: db}
}

func (r *DaylistRepository) Create(ctx context.Context, list *model.Daylist) error {
	return r.db.WithContext(ctx).Create(list).Error
}

// FindLatest returns the most recently created daylist of a user, expired or
// not, without its tasks.
func (r *DaylistRepository) FindLatest(ctx context.Context, userID uint) (*model.Daylist, error) {
	var list model.Daylist
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id desc").
		First(&list).Error
	if err != nil {
		return nil, notFound(err)
	}

	list.Pending = []*model.Task{}
	list.Done = []*model.Task{}
	return &list, nil
}

// LoadTasks fills the pending and done queues of list in their stored order.
func (r *DaylistRepository) LoadTasks(ctx context.Context, list *model.Daylist) error {
	var tasks []*model.Task
	err := r.db.WithContext(ctx).
		Where("daylist_id = ?", list.ID).
		Order("position asc, id asc").
		Find(&tasks).Error
	if err != nil {
		return err
	}

	list.Pending = make([]*model.Task, 0, len(tasks))
	list.Done = []*model.Task{}
	for _, task := range tasks {
		if task.IsDone() {
			list.Done = append(list.Done, task)
		} else {
			list.Pending = append(list.Pending, task)
		}
	}

	return nil
}
