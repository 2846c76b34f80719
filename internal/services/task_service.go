package services

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	apperrors "todaygenda.com/todaygenda/internal/errors"
	model "todaygenda.com/todaygenda/internal/models"
	repository "todaygenda.com/todaygenda/internal/repositories"
)

// TaskService changes the tasks on a user's active daylist. Each call reads
// the list, applies the change in memory and writes the affected tasks back
// inside one transaction.
type TaskService struct {
	store    *repository.Store
	daylists *DaylistService
	logger   *zap.Logger
}

func NewTaskService(store *repository.Store, daylists *DaylistService, logger *zap.Logger) *TaskService {
	return &TaskService{
		store:    store,
		daylists: daylists,
		logger:   logger,
	}
}

// AddTask appends a new pending task to the user's active list. It fails with
// a NotFoundError when the user has no active list.
func (s *TaskService) AddTask(
	ctx context.Context,
	userID uint,
	title string,
	estimate time.Duration,
	now time.Time,
) (*model.Task, error) {
	task, err := model.NewTask(title, estimate, now)
	if err != nil {
		return nil, err
	}

	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		list, err := s.daylists.active(ctx, tx, userID, now)
		if err != nil {
			return err
		}

		list.AddTask(task)
		return tx.Tasks.Create(ctx, task)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("task added",
		zap.Uint("user_id", userID),
		zap.Uint("task_id", task.ID),
		zap.Duration("estimate", task.Estimate),
	)

	return task, nil
}

// CompleteTasks marks every given task done. Unknown ids fail the whole call.
func (s *TaskService) CompleteTasks(ctx context.Context, userID uint, ids []uint, now time.Time) ([]uint, error) {
	return s.mutate(ctx, userID, now, func(list *model.Daylist) (model.ActionResult, error) {
		return list.Complete(ids, now)
	})
}

// UncompleteTasks returns done tasks to the back of the pending queue and
// reports only the ids that actually moved.
func (s *TaskService) UncompleteTasks(ctx context.Context, userID uint, ids []uint, now time.Time) ([]uint, error) {
	return s.mutate(ctx, userID, now, func(list *model.Daylist) (model.ActionResult, error) {
		return list.Uncomplete(ids, now)
	})
}

// DeleteTask removes a task from the active list for good.
func (s *TaskService) DeleteTask(ctx context.Context, userID, taskID uint, now time.Time) (*model.Task, error) {
	var removed *model.Task

	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		list, err := s.listForUpdate(ctx, tx, userID, now)
		if err != nil {
			return err
		}

		removed, err = list.Remove(taskID)
		if err != nil {
			return err
		}
		return tx.Tasks.Delete(ctx, removed.ID)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("task deleted", zap.Uint("user_id", userID), zap.Uint("task_id", removed.ID))
	return removed, nil
}

func (s *TaskService) mutate(
	ctx context.Context,
	userID uint,
	now time.Time,
	apply func(list *model.Daylist) (model.ActionResult, error),
) ([]uint, error) {
	var result model.ActionResult

	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		list, err := s.listForUpdate(ctx, tx, userID, now)
		if err != nil {
			return err
		}

		result, err = apply(list)
		if err != nil {
			return err
		}

		for _, task := range result.Changed {
			if err := tx.Tasks.UpdateStatus(ctx, task); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("task status changed",
		zap.Uint("user_id", userID),
		zap.Uints("task_ids", result.Success),
		zap.Int("changed", len(result.Changed)),
	)

	return result.Success, nil
}

// listForUpdate returns the active list, or an empty one when there is none
// so that every requested id is reported as unknown.
func (s *TaskService) listForUpdate(
	ctx context.Context,
	tx *repository.Store,
	userID uint,
	now time.Time,
) (*model.Daylist, error) {
	list, err := s.daylists.active(ctx, tx, userID, now)

	var notFoundErr *apperrors.NotFoundError
	if errors.As(err, &notFoundErr) {
		return &model.Daylist{UserID: userID, Pending: []*model.Task{}, Done: []*model.Task{}}, nil
	}

	return list, err
}
