package model

import (
	"time"

	apperrors "todaygenda.com/todaygenda/internal/errors"
)

// MaxListLifetime bounds how far past its creation a daylist may expire.
const MaxListLifetime = 24 * time.Hour

// Daylist is a user's list of tasks for one day. Pending holds tasks in the
// order they come up next; Done holds tasks in the order they were finished.
// Neither slice is persisted on the row itself.
type Daylist struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"not null;index"`
	Expiry    time.Time `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Pending []*Task `gorm:"-"`
	Done    []*Task `gorm:"-"`
}

// ActionResult is the outcome of a bulk status change. Success lists the ids
// reported back to the caller and Changed the tasks whose status flipped.
type ActionResult struct {
	Success []uint
	Changed []*Task
}

// NewDaylist builds an empty list expiring at expiry, which must fall after
// now and no more than 24 hours later.
func NewDaylist(userID uint, expiry, now time.Time) (*Daylist, error) {
	if !expiry.After(now) {
		return nil, apperrors.NewValidationError("expiry", "must be in the future")
	}
	if expiry.Sub(now) > MaxListLifetime {
		return nil, apperrors.NewValidationError("expiry", "must be within 24 hours of creation")
	}

	return &Daylist{
		UserID:    userID,
		Expiry:    expiry,
		CreatedAt: now,
		UpdatedAt: now,
		Pending:   []*Task{},
		Done:      []*Task{},
	}, nil
}

func (d *Daylist) IsExpired(now time.Time) bool {
	return !now.Before(d.Expiry)
}

// AddTask appends task to the end of the pending queue.
func (d *Daylist) AddTask(task *Task) {
	task.DaylistID = d.ID
	task.Status = StatusPending
	d.Pending = append(d.Pending, task)
}

// TotalEstimate is the time needed to finish every pending task.
func (d *Daylist) TotalEstimate() time.Duration {
	var total time.Duration
	for _, task := range d.Pending {
		total += task.Estimate
	}
	return total
}

// PendingAt returns the pending task at a zero-based index.
func (d *Daylist) PendingAt(index int) (*Task, error) {
	if index < 0 || index >= len(d.Pending) {
		return nil, apperrors.NewValidationError("task_number", "no pending task #%d", index+1)
	}
	return d.Pending[index], nil
}

// DoneAt returns the done task at a zero-based index.
func (d *Daylist) DoneAt(index int) (*Task, error) {
	if index < 0 || index >= len(d.Done) {
		return nil, apperrors.NewValidationError("task_number", "no done task #%d", index+1)
	}
	return d.Done[index], nil
}

// Complete moves the given pending tasks to the end of Done. Every id must be
// on the list or nothing changes. Tasks that are already done are reported as
// successful without moving.
func (d *Daylist) Complete(ids []uint, now time.Time) (ActionResult, error) {
	tasks, err := d.lookup(ids)
	if err != nil {
		return ActionResult{}, err
	}

	result := ActionResult{Success: make([]uint, 0, len(tasks)), Changed: []*Task{}}
	for _, task := range tasks {
		result.Success = append(result.Success, task.ID)
		if task.IsDone() {
			continue
		}
		d.Pending = remove(d.Pending, task)
		task.MarkDone(now)
		d.Done = append(d.Done, task)
		result.Changed = append(result.Changed, task)
	}

	return result, nil
}

// Uncomplete moves the given done tasks to the back of the pending queue.
// Every id must be on the list or nothing changes. Tasks that are already
// pending are accepted but left out of the result.
func (d *Daylist) Uncomplete(ids []uint, now time.Time) (ActionResult, error) {
	tasks, err := d.lookup(ids)
	if err != nil {
		return ActionResult{}, err
	}

	result := ActionResult{Success: []uint{}, Changed: []*Task{}}
	for _, task := range tasks {
		if !task.IsDone() {
			continue
		}
		d.Done = remove(d.Done, task)
		task.MarkPending(now)
		d.Pending = append(d.Pending, task)
		result.Success = append(result.Success, task.ID)
		result.Changed = append(result.Changed, task)
	}

	return result, nil
}

// Remove drops a task from the list entirely.
func (d *Daylist) Remove(id uint) (*Task, error) {
	tasks, err := d.lookup([]uint{id})
	if err != nil {
		return nil, err
	}
	task := tasks[0]
	d.Pending = remove(d.Pending, task)
	d.Done = remove(d.Done, task)
	return task, nil
}

// lookup resolves ids against the pending and done tasks, dropping
// duplicates. Unknown ids are reported together in a NotFoundError.
func (d *Daylist) lookup(ids []uint) ([]*Task, error) {
	byID := make(map[uint]*Task, len(d.Pending)+len(d.Done))
	for _, task := range d.Pending {
		byID[task.ID] = task
	}
	for _, task := range d.Done {
		byID[task.ID] = task
	}

	seen := make(map[uint]struct{}, len(ids))
	tasks := make([]*Task, 0, len(ids))
	var missing []uint
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		task, ok := byID[id]
		if !ok {
			missing = append(missing, id)
			continue
		}
		tasks = append(tasks, task)
	}

	if len(missing) > 0 {
		return nil, apperrors.NewNotFoundError("task", missing...)
	}
	return tasks, nil
}

func remove(tasks []*Task, target *Task) []*Task {
	out := make([]*Task, 0, len(tasks))
	for _, task := range tasks {
		if task != target {
			out = append(out, task)
		}
	}
	return out
}
