package model

import (
	"strings"
	"time"
	"unicode/utf8"

	apperrors "todaygenda.com/todaygenda/internal/errors"
)

type TaskStatus string

const (
	StatusPending TaskStatus = "pending"
	StatusDone    TaskStatus = "done"
)

const (
	MaxTitleLength = 200
	MaxEstimate    = 24 * time.Hour
)

// Task is one unit of work on a daylist. Position orders tasks within their
// current status and is reassigned on every status change.
type Task struct {
	ID        uint          `gorm:"primaryKey"`
	DaylistID uint          `gorm:"not null;index"`
	Title     string        `gorm:"size:200;not null"`
	Estimate  time.Duration `gorm:"not null"`
	Status    TaskStatus    `gorm:"type:varchar(10);not null;default:pending"`
	Position  int64         `gorm:"not null;default:0;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewTask validates title and estimate and returns a pending task.
func NewTask(title string, estimate time.Duration, now time.Time) (*Task, error) {
	if err := ValidateTitle(title); err != nil {
		return nil, err
	}
	if err := ValidateEstimate(estimate); err != nil {
		return nil, err
	}

	return &Task{
		Title:     title,
		Estimate:  estimate,
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return apperrors.NewValidationError("title", "must not be empty")
	}
	if n := utf8.RuneCountInString(title); n > MaxTitleLength {
		return apperrors.NewValidationError("title", "must be at most %d characters, got %d", MaxTitleLength, n)
	}
	return nil
}

// ValidateEstimate accepts estimates strictly between zero and 24 hours.
func ValidateEstimate(estimate time.Duration) error {
	if estimate <= 0 {
		return apperrors.NewValidationError("estimate", "task must have a time estimate greater than zero")
	}
	if estimate >= MaxEstimate {
		return apperrors.NewValidationError("estimate", "task time estimates must be less than 24 hours")
	}
	return nil
}

func (t *Task) IsDone() bool {
	return t.Status == StatusDone
}

func (t *Task) MarkDone(now time.Time) {
	t.Status = StatusDone
	t.UpdatedAt = now
}

func (t *Task) MarkPending(now time.Time) {
	t.Status = StatusPending
	t.UpdatedAt = now
}
