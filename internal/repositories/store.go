package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	model "todaygenda.com/todaygenda/internal/models"
)

var ErrNotFound = errors.New("record not found")

// Store groups the repositories that share one database handle, so that a
// transaction can hand the same set to a service callback.
type Store struct {
	db       *gorm.DB
	Users    *UserRepository
	Daylists *DaylistRepository
	Tasks    *TaskRepository
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:       db,
		Users:    NewUserRepository(db),
		Daylists: NewDaylistRepository(db),
		Tasks:    NewTaskRepository(db),
	}
}

// Transaction runs fn against a store bound to a single database
// transaction. Returning an error from fn rolls everything back.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}

func (s *Store) DB() *gorm.DB {
	return s.db
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&model.User{}, &model.Daylist{}, &model.Task{})
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
