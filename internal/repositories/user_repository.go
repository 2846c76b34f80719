package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	apperrors "todaygenda.com/todaygenda/internal/errors"
	model "todaygenda.com/todaygenda/internal/models"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	return duplicate(r.db.WithContext(ctx).Create(user).Error)
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (r *UserRepository) Update(ctx context.Context, user *model.User) error {
	return duplicate(r.db.WithContext(ctx).Save(user).Error)
}

// duplicate turns a unique-constraint violation into a ConflictError. It
// relies on gorm.Config.TranslateError being enabled.
func duplicate(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return &apperrors.ConflictError{Message: "a user with this email already exists"}
	}
	return err
}
