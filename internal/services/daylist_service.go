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

// DaylistService decides which list is "today's" for a user, replacing
// expired lists with fresh empty ones.
type DaylistService struct {
	store  *repository.Store
	cutoff model.Cutoff
	logger *zap.Logger
}

func NewDaylistService(store *repository.Store, defaultCutoff model.Cutoff, logger *zap.Logger) *DaylistService {
	return &DaylistService{
		store:  store,
		cutoff: defaultCutoff,
		logger: logger,
	}
}

// ComputeDefaultExpiry returns the first occurrence of cutoff strictly after
// now, in the cutoff's zone. On days where a DST shift would push that more
// than 24 hours out, the list expires 24 hours after now instead.
func ComputeDefaultExpiry(now time.Time, cutoff model.Cutoff) time.Time {
	loc := cutoff.Zone()
	local := now.In(loc)

	expiry := time.Date(local.Year(), local.Month(), local.Day(), cutoff.Hour, cutoff.Minute, 0, 0, loc)
	if !expiry.After(now) {
		expiry = time.Date(local.Year(), local.Month(), local.Day()+1, cutoff.Hour, cutoff.Minute, 0, 0, loc)
	}
	if expiry.Sub(now) > model.MaxListLifetime {
		expiry = now.Add(model.MaxListLifetime)
	}

	return expiry
}

func IsExpired(list *model.Daylist, now time.Time) bool {
	return list.IsExpired(now)
}

// GetOrCreate returns the user's active list, creating a new one when the
// user has none or the latest has expired. A custom cutoff only shapes the
// expiry of a list created by this call.
func (s *DaylistService) GetOrCreate(
	ctx context.Context,
	userID uint,
	now time.Time,
	custom *model.Cutoff,
) (bool, *model.Daylist, error) {
	var (
		created bool
		list    *model.Daylist
	)

	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		var err error
		created, list, err = s.getOrCreate(ctx, tx, userID, now, custom)
		return err
	})
	if err != nil {
		return false, nil, err
	}

	return created, list, nil
}

func (s *DaylistService) getOrCreate(
	ctx context.Context,
	tx *repository.Store,
	userID uint,
	now time.Time,
	custom *model.Cutoff,
) (bool, *model.Daylist, error) {
	list, err := s.active(ctx, tx, userID, now)
	if err == nil {
		return false, list, nil
	}

	var notFoundErr *apperrors.NotFoundError
	if !errors.As(err, &notFoundErr) {
		return false, nil, err
	}

	cutoff := s.cutoff
	if custom != nil {
		cutoff = *custom
	}

	list, err = model.NewDaylist(userID, ComputeDefaultExpiry(now, cutoff), now)
	if err != nil {
		return false, nil, err
	}
	if err := tx.Daylists.Create(ctx, list); err != nil {
		return false, nil, err
	}

	s.logger.Info("daylist created",
		zap.Uint("user_id", userID),
		zap.Uint("daylist_id", list.ID),
		zap.Time("expiry", list.Expiry),
	)

	return true, list, nil
}

// active loads the user's unexpired list with its tasks, or reports a
// NotFoundError.
func (s *DaylistService) active(
	ctx context.Context,
	tx *repository.Store,
	userID uint,
	now time.Time,
) (*model.Daylist, error) {
	list, err := tx.Daylists.FindLatest(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NewNotFoundError("daylist")
	}
	if err != nil {
		return nil, err
	}

	if list.IsExpired(now) {
		s.logger.Debug("daylist expired",
			zap.Uint("user_id", userID),
			zap.Uint("daylist_id", list.ID),
		)
		return nil, apperrors.NewNotFoundError("daylist")
	}

	if err := tx.Daylists.LoadTasks(ctx, list); err != nil {
		return nil, err
	}

	return list, nil
}
