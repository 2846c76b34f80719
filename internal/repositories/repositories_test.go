package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	apperrors "todaygenda.com/todaygenda/internal/errors"
	model "todaygenda.com/todaygenda/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, Migrate(db))
	return db
}

func seedList(t *testing.T, store *Store, now time.Time) (*model.User, *model.Daylist) {
	t.Helper()
	ctx := context.Background()

	user := &model.User{}
	require.NoError(t, store.Users.Create(ctx, user))

	list, err := model.NewDaylist(user.ID, now.Add(time.Hour), now)
	require.NoError(t, err)
	require.NoError(t, store.Daylists.Create(ctx, list))

	return user, list
}

func addTask(t *testing.T, store *Store, list *model.Daylist, title string, now time.Time) *model.Task {
	t.Helper()

	task, err := model.NewTask(title, 20*time.Minute, now)
	require.NoError(t, err)
	list.AddTask(task)
	require.NoError(t, store.Tasks.Create(context.Background(), task))
	return task
}

func titles(tasks []*model.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, task.Title)
	}
	return out
}

func TestDaylistRepository_FindLatest(t *testing.T) {
	store := NewStore(setupTestDB(t))
	ctx := context.Background()
	now := time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

	user, first := seedList(t, store, now)

	second, err := model.NewDaylist(user.ID, now.Add(2*time.Hour), now)
	require.NoError(t, err)
	require.NoError(t, store.Daylists.Create(ctx, second))

	latest, err := store.Daylists.FindLatest(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, second.ID, latest.ID)
	assert.NotEqual(t, first.ID, latest.ID)
	assert.True(t, latest.Expiry.Equal(second.Expiry))
	assert.NotNil(t, latest.Pending)
	assert.NotNil(t, latest.Done)

	_, err = store.Daylists.FindLatest(ctx, user.ID+100)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTaskRepository_StatusChangesMoveToBack(t *testing.T) {
	store := NewStore(setupTestDB(t))
	ctx := context.Background()
	now := time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

	_, list := seedList(t, store, now)
	a := addTask(t, store, list, "A", now)
	b := addTask(t, store, list, "B", now)
	addTask(t, store, list, "C", now)

	b.MarkDone(now)
	require.NoError(t, store.Tasks.UpdateStatus(ctx, b))
	a.MarkDone(now)
	require.NoError(t, store.Tasks.UpdateStatus(ctx, a))

	done, err := store.Tasks.ListDone(ctx, list.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "A"}, titles(done))

	b.MarkPending(now)
	require.NoError(t, store.Tasks.UpdateStatus(ctx, b))

	pending, err := store.Tasks.ListPending(ctx, list.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "B"}, titles(pending))

	reloaded, err := store.Daylists.FindLatest(ctx, list.UserID)
	require.NoError(t, err)
	require.NoError(t, store.Daylists.LoadTasks(ctx, reloaded))
	assert.Equal(t, []string{"C", "B"}, titles(reloaded.Pending))
	assert.Equal(t, []string{"A"}, titles(reloaded.Done))
	assert.Equal(t, 20*time.Minute, reloaded.Pending[0].Estimate)
}

func TestTaskRepository_Delete(t *testing.T) {
	store := NewStore(setupTestDB(t))
	ctx := context.Background()
	now := time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

	_, list := seedList(t, store, now)
	task := addTask(t, store, list, "A", now)

	require.NoError(t, store.Tasks.Delete(ctx, task.ID))
	_, err := store.Tasks.FindByID(ctx, task.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, store.Tasks.Delete(ctx, task.ID), ErrNotFound)
}

func TestUserRepository_DuplicateEmailConflicts(t *testing.T) {
	store := NewStore(setupTestDB(t))
	ctx := context.Background()
	email := "someone@example.com"

	require.NoError(t, store.Users.Create(ctx, &model.User{Email: &email}))

	err := store.Users.Create(ctx, &model.User{Email: &email})
	var conflict *apperrors.ConflictError
	assert.True(t, errors.As(err, &conflict), "got %v", err)

	found, err := store.Users.FindByEmail(ctx, email)
	require.NoError(t, err)
	assert.Equal(t, email, *found.Email)

	_, err = store.Users.FindByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_TransactionRollsBack(t *testing.T) {
	store := NewStore(setupTestDB(t))
	ctx := context.Background()
	boom := errors.New("boom")

	err := store.Transaction(ctx, func(tx *Store) error {
		if err := tx.Users.Create(ctx, &model.User{}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	var count int64
	require.NoError(t, store.DB().Model(&model.User{}).Count(&count).Error)
	assert.Zero(t, count)
}
