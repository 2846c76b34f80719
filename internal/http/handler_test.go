package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"todaygenda.com/todaygenda/internal/auth"
	dto "todaygenda.com/todaygenda/internal/data_models"
	middleware "todaygenda.com/todaygenda/internal/http/middlewares"
	model "todaygenda.com/todaygenda/internal/models"
	repository "todaygenda.com/todaygenda/internal/repositories"
	"todaygenda.com/todaygenda/internal/services"
)

var fixedNow = time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC)

type testServer struct {
	e     *echo.Echo
	users *services.UserService
	token string
}

func newTestServer(t *testing.T, limiter middleware.Limiter) *testServer {
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
	require.NoError(t, repository.Migrate(db))

	log := zap.NewNop()
	store := repository.NewStore(db)
	daylists := services.NewDaylistService(store, model.Midnight, log)
	tasks := services.NewTaskService(store, daylists, log)
	tokens := auth.NewTokenManager(auth.DefaultTokenConfig("test-secret"))
	users := services.NewUserService(store, auth.NewPasswordHasher(bcrypt.MinCost), tokens, "guest-key", log)

	h := NewHandler(daylists, tasks, users, log)
	h.now = func() time.Time { return fixedNow }

	e := echo.New()
	Register(e, h, RouteOptions{Limiter: limiter})

	user, err := users.Register(context.Background(), "someone@example.com", "hunter22")
	require.NoError(t, err)
	token, err := users.IssueToken(user)
	require.NoError(t, err)

	return &testServer{e: e, users: users, token: token}
}

func (s *testServer) do(t *testing.T, method, target, body string, authed bool) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if authed {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+s.token)
	}

	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) form(t *testing.T, target string, values url.Values, token string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestRoot(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodGet, "/", "", false)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "API server is running!", decode[string](t, rec))
}

func TestToday_RequiresToken(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodGet, "/today", "", false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))

	body := decode[dto.ErrorResponse](t, rec)
	require.Len(t, body.Detail, 1)
	assert.Equal(t, "Could not validate credentials", body.Detail[0].Msg)
}

func TestToday_CreatedThenOK(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodGet, "/today", "", true)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	first := decode[dto.DaylistResponse](t, rec)
	assert.True(t, first.Expiry.Equal(time.Date(2026, 5, 5, 0, 0, 0, 0, time.UTC)))
	assert.NotNil(t, first.PendingTasks)
	assert.NotNil(t, first.DoneTasks)

	rec = s.do(t, http.MethodGet, "/today?expire=12:00:00%2B00:00", "", true)
	require.Equal(t, http.StatusOK, rec.Code)
	second := decode[dto.DaylistResponse](t, rec)
	assert.Equal(t, first.ID, second.ID)
	assert.True(t, second.Expiry.Equal(first.Expiry))
}

func TestToday_ExpireNeedsOffset(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodGet, "/today?expire=20:16:00", "", true)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "value_error", decode[dto.ErrorResponse](t, rec).Detail[0].Type)
}

func TestToday_CustomExpiry(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodGet, "/today?expire=20:16:00%2B06:00", "", true)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	list := decode[dto.DaylistResponse](t, rec)
	assert.True(t, list.Expiry.Equal(time.Date(2026, 5, 4, 14, 16, 0, 0, time.UTC)), list.Expiry)
}

func TestCreateTask(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodPost, "/task", `{"title":"write report","estimate":"PT1H15M"}`, true)
	assert.Equal(t, http.StatusNotFound, rec.Code, "no list yet")

	s.do(t, http.MethodGet, "/today", "", true)

	rec = s.do(t, http.MethodPost, "/task", `{"title":"write report","estimate":"PT1H15M"}`, true)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	task := decode[dto.TaskItem](t, rec)
	assert.Equal(t, "write report", task.Title)
	assert.Equal(t, "PT1H15M", task.Estimate)
	assert.Equal(t, "pending", task.Status)

	for _, body := range []string{
		`{"title":"too long","estimate":"PT24H"}`,
		`{"title":"","estimate":"PT1H"}`,
		`{"title":"zero","estimate":"PT0S"}`,
		`{"title":"bad","estimate":"P1Y"}`,
	} {
		rec := s.do(t, http.MethodPost, "/task", body, true)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, body)
	}

	rec = s.do(t, http.MethodPost, "/task", `{"title":`, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAgenda(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodGet, "/agenda", "", true)
	require.Equal(t, http.StatusCreated, rec.Code)
	empty := decode[dto.AgendaResponse](t, rec)
	assert.NotNil(t, empty.Timeline)
	assert.Empty(t, empty.Timeline)
	assert.True(t, empty.Finish.Equal(fixedNow))

	for _, title := range []string{"one", "two", "three"} {
		rec := s.do(t, http.MethodPost, "/task", fmt.Sprintf(`{"title":%q,"estimate":"PT20M"}`, title), true)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec = s.do(t, http.MethodGet, "/agenda", "", true)
	require.Equal(t, http.StatusOK, rec.Code)
	agenda := decode[dto.AgendaResponse](t, rec)
	require.Len(t, agenda.Timeline, 3)
	assert.Equal(t, "three", agenda.Timeline[2].Title)
	assert.True(t, agenda.Timeline[2].Start.Equal(fixedNow.Add(40*time.Minute)))
	assert.True(t, agenda.Finish.Equal(fixedNow.Add(time.Hour)))
	assert.False(t, agenda.PastExpiry)
}

func TestCompleteAndUndo(t *testing.T) {
	s := newTestServer(t, nil)
	s.do(t, http.MethodGet, "/today", "", true)

	var ids []uint
	for _, title := range []string{"A", "B"} {
		rec := s.do(t, http.MethodPost, "/task", fmt.Sprintf(`{"title":%q,"estimate":"PT10M"}`, title), true)
		require.Equal(t, http.StatusCreated, rec.Code)
		ids = append(ids, decode[dto.TaskItem](t, rec).ID)
	}

	rec := s.do(t, http.MethodPost, "/task/bulk/do", fmt.Sprintf("[%d, 9999]", ids[0]), true)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "Tasks not found in today's list: [9999]", decode[dto.ErrorResponse](t, rec).Detail[0].Msg)

	rec = s.do(t, http.MethodPost, "/task/bulk/do", fmt.Sprintf("[%d, %d]", ids[0], ids[1]), true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, ids, decode[dto.ActionResult](t, rec).Success)

	rec = s.do(t, http.MethodPost, fmt.Sprintf("/task/%d/undo", ids[0]), "", true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []uint{ids[0]}, decode[dto.ActionResult](t, rec).Success)

	rec = s.do(t, http.MethodPost, fmt.Sprintf("/task/%d/undo", ids[0]), "", true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []uint{}, decode[dto.ActionResult](t, rec).Success)

	rec = s.do(t, http.MethodPost, fmt.Sprintf("/task/%d/do", ids[1]), "", true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []uint{ids[1]}, decode[dto.ActionResult](t, rec).Success)

	list := decode[dto.DaylistResponse](t, s.do(t, http.MethodGet, "/today", "", true))
	require.Len(t, list.PendingTasks, 1)
	assert.Equal(t, "A", list.PendingTasks[0].Title)
	require.Len(t, list.DoneTasks, 1)
	assert.Equal(t, "B", list.DoneTasks[0].Title)

	rec = s.do(t, http.MethodPost, "/task/abc/do", "", true)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	rec = s.do(t, http.MethodPost, "/task/bulk/do", `{"ids":[1]}`, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUserFlow(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.form(t, "/user", url.Values{"username": {"new@example.com"}, "password": {"hunter22"}}, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.form(t, "/user", url.Values{"username": {"new@example.com"}, "password": {"hunter22"}}, "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.form(t, "/user", url.Values{"username": {"not-an-email"}, "password": {"hunter22"}}, "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = s.form(t, "/user/token", url.Values{"username": {"new@example.com"}, "password": {"wrong-one"}}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.form(t, "/user/token", url.Values{"username": {"new@example.com"}, "password": {"hunter22"}}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	token := decode[dto.TokenResponse](t, rec)
	assert.Equal(t, "bearer", token.TokenType)
	assert.NotEmpty(t, token.AccessToken)

	s.token = token.AccessToken
	me := decode[dto.UserResponse](t, s.do(t, http.MethodGet, "/user", "", true))
	require.NotNil(t, me.Email)
	assert.Equal(t, "new@example.com", *me.Email)

	rec = s.form(t, "/user/register", url.Values{"username": {"x@example.com"}, "password": {"hunter22"}}, token.AccessToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestGuestFlow(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.form(t, "/user/token", url.Values{"username": {"anonymous"}, "password": {"nope"}}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.form(t, "/user/token", url.Values{"username": {"anonymous"}, "password": {"guest-key"}}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	guestToken := decode[dto.TokenResponse](t, rec).AccessToken

	s.token = guestToken
	me := decode[dto.UserResponse](t, s.do(t, http.MethodGet, "/user", "", true))
	assert.True(t, me.IsGuest)

	rec = s.form(t, "/user/register", url.Values{"username": {"guest@example.com"}, "password": {"hunter22"}}, guestToken)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	upgraded := decode[dto.UserResponse](t, rec)
	assert.False(t, upgraded.IsGuest)
	assert.Equal(t, me.ID, upgraded.ID)
}

func TestRateLimit(t *testing.T) {
	s := newTestServer(t, middleware.NewMemoryLimiter(1, time.Minute))

	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/", "", false).Code)

	rec := s.do(t, http.MethodGet, "/", "", false)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "rate limit exceeded", decode[dto.ErrorResponse](t, rec).Detail[0].Msg)
}

func TestUnknownRoute(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodGet, "/nowhere", "", false)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "http_error", decode[dto.ErrorResponse](t, rec).Detail[0].Type)
}
