package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "todaygenda.com/todaygenda/internal/errors"
	model "todaygenda.com/todaygenda/internal/models"
)

func TestMemoryLimiter_FixedWindow(t *testing.T) {
	start := time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC)
	limiter := NewMemoryLimiter(2, time.Minute)
	limiter.now = func() time.Time { return start }
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		ok, err := limiter.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.True(t, ok)
	}

	ok, _ := limiter.Allow(ctx, "10.0.0.1")
	assert.False(t, ok, "third request in the window")

	ok, _ = limiter.Allow(ctx, "10.0.0.2")
	assert.True(t, ok, "other clients have their own window")

	limiter.now = func() time.Time { return start.Add(time.Minute) }
	ok, _ = limiter.Allow(ctx, "10.0.0.1")
	assert.True(t, ok, "new window")
}

func TestMemoryLimiter_DropsEndedWindows(t *testing.T) {
	start := time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC)
	limiter := NewMemoryLimiter(2, time.Minute)
	limiter.now = func() time.Time { return start }
	ctx := context.Background()

	for _, ip := range []string{"10.0.0.1", "10.0.0.2", "10.0.0.3"} {
		ok, err := limiter.Allow(ctx, ip)
		require.NoError(t, err)
		assert.True(t, ok)
	}
	assert.Len(t, limiter.buckets, 3)

	limiter.now = func() time.Time { return start.Add(30 * time.Second) }
	_, _ = limiter.Allow(ctx, "10.0.0.4")
	assert.Len(t, limiter.buckets, 4, "windows still open")

	limiter.now = func() time.Time { return start.Add(time.Minute) }
	ok, err := limiter.Allow(ctx, "10.0.0.5")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Len(t, limiter.buckets, 2)
	assert.Contains(t, limiter.buckets, "10.0.0.4")
	assert.Contains(t, limiter.buckets, "10.0.0.5")
}

type failingLimiter struct{}

func (failingLimiter) Allow(context.Context, string) (bool, error) {
	return false, errors.New("redis down")
}

func TestRateLimiter(t *testing.T) {
	e := echo.New()
	ok := func(c echo.Context) error { return c.NoContent(http.StatusNoContent) }

	limited := RateLimiter(NewMemoryLimiter(1, time.Minute), zap.NewNop())(ok)

	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	require.NoError(t, limited(c))

	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	assert.ErrorIs(t, limited(c), apperrors.ErrRateLimited)

	failOpen := RateLimiter(failingLimiter{}, zap.NewNop())(ok)
	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	assert.NoError(t, failOpen(c))
}

func TestRedisLimiter_WindowKey(t *testing.T) {
	limiter := NewRedisLimiter(nil, "todaygenda:ratelimit:", 10, time.Minute)
	limiter.now = func() time.Time { return time.Unix(120, 0) }
	assert.Equal(t, "todaygenda:ratelimit:10.0.0.1:2", limiter.windowKey("10.0.0.1"))

	limiter.now = func() time.Time { return time.Unix(179, 0) }
	assert.Equal(t, "todaygenda:ratelimit:10.0.0.1:2", limiter.windowKey("10.0.0.1"))
}

type resolverFunc func(ctx context.Context, token string) (*model.User, error)

func (f resolverFunc) UserFromToken(ctx context.Context, token string) (*model.User, error) {
	return f(ctx, token)
}

func TestAuthenticate(t *testing.T) {
	e := echo.New()
	resolver := resolverFunc(func(_ context.Context, token string) (*model.User, error) {
		if token == "good" {
			return &model.User{ID: 7}, nil
		}
		return nil, apperrors.ErrUnauthorized
	})

	var seen *model.User
	handler := Authenticate(resolver)(func(c echo.Context) error {
		seen = CurrentUser(c)
		return nil
	})

	cases := []struct {
		header string
		ok     bool
	}{
		{"Bearer good", true},
		{"bearer good", true},
		{"Bearer bad", false},
		{"Basic good", false},
		{"Bearer ", false},
		{"", false},
	}

	for _, tc := range cases {
		seen = nil
		req := httptest.NewRequest(http.MethodGet, "/today", nil)
		if tc.header != "" {
			req.Header.Set(echo.HeaderAuthorization, tc.header)
		}
		err := handler(e.NewContext(req, httptest.NewRecorder()))

		if tc.ok {
			require.NoError(t, err, tc.header)
			require.NotNil(t, seen)
			assert.Equal(t, uint(7), seen.ID)
			continue
		}
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized, tc.header)
		assert.Nil(t, seen)
	}
}
