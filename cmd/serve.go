package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	config "todaygenda.com/todaygenda/internal/configs"
	httpapi "todaygenda.com/todaygenda/internal/http"
	middleware "todaygenda.com/todaygenda/internal/http/middlewares"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Starts the daylist HTTP API",
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		if err := a.cfg.ValidateServer(); err != nil {
			return err
		}
		if err := a.migrate(); err != nil {
			return err
		}

		limiter, closeLimiter, err := newLimiter(a.cfg, a.logger)
		if err != nil {
			return err
		}
		defer closeLimiter()

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		e := echo.New()
		e.HideBanner = true
		e.HidePort = true
		handler := httpapi.NewHandler(a.daylists, a.tasks, a.users, a.logger)
		httpapi.Register(e, handler, httpapi.RouteOptions{
			Limiter:        limiter,
			AllowedOrigins: a.cfg.AllowedOrigins,
		})

		go func() {
			a.logger.Info("HTTP server listening", zap.String("addr", a.cfg.AppURL))
			if err := e.Start(a.cfg.AppURL); err != nil && !errors.Is(err, http.ErrServerClosed) {
				a.logger.Error("server stopped", zap.Error(err))
				stop()
			}
		}()

		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(a.cfg.ShutdownTimeoutSeconds)*time.Second)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			a.logger.Warn("HTTP server shutdown incomplete", zap.Error(err))
		}

		a.logger.Info("HTTP server shut down gracefully")
		return nil
	}),
}

// newLimiter shares rate limits through Redis when it is configured and keeps
// them in memory otherwise.
func newLimiter(cfg config.Config, logger *zap.Logger) (middleware.Limiter, func(), error) {
	client, err := config.NewRedisClient(cfg.RedisAddr)
	if err != nil {
		return nil, nil, err
	}
	if client == nil {
		return middleware.NewMemoryLimiter(cfg.RateLimit, time.Minute), func() {}, nil
	}

	logger.Info("rate limiting through redis", zap.String("addr", cfg.RedisAddr))
	limiter := middleware.NewRedisLimiter(client, cfg.RedisKeyPrefix, cfg.RateLimit, time.Minute)
	return limiter, client.Close, nil
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
