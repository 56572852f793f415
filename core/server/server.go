package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"timelink/core/cache"
	"timelink/core/config"
	"timelink/core/database"
	"timelink/core/logger"
	"timelink/core/middleware"
	"timelink/core/queue"
	freeslot "timelink/modules/freeslot"

	"github.com/labstack/echo/v4"
)

const shutdownTimeout = 10 * time.Second

// Run boots the service: configuration, storage, cache, background queue,
// HTTP routes — then blocks until a termination signal.
func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger.Init(cfg.Server.LogLevel)

	db, err := database.InitDB(cfg.Database)
	if err != nil {
		return fmt.Errorf("init database: %w", err)
	}
	defer db.Close()

	cacheClient, err := cache.NewRedisCache(cfg.Redis)
	if err != nil {
		// The cache is an optimisation; queries still work without it.
		logger.Warn("Server:Run:CacheUnavailable", "error", err)
		cacheClient = nil
	} else {
		defer cacheClient.Close()
	}

	var q *queue.Queue
	if cacheClient != nil {
		q = queue.New(cfg.Redis)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	mw := middleware.New()
	mw.Setup(e)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	freeslot.Init(e, db, cacheClient, q, mw, cfg)

	if q != nil {
		if err := q.Start(); err != nil {
			return fmt.Errorf("start queue: %w", err)
		}
		defer q.Shutdown()
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	go func() {
		logger.Info("Server:Run:Listening", "addr", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Error("Server:Run:Start", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Server:Run:ShuttingDown")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	return nil
}
