package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/udconnect/udconnect-api/config"
	"github.com/udconnect/udconnect-api/internal/application"
	"github.com/udconnect/udconnect-api/internal/container"
	"github.com/udconnect/udconnect-api/internal/infrastructure/events"
	"github.com/udconnect/udconnect-api/internal/infrastructure/memory"
	pginfra "github.com/udconnect/udconnect-api/internal/infrastructure/postgres"
	"github.com/udconnect/udconnect-api/internal/infrastructure/search"
	"github.com/udconnect/udconnect-api/internal/router"
	"github.com/udconnect/udconnect-api/pkg/helpers"
	"github.com/udconnect/udconnect-api/pkg/validation"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)
	gin.SetMode(cfg.GinMode)
	validation.Init()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	container.SetConfig(cfg)
	container.SetLogger(logger)

	// Store
	if cfg.UseMemoryStore() {
		logger.Warn("using in-memory store; data is lost on restart")
		container.SetStore(memory.New())
	} else {
		pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
		if err != nil {
			log.Fatalf("failed to connect to postgres: %v", err)
		}
		defer pool.Close()
		if err := pginfra.RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
			log.Fatalf("migration failed: %v", err)
		}
		container.SetStore(pginfra.NewStore(pool))
	}

	// Redis backs token revocation and rate limits; both fail open without it.
	if cfg.RedisAddr != "" {
		rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		err := rdb.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			helpers.LogError(logger, "redis unavailable, continuing without it", err, logrus.Fields{"addr": cfg.RedisAddr})
			_ = rdb.Close()
		} else {
			defer func() { _ = rdb.Close() }()
			container.SetRedis(rdb)
		}
	}

	// Elasticsearch
	if addrs := cfg.ESAddrs(); len(addrs) > 0 {
		es, err := search.NewClient(addrs, cfg.ElasticsearchUser, cfg.ElasticsearchPass)
		if err != nil {
			helpers.LogError(logger, "elasticsearch client init failed, search uses the store", err, nil)
		} else {
			container.SetUserIndex(search.NewUserIndex(es, cfg.ESUsersIndex))
		}
	}

	// RabbitMQ email events
	if cfg.MailSendEnabled && cfg.RabbitMQURL != "" {
		q, err := events.DialEmailQueue(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue)
		if err != nil {
			helpers.LogError(logger, "rabbitmq unavailable, email events disabled", err, nil)
		} else {
			defer q.Close()
			container.SetEvents(events.NewEmailPublisher(q, cfg.AppName, cfg.FrontendURL))
		}
	}

	container.SetJWT(helpers.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL))
	container.SetCookies(helpers.NewCookie(cfg.CookieName, cfg.CookieDomain, cfg.CookieSecure))

	go application.NewNotificationSweeper(container.GetStore(), cfg.NotificationSweepInterval, logger).Run(ctx)

	r := router.NewEngine()
	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		logger.Infof("server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	<-ctx.Done()
	logger.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Errorf("server forced to shutdown: %v", err)
		os.Exit(1)
	}
	logger.Info("server exited properly")
}
