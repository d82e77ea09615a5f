package container

import (
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/udconnect/udconnect-api/config"
	"github.com/udconnect/udconnect-api/internal/application"
	repo "github.com/udconnect/udconnect-api/internal/domain/repository"
	"github.com/udconnect/udconnect-api/pkg/helpers"
)

// app-level container sharing the constructed infrastructure; the router
// builds services and modules from it.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	store       repo.Store
	redisClient *redis.Client

	jwtManager *helpers.JWTManager
	cookies    *helpers.Manager

	events    application.EventPublisher
	userIndex application.UserIndex
)

func SetConfig(c *config.Config) { cfg = c }
func GetConfig() *config.Config  { return cfg }
func SetStore(s repo.Store)      { store = s }
func GetStore() repo.Store       { return store }
func SetRedis(r *redis.Client)   { redisClient = r }
func GetRedis() *redis.Client    { return redisClient }
func SetLogger(l *logrus.Logger) { logger = l }

func GetLogger() *logrus.Logger {
	if logger == nil {
		return helpers.NewNopLogger()
	}
	return logger
}

func SetJWT(m *helpers.JWTManager) { jwtManager = m }
func GetJWT() *helpers.JWTManager {
	if jwtManager != nil {
		return jwtManager
	}
	return helpers.DefaultJWT()
}
func SetCookies(m *helpers.Manager) { cookies = m }
func GetCookies() *helpers.Manager {
	if cookies != nil {
		return cookies
	}
	return helpers.NewCookie("", "", false)
}

// SetEvents registers the event publisher; nil restores the no-op publisher.
func SetEvents(p application.EventPublisher) { events = p }
func GetEvents() application.EventPublisher {
	if events == nil {
		return application.NopPublisher
	}
	return events
}

// SetUserIndex registers the search index. Leave it unset (untyped nil) to
// search by scanning the store.
func SetUserIndex(i application.UserIndex) { userIndex = i }
func GetUserIndex() application.UserIndex  { return userIndex }

// Reset clears every registration; tests use it between router builds.
func Reset() {
	cfg, logger, store, redisClient = nil, nil, nil, nil
	jwtManager, cookies, events, userIndex = nil, nil, nil, nil
}
