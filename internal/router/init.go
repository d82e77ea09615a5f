package router

import (
	"github.com/udconnect/udconnect-api/internal/application"
	"github.com/udconnect/udconnect-api/internal/container"
	handlers "github.com/udconnect/udconnect-api/internal/interface/http"
	"github.com/udconnect/udconnect-api/internal/interface/middleware"
	"github.com/udconnect/udconnect-api/internal/router/modules"
)

// Services groups the application services built from the container.
type Services struct {
	Users    *application.UserService
	Spaces   *application.SpaceService
	Posts    *application.PostService
	Comments *application.CommentService
	Matches  *application.MatchService
}

func BuildServices() Services {
	cfg := container.GetConfig()
	store := container.GetStore()
	logger := container.GetLogger()

	return Services{
		Users: application.NewUserService(
			store,
			container.GetJWT(),
			container.GetRedis(),
			container.GetUserIndex(),
			container.GetEvents(),
			logger,
		),
		Spaces:   application.NewSpaceService(store, logger),
		Posts:    application.NewPostService(store, logger),
		Comments: application.NewCommentService(store, logger),
		Matches: application.NewMatchService(
			store,
			container.GetEvents(),
			logger,
			cfg.NotificationTTL,
			cfg.MatchCheckReverseRequest,
		),
	}
}

// InitModules builds services and handlers from the container and registers
// every feature module. Call once during startup.
func InitModules(r *Registry) Services {
	cfg := container.GetConfig()
	svc := BuildServices()

	jwt, cookies, rdb := container.GetJWT(), container.GetCookies(), container.GetRedis()
	guards := modules.Guards{
		Auth:     middleware.Auth(jwt, cookies, rdb),
		Optional: middleware.OptionalAuth(jwt, cookies, rdb),
	}

	r.Add(
		modules.NewUserModule(handlers.NewUserHandler(svc.Users, cookies, container.GetLogger()), guards),
		modules.NewSpaceModule(handlers.NewSpaceHandler(svc.Spaces, svc.Posts), guards),
		modules.NewPostModule(handlers.NewPostHandler(svc.Posts), guards),
		modules.NewCommentModule(handlers.NewCommentHandler(svc.Comments), guards),
		modules.NewNotificationModule(handlers.NewNotificationHandler(svc.Matches), guards),
	)
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
	return svc
}
