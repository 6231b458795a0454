// Package app wires the engagement API together with fx.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/fx"

	"github.com/anonto42/skillshare/backend/internal/handlers"
	"github.com/anonto42/skillshare/backend/internal/metrics"
	"github.com/anonto42/skillshare/backend/internal/middleware"
	"github.com/anonto42/skillshare/backend/internal/models"
	"github.com/anonto42/skillshare/backend/internal/repositories"
	"github.com/anonto42/skillshare/backend/internal/repositories/memory"
	"github.com/anonto42/skillshare/backend/internal/router"
	"github.com/anonto42/skillshare/backend/internal/services"
	"github.com/anonto42/skillshare/backend/pkg/config"
	"github.com/anonto42/skillshare/backend/pkg/firebase"
	"github.com/anonto42/skillshare/backend/pkg/logger"
)

var Module = fx.Options(
	fx.Provide(
		newMetrics,
		newRepositories,
		newFirebase,
	),
	fx.Provide(
		newNotificationService,
		func(s *services.NotificationService) services.Notifier { return s },
		newFollowService,
		newReactionService,
		newCommentService,
		newBookmarkService,
	),
	fx.Provide(
		newHandlers,
		newAuthMiddleware,
		router.New,
	),
	fx.Invoke(run),
)

// Repositories is the storage selected by STORE_DRIVER.
type Repositories struct {
	Follows       repositories.FollowRepository
	Reactions     repositories.ReactionRepository
	Comments      repositories.CommentRepository
	Replies       repositories.ReplyRepository
	SavedPosts    repositories.SavedPostRepository
	SharedPosts   repositories.SharedPostRepository
	Notifications repositories.NotificationRepository
	Posts         repositories.PostRepository
	Users         repositories.UserRepository
}

func newMetrics() *metrics.Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return metrics.New(registry)
}

func newRepositories(lc fx.Lifecycle, cfg *config.Config, log logger.Logger) (Repositories, error) {
	if cfg.StoreDriver == config.StoreDriverMemory {
		log.Warn("Using in-memory storage, data is lost on restart")
		store := memory.NewStore()
		return Repositories{
			Follows:       store.Follows,
			Reactions:     store.Reactions,
			Comments:      store.Comments,
			Replies:       store.Replies,
			SavedPosts:    store.SavedPosts,
			SharedPosts:   store.SharedPosts,
			Notifications: store.Notifications,
			Posts:         store.Posts,
			Users:         store.Users,
		}, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := config.InitDB(ctx, cfg, log)
	if err != nil {
		return Repositories{}, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			db.CloseDB(ctx)
			return nil
		},
	})

	if err := db.Postgres.AutoMigrate(&models.User{}); err != nil {
		return Repositories{}, fmt.Errorf("failed to auto migrate models: %w", err)
	}
	mdb := db.Mongo.Database(cfg.MongoDatabase)
	if err := repositories.EnsureIndexes(ctx, mdb); err != nil {
		return Repositories{}, fmt.Errorf("failed to ensure indexes: %w", err)
	}
	log.Info("Storage ready", "driver", cfg.StoreDriver)

	return Repositories{
		Follows:       repositories.NewMongoFollowRepository(mdb),
		Reactions:     repositories.NewMongoReactionRepository(mdb),
		Comments:      repositories.NewMongoCommentRepository(mdb),
		Replies:       repositories.NewMongoReplyRepository(mdb),
		SavedPosts:    repositories.NewMongoSavedPostRepository(mdb),
		SharedPosts:   repositories.NewMongoSharedPostRepository(mdb),
		Notifications: repositories.NewMongoNotificationRepository(mdb),
		Posts:         repositories.NewMongoPostRepository(mdb),
		Users:         repositories.NewPostgresUserRepository(db.Postgres),
	}, nil
}

func newFirebase(cfg *config.Config, log logger.Logger) (*firebase.App, error) {
	return firebase.Init(context.Background(), cfg.FirebaseCredentialsPath, log)
}

func newNotificationService(r Repositories, m *metrics.Metrics, log logger.Logger) *services.NotificationService {
	return services.NewNotificationService(r.Notifications, r.Users, m, log)
}

func newFollowService(r Repositories, n services.Notifier, m *metrics.Metrics, log logger.Logger) *services.FollowService {
	return services.NewFollowService(r.Follows, r.Users, n, m, log)
}

func newReactionService(r Repositories, n services.Notifier, m *metrics.Metrics, log logger.Logger, cfg *config.Config) *services.ReactionService {
	return services.NewReactionService(r.Reactions, r.Comments, r.Users, r.Posts, n, m, log,
		services.ReactionOptions{NotifyOnLike: cfg.Notifications.OnLike})
}

func newCommentService(r Repositories, n services.Notifier, m *metrics.Metrics, log logger.Logger, cfg *config.Config) *services.CommentService {
	return services.NewCommentService(r.Comments, r.Replies, r.Users, r.Posts, n, m, log,
		services.CommentOptions{NotifyOnReply: cfg.Notifications.OnReply})
}

func newBookmarkService(r Repositories, m *metrics.Metrics, log logger.Logger) *services.BookmarkService {
	return services.NewBookmarkService(r.SavedPosts, r.SharedPosts, r.Users, r.Posts, m, log)
}

type handlerDeps struct {
	fx.In

	Config        *config.Config
	Logger        logger.Logger
	Repositories  Repositories
	Firebase      *firebase.App
	Notifications *services.NotificationService
	Follows       *services.FollowService
	Reactions     *services.ReactionService
	Comments      *services.CommentService
	Bookmarks     *services.BookmarkService
}

func newHandlers(d handlerDeps) router.Handlers {
	h := router.Handlers{
		User:         handlers.NewUserHandler(d.Repositories.Users),
		Post:         handlers.NewPostHandler(d.Repositories.Posts),
		Follow:       handlers.NewFollowHandler(d.Follows),
		Like:         handlers.NewLikeHandler(d.Reactions),
		Comment:      handlers.NewCommentHandler(d.Comments),
		SavedPost:    handlers.NewSavedPostHandler(d.Bookmarks),
		Notification: handlers.NewNotificationHandler(d.Notifications),
	}
	if d.Firebase != nil {
		h.Auth = handlers.NewAuthHandler(d.Repositories.Users, d.Firebase, d.Config.JWTSecret, d.Logger)
	}
	return h
}

func newAuthMiddleware(cfg *config.Config, fb *firebase.App) echo.MiddlewareFunc {
	if fb == nil {
		return middleware.JWTAuthMiddleware(cfg.JWTSecret, nil)
	}
	return middleware.JWTAuthMiddleware(cfg.JWTSecret, fb)
}

func run(lc fx.Lifecycle, e *echo.Echo, m *metrics.Metrics, cfg *config.Config, log logger.Logger) {
	metricsSrv := &http.Server{
		Addr:              ":" + cfg.MetricsPort,
		Handler:           m.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				log.Info("Starting API server", "port", cfg.Port)
				if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("API server stopped", "error", err)
				}
			}()
			go func() {
				log.Info("Starting metrics server", "port", cfg.MetricsPort)
				if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("Metrics server stopped", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return errors.Join(e.Shutdown(ctx), metricsSrv.Shutdown(ctx))
		},
	})
}
