package server

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/archonitDev/reformly-server/internal/config"
	"github.com/archonitDev/reformly-server/internal/handler"
	appmw "github.com/archonitDev/reformly-server/internal/middleware"
	"github.com/archonitDev/reformly-server/internal/repository"
	"github.com/archonitDev/reformly-server/internal/service"
)

type Server struct {
	e   *echo.Echo
	log *zap.Logger
}

func New(db *gorm.DB, cfg *config.Config, store service.ObjectStorage, log *zap.Logger) (*Server, error) {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		AllowOriginFunc:  allowOrigin,
	}))

	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	pointRepo := repository.NewPointRepository(db)

	leaderboardSvc := service.NewLeaderboardService(pointRepo, userRepo, log)
	notificationSvc := service.NewNotificationService(notificationRepo, userRepo)
	userSvc := service.NewUserService(userRepo, store)
	postSvc := service.NewPostService(postRepo, likeRepo, userRepo)
	commentSvc := service.NewCommentService(commentRepo, postRepo, likeRepo, userRepo, leaderboardSvc, notificationSvc, log)
	likeSvc := service.NewLikeService(likeRepo, postRepo, commentRepo, leaderboardSvc, notificationSvc, log)

	leaderboardHandler := handler.NewLeaderboardHandler(leaderboardSvc)
	postHandler := handler.NewPostHandler(postSvc)
	commentHandler := handler.NewCommentHandler(commentSvc)
	likeHandler := handler.NewLikeHandler(likeSvc)
	notificationHandler := handler.NewNotificationHandler(notificationSvc)
	userHandler := handler.NewUserHandler(userSvc)

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"ok": "true"})
	})

	api := e.Group("/api")
	if cfg.FirebaseProjectID != "" {
		authMw, err := appmw.NewAuthMiddleware(context.Background(), cfg.FirebaseProjectID, userSvc, log)
		if err != nil {
			return nil, err
		}
		api.Use(authMw.RequireAuth)
	} else {
		log.Warn("FIREBASE_PROJECT_ID not set, running without authentication")
	}

	api.GET("/leaderboard", leaderboardHandler.GetLeaderboard)
	api.GET("/leaderboard/me", leaderboardHandler.GetMyOverview)

	api.POST("/posts", postHandler.Create)
	api.GET("/posts", postHandler.List)
	api.GET("/posts/:id", postHandler.Get)
	api.PATCH("/posts/:id", postHandler.Update)
	api.DELETE("/posts/:id", postHandler.Delete)
	api.POST("/posts/:id/pin", postHandler.TogglePin)

	api.POST("/posts/:id/comments", commentHandler.Create)
	api.GET("/posts/:id/comments", commentHandler.ListByPost)
	api.PATCH("/comments/:id", commentHandler.Update)
	api.DELETE("/comments/:id", commentHandler.Delete)

	api.POST("/posts/:id/like", likeHandler.TogglePostLike)
	api.GET("/posts/:id/likes", likeHandler.ListPostLikes)
	api.POST("/comments/:id/like", likeHandler.ToggleCommentLike)
	api.GET("/comments/:id/likes", likeHandler.ListCommentLikes)

	api.GET("/notifications", notificationHandler.List)
	api.POST("/notifications/:id/read", notificationHandler.MarkRead)
	api.POST("/notifications/read-all", notificationHandler.MarkAllRead)
	api.DELETE("/notifications/:id", notificationHandler.Delete)
	api.DELETE("/notifications", notificationHandler.DeleteAll)

	api.GET("/users/me", userHandler.GetMe)
	api.PATCH("/users/me", userHandler.UpdateMe)
	api.POST("/users/me/profile-picture/upload-url", userHandler.ProfilePictureUploadURL)

	return &Server{e: e, log: log}, nil
}

func (s *Server) Start(addr string) error {
	return s.e.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.e.Shutdown(ctx)
}

func allowOrigin(origin string) (bool, error) {
	low := strings.ToLower(origin)
	if strings.HasPrefix(low, "http://localhost:") || strings.HasPrefix(low, "http://127.0.0.1:") ||
		strings.HasPrefix(low, "https://localhost:") || strings.HasPrefix(low, "https://127.0.0.1:") {
		return true, nil
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false, nil
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false, nil
	}
	if strings.HasSuffix(u.Hostname(), "vercel.app") {
		return true, nil
	}
	return false, nil
}
