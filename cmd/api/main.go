package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/archonitDev/reformly-server/internal/config"
	"github.com/archonitDev/reformly-server/internal/db"
	"github.com/archonitDev/reformly-server/internal/logger"
	"github.com/archonitDev/reformly-server/internal/model"
	"github.com/archonitDev/reformly-server/internal/server"
	"github.com/archonitDev/reformly-server/internal/service"
	"github.com/archonitDev/reformly-server/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	zlog, err := logger.New(cfg.Debug)
	if err != nil {
		log.Fatalf("logger init error: %v", err)
	}
	defer zlog.Sync()

	conn, err := db.Connect(cfg)
	if err != nil {
		zlog.Fatal("db connect failed", zap.Error(err))
	}
	if err := conn.AutoMigrate(
		&model.User{},
		&model.Post{},
		&model.Comment{},
		&model.PostLike{},
		&model.CommentLike{},
		&model.Notification{},
		&model.PointEntry{},
	); err != nil {
		zlog.Fatal("auto migrate failed", zap.Error(err))
	}

	var store service.ObjectStorage
	if cfg.StorageBucket != "" {
		client, err := storage.New(context.Background(), cfg.StorageBucket, cfg.StorageCredentialsFile)
		if err != nil {
			zlog.Fatal("storage init failed", zap.Error(err))
		}
		defer client.Close()
		store = client
	} else {
		zlog.Warn("STORAGE_BUCKET not set, profile picture uploads disabled")
	}

	srv, err := server.New(conn, cfg, store, zlog)
	if err != nil {
		zlog.Fatal("server init failed", zap.Error(err))
	}

	addr := ":" + cfg.Port
	zlog.Info("starting server", zap.String("addr", addr))
	if err := srv.Start(addr); err != nil {
		zlog.Fatal("server stopped", zap.Error(err))
	}
}
