package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/archonitDev/reformly-server/internal/config"
	"github.com/archonitDev/reformly-server/internal/db"
	"github.com/archonitDev/reformly-server/internal/model"
	"github.com/archonitDev/reformly-server/internal/repository"
	"github.com/archonitDev/reformly-server/internal/service"
)

type seedUser struct {
	Name     string
	LastName string
}

func main() {
	if err := run(); err != nil {
		log.Fatalf("seed failed: %v", err)
	}
}

func run() error {
	ctx := context.Background()
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	gdb, err := db.Connect(cfg)
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	if err := gdb.AutoMigrate(
		&model.User{},
		&model.Post{},
		&model.Comment{},
		&model.PostLike{},
		&model.CommentLike{},
		&model.Notification{},
		&model.PointEntry{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	canSeed, err := shouldSeed(gdb)
	if err != nil {
		return err
	}
	if !canSeed {
		log.Printf("users already exist; skipping seed (set FORCE_SEED=true to override)")
		return nil
	}

	userRepo := repository.NewUserRepository(gdb)
	pointRepo := repository.NewPointRepository(gdb)
	leaderboard := service.NewLeaderboardService(pointRepo, userRepo, zap.NewNop())

	people := []seedUser{
		{Name: "Ana", LastName: "Petrova"},
		{Name: "Marco", LastName: "Rossi"},
		{Name: "Lena", LastName: "Fischer"},
		{Name: "Tom", LastName: "Becker"},
		{Name: "Sofia", LastName: "Diaz"},
		{Name: "Jonas", LastName: "Meyer"},
	}

	uids := make([]string, 0, len(people))
	for _, p := range people {
		uid := "seed-" + uuid.NewString()
		email := fmt.Sprintf("%s.%s@example.com", strings.ToLower(p.Name), strings.ToLower(p.LastName))
		if err := userRepo.EnsureExists(ctx, uid, email, p.Name, p.LastName); err != nil {
			return fmt.Errorf("seed user %s: %w", email, err)
		}
		uids = append(uids, uid)
	}

	posts := []string{
		"Finished my first 10k this morning, legs are done but worth it.",
		"Third week of the mobility program. Shoulders finally feel human again.",
		"Anyone up for a group ride on Saturday? Thinking 40km, easy pace.",
		"Meal prep Sunday. Five days of lunches in ninety minutes.",
		"New deadlift PR today. Small numbers, big smile.",
		"Rest day. Took a long walk instead and it was exactly what I needed.",
	}
	postIDs := make([]uint64, 0, len(posts))
	for i, content := range posts {
		post := &model.Post{AuthorUID: uids[i%len(uids)], Content: content}
		if err := gdb.WithContext(ctx).Create(post).Error; err != nil {
			return fmt.Errorf("seed post: %w", err)
		}
		postIDs = append(postIDs, post.ID)
	}

	// Spread some engagement so the leaderboard has signal. Points run
	// through the same ledger path as production traffic.
	for i, postID := range postIDs {
		author := uids[i%len(uids)]
		for j := 1; j <= 3; j++ {
			actor := uids[(i+j)%len(uids)]
			if actor == author {
				continue
			}
			comment := &model.Comment{PostID: postID, AuthorUID: actor, Content: "Nice one!"}
			if err := gdb.WithContext(ctx).Create(comment).Error; err != nil {
				return fmt.Errorf("seed comment: %w", err)
			}
			if err := leaderboard.RecordPoints(ctx, author, 1, model.PointSourceCommentOnPost); err != nil {
				return fmt.Errorf("seed points: %w", err)
			}
			like := &model.PostLike{PostID: postID, UserUID: actor}
			if err := gdb.WithContext(ctx).Create(like).Error; err != nil {
				return fmt.Errorf("seed like: %w", err)
			}
			if err := leaderboard.RecordPoints(ctx, author, 1, model.PointSourcePostLiked); err != nil {
				return fmt.Errorf("seed points: %w", err)
			}
		}
	}

	log.Printf("seeded %d users and %d posts", len(uids), len(postIDs))
	return nil
}

func shouldSeed(gdb *gorm.DB) (bool, error) {
	var cnt int64
	if err := gdb.Model(&model.User{}).Count(&cnt).Error; err != nil {
		return false, fmt.Errorf("count users: %w", err)
	}
	if cnt == 0 {
		return true, nil
	}
	return strings.EqualFold(os.Getenv("FORCE_SEED"), "true"), nil
}
