package service

import (
	"context"
	"errors"
	"strings"

	"github.com/archonitDev/reformly-server/internal/model"
	"github.com/archonitDev/reformly-server/internal/repository"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("not found")
var ErrForbidden = errors.New("forbidden")

// PostView is a post joined with its engagement state for one viewer.
type PostView struct {
	Post       model.Post
	Author     *model.User
	LikesCount int64
	IsLiked    bool
}

type PostService interface {
	Create(ctx context.Context, authorUID, content string, imageURL *string) (*PostView, error)
	Get(ctx context.Context, id uint64, viewerUID string) (*PostView, error)
	List(ctx context.Context, viewerUID, authorUID string, page, limit int) ([]PostView, int64, error)
	Update(ctx context.Context, id uint64, uid string, content *string, imageURL *string) (*PostView, error)
	Delete(ctx context.Context, id uint64, uid string) error
	TogglePin(ctx context.Context, id uint64, uid string) (*PostView, error)
}

type postService struct {
	posts repository.PostRepository
	likes repository.LikeRepository
	users repository.UserRepository
}

func NewPostService(posts repository.PostRepository, likes repository.LikeRepository, users repository.UserRepository) PostService {
	return &postService{posts: posts, likes: likes, users: users}
}

func (s *postService) Create(ctx context.Context, authorUID, content string, imageURL *string) (*PostView, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, errors.New("content is required")
	}
	if imageURL != nil && strings.HasPrefix(strings.TrimSpace(*imageURL), "data:") {
		return nil, errors.New("imageUrl must be a URL, not data URI")
	}
	post := &model.Post{
		AuthorUID: authorUID,
		Content:   content,
		ImageURL:  imageURL,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	return s.view(ctx, post, authorUID)
}

func (s *postService) Get(ctx context.Context, id uint64, viewerUID string) (*PostView, error) {
	post, err := s.findPost(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, post, viewerUID)
}

func (s *postService) List(ctx context.Context, viewerUID, authorUID string, page, limit int) ([]PostView, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	posts, total, err := s.posts.List(ctx, authorUID, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}
	views := make([]PostView, 0, len(posts))
	for i := range posts {
		v, err := s.view(ctx, &posts[i], viewerUID)
		if err != nil {
			return nil, 0, err
		}
		views = append(views, *v)
	}
	return views, total, nil
}

func (s *postService) Update(ctx context.Context, id uint64, uid string, content *string, imageURL *string) (*PostView, error) {
	post, err := s.findPost(ctx, id)
	if err != nil {
		return nil, err
	}
	if post.AuthorUID != uid {
		return nil, ErrForbidden
	}
	if content != nil {
		trimmed := strings.TrimSpace(*content)
		if trimmed == "" {
			return nil, errors.New("content is required")
		}
		post.Content = trimmed
	}
	if imageURL != nil {
		post.ImageURL = imageURL
	}
	if err := s.posts.Update(ctx, post); err != nil {
		return nil, err
	}
	return s.view(ctx, post, uid)
}

func (s *postService) Delete(ctx context.Context, id uint64, uid string) error {
	post, err := s.findPost(ctx, id)
	if err != nil {
		return err
	}
	if post.AuthorUID != uid {
		return ErrForbidden
	}
	return s.posts.Delete(ctx, id)
}

func (s *postService) TogglePin(ctx context.Context, id uint64, uid string) (*PostView, error) {
	post, err := s.findPost(ctx, id)
	if err != nil {
		return nil, err
	}
	if post.AuthorUID != uid {
		return nil, ErrForbidden
	}
	post.IsPinned = !post.IsPinned
	if err := s.posts.Update(ctx, post); err != nil {
		return nil, err
	}
	return s.view(ctx, post, uid)
}

func (s *postService) findPost(ctx context.Context, id uint64) (*model.Post, error) {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return post, nil
}

func (s *postService) view(ctx context.Context, post *model.Post, viewerUID string) (*PostView, error) {
	count, err := s.likes.CountPostLikes(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	liked := false
	if viewerUID != "" {
		liked, err = s.likes.PostLikeExists(ctx, post.ID, viewerUID)
		if err != nil {
			return nil, err
		}
	}
	author, err := s.users.FindByUID(ctx, post.AuthorUID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return &PostView{
		Post:       *post,
		Author:     author,
		LikesCount: count,
		IsLiked:    liked,
	}, nil
}
