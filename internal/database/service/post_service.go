package service

import (
	"log/slog"

	"github.com/lib/pq"

	"github.com/modubox/lockerhub/backend-go/internal/database/models"
	"github.com/modubox/lockerhub/backend-go/internal/database/repository"
)

// PostService defines the interface for support post business logic
type PostService interface {
	CreatePost(userID uint, title, content string, tags []string) (*models.Post, error)
	ListPosts() ([]models.Post, error)
}

type postService struct {
	postRepo repository.PostRepository
	logger   *slog.Logger
}

// NewPostService creates a new post service instance
func NewPostService(postRepo repository.PostRepository, logger *slog.Logger) PostService {
	return &postService{
		postRepo: postRepo,
		logger:   logger,
	}
}

func (s *postService) CreatePost(userID uint, title, content string, tags []string) (*models.Post, error) {
	s.logger.Info("📝 [PostService] Creating post", "user_id", userID)

	post := &models.Post{
		UserID:  userID,
		Title:   title,
		Content: content,
		Tags:    pq.StringArray(tags),
	}

	if err := s.postRepo.Create(post); err != nil {
		s.logger.Error("❌ [PostService] Failed to create post", "error", err)
		return nil, err
	}

	s.logger.Info("✅ [PostService] Post created", "post_id", post.ID)
	return post, nil
}

func (s *postService) ListPosts() ([]models.Post, error) {
	return s.postRepo.FindAll()
}
