package service

import (
	"errors"
	"log/slog"

	"github.com/modubox/lockerhub/backend-go/internal/database/models"
	"github.com/modubox/lockerhub/backend-go/internal/database/repository"
)

// CommentService defines the interface for comment business logic
type CommentService interface {
	CreateComment(postID, userID uint, content string) (*models.Comment, error)
	ListByPost(postID uint) ([]models.Comment, error)
	DeleteComment(commentID, userID uint, authority models.Authority) error
	RestoreComment(commentID uint) (*models.Comment, error)
}

type commentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	logger      *slog.Logger
}

// NewCommentService creates a new comment service instance
func NewCommentService(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
	logger *slog.Logger,
) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		logger:      logger,
	}
}

func (s *commentService) CreateComment(postID, userID uint, content string) (*models.Comment, error) {
	s.logger.Info("📝 [CommentService] Creating comment", "post_id", postID, "user_id", userID)

	// The post must exist
	if _, err := s.postRepo.FindByID(postID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID:  postID,
		UserID:  userID,
		Content: content,
	}

	if err := s.commentRepo.Create(comment); err != nil {
		s.logger.Error("❌ [CommentService] Failed to create comment", "error", err)
		return nil, err
	}

	s.logger.Info("✅ [CommentService] Comment created", "comment_id", comment.ID)
	return comment, nil
}

func (s *commentService) ListByPost(postID uint) ([]models.Comment, error) {
	if _, err := s.postRepo.FindByID(postID); err != nil {
		return nil, err
	}

	return s.commentRepo.FindByPostID(postID)
}

// DeleteComment soft-deletes a comment. Only the author or an ADMIN may do it.
func (s *commentService) DeleteComment(commentID, userID uint, authority models.Authority) error {
	s.logger.Info("🗑️ [CommentService] Deleting comment", "comment_id", commentID, "user_id", userID)

	comment, err := s.commentRepo.FindByID(commentID)
	if err != nil {
		return err
	}

	if comment.UserID != userID && authority != models.AuthorityAdmin {
		s.logger.Warn("⚠️ [CommentService] Delete denied, not the author",
			"comment_id", commentID,
			"user_id", userID,
		)
		return ErrNotCommentAuthor
	}

	if err := s.commentRepo.Delete(commentID); err != nil {
		return err
	}

	s.logger.Info("✅ [CommentService] Comment deleted", "comment_id", commentID)
	return nil
}

// RestoreComment clears the deletion marker. The comment must currently be
// soft-deleted; a hit under the default scope fails the restore.
func (s *commentService) RestoreComment(commentID uint) (*models.Comment, error) {
	s.logger.Info("♻️ [CommentService] Restoring comment", "comment_id", commentID)

	if _, err := s.commentRepo.FindByID(commentID); err == nil {
		s.logger.Warn("⚠️ [CommentService] Comment is not deleted", "comment_id", commentID)
		return nil, ErrCommentNotDeleted
	} else if !errors.Is(err, repository.ErrCommentNotFound) {
		return nil, err
	}

	if _, err := s.commentRepo.FindDeletedByID(commentID); err != nil {
		return nil, err
	}

	if err := s.commentRepo.Restore(commentID); err != nil {
		s.logger.Error("❌ [CommentService] Failed to restore comment", "comment_id", commentID, "error", err)
		return nil, err
	}

	comment, err := s.commentRepo.FindByID(commentID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("✅ [CommentService] Comment restored", "comment_id", commentID)
	return comment, nil
}

// Service errors
var (
	ErrNotCommentAuthor  = errors.New("본인이 작성한 댓글이 아닙니다")
	ErrCommentNotDeleted = errors.New("삭제되지 않은 댓글입니다")
)
