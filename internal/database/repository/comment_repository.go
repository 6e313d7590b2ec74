package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/modubox/lockerhub/backend-go/internal/database/models"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	Create(comment *models.Comment) error
	FindByID(id uint) (*models.Comment, error)
	FindByPostID(postID uint) ([]models.Comment, error)
	Delete(id uint) error
	FindDeletedByID(id uint) (*models.Comment, error)
	Restore(id uint) error
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new comment repository instance
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

func (r *commentRepository) FindByID(id uint) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.First(&comment, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) FindByPostID(postID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.Where("post_id = ?", postID).
		Order("id").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *commentRepository) Delete(id uint) error {
	result := r.db.Delete(&models.Comment{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCommentNotFound
	}
	return nil
}

func (r *commentRepository) FindDeletedByID(id uint) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.Unscoped().
		Where("id = ? AND deleted_at IS NOT NULL", id).
		First(&comment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) Restore(id uint) error {
	return r.db.Unscoped().
		Model(&models.Comment{}).
		Where("id = ?", id).
		Update("deleted_at", nil).Error
}

// Repository errors
var (
	ErrCommentNotFound = errors.New("comment not found")
)
