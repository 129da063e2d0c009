package repositories

import (
	"context"

	"github.com/devillage/teamproject/backend/internal/models"
	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment and re-comment data operations
type CommentRepository interface {
	CreateComment(ctx context.Context, comment *models.Comment) error
	GetCommentByID(ctx context.Context, id uint) (*models.Comment, error)
	GetCommentsByPostID(ctx context.Context, postID uint) ([]models.Comment, error)
	UpdateComment(ctx context.Context, comment *models.Comment) error
	DeleteComment(ctx context.Context, id uint) error
	DeleteByPostID(ctx context.Context, postID uint) error

	CreateReComment(ctx context.Context, reComment *models.ReComment) error
	GetReCommentByID(ctx context.Context, id uint) (*models.ReComment, error)
	UpdateReComment(ctx context.Context, reComment *models.ReComment) error
	DeleteReComment(ctx context.Context, id uint) error
}

// PostgresCommentRepository implements CommentRepository for PostgreSQL
type PostgresCommentRepository struct {
	db *gorm.DB
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository
func NewPostgresCommentRepository(db *gorm.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db}
}

// CreateComment creates a new comment in PostgreSQL
func (r *PostgresCommentRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

// GetCommentByID retrieves a comment by ID from PostgreSQL
func (r *PostgresCommentRepository) GetCommentByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// GetCommentsByPostID retrieves all comments for a post, oldest first, with their re-comments
func (r *PostgresCommentRepository) GetCommentsByPostID(ctx context.Context, postID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.WithContext(ctx).
		Preload("ReComments", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Where("post_id = ?", postID).Order("id").Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// UpdateComment updates the content of an existing comment
func (r *PostgresCommentRepository) UpdateComment(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Model(comment).Update("content", comment.Content).Error
}

// DeleteComment soft-deletes a comment and its re-comments
func (r *PostgresCommentRepository) DeleteComment(ctx context.Context, id uint) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("comment_id = ?", id).Delete(&models.ReComment{}).Error; err != nil {
		return err
	}
	return db.Delete(&models.Comment{}, id).Error
}

// DeleteByPostID soft-deletes every comment of a post along with the re-comments
func (r *PostgresCommentRepository) DeleteByPostID(ctx context.Context, postID uint) error {
	db := r.db.WithContext(ctx)
	sub := db.Model(&models.Comment{}).Select("id").Where("post_id = ?", postID)
	if err := db.Where("comment_id IN (?)", sub).Delete(&models.ReComment{}).Error; err != nil {
		return err
	}
	return db.Where("post_id = ?", postID).Delete(&models.Comment{}).Error
}

func (r *PostgresCommentRepository) CreateReComment(ctx context.Context, reComment *models.ReComment) error {
	return r.db.WithContext(ctx).Create(reComment).Error
}

func (r *PostgresCommentRepository) GetReCommentByID(ctx context.Context, id uint) (*models.ReComment, error) {
	var reComment models.ReComment
	if err := r.db.WithContext(ctx).First(&reComment, id).Error; err != nil {
		return nil, err
	}
	return &reComment, nil
}

func (r *PostgresCommentRepository) UpdateReComment(ctx context.Context, reComment *models.ReComment) error {
	return r.db.WithContext(ctx).Model(reComment).Update("content", reComment.Content).Error
}

func (r *PostgresCommentRepository) DeleteReComment(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.ReComment{}, id).Error
}
