package repositories

import (
	"context"

	"github.com/devillage/teamproject/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LikeRepository defines the interface for like data operations
type LikeRepository interface {
	FindByUserAndPost(ctx context.Context, userID, postID uint) ([]models.Like, error)
	Create(ctx context.Context, like *models.Like) error
	Delete(ctx context.Context, like *models.Like) error
	CountByPostID(ctx context.Context, postID uint) (int64, error)
	DeleteByPostID(ctx context.Context, postID uint) error
}

// PostgresLikeRepository implements LikeRepository for PostgreSQL
type PostgresLikeRepository struct {
	db *gorm.DB
}

// NewPostgresLikeRepository creates a new PostgresLikeRepository
func NewPostgresLikeRepository(db *gorm.DB) *PostgresLikeRepository {
	return &PostgresLikeRepository{db: db}
}

// FindByUserAndPost returns the likes of userID on postID with a row lock
func (r *PostgresLikeRepository) FindByUserAndPost(ctx context.Context, userID, postID uint) ([]models.Like, error) {
	var likes []models.Like
	err := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ? AND post_id = ?", userID, postID).Find(&likes).Error
	return likes, err
}

// Create creates a new like in PostgreSQL
func (r *PostgresLikeRepository) Create(ctx context.Context, like *models.Like) error {
	return translate(r.db.WithContext(ctx).Create(like).Error)
}

// Delete deletes a like from PostgreSQL
func (r *PostgresLikeRepository) Delete(ctx context.Context, like *models.Like) error {
	return r.db.WithContext(ctx).Delete(like).Error
}

// CountByPostID retrieves the count of likes for a specific post
func (r *PostgresLikeRepository) CountByPostID(ctx context.Context, postID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Like{}).Where("post_id = ?", postID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PostgresLikeRepository) DeleteByPostID(ctx context.Context, postID uint) error {
	return r.db.WithContext(ctx).Where("post_id = ?", postID).Delete(&models.Like{}).Error
}
