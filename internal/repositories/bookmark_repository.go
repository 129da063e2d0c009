package repositories

import (
	"context"

	"github.com/devillage/teamproject/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BookmarkRepository defines the interface for bookmark operations
type BookmarkRepository interface {
	FindByUserAndPost(ctx context.Context, userID, postID uint) ([]models.Bookmark, error)
	Create(ctx context.Context, bookmark *models.Bookmark) error
	Delete(ctx context.Context, bookmark *models.Bookmark) error
	ListByUser(ctx context.Context, userID uint) ([]models.Bookmark, error)
	DeleteByPostID(ctx context.Context, postID uint) error
}

// PostgresBookmarkRepository implements BookmarkRepository
type PostgresBookmarkRepository struct {
	db *gorm.DB
}

func NewPostgresBookmarkRepository(db *gorm.DB) *PostgresBookmarkRepository {
	return &PostgresBookmarkRepository{db: db}
}

// FindByUserAndPost returns the bookmarks of userID on postID, locking the
// rows for the rest of the surrounding transaction.
func (r *PostgresBookmarkRepository) FindByUserAndPost(ctx context.Context, userID, postID uint) ([]models.Bookmark, error) {
	var bookmarks []models.Bookmark
	err := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ? AND post_id = ?", userID, postID).Find(&bookmarks).Error
	return bookmarks, err
}

func (r *PostgresBookmarkRepository) Create(ctx context.Context, bookmark *models.Bookmark) error {
	return translate(r.db.WithContext(ctx).Create(bookmark).Error)
}

func (r *PostgresBookmarkRepository) Delete(ctx context.Context, bookmark *models.Bookmark) error {
	return r.db.WithContext(ctx).Delete(bookmark).Error
}

func (r *PostgresBookmarkRepository) ListByUser(ctx context.Context, userID uint) ([]models.Bookmark, error) {
	var bookmarks []models.Bookmark
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&bookmarks).Error
	return bookmarks, err
}

func (r *PostgresBookmarkRepository) DeleteByPostID(ctx context.Context, postID uint) error {
	return r.db.WithContext(ctx).Where("post_id = ?", postID).Delete(&models.Bookmark{}).Error
}
