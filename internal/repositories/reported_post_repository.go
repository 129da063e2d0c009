package repositories

import (
	"context"

	"github.com/devillage/teamproject/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReportedPostRepository defines the interface for post reports
type ReportedPostRepository interface {
	FindByUserAndPost(ctx context.Context, userID, postID uint) ([]models.ReportedPost, error)
	Create(ctx context.Context, report *models.ReportedPost) error
	DeleteByPostID(ctx context.Context, postID uint) error
}

type PostgresReportedPostRepository struct {
	db *gorm.DB
}

func NewPostgresReportedPostRepository(db *gorm.DB) *PostgresReportedPostRepository {
	return &PostgresReportedPostRepository{db: db}
}

func (r *PostgresReportedPostRepository) FindByUserAndPost(ctx context.Context, userID, postID uint) ([]models.ReportedPost, error) {
	var reports []models.ReportedPost
	err := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ? AND post_id = ?", userID, postID).Find(&reports).Error
	return reports, err
}

func (r *PostgresReportedPostRepository) Create(ctx context.Context, report *models.ReportedPost) error {
	return translate(r.db.WithContext(ctx).Create(report).Error)
}

// DeleteByPostID is only used when the reported post itself is deleted.
func (r *PostgresReportedPostRepository) DeleteByPostID(ctx context.Context, postID uint) error {
	return r.db.WithContext(ctx).Where("post_id = ?", postID).Delete(&models.ReportedPost{}).Error
}
