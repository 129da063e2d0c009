package repositories

import (
	"context"

	"github.com/devillage/teamproject/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id uint) (*models.Post, error)
	ListPosts(ctx context.Context, category string, offset, limit int) ([]models.Post, int64, error)
	GetPostsByIDs(ctx context.Context, ids []uint) ([]models.Post, error)
	UpdatePost(ctx context.Context, post *models.Post, replaceTags bool) error
	DeletePost(ctx context.Context, id uint) error
	ResolveTags(ctx context.Context, names []string) ([]models.Tag, error)
	AddClicks(ctx context.Context, id uint, n int64) error
}

// PostgresPostRepository implements PostRepository for PostgreSQL
type PostgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

// CreatePost inserts the post together with its tag links.
func (r *PostgresPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	return translate(r.db.WithContext(ctx).Omit("Tags.*").Create(post).Error)
}

// GetPostByID retrieves a post and its tags
func (r *PostgresPostRepository) GetPostByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).Preload("Tags").First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// ListPosts returns one page of posts, newest first, plus the total number of
// matching rows. An empty category matches every post.
func (r *PostgresPostRepository) ListPosts(ctx context.Context, category string, offset, limit int) ([]models.Post, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Post{})
	if category != "" {
		q = q.Where("category = ?", category)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []models.Post
	if err := q.Preload("Tags").Order("created_at DESC").Order("id DESC").Offset(offset).Limit(limit).Find(&posts).Error; err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// GetPostsByIDs loads the posts with the given ids, newest first
func (r *PostgresPostRepository) GetPostsByIDs(ctx context.Context, ids []uint) ([]models.Post, error) {
	posts := []models.Post{}
	if len(ids) == 0 {
		return posts, nil
	}
	err := r.db.WithContext(ctx).Preload("Tags").Where("id IN ?", ids).Order("created_at DESC").Find(&posts).Error
	return posts, err
}

// UpdatePost saves the post columns and, when replaceTags is set, swaps the
// tag links for post.Tags.
func (r *PostgresPostRepository) UpdatePost(ctx context.Context, post *models.Post, replaceTags bool) error {
	db := r.db.WithContext(ctx)
	if err := db.Model(post).Select("title", "content", "category").Updates(post).Error; err != nil {
		return err
	}
	if !replaceTags {
		return nil
	}
	return db.Model(post).Association("Tags").Replace(post.Tags)
}

// DeletePost removes the post and its tag links
func (r *PostgresPostRepository) DeletePost(ctx context.Context, id uint) error {
	post := &models.Post{ID: id}
	db := r.db.WithContext(ctx)
	if err := db.Model(post).Association("Tags").Clear(); err != nil {
		return err
	}
	res := db.Delete(post)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ResolveTags returns a tag row for every name, inserting the ones that do not exist yet.
func (r *PostgresPostRepository) ResolveTags(ctx context.Context, names []string) ([]models.Tag, error) {
	tags := make([]models.Tag, 0, len(names))
	if len(names) == 0 {
		return tags, nil
	}
	db := r.db.WithContext(ctx)
	rows := make([]models.Tag, len(names))
	for i, n := range names {
		rows[i] = models.Tag{Name: n}
	}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error; err != nil {
		return nil, err
	}
	if err := db.Where("name IN ?", names).Order("id").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// AddClicks adds n to the post's click counter
func (r *PostgresPostRepository) AddClicks(ctx context.Context, id uint, n int64) error {
	return r.db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", id).
		UpdateColumn("clicks", gorm.Expr("clicks + ?", n)).Error
}
