package repositories

import (
	"context"

	"gorm.io/gorm"
)

// Store groups the relational repositories so that a unit of work can run
// against a single transaction.
type Store interface {
	Users() UserRepository
	Posts() PostRepository
	Bookmarks() BookmarkRepository
	Likes() LikeRepository
	ReportedPosts() ReportedPostRepository
	Comments() CommentRepository

	// WithTx runs fn inside a database transaction. The Store handed to fn is
	// bound to that transaction; returning an error rolls it back.
	WithTx(ctx context.Context, fn func(tx Store) error) error
}

// GormStore implements Store on top of a *gorm.DB
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GormStore
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Users() UserRepository                 { return NewPostgresUserRepository(s.db) }
func (s *GormStore) Posts() PostRepository                 { return NewPostgresPostRepository(s.db) }
func (s *GormStore) Bookmarks() BookmarkRepository         { return NewPostgresBookmarkRepository(s.db) }
func (s *GormStore) Likes() LikeRepository                 { return NewPostgresLikeRepository(s.db) }
func (s *GormStore) ReportedPosts() ReportedPostRepository { return NewPostgresReportedPostRepository(s.db) }
func (s *GormStore) Comments() CommentRepository           { return NewPostgresCommentRepository(s.db) }

// WithTx runs fn in a transaction
func (s *GormStore) WithTx(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}
