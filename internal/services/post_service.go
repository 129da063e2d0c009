package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/devillage/teamproject/backend/internal/models"
	"github.com/devillage/teamproject/backend/internal/repositories"
	"github.com/sirupsen/logrus"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 50
)

// ClickCounter counts post views. Implementations may buffer the counts and
// write them to the posts table later.
type ClickCounter interface {
	Incr(ctx context.Context, postID uint) error
}

// PostService holds the post, bookmark, like and report business logic.
type PostService struct {
	store  repositories.Store
	clicks ClickCounter
	events EventSink
	log    *logrus.Logger
	now    func() time.Time
}

// NewPostService creates a new PostService. A nil events sink drops events.
func NewPostService(store repositories.Store, clicks ClickCounter, events EventSink, log *logrus.Logger) *PostService {
	if events == nil {
		events = noopSink{}
	}
	return &PostService{
		store:  store,
		clicks: clicks,
		events: events,
		log:    log,
		now:    time.Now,
	}
}

// SavePost writes a new post authored by userID.
func (s *PostService) SavePost(ctx context.Context, userID uint, req models.CreatePostRequest) (*models.Post, error) {
	var post *models.Post
	err := s.store.WithTx(ctx, func(tx repositories.Store) error {
		if _, err := verifyUser(ctx, tx, userID); err != nil {
			return err
		}
		tags, err := tx.Posts().ResolveTags(ctx, normalizeTags(req.Tags))
		if err != nil {
			return fmt.Errorf("resolve tags: %w", err)
		}
		post = &models.Post{
			UserID:   userID,
			Title:    req.Title,
			Content:  req.Content,
			Category: req.Category,
			Tags:     tags,
		}
		if err := tx.Posts().CreatePost(ctx, post); err != nil {
			return fmt.Errorf("create post: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{"user_id": userID, "post_id": post.ID}).Info("post created")
	return post, nil
}

// GetPost returns a post and counts one click on it.
func (s *PostService) GetPost(ctx context.Context, postID uint) (*models.Post, error) {
	post, err := verifyPost(ctx, s.store, postID)
	if err != nil {
		return nil, err
	}
	if err := s.clicks.Incr(ctx, postID); err != nil {
		s.log.WithField("post_id", postID).WithError(err).Warn("failed to count click")
	}
	return post, nil
}

// ListPosts returns one page of posts in category, newest first. Page is
// 1-based; out of range page and size values are clamped.
func (s *PostService) ListPosts(ctx context.Context, category string, page, size int) (*models.PostPage, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	// (page-1)*size must not overflow.
	if maxPage := math.MaxInt32/size + 1; page > maxPage {
		page = maxPage
	}

	posts, total, err := s.store.Posts().ListPosts(ctx, category, (page-1)*size, size)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	totalPages := int((total + int64(size) - 1) / int64(size))

	return &models.PostPage{
		Posts: posts,
		PageInfo: models.PageInfo{
			Page:          page,
			Size:          size,
			TotalElements: total,
			TotalPages:    totalPages,
		},
	}, nil
}

// EditPost applies the non-empty fields of req. Only the author may edit.
func (s *PostService) EditPost(ctx context.Context, userID, postID uint, req models.UpdatePostRequest) (*models.Post, error) {
	var post *models.Post
	err := s.store.WithTx(ctx, func(tx repositories.Store) error {
		var err error
		post, err = verifyPost(ctx, tx, postID)
		if err != nil {
			return err
		}
		if post.UserID != userID {
			return ErrForbidden
		}

		if req.Title != "" {
			post.Title = req.Title
		}
		if req.Content != "" {
			post.Content = req.Content
		}
		if req.Category != "" {
			post.Category = req.Category
		}
		replaceTags := req.Tags != nil
		if replaceTags {
			post.Tags, err = tx.Posts().ResolveTags(ctx, normalizeTags(req.Tags))
			if err != nil {
				return fmt.Errorf("resolve tags: %w", err)
			}
		}
		if err := tx.Posts().UpdatePost(ctx, post, replaceTags); err != nil {
			return fmt.Errorf("update post: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost removes the post and everything hanging off it. Only the author may delete.
func (s *PostService) DeletePost(ctx context.Context, userID, postID uint) error {
	err := s.store.WithTx(ctx, func(tx repositories.Store) error {
		post, err := verifyPost(ctx, tx, postID)
		if err != nil {
			return err
		}
		if post.UserID != userID {
			return ErrForbidden
		}

		cleanups := []func(context.Context, uint) error{
			tx.Bookmarks().DeleteByPostID,
			tx.Likes().DeleteByPostID,
			tx.ReportedPosts().DeleteByPostID,
			tx.Comments().DeleteByPostID,
		}
		for _, cleanup := range cleanups {
			if err := cleanup(ctx, postID); err != nil {
				return fmt.Errorf("delete post relations: %w", err)
			}
		}
		if err := tx.Posts().DeletePost(ctx, postID); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return &NotFoundError{Kind: KindPost, ID: postID}
			}
			return fmt.Errorf("delete post: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.log.WithFields(logrus.Fields{"user_id": userID, "post_id": postID}).Info("post deleted")
	return nil
}

// ListBookmarks returns the posts the user has bookmarked, newest first.
func (s *PostService) ListBookmarks(ctx context.Context, userID uint) ([]models.Post, error) {
	if _, err := verifyUser(ctx, s.store, userID); err != nil {
		return nil, err
	}
	bookmarks, err := s.store.Bookmarks().ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list bookmarks: %w", err)
	}
	ids := make([]uint, len(bookmarks))
	for i, b := range bookmarks {
		ids[i] = b.PostID
	}
	posts, err := s.store.Posts().GetPostsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load bookmarked posts: %w", err)
	}
	return posts, nil
}

// CountLikes returns the number of likes on a post.
func (s *PostService) CountLikes(ctx context.Context, postID uint) (int64, error) {
	if _, err := verifyPost(ctx, s.store, postID); err != nil {
		return 0, err
	}
	count, err := s.store.Likes().CountByPostID(ctx, postID)
	if err != nil {
		return 0, fmt.Errorf("count likes: %w", err)
	}
	return count, nil
}

// normalizeTags trims, drops empty names and de-duplicates while keeping order.
func normalizeTags(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}
