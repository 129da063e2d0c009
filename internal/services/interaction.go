package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/devillage/teamproject/backend/internal/models"
	"github.com/devillage/teamproject/backend/internal/repositories"
	"github.com/devillage/teamproject/backend/pkg/metrics"
	"github.com/sirupsen/logrus"
)

// maxToggleAttempts bounds the retries of a toggle whose insert lost a race
// against a concurrent insert of the same (user, post) pair. The second
// attempt sees the winner's row and removes it.
const maxToggleAttempts = 2

// VerifyUser resolves a user or fails with a NotFoundError of kind user.
func (s *PostService) VerifyUser(ctx context.Context, userID uint) (*models.User, error) {
	return verifyUser(ctx, s.store, userID)
}

// VerifyPost resolves a post or fails with a NotFoundError of kind post.
func (s *PostService) VerifyPost(ctx context.Context, postID uint) (*models.Post, error) {
	return verifyPost(ctx, s.store, postID)
}

func verifyUser(ctx context.Context, store repositories.Store, userID uint) (*models.User, error) {
	user, err := store.Users().GetUserByID(ctx, userID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, &NotFoundError{Kind: KindUser, ID: userID}
	}
	if err != nil {
		return nil, fmt.Errorf("load user %d: %w", userID, err)
	}
	return user, nil
}

func verifyPost(ctx context.Context, store repositories.Store, postID uint) (*models.Post, error) {
	post, err := store.Posts().GetPostByID(ctx, postID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, &NotFoundError{Kind: KindPost, ID: postID}
	}
	if err != nil {
		return nil, fmt.Errorf("load post %d: %w", postID, err)
	}
	return post, nil
}

// relationRepository is the slice of a relation repository the toggle needs.
type relationRepository[R any] interface {
	FindByUserAndPost(ctx context.Context, userID, postID uint) ([]R, error)
	Create(ctx context.Context, rel *R) error
	Delete(ctx context.Context, rel *R) error
}

// ToggleBookmark bookmarks the post for the user, or removes the bookmark if
// one exists. The returned bookmark is the created row in the first case and
// the deleted row in the second.
func (s *PostService) ToggleBookmark(ctx context.Context, userID, postID uint) (*models.Bookmark, error) {
	bookmark, added, err := toggleRelation(ctx, s.store, userID, postID,
		func(tx repositories.Store) relationRepository[models.Bookmark] { return tx.Bookmarks() },
		func(u *models.User, p *models.Post) *models.Bookmark {
			return &models.Bookmark{UserID: u.ID, PostID: p.ID}
		},
	)
	if err != nil {
		return nil, err
	}

	action := models.ActionBookmarkRemoved
	if added {
		action = models.ActionBookmarkAdded
	}
	s.emit(ctx, action, userID, postID)
	return bookmark, nil
}

// ToggleLike likes the post for the user, or removes the like if one exists.
// The returned like is the created or the deleted row.
func (s *PostService) ToggleLike(ctx context.Context, userID, postID uint) (*models.Like, error) {
	like, added, err := toggleRelation(ctx, s.store, userID, postID,
		func(tx repositories.Store) relationRepository[models.Like] { return tx.Likes() },
		func(u *models.User, p *models.Post) *models.Like {
			return &models.Like{UserID: u.ID, PostID: p.ID}
		},
	)
	if err != nil {
		return nil, err
	}

	action := models.ActionLikeRemoved
	if added {
		action = models.ActionLikeAdded
	}
	s.emit(ctx, action, userID, postID)
	return like, nil
}

func toggleRelation[R any](
	ctx context.Context,
	store repositories.Store,
	userID, postID uint,
	repoOf func(tx repositories.Store) relationRepository[R],
	build func(*models.User, *models.Post) *R,
) (*R, bool, error) {
	var (
		result *R
		added  bool
		err    error
	)
	for attempt := 1; attempt <= maxToggleAttempts; attempt++ {
		err = store.WithTx(ctx, func(tx repositories.Store) error {
			user, err := verifyUser(ctx, tx, userID)
			if err != nil {
				return err
			}
			post, err := verifyPost(ctx, tx, postID)
			if err != nil {
				return err
			}

			repo := repoOf(tx)
			existing, err := repo.FindByUserAndPost(ctx, userID, postID)
			if err != nil {
				return fmt.Errorf("find relation: %w", err)
			}
			if len(existing) > 0 {
				rel := existing[0]
				if err := repo.Delete(ctx, &rel); err != nil {
					return fmt.Errorf("delete relation: %w", err)
				}
				result, added = &rel, false
				return nil
			}

			rel := build(user, post)
			if err := repo.Create(ctx, rel); err != nil {
				return fmt.Errorf("create relation: %w", err)
			}
			result, added = rel, true
			return nil
		})
		if !errors.Is(err, repositories.ErrDuplicate) {
			break
		}
	}
	if err != nil {
		return nil, false, err
	}
	return result, added, nil
}

// ReportPost records that the user reported the post. A second report of the
// same post by the same user fails with ErrAlreadyReported.
func (s *PostService) ReportPost(ctx context.Context, userID, postID uint) (*models.ReportedPost, error) {
	var report *models.ReportedPost
	err := s.store.WithTx(ctx, func(tx repositories.Store) error {
		user, err := verifyUser(ctx, tx, userID)
		if err != nil {
			return err
		}
		post, err := verifyPost(ctx, tx, postID)
		if err != nil {
			return err
		}

		existing, err := tx.ReportedPosts().FindByUserAndPost(ctx, userID, postID)
		if err != nil {
			return fmt.Errorf("find report: %w", err)
		}
		if len(existing) > 0 {
			return ErrAlreadyReported
		}

		report = &models.ReportedPost{UserID: user.ID, PostID: post.ID}
		return tx.ReportedPosts().Create(ctx, report)
	})
	if errors.Is(err, repositories.ErrDuplicate) {
		return nil, ErrAlreadyReported
	}
	if err != nil {
		return nil, err
	}

	s.emit(ctx, models.ActionPostReported, userID, postID)
	return report, nil
}

func (s *PostService) emit(ctx context.Context, action string, userID, postID uint) {
	metrics.RecordInteraction(action)
	event := newEvent(action, userID, postID, s.now())
	fields := logrus.Fields{"action": action, "user_id": userID, "post_id": postID}
	s.log.WithFields(fields).Info("interaction committed")
	if err := s.events.Publish(ctx, event); err != nil {
		s.log.WithFields(fields).WithError(err).Warn("failed to publish interaction event")
	}
}
